package metaclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

type Client interface {
	GetAccountInsights(ctx context.Context, accountID string, r domain.DateRange, opts InsightOptions) ([]metadomain.InsightRow, error)
	GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	GetCampaignInsights(ctx context.Context, campaignID string, r domain.DateRange) ([]metadomain.InsightRow, error)
	UpdateCampaign(ctx context.Context, campaignID string, params *UpdateParams) error
	ResolveDefaultAccountID(ctx context.Context) (string, error)
	EnsureValidToken() error
	RefreshToken() error
}

type MetaClient struct {
	Cfg          *config.Config
	TokenManager *TokenManager

	httpClient *http.Client
	policy     RetryPolicy

	// Identificador de escopo resolvido uma vez por processo. A resolução
	// é idempotente, então refazê-la em caso de corrida é inofensivo.
	accountMu       sync.Mutex
	cachedAccountID string
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &MetaClient{
		Cfg:          cfg,
		TokenManager: tokenManager,
		// O timeout por tentativa vem da política, via contexto
		httpClient: &http.Client{},
		policy:     policyFromConfig(cfg),
	}
}

// policyFromConfig monta a política de resiliência a partir da
// configuração, preenchendo os padrões para valores ausentes.
func policyFromConfig(cfg *config.Config) RetryPolicy {
	policy := DefaultRetryPolicy()

	if cfg.Meta.TimeoutMs > 0 {
		policy.Timeout = time.Duration(cfg.Meta.TimeoutMs) * time.Millisecond
	}

	if cfg.Meta.MaxRetries >= 0 {
		policy.MaxRetries = cfg.Meta.MaxRetries
	}

	if cfg.Meta.BaseDelayMs > 0 {
		policy.BaseDelay = time.Duration(cfg.Meta.BaseDelayMs) * time.Millisecond
	}

	return policy
}

// RefreshToken obtém um novo token de longa duração
func (c *MetaClient) RefreshToken() error {
	return c.TokenManager.RefreshToken()
}

// EnsureValidToken verifica se o token atual é válido e tenta renová-lo se necessário
func (c *MetaClient) EnsureValidToken() error {
	return c.TokenManager.EnsureValidToken()
}

// call emite uma única tentativa HTTP contra a Graph API, com o token de
// acesso anexado. Retorna o status e o corpo crus; a classificação do
// resultado é responsabilidade do executor.
func (c *MetaClient) call(ctx context.Context, method, path string, query url.Values, bodyParams url.Values) (*rawResponse, error) {
	if query == nil {
		query = url.Values{}
	}

	var reqBody io.Reader

	if method == http.MethodPost && bodyParams != nil {
		bodyParams.Set("access_token", c.Cfg.Meta.AccessToken)
		reqBody = strings.NewReader(bodyParams.Encode())
	} else {
		query.Set("access_token", c.Cfg.Meta.AccessToken)
	}

	fullURL := c.Cfg.Meta.URL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo da resposta")
	}

	return &rawResponse{StatusCode: resp.StatusCode, Body: body}, nil
}

// callWithRetry envolve uma chamada lógica com a política de resiliência.
// Quando a falha terminal é de token expirado, renova o token uma única
// vez e reemite a chamada lógica inteira; a segunda falha é definitiva.
func (c *MetaClient) callWithRetry(ctx context.Context, method, path string, query url.Values, bodyParams url.Values) ([]byte, error) {
	body, err := c.executeCall(ctx, method, path, query, bodyParams)

	var callErr *CallError
	if err != nil && errors.As(err, &callErr) && callErr.tokenExpired {
		logrus.WithFields(logrus.Fields{
			"operation": method + " " + path,
			"error":     callErr.Message,
		}).Warn("meta: expired token detected, refreshing and reissuing call")

		if refreshErr := c.TokenManager.RefreshToken(); refreshErr != nil {
			logrus.WithError(refreshErr).Error("meta: token refresh after expiry failed")
			return nil, err
		}

		return c.executeCall(ctx, method, path, query, bodyParams)
	}

	return body, err
}

func (c *MetaClient) executeCall(ctx context.Context, method, path string, query url.Values, bodyParams url.Values) ([]byte, error) {
	return execute(ctx, c.policy, method+" "+path, func(attemptCtx context.Context) (*rawResponse, error) {
		return c.call(attemptCtx, method, path, query, bodyParams)
	})
}
