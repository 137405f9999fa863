package metaclient

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/internal/config"
)

// Margem de segurança antes da expiração para disparar a renovação
const tokenExpiryMargin = 24 * time.Hour

// TokenManager gerencia o token de acesso de longa duração da API do Meta.
// A renovação é protegida por mutex: chamadas concorrentes convergem para
// uma única renovação.
type TokenManager struct {
	cfg        *config.Config
	mu         sync.Mutex
	httpClient *http.Client
}

func NewTokenManager(cfg *config.Config) *TokenManager {
	return &TokenManager{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// EnsureValidToken verifica se o token atual ainda é válido e renova
// quando a expiração está próxima ou é desconhecida.
func (tm *TokenManager) EnsureValidToken() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.cfg.Meta.AccessToken == "" {
		return errors.New("nenhum token de acesso configurado")
	}

	expiresAt := tm.cfg.Meta.TokenExpiresAt
	if !expiresAt.IsZero() && time.Until(expiresAt) > tokenExpiryMargin {
		return nil
	}

	// Sem data de expiração conhecida, validamos o token antes de renovar
	if expiresAt.IsZero() {
		if err := tm.validateToken(); err == nil {
			return nil
		}

		logrus.Warn("Token sem validade conhecida falhou na validação, tentando renovar")
	}

	return tm.refreshTokenLocked()
}

// RefreshToken obtém um novo token de longa duração trocando o token atual
func (tm *TokenManager) RefreshToken() error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	return tm.refreshTokenLocked()
}

func (tm *TokenManager) refreshTokenLocked() error {
	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", tm.cfg.Meta.AppID)
	params.Add("client_secret", tm.cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", tm.cfg.Meta.AccessToken)

	body, err := tm.get(fmt.Sprintf("%s/oauth/access_token?%s", tm.cfg.Meta.URL, params.Encode()))
	if err != nil {
		return errors.Wrap(err, "erro ao renovar token de longa duração")
	}

	var response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return errors.Wrap(err, "erro ao decodificar resposta de renovação de token")
	}

	if response.AccessToken == "" {
		return errors.New("renovação de token retornou token vazio")
	}

	tm.cfg.Meta.AccessToken = response.AccessToken

	// Tokens de longa duração valem ~60 dias quando expires_in não vem
	if response.ExpiresIn > 0 {
		tm.cfg.Meta.TokenExpiresAt = time.Now().Add(time.Duration(response.ExpiresIn) * time.Second)
	} else {
		tm.cfg.Meta.TokenExpiresAt = time.Now().Add(60 * 24 * time.Hour)
	}

	logrus.WithField("expires_at", tm.cfg.Meta.TokenExpiresAt.Format(time.RFC3339)).
		Info("Token de longa duração renovado com sucesso")

	return nil
}

// validateToken consulta o endpoint de introspecção para descobrir a
// validade e a expiração do token atual.
func (tm *TokenManager) validateToken() error {
	params := url.Values{}
	params.Add("input_token", tm.cfg.Meta.AccessToken)
	params.Add("access_token", fmt.Sprintf("%s|%s", tm.cfg.Meta.AppID, tm.cfg.Meta.AppSecret))

	body, err := tm.get(fmt.Sprintf("%s/debug_token?%s", tm.cfg.Meta.BaseURL, params.Encode()))
	if err != nil {
		return errors.Wrap(err, "erro ao validar token")
	}

	var response struct {
		Data struct {
			IsValid   bool  `json:"is_valid"`
			ExpiresAt int64 `json:"expires_at"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return errors.Wrap(err, "erro ao decodificar introspecção de token")
	}

	if !response.Data.IsValid {
		return errors.New("token inválido segundo a introspecção")
	}

	if response.Data.ExpiresAt > 0 {
		tm.cfg.Meta.TokenExpiresAt = time.Unix(response.Data.ExpiresAt, 0)
	}

	return nil
}

func (tm *TokenManager) get(fullURL string) ([]byte, error) {
	resp, err := tm.httpClient.Get(fullURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
