package metaclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
)

// ResolveDefaultAccountID resolve a conta de anúncios padrão do token e
// memoriza o resultado pelo resto da vida do processo. Falhas não são
// memorizadas: a próxima chamada tenta resolver de novo.
func (c *MetaClient) ResolveDefaultAccountID(ctx context.Context) (string, error) {
	c.accountMu.Lock()
	defer c.accountMu.Unlock()

	if c.cachedAccountID != "" {
		return c.cachedAccountID, nil
	}

	if err := c.EnsureValidToken(); err != nil {
		return "", errors.Wrap(err, "erro ao verificar validade do token")
	}

	params := url.Values{}
	params.Add("fields", "id,account_id,name")
	params.Add("limit", "1")

	body, err := c.callWithRetry(ctx, http.MethodGet, "/me/adaccounts", params, nil)
	if err != nil {
		return "", err
	}

	var response metadomain.ResponseAdAccounts
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errors.Wrap(err, "erro ao decodificar contas de anúncios")
	}

	if len(response.Data) == 0 {
		return "", errors.New("nenhuma conta de anúncios acessível pelo token")
	}

	c.cachedAccountID = response.Data[0].AccountID

	logrus.WithFields(logrus.Fields{
		"account_id":   c.cachedAccountID,
		"account_name": response.Data[0].Name,
	}).Info("meta: default ad account resolved")

	return c.cachedAccountID, nil
}
