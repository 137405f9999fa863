package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// UpdateParams acumula um payload esparso de atualização: somente os campos
// explicitamente marcados pelo chamador entram na requisição. Isso elimina a
// ambiguidade entre "não informado" e "limpo explicitamente": um campo não
// setado simplesmente não é enviado.
type UpdateParams struct {
	fields url.Values
}

func NewUpdateParams() *UpdateParams {
	return &UpdateParams{fields: url.Values{}}
}

// SetName marca o nome da campanha para atualização
func (p *UpdateParams) SetName(name string) *UpdateParams {
	p.fields.Set("name", name)
	return p
}

// SetStatus marca o status da campanha para atualização (ACTIVE, PAUSED, ...)
func (p *UpdateParams) SetStatus(status string) *UpdateParams {
	p.fields.Set("status", status)
	return p
}

// SetDailyBudget marca o orçamento diário, em centavos, para atualização
func (p *UpdateParams) SetDailyBudget(cents int) *UpdateParams {
	p.fields.Set("daily_budget", strconv.Itoa(cents))
	return p
}

// Empty indica se nenhum campo foi marcado
func (p *UpdateParams) Empty() bool {
	return len(p.fields) == 0
}

// Values retorna uma cópia dos campos marcados
func (p *UpdateParams) Values() url.Values {
	out := url.Values{}
	for key, values := range p.fields {
		for _, v := range values {
			out.Add(key, v)
		}
	}
	return out
}

// UpdateCampaign envia os campos marcados em params para a campanha.
// Chamadas sem nenhum campo marcado são rejeitadas antes de ir à rede.
func (c *MetaClient) UpdateCampaign(ctx context.Context, campaignID string, params *UpdateParams) error {
	if params == nil || params.Empty() {
		return errors.New("nenhum campo informado para atualização")
	}

	if err := c.EnsureValidToken(); err != nil {
		return errors.Wrap(err, "erro ao verificar validade do token")
	}

	_, err := c.callWithRetry(ctx, http.MethodPost, fmt.Sprintf("/%s", campaignID), nil, params.Values())
	return err
}
