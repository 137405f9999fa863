package metaclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Campos solicitados em todas as consultas de insights
const insightFields = "account_id,account_name,campaign_id,campaign_name,date_start,date_stop," +
	"spend,impressions,clicks,reach,frequency,ctr,cpc,cpm,unique_clicks,actions,action_values"

// InsightOptions controla o nível de agregação e a granularidade temporal
// de uma consulta de insights.
type InsightOptions struct {
	// Level: "account" (agregado) ou "campaign" (quebra por campanha)
	Level string
	// TimeIncrement: 1 para série diária; 0 mantém o período agregado
	TimeIncrement int
}

// GetAccountInsights busca as linhas de insights de uma conta para o
// intervalo informado. Resposta sem linhas retorna slice vazio, não erro.
func (c *MetaClient) GetAccountInsights(ctx context.Context, accountID string, r domain.DateRange, opts InsightOptions) ([]metadomain.InsightRow, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, errors.Wrap(err, "erro ao verificar validade do token")
	}

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("time_range", timeRangeParam(r))

	if opts.Level != "" {
		params.Add("level", opts.Level)
	}

	if opts.TimeIncrement > 0 {
		params.Add("time_increment", fmt.Sprintf("%d", opts.TimeIncrement))
	}

	body, err := c.callWithRetry(ctx, http.MethodGet, fmt.Sprintf("/act_%s/insights", accountID), params, nil)
	if err != nil {
		return nil, err
	}

	return decodeInsightRows(body)
}

// GetCampaignInsights busca as linhas de insights de uma única campanha
func (c *MetaClient) GetCampaignInsights(ctx context.Context, campaignID string, r domain.DateRange) ([]metadomain.InsightRow, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, errors.Wrap(err, "erro ao verificar validade do token")
	}

	params := url.Values{}
	params.Add("fields", insightFields)
	params.Add("time_range", timeRangeParam(r))

	body, err := c.callWithRetry(ctx, http.MethodGet, fmt.Sprintf("/%s/insights", campaignID), params, nil)
	if err != nil {
		return nil, err
	}

	return decodeInsightRows(body)
}

// GetCampaignsByAccountID lista as campanhas ativas de uma conta
func (c *MetaClient) GetCampaignsByAccountID(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	if err := c.EnsureValidToken(); err != nil {
		return nil, errors.Wrap(err, "erro ao verificar validade do token")
	}

	params := url.Values{}
	params.Add("fields", "id,name,status")
	params.Add("effective_status", "['ACTIVE']")

	body, err := c.callWithRetry(ctx, http.MethodGet, fmt.Sprintf("/act_%s/campaigns", accountID), params, nil)
	if err != nil {
		return nil, err
	}

	var response metadomain.ResponseCampaigns
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar campanhas")
	}

	return response.Data, nil
}

// decodeInsightRows decodifica o envelope de insights removendo antes os
// sinais de atribuição redundantes do payload bruto.
func decodeInsightRows(body []byte) ([]metadomain.InsightRow, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar JSON de insights")
	}

	payload = metadomain.StripRedundantActions(payload)

	clean, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao reserializar payload de insights")
	}

	var response metadomain.ResponseInsights
	if err := json.Unmarshal(clean, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar linhas de insights")
	}

	return response.Data, nil
}

// timeRangeParam monta o parâmetro time_range no formato da Graph API
func timeRangeParam(r domain.DateRange) string {
	return fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", r.SinceString(), r.UntilString())
}
