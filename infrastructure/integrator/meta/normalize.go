package meta

import (
	"strconv"

	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// NormalizeInsight converte uma linha bruta de insights no pacote fixo de
// métricas derivadas. É uma função total: qualquer campo ausente ou não
// numérico vira zero, nunca NaN; nenhuma entrada faz a normalização falhar.
func NormalizeInsight(row *metadomain.InsightRow) *domain.DerivedMetrics {
	if row == nil {
		return &domain.DerivedMetrics{}
	}

	metrics := &domain.DerivedMetrics{
		Spend:             utils.RoundWithTwoDecimalPlace(parseFloat(row.Spend)),
		Impressions:       parseInt(row.Impressions),
		Clicks:            parseInt(row.Clicks),
		Reach:             parseInt(row.Reach),
		Frequency:         utils.RoundWithTwoDecimalPlace(parseFloat(row.Frequency)),
		CTR:               utils.RoundWithTwoDecimalPlace(parseFloat(row.CTR)),
		CPC:               utils.RoundWithTwoDecimalPlace(parseFloat(row.CPC)),
		CPM:               utils.RoundWithTwoDecimalPlace(parseFloat(row.CPM)),
		UniqueClicks:      parseInt(row.UniqueClicks),
		Purchases:         actionCount(row.Actions, "purchase"),
		Revenue:           utils.RoundWithTwoDecimalPlace(actionValue(row.ActionValues, "purchase")),
		AddToCarts:        actionCount(row.Actions, "add_to_cart"),
		InitiateCheckouts: actionCount(row.Actions, "initiate_checkout"),
		ViewContents:      actionCount(row.Actions, "view_content"),
		Leads:             actionCount(row.Actions, "lead"),
	}

	// Razões derivadas, protegidas contra divisão por zero
	if metrics.Spend > 0 {
		metrics.ROAS = utils.RoundWithTwoDecimalPlace(metrics.Revenue / metrics.Spend)
	}

	if metrics.Purchases > 0 {
		metrics.CPA = utils.RoundWithTwoDecimalPlace(metrics.Spend / float64(metrics.Purchases))
	}

	if metrics.AddToCarts > 0 {
		metrics.CostPerATC = utils.RoundWithTwoDecimalPlace(metrics.Spend / float64(metrics.AddToCarts))
	}

	return metrics
}

// actionCount extrai a contagem de uma ação pelo action_type exato
func actionCount(actions []metadomain.Action, actionType string) int {
	for _, action := range actions {
		if action.ActionType == actionType {
			return parseInt(action.Value)
		}
	}

	return 0
}

// actionValue extrai o valor monetário de uma ação pelo action_type exato
func actionValue(actions []metadomain.Action, actionType string) float64 {
	for _, action := range actions {
		if action.ActionType == actionType {
			return parseFloat(action.Value)
		}
	}

	return 0
}

func parseInt(s string) int {
	if s == "" {
		return 0
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		// Alguns campos de contagem chegam como decimais ("3.0")
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0
		}
		return int(f)
	}

	return v
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	return v
}
