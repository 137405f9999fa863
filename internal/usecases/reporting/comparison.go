package reporting

import (
	"strconv"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/pkg/utils"
)

// Métricas acompanhadas no bloco de comparação agregado do relatório
var AggregateComparisonMetrics = []string{
	"spend", "roas", "cpa", "impressions", "clicks", "purchases", "revenue",
	"ctr", "cpm", "reach", "frequency", "add_to_carts", "initiate_checkouts",
	"view_contents",
}

// Métricas acompanhadas na comparação por entidade (lista reduzida)
var EntityComparisonMetrics = []string{
	"spend", "roas", "cpa", "purchases", "revenue", "ctr", "impressions",
}

// PctChange calcula a variação de uma métrica entre dois períodos:
// delta absoluto (2 casas) e variação percentual (1 casa). Quando o
// período anterior é zero, a variação é 100% se houve atividade nova e 0%
// caso contrário, sinalizando "atividade nova" sem dividir por zero.
func PctChange(current, previous float64) *domain.ComparisonResult {
	delta := utils.RoundWithTwoDecimalPlace(current - previous)

	var pct float64
	if previous == 0 {
		if current > 0 {
			pct = 100
		}
	} else {
		pct = utils.RoundWithOneDecimalPlace(delta / previous * 100)
	}

	return &domain.ComparisonResult{
		Delta: formatSigned(delta),
		Pct:   formatSigned(pct) + "%",
	}
}

// CompareMetrics monta um ComparisonResult por métrica acompanhada
func CompareMetrics(current, previous *domain.DerivedMetrics, metrics []string) map[string]*domain.ComparisonResult {
	comparison := make(map[string]*domain.ComparisonResult, len(metrics))

	for _, name := range metrics {
		comparison[name] = PctChange(current.MetricValue(name), previous.MetricValue(name))
	}

	return comparison
}

// formatSigned formata o valor com sinal explícito quando positivo
func formatSigned(v float64) string {
	if v == 0 {
		// Cobre também o zero negativo do arredondamento
		return "0"
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if v > 0 {
		return "+" + s
	}

	return s
}
