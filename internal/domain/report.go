package domain

// ComparisonResult representa a variação de uma métrica entre o período
// atual e o período anterior: delta absoluto (2 casas) e variação
// percentual (1 casa), ambos formatados com sinal explícito quando positivos.
type ComparisonResult struct {
	Delta string `json:"delta"`
	Pct   string `json:"pct"`
}

// EntityInsight é a quebra por entidade (campanha) de um relatório,
// com métricas normalizadas e comparação opcional com o período anterior.
// Comparison fica nulo quando a entidade não existia no período anterior.
type EntityInsight struct {
	ID         string                       `json:"id"`
	Name       string                       `json:"name"`
	Metrics    *DerivedMetrics              `json:"metrics"`
	Comparison map[string]*ComparisonResult `json:"comparison,omitempty"`
}

// DailyInsight é um ponto da série diária do relatório
type DailyInsight struct {
	Date    string          `json:"date"`
	Metrics *DerivedMetrics `json:"metrics"`
}

// Report é o artefato final de analytics: resumo do período atual,
// comparação opcional com o período anterior, quebra por entidade
// ordenada por investimento e série diária.
type Report struct {
	AccountID     string                       `json:"account_id"`
	Range         DateRange                    `json:"range"`
	PreviousRange *DateRange                   `json:"previous_range,omitempty"`
	Summary       *DerivedMetrics              `json:"summary"`
	Comparison    map[string]*ComparisonResult `json:"comparison,omitempty"`
	Entities      []*EntityInsight             `json:"entities"`
	Daily         []*DailyInsight              `json:"daily"`
}
