package domain

// DerivedMetrics é o conjunto fixo de métricas normalizadas calculadas a
// partir de uma única linha bruta de insights. Valores monetários e taxas
// são arredondados para duas casas decimais; contagens permanecem inteiras.
// Campos ausentes ou não numéricos na origem entram como zero.
type DerivedMetrics struct {
	Spend             float64 `json:"spend"`
	Impressions       int     `json:"impressions"`
	Clicks            int     `json:"clicks"`
	Reach             int     `json:"reach"`
	Frequency         float64 `json:"frequency"`
	CTR               float64 `json:"ctr"`
	CPC               float64 `json:"cpc"`
	CPM               float64 `json:"cpm"`
	UniqueClicks      int     `json:"unique_clicks"`
	Purchases         int     `json:"purchases"`
	Revenue           float64 `json:"revenue"`
	ROAS              float64 `json:"roas"`
	CPA               float64 `json:"cpa"`
	AddToCarts        int     `json:"add_to_carts"`
	CostPerATC        float64 `json:"cost_per_atc"`
	InitiateCheckouts int     `json:"initiate_checkouts"`
	ViewContents      int     `json:"view_contents"`
	Leads             int     `json:"leads"`
}

// MetricValue retorna o valor de uma métrica pelo nome usado nos blocos de
// comparação. Nomes desconhecidos retornam zero.
func (m *DerivedMetrics) MetricValue(name string) float64 {
	if m == nil {
		return 0
	}

	switch name {
	case "spend":
		return m.Spend
	case "impressions":
		return float64(m.Impressions)
	case "clicks":
		return float64(m.Clicks)
	case "reach":
		return float64(m.Reach)
	case "frequency":
		return m.Frequency
	case "ctr":
		return m.CTR
	case "cpc":
		return m.CPC
	case "cpm":
		return m.CPM
	case "unique_clicks":
		return float64(m.UniqueClicks)
	case "purchases":
		return float64(m.Purchases)
	case "revenue":
		return m.Revenue
	case "roas":
		return m.ROAS
	case "cpa":
		return m.CPA
	case "add_to_carts":
		return float64(m.AddToCarts)
	case "cost_per_atc":
		return m.CostPerATC
	case "initiate_checkouts":
		return float64(m.InitiateCheckouts)
	case "view_contents":
		return float64(m.ViewContents)
	case "leads":
		return float64(m.Leads)
	}

	return 0
}
