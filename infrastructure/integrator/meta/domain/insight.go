package metadomain

// Action representa uma ação nomeada dentro de uma linha de insights.
// O valor vem sempre como string numérica da API do Meta.
type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// InsightRow é uma linha bruta de insights retornada pela Graph API.
// Todos os campos numéricos chegam como strings; a normalização para
// tipos numéricos acontece no integrador.
type InsightRow struct {
	AccountID    string   `json:"account_id"`
	AccountName  string   `json:"account_name"`
	CampaignID   string   `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Reach        string   `json:"reach"`
	Frequency    string   `json:"frequency"`
	CTR          string   `json:"ctr"`
	CPC          string   `json:"cpc"`
	CPM          string   `json:"cpm"`
	UniqueClicks string   `json:"unique_clicks"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}

type Cursors struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

type Paging struct {
	Cursors Cursors `json:"cursors"`
}

// ResponseInsights é o envelope padrão de listagem da Graph API
type ResponseInsights struct {
	Data   []InsightRow `json:"data"`
	Paging Paging       `json:"paging"`
}

// Campaign representa uma campanha listada sob uma conta de anúncios
type Campaign struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

type ResponseCampaigns struct {
	Data   []Campaign `json:"data"`
	Paging Paging     `json:"paging"`
}

// AdAccount representa uma conta de anúncios acessível pelo token
type AdAccount struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
}

type ResponseAdAccounts struct {
	Data   []AdAccount `json:"data"`
	Paging Paging      `json:"paging"`
}
