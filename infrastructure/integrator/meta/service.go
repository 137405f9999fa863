package meta

import (
	"context"

	"github.com/sirupsen/logrus"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-analytics-api/internal/config"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// MetaIntegrator expõe as consultas de insights já normalizadas para as
// camadas de caso de uso. O cliente subjacente cuida de transporte, token
// e resiliência; aqui só montamos as consultas e normalizamos as linhas.
type MetaIntegrator struct {
	cfg    *config.Config
	Client metaclient.Client
}

func New(cfg *config.Config, client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// AccountSummary busca o agregado da conta para o intervalo.
// Resposta sem linhas degrada para métricas zeradas, não para erro.
func (s *MetaIntegrator) AccountSummary(ctx context.Context, accountID string, r domain.DateRange) (*domain.DerivedMetrics, error) {
	rows, err := s.Client.GetAccountInsights(ctx, accountID, r, metaclient.InsightOptions{Level: "account"})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"since":      r.SinceString(),
			"until":      r.UntilString(),
			"error":      err.Error(),
		}).Error("insights: failed to get account summary from API")
		return nil, err
	}

	if len(rows) == 0 {
		logrus.WithField("account_id", accountID).Debug("insights: no summary rows for range")
		return &domain.DerivedMetrics{}, nil
	}

	return NormalizeInsight(&rows[0]), nil
}

// EntityBreakdown busca a quebra por campanha para o intervalo,
// sem filtragem nem ordenação; isso é papel do montador de relatório.
func (s *MetaIntegrator) EntityBreakdown(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.EntityInsight, error) {
	rows, err := s.Client.GetAccountInsights(ctx, accountID, r, metaclient.InsightOptions{Level: "campaign"})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to get entity breakdown from API")
		return nil, err
	}

	entities := make([]*domain.EntityInsight, 0, len(rows))
	for i := range rows {
		entities = append(entities, entityFromRow(&rows[i]))
	}

	return entities, nil
}

// DailySeries busca a série diária agregada da conta para o intervalo
func (s *MetaIntegrator) DailySeries(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.DailyInsight, error) {
	rows, err := s.Client.GetAccountInsights(ctx, accountID, r, metaclient.InsightOptions{
		Level:         "account",
		TimeIncrement: 1,
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountID,
			"error":      err.Error(),
		}).Error("insights: failed to get daily series from API")
		return nil, err
	}

	daily := make([]*domain.DailyInsight, 0, len(rows))
	for i := range rows {
		daily = append(daily, &domain.DailyInsight{
			Date:    rows[i].DateStart,
			Metrics: NormalizeInsight(&rows[i]),
		})
	}

	return daily, nil
}

// EntityInsightByID busca e normaliza os insights de uma única campanha.
// Campanha sem linhas no intervalo retorna nil, sem erro.
func (s *MetaIntegrator) EntityInsightByID(ctx context.Context, campaignID string, r domain.DateRange) (*domain.EntityInsight, error) {
	rows, err := s.Client.GetCampaignInsights(ctx, campaignID, r)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return entityFromRow(&rows[0]), nil
}

// Campaigns lista as campanhas ativas da conta
func (s *MetaIntegrator) Campaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error) {
	return s.Client.GetCampaignsByAccountID(ctx, accountID)
}

// UpdateCampaign repassa uma atualização esparsa para a campanha
func (s *MetaIntegrator) UpdateCampaign(ctx context.Context, campaignID string, params *metaclient.UpdateParams) error {
	return s.Client.UpdateCampaign(ctx, campaignID, params)
}

// DefaultAccountID resolve a conta de anúncios padrão: a configurada, se
// houver, senão a primeira conta acessível pelo token (memorizada pelo cliente)
func (s *MetaIntegrator) DefaultAccountID(ctx context.Context) (string, error) {
	if s.cfg.Meta.DefaultAccount != "" {
		return s.cfg.Meta.DefaultAccount, nil
	}

	return s.Client.ResolveDefaultAccountID(ctx)
}

func entityFromRow(row *metadomain.InsightRow) *domain.EntityInsight {
	return &domain.EntityInsight{
		ID:      row.CampaignID,
		Name:    row.CampaignName,
		Metrics: NormalizeInsight(row),
	}
}
