package reporting

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// Service monta relatórios de analytics compondo o resolvedor de períodos,
// as buscas concorrentes do integrador e a aritmética de comparação.
type Service struct {
	fetcher InsightFetcher
	now     func() time.Time
}

// NewService cria o serviço de relatórios
func NewService(fetcher InsightFetcher) Reporter {
	return &Service{
		fetcher: fetcher,
		now:     time.Now,
	}
}

// BuildReport monta o relatório multi-seção da conta: resumo do período,
// quebra por entidade, série diária e, quando pedido, comparação com o
// período imediatamente anterior. As buscas opcionais degradam para seções
// vazias em caso de falha; só a falha do resumo do período atual aborta o
// relatório, já que sem ele não há conteúdo significativo.
func (s *Service) BuildReport(ctx context.Context, accountID string, spec domain.RangeSpec, comparePrevious bool, nameFilter []string) (*domain.Report, error) {
	current, err := domain.ResolveSpecAt(spec, s.now().UTC())
	if err != nil {
		return nil, err
	}

	report := &domain.Report{
		AccountID: accountID,
		Range:     current,
	}

	var previous domain.DateRange
	if comparePrevious {
		previous = current.PreviousPeriod()
		report.PreviousRange = &previous
	}

	var (
		summary      *domain.DerivedMetrics
		summaryErr   error
		entities     []*domain.EntityInsight
		daily        []*domain.DailyInsight
		prevSummary  *domain.DerivedMetrics
		prevEntities []*domain.EntityInsight
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		summary, summaryErr = s.fetcher.AccountSummary(ctx, accountID, current)
	}()

	go func() {
		defer wg.Done()

		var err error
		entities, err = s.fetcher.EntityBreakdown(ctx, accountID, current)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("report: entity breakdown unavailable, degrading to empty section")
		}
	}()

	go func() {
		defer wg.Done()

		var err error
		daily, err = s.fetcher.DailySeries(ctx, accountID, current)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"account_id": accountID,
				"error":      err.Error(),
			}).Warn("report: daily series unavailable, degrading to empty section")
		}
	}()

	if comparePrevious {
		wg.Add(2)

		go func() {
			defer wg.Done()

			var err error
			prevSummary, err = s.fetcher.AccountSummary(ctx, accountID, previous)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id": accountID,
					"error":      err.Error(),
				}).Warn("report: previous period summary unavailable, dropping comparison")
			}
		}()

		go func() {
			defer wg.Done()

			var err error
			prevEntities, err = s.fetcher.EntityBreakdown(ctx, accountID, previous)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"account_id": accountID,
					"error":      err.Error(),
				}).Warn("report: previous period breakdown unavailable, dropping entity comparisons")
			}
		}()
	}

	wg.Wait()

	// O resumo do período atual é a única busca obrigatória
	if summaryErr != nil {
		return nil, summaryErr
	}

	report.Summary = summary
	report.Entities = prepareEntities(entities, nameFilter)

	report.Daily = daily
	if report.Daily == nil {
		report.Daily = make([]*domain.DailyInsight, 0)
	}

	if comparePrevious && prevSummary != nil {
		report.Comparison = CompareMetrics(summary, prevSummary, AggregateComparisonMetrics)
		attachEntityComparisons(report.Entities, prevEntities)
	}

	return report, nil
}

// FetchEntities busca os insights de N entidades em paralelo, preservando a
// ordem de entrada e tolerando falhas por item, com pós-filtro opcional por nome.
func (s *Service) FetchEntities(ctx context.Context, ids []string, spec domain.RangeSpec, nameFilter []string) ([]FetchOutcome[*domain.EntityInsight], error) {
	r, err := domain.ResolveSpecAt(spec, s.now().UTC())
	if err != nil {
		return nil, err
	}

	outcomes := FetchAll(ctx, ids, func(ctx context.Context, id string) (*domain.EntityInsight, error) {
		return s.fetcher.EntityInsightByID(ctx, id, r)
	})

	return FilterOutcomesByName(outcomes, nameFilter, func(e *domain.EntityInsight) string {
		if e == nil {
			return ""
		}
		return e.Name
	}), nil
}

// prepareEntities filtra a quebra por entidade para investimento não-zero,
// aplica o filtro opcional por nome e ordena por investimento decrescente.
func prepareEntities(entities []*domain.EntityInsight, nameFilter []string) []*domain.EntityInsight {
	prepared := make([]*domain.EntityInsight, 0, len(entities))

	for _, entity := range entities {
		if entity == nil || entity.Metrics == nil || entity.Metrics.Spend <= 0 {
			continue
		}

		if len(nameFilter) > 0 && !matchesAnyName(entity.Name, nameFilter) {
			continue
		}

		prepared = append(prepared, entity)
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		return prepared[i].Metrics.Spend > prepared[j].Metrics.Spend
	})

	return prepared
}

// attachEntityComparisons junta entidades do período atual e anterior pelo
// id. Entidades sem correspondência no período anterior ficam com a
// comparação nula em vez de serem descartadas.
func attachEntityComparisons(entities []*domain.EntityInsight, previous []*domain.EntityInsight) {
	previousByID := make(map[string]*domain.EntityInsight, len(previous))
	for _, p := range previous {
		if p != nil {
			previousByID[p.ID] = p
		}
	}

	for _, entity := range entities {
		if prev, ok := previousByID[entity.ID]; ok && prev.Metrics != nil {
			entity.Comparison = CompareMetrics(entity.Metrics, prev.Metrics, EntityComparisonMetrics)
		}
	}
}
