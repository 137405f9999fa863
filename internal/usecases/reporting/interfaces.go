package reporting

import (
	"context"

	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

// InsightFetcher é a capacidade de consulta consumida pelo montador de
// relatórios. O integrador do Meta a implementa; as consultas já chegam
// normalizadas e com a resiliência aplicada na camada de cliente.
type InsightFetcher interface {
	AccountSummary(ctx context.Context, accountID string, r domain.DateRange) (*domain.DerivedMetrics, error)
	EntityBreakdown(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.EntityInsight, error)
	DailySeries(ctx context.Context, accountID string, r domain.DateRange) ([]*domain.DailyInsight, error)
	EntityInsightByID(ctx context.Context, entityID string, r domain.DateRange) (*domain.EntityInsight, error)
}

// Reporter monta relatórios de analytics multi-seção
type Reporter interface {
	BuildReport(ctx context.Context, accountID string, spec domain.RangeSpec, comparePrevious bool, nameFilter []string) (*domain.Report, error)
	FetchEntities(ctx context.Context, ids []string, spec domain.RangeSpec, nameFilter []string) ([]FetchOutcome[*domain.EntityInsight], error)
}
