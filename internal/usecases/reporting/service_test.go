package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/reporting/mocks"
	"go.uber.org/mock/gomock"
)

// Sábado, para tornar determinísticos os presets relativos à semana
var testNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestService(fetcher InsightFetcher) *Service {
	return &Service{
		fetcher: fetcher,
		now:     func() time.Time { return testNow },
	}
}

func TestBuildReportWithComparison(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	current := domain.DateRange{
		Since: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	previous := current.PreviousPeriod()

	summary := &domain.DerivedMetrics{Spend: 1200, Purchases: 24, Revenue: 4800}
	prevSummary := &domain.DerivedMetrics{Spend: 1000, Purchases: 20, Revenue: 4000}

	entities := []*domain.EntityInsight{
		{ID: "c1", Name: "Remarketing", Metrics: &domain.DerivedMetrics{Spend: 300}},
		{ID: "c2", Name: "Prospecção", Metrics: &domain.DerivedMetrics{Spend: 900}},
		{ID: "c3", Name: "Pausada", Metrics: &domain.DerivedMetrics{Spend: 0}},
	}
	prevEntities := []*domain.EntityInsight{
		{ID: "c2", Name: "Prospecção", Metrics: &domain.DerivedMetrics{Spend: 450}},
	}

	daily := []*domain.DailyInsight{
		{Date: "2025-03-08", Metrics: &domain.DerivedMetrics{Spend: 170}},
	}

	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", current).Return(summary, nil)
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", current).Return(entities, nil)
	fetcher.EXPECT().DailySeries(gomock.Any(), "123", current).Return(daily, nil)
	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", previous).Return(prevSummary, nil)
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", previous).Return(prevEntities, nil)

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", domain.RangeSpec{Preset: "last_7d"}, true, nil)

	assert.NoError(t, err)
	assert.Equal(t, "123", report.AccountID)
	assert.Equal(t, current, report.Range)
	assert.Equal(t, &previous, report.PreviousRange)
	assert.Equal(t, summary, report.Summary)
	assert.Equal(t, daily, report.Daily)

	// Comparação agregada: spend 1000 -> 1200
	assert.Equal(t, "+200", report.Comparison["spend"].Delta)
	assert.Equal(t, "+20%", report.Comparison["spend"].Pct)

	// Entidades com spend zero saem; as restantes ordenadas por spend desc
	assert.Len(t, report.Entities, 2)
	assert.Equal(t, "c2", report.Entities[0].ID)
	assert.Equal(t, "c1", report.Entities[1].ID)

	// c2 tem par no período anterior; c1 não, e fica sem comparação
	assert.NotNil(t, report.Entities[0].Comparison)
	assert.Equal(t, "+100%", report.Entities[0].Comparison["spend"].Pct)
	assert.Nil(t, report.Entities[1].Comparison)
}

func TestBuildReportDegradesOptionalSections(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	summary := &domain.DerivedMetrics{Spend: 100}

	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", gomock.Any()).Return(summary, nil)
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", gomock.Any()).Return(nil, errors.New("rate limit"))
	fetcher.EXPECT().DailySeries(gomock.Any(), "123", gomock.Any()).Return(nil, errors.New("rate limit"))

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", domain.RangeSpec{Preset: "yesterday"}, false, nil)

	assert.NoError(t, err)
	assert.Equal(t, summary, report.Summary)
	assert.NotNil(t, report.Entities)
	assert.Empty(t, report.Entities)
	assert.NotNil(t, report.Daily)
	assert.Empty(t, report.Daily)
	assert.Nil(t, report.Comparison)
}

func TestBuildReportComparisonDegradesWhenPreviousFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	current := domain.DateRange{
		Since: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Until: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	previous := current.PreviousPeriod()

	summary := &domain.DerivedMetrics{Spend: 100}

	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", current).Return(summary, nil)
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", current).Return(nil, nil)
	fetcher.EXPECT().DailySeries(gomock.Any(), "123", current).Return(nil, nil)
	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", previous).Return(nil, errors.New("token expired"))
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", previous).Return(nil, nil)

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", domain.RangeSpec{Preset: "yesterday"}, true, nil)

	// A falha do período anterior tira a comparação mas não o relatório
	assert.NoError(t, err)
	assert.Equal(t, summary, report.Summary)
	assert.Equal(t, &previous, report.PreviousRange)
	assert.Nil(t, report.Comparison)
}

func TestBuildReportFailsWhenSummaryFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", gomock.Any()).Return(nil, errors.New("insights unavailable"))
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", gomock.Any()).Return(nil, nil)
	fetcher.EXPECT().DailySeries(gomock.Any(), "123", gomock.Any()).Return(nil, nil)

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", domain.RangeSpec{Preset: "last_7d"}, false, nil)

	assert.Nil(t, report)
	assert.EqualError(t, err, "insights unavailable")
}

func TestBuildReportRejectsInvalidExplicitRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	spec := domain.RangeSpec{Since: "2025-03-31", Until: "2025-03-01"}

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", spec, false, nil)

	assert.Nil(t, report)
	assert.Error(t, err)
}

func TestBuildReportNameFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	entities := []*domain.EntityInsight{
		{ID: "c1", Name: "Black Friday", Metrics: &domain.DerivedMetrics{Spend: 300}},
		{ID: "c2", Name: "Institucional", Metrics: &domain.DerivedMetrics{Spend: 900}},
	}

	fetcher.EXPECT().AccountSummary(gomock.Any(), "123", gomock.Any()).Return(&domain.DerivedMetrics{}, nil)
	fetcher.EXPECT().EntityBreakdown(gomock.Any(), "123", gomock.Any()).Return(entities, nil)
	fetcher.EXPECT().DailySeries(gomock.Any(), "123", gomock.Any()).Return(nil, nil)

	report, err := newTestService(fetcher).BuildReport(context.Background(), "123", domain.RangeSpec{Preset: "last_7d"}, false, []string{"black"})

	assert.NoError(t, err)
	assert.Len(t, report.Entities, 1)
	assert.Equal(t, "c1", report.Entities[0].ID)
}

func TestFetchEntities(t *testing.T) {
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockInsightFetcher(ctrl)

	fetcher.EXPECT().EntityInsightByID(gomock.Any(), "c1", gomock.Any()).
		Return(&domain.EntityInsight{ID: "c1", Name: "Remarketing"}, nil)
	fetcher.EXPECT().EntityInsightByID(gomock.Any(), "c2", gomock.Any()).
		Return(nil, errors.New("unsupported get request"))

	outcomes, err := newTestService(fetcher).FetchEntities(context.Background(), []string{"c1", "c2"}, domain.RangeSpec{Preset: "last_30d"}, nil)

	assert.NoError(t, err)
	assert.Len(t, outcomes, 2)
	assert.Equal(t, "Remarketing", outcomes[0].Data.Name)
	assert.Equal(t, "unsupported get request", outcomes[1].Error)
}
