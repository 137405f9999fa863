package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

func TestPctChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		delta    string
		pct      string
	}{
		{name: "increase", current: 120, previous: 100, delta: "+20", pct: "+20%"},
		{name: "decrease", current: 80, previous: 100, delta: "-20", pct: "-20%"},
		{name: "no change", current: 100, previous: 100, delta: "0", pct: "0%"},
		{name: "both zero", current: 0, previous: 0, delta: "0", pct: "0%"},
		{name: "new activity", current: 50, previous: 0, delta: "+50", pct: "+100%"},
		{name: "activity dropped to zero", current: 0, previous: 50, delta: "-50", pct: "-100%"},
		{name: "fractional pct rounds to one place", current: 1234.56, previous: 1000, delta: "+234.56", pct: "+23.5%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PctChange(tt.current, tt.previous)

			assert.Equal(t, tt.delta, result.Delta)
			assert.Equal(t, tt.pct, result.Pct)
		})
	}
}

func TestCompareMetrics(t *testing.T) {
	current := &domain.DerivedMetrics{Spend: 1500.75, Purchases: 30, ROAS: 3.2}
	previous := &domain.DerivedMetrics{Spend: 1000, Purchases: 25, ROAS: 4}

	comparison := CompareMetrics(current, previous, []string{"spend", "purchases", "roas"})

	assert.Len(t, comparison, 3)
	assert.Equal(t, "+500.75", comparison["spend"].Delta)
	assert.Equal(t, "+50.1%", comparison["spend"].Pct)
	assert.Equal(t, "+5", comparison["purchases"].Delta)
	assert.Equal(t, "+20%", comparison["purchases"].Pct)
	assert.Equal(t, "-0.8", comparison["roas"].Delta)
	assert.Equal(t, "-20%", comparison["roas"].Pct)
}

func TestCompareMetricsUnknownMetricIsZero(t *testing.T) {
	comparison := CompareMetrics(&domain.DerivedMetrics{}, &domain.DerivedMetrics{}, []string{"does_not_exist"})

	assert.Equal(t, "0", comparison["does_not_exist"].Delta)
	assert.Equal(t, "0%", comparison["does_not_exist"].Pct)
}
