package reporting

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
)

func TestFetchAllPreservesInputOrder(t *testing.T) {
	ids := []string{"c1", "c2", "c3"}

	outcomes := FetchAll(context.Background(), ids, func(_ context.Context, id string) (*domain.EntityInsight, error) {
		if id == "c2" {
			return nil, errors.New("rate limit reached")
		}

		return &domain.EntityInsight{ID: id, Name: "Campaign " + id}, nil
	})

	assert.Len(t, outcomes, 3)

	assert.Equal(t, "c1", outcomes[0].ID)
	assert.Empty(t, outcomes[0].Error)
	assert.Equal(t, "Campaign c1", outcomes[0].Data.Name)

	assert.Equal(t, "c2", outcomes[1].ID)
	assert.Equal(t, "rate limit reached", outcomes[1].Error)
	assert.Nil(t, outcomes[1].Data)

	assert.Equal(t, "c3", outcomes[2].ID)
	assert.Empty(t, outcomes[2].Error)
	assert.Equal(t, "Campaign c3", outcomes[2].Data.Name)
}

func TestFetchAllEmptyInput(t *testing.T) {
	outcomes := FetchAll(context.Background(), nil, func(_ context.Context, id string) (*domain.EntityInsight, error) {
		t.Fatal("fetch should never be called for empty input")
		return nil, nil
	})

	assert.Empty(t, outcomes)
}

func TestFilterOutcomesByName(t *testing.T) {
	outcomes := []FetchOutcome[*domain.EntityInsight]{
		{ID: "c1", Data: &domain.EntityInsight{ID: "c1", Name: "Black Friday - Conversão"}},
		{ID: "c2", Data: &domain.EntityInsight{ID: "c2", Name: "Institucional"}},
		{ID: "c3", Error: "insights unavailable"},
		{ID: "c4", Data: &domain.EntityInsight{ID: "c4", Name: "black friday remarketing"}},
	}

	nameOf := func(e *domain.EntityInsight) string {
		if e == nil {
			return ""
		}
		return e.Name
	}

	filtered := FilterOutcomesByName(outcomes, []string{"BLACK FRIDAY"}, nameOf)

	// O item com erro é preservado mesmo sem nome para casar
	assert.Len(t, filtered, 3)
	assert.Equal(t, "c1", filtered[0].ID)
	assert.Equal(t, "c3", filtered[1].ID)
	assert.Equal(t, "c4", filtered[2].ID)
}

func TestFilterOutcomesByNameNoFilterIsPassthrough(t *testing.T) {
	outcomes := []FetchOutcome[*domain.EntityInsight]{
		{ID: "c1", Data: &domain.EntityInsight{ID: "c1", Name: "Qualquer"}},
	}

	filtered := FilterOutcomesByName(outcomes, nil, func(e *domain.EntityInsight) string { return e.Name })

	assert.Equal(t, outcomes, filtered)
}
