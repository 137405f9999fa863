package reporting

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// FetchOutcome é o resultado individual de um item do lote: ou os dados,
// ou a mensagem de erro daquele item. A posição no slice de saída sempre
// corresponde à posição do id na entrada.
type FetchOutcome[T any] struct {
	ID    string `json:"id"`
	Data  T      `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// FetchAll dispara todas as buscas concorrentemente, sem limite local de
// concorrência: o rate limiting da API remota é o mecanismo de
// backpressure. A falha de um item é capturada no seu próprio resultado e
// nunca aborta nem afeta os irmãos; o lote em si nunca falha por causa de
// um subconjunto de itens.
func FetchAll[T any](ctx context.Context, ids []string, fetchOne func(ctx context.Context, id string) (T, error)) []FetchOutcome[T] {
	outcomes := make([]FetchOutcome[T], len(ids))

	wg := sync.WaitGroup{}

	for i, id := range ids {
		wg.Add(1)

		go func(slot int, id string) {
			defer wg.Done()

			data, err := fetchOne(ctx, id)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"id":    id,
					"error": err.Error(),
				}).Warn("batch: item fetch failed")

				outcomes[slot] = FetchOutcome[T]{ID: id, Error: err.Error()}
				return
			}

			outcomes[slot] = FetchOutcome[T]{ID: id, Data: data}
		}(i, id)
	}

	wg.Wait()

	return outcomes
}

// FilterOutcomesByName aplica o pós-filtro opcional por nome: mantém os
// itens cujo nome contém (sem diferenciar maiúsculas) qualquer um dos
// termos pedidos. Itens com erro ou sem dados são preservados para que o
// chamador veja o que aconteceu, em vez de sumirem silenciosamente.
func FilterOutcomesByName[T any](outcomes []FetchOutcome[T], names []string, nameOf func(T) string) []FetchOutcome[T] {
	if len(names) == 0 {
		return outcomes
	}

	kept := make([]FetchOutcome[T], 0, len(outcomes))

	for _, outcome := range outcomes {
		if outcome.Error != "" {
			kept = append(kept, outcome)
			continue
		}

		name := nameOf(outcome.Data)
		if name == "" {
			kept = append(kept, outcome)
			continue
		}

		if matchesAnyName(name, names) {
			kept = append(kept, outcome)
		}
	}

	return kept
}

// matchesAnyName verifica se o nome contém qualquer um dos termos,
// sem diferenciar maiúsculas de minúsculas
func matchesAnyName(name string, filters []string) bool {
	lower := strings.ToLower(name)

	for _, filter := range filters {
		if strings.Contains(lower, strings.ToLower(filter)) {
			return true
		}
	}

	return false
}
