package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/ads-analytics-api/internal/domain"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/reporting"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
)

// GetAccountReport monta o relatório multi-seção da conta. O período vem
// de date_preset ou de since/until explícitos; compare=true habilita a
// comparação com o período anterior; names filtra entidades por substring.
func GetAccountReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		spec := rangeSpecFromQuery(r)
		compare := r.URL.Query().Get("compare") == "true"
		names := namesFromQuery(r)

		logger.WithFields(log.Fields{
			"account_id":  id,
			"date_preset": spec.Preset,
			"since":       spec.Since,
			"until":       spec.Until,
			"compare":     compare,
		}).Info("report: building account report")

		report, err := service.BuildReport(r.Context(), id, spec, compare, names)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("report: failed to build account report")

			writeUpstreamError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("report: failed to encode response")

			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAccountInsights retorna só o resumo de métricas da conta no período
func GetAccountInsights(fetcher reporting.InsightFetcher) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		spec := rangeSpecFromQuery(r)

		dateRange, err := domain.ResolveSpec(spec)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Warn("insights: invalid date range parameters")

			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		metrics, err := fetcher.AccountSummary(r.Context(), id, dateRange)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"since":      dateRange.SinceString(),
				"until":      dateRange.UntilString(),
				"error":      err.Error(),
			}).Error("insights: failed to get account summary")

			writeUpstreamError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"account_id": id,
			"range":      dateRange,
			"metrics":    metrics,
		}); err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetEntityInsights busca os insights de várias entidades em paralelo:
// ids é uma lista separada por vírgula, names é o pós-filtro opcional
func GetEntityInsights(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		ids := splitQueryList(r.URL.Query().Get("ids"))
		if len(ids) == 0 {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro ids é obrigatório", nil)
			return
		}

		spec := rangeSpecFromQuery(r)
		names := namesFromQuery(r)

		logger.WithFields(log.Fields{
			"entity_count": len(ids),
			"date_preset":  spec.Preset,
		}).Info("insights: fetching entity batch")

		outcomes, err := service.FetchEntities(r.Context(), ids, spec, names)
		if err != nil {
			logger.WithField("error", err.Error()).Warn("insights: invalid batch parameters")
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"results": outcomes,
		}); err != nil {
			logger.WithField("error", err.Error()).Error("insights: failed to encode batch response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// rangeSpecFromQuery monta a especificação de período a partir da query string
func rangeSpecFromQuery(r *http.Request) domain.RangeSpec {
	return domain.RangeSpec{
		Preset: r.URL.Query().Get("date_preset"),
		Since:  r.URL.Query().Get("since"),
		Until:  r.URL.Query().Get("until"),
	}
}

// namesFromQuery extrai o filtro opcional por nome (lista separada por vírgula)
func namesFromQuery(r *http.Request) []string {
	return splitQueryList(r.URL.Query().Get("names"))
}

func splitQueryList(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))

	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}

	return values
}
