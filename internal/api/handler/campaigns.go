package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	metadomain "github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
	"github.com/vfg2006/ads-analytics-api/pkg/log"
)

// CampaignService é o recorte do integrador consumido pelos handlers de campanha
type CampaignService interface {
	Campaigns(ctx context.Context, accountID string) ([]metadomain.Campaign, error)
	UpdateCampaign(ctx context.Context, campaignID string, params *metaclient.UpdateParams) error
	DefaultAccountID(ctx context.Context) (string, error)
}

// UpdateCampaignRequest é uma atualização esparsa: só os campos presentes
// no corpo são enviados ao Graph API
type UpdateCampaignRequest struct {
	Name             *string `json:"name,omitempty"`
	Status           *string `json:"status,omitempty"`
	DailyBudgetCents *int    `json:"daily_budget_cents,omitempty"`
}

// ListCampaigns lista as campanhas ativas da conta
func ListCampaigns(service CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		logger.WithField("account_id", id).Info("campaigns: listing account campaigns")

		campaigns, err := service.Campaigns(r.Context(), id)
		if err != nil {
			logger.WithFields(log.Fields{
				"account_id": id,
				"error":      err.Error(),
			}).Error("campaigns: failed to list campaigns")

			writeUpstreamError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]any{
			"data": campaigns,
		}); err != nil {
			logger.WithField("error", err.Error()).Error("campaigns: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// UpdateCampaign aplica uma atualização esparsa à campanha
func UpdateCampaign(service CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req UpdateCampaignRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		params := metaclient.NewUpdateParams()
		if req.Name != nil {
			params.SetName(*req.Name)
		}
		if req.Status != nil {
			params.SetStatus(*req.Status)
		}
		if req.DailyBudgetCents != nil {
			params.SetDailyBudget(*req.DailyBudgetCents)
		}

		if params.Empty() {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Nenhum campo para atualizar", nil)
			return
		}

		logger.WithField("campaign_id", id).Info("campaigns: applying sparse update")

		if err := service.UpdateCampaign(r.Context(), id, params); err != nil {
			logger.WithFields(log.Fields{
				"campaign_id": id,
				"error":       err.Error(),
			}).Error("campaigns: failed to update campaign")

			writeUpstreamError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
}

// GetDefaultAccount resolve a conta de anúncios padrão do token configurado
func GetDefaultAccount(service CampaignService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, err := service.DefaultAccountID(r.Context())
		if err != nil {
			logger.WithField("error", err.Error()).Error("accounts: failed to resolve default ad account")
			writeUpstreamError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"account_id": accountID})
	})
}
