package handler

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/ads-analytics-api/internal/api/handler/router"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/authenticating"
	"github.com/vfg2006/ads-analytics-api/internal/usecases/reporting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
	}
}

func Reports(service reporting.Reporter, fetcher reporting.InsightFetcher) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/adAccount/:id/report",
			Method:  http.MethodGet,
			Handler: GetAccountReport(service),
		},
		{
			Path:    "/v1/adAccount/:id/insights",
			Method:  http.MethodGet,
			Handler: GetAccountInsights(fetcher),
		},
		{
			Path:    "/v1/entities/insights",
			Method:  http.MethodGet,
			Handler: GetEntityInsights(service),
		},
	}
}

func Campaigns(service CampaignService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts/default",
			Method:  http.MethodGet,
			Handler: GetDefaultAccount(service),
		},
		{
			Path:    "/v1/adAccount/:id/campaigns",
			Method:  http.MethodGet,
			Handler: ListCampaigns(service),
		},
		{
			Path:    "/v1/campaigns/:id",
			Method:  http.MethodPut,
			Handler: UpdateCampaign(service),
		},
	}
}
