package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/ads-analytics-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-analytics-api/pkg/apiErrors"
)

// writeUpstreamError traduz falhas do Graph API para a resposta HTTP:
// erros de cliente no upstream repassam o status original, o resto vira 502
func writeUpstreamError(w http.ResponseWriter, err error) {
	var callErr *metaclient.CallError
	if errors.As(err, &callErr) {
		if callErr.Kind == metaclient.ErrKindClient && callErr.StatusCode >= 400 && callErr.StatusCode < 500 {
			apiErrors.WriteErrorWithStatus(w, callErr.StatusCode, apiErrors.ErrExternalService, callErr.Message)
			return
		}

		apiErrors.WriteError(w, apiErrors.ErrExternalService, callErr.Message, nil)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
}
