package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

const maxRequestBodyBytes = 1 << 20

var errInvalidBody = errors.New("invalid request body")

// PinterestAnalytics é a rota de proxy consumida pelo dashboard. Erros de requisição
// respondem 400 com {error, code?}; falhas do Pinterest respondem 200 com o envelope de fallback.
func PinterestAnalytics(service insighting.Orchestrator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request insighting.Request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&request); err != nil {
			err = errors.Wrap(errInvalidBody, err.Error())
			log.ForContext(r.Context()).WithError(err).Warn("insights: rejected request body")
			apiErrors.WriteProxyError(w, errInvalidBody.Error(), "")
			return
		}

		result, err := service.Handle(r.Context(), r.Header.Get("Authorization"), request)
		if err != nil {
			logger := log.ForContext(r.Context()).WithError(err).WithField("account_id", request.AccountID)

			code := ""
			if errors.Is(err, insighting.ErrUpstream) {
				code = apiErrors.PinterestAPIError
				logger.Error("insights: upstream failure returned to client")
			} else {
				logger.Warn("insights: request rejected")
			}

			apiErrors.WriteProxyError(w, err.Error(), code)
			return
		}

		writeOK(w, r, result.Body())
	})
}
