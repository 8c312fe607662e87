package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/account"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
	"github.com/vfg2006/pinterest-insights-api/pkg/middleware"
)

func ListAccounts(service account.AccountService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accounts, err := service.ListAccounts(r.Context(), claims.OwnerID())
		if err != nil {
			var accountErr *account.AccountError
			if errors.As(err, &accountErr) {
				log.ForContext(r.Context()).WithError(err).Warn("accounts: list failed")
				apiErrors.WriteError(w, accountErr.Code, accountErr.Error(), nil)
				return
			}

			writeInternalError(w, r, err, "Erro ao listar contas")
			return
		}

		writeOK(w, r, accounts)
	})
}

// AccountAnalytics serve o dashboard: snapshots, depois Pinterest, depois dados sintéticos
func AccountAnalytics(service insighting.Dashboard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		query := r.URL.Query()

		var dateRange *domain.DateRange
		if query.Get("startDate") != "" || query.Get("endDate") != "" {
			dateRange = &domain.DateRange{
				StartDate: query.Get("startDate"),
				EndDate:   query.Get("endDate"),
			}
		}

		response, err := service.GetAnalytics(r.Context(), claims.OwnerID(), accountID, dateRange)
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeOK(w, r, response)
	})
}

func AccountAudience(service insighting.Dashboard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")

		response, err := service.GetAudience(r.Context(), claims.OwnerID(), accountID)
		if err != nil {
			writeDashboardError(w, r, err)
			return
		}

		writeOK(w, r, response)
	})
}

func writeDashboardError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, insighting.ErrNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)
	case errors.Is(err, insighting.ErrMissingAccountID):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	case errors.Is(err, insighting.ErrInvalidDateRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("insights: dashboard read failed")
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao consultar dados da conta", nil)
	}
}
