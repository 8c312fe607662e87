package handler

import (
	"net/http"

	"github.com/vfg2006/pinterest-insights-api/internal/api/handler/router"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/account"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Proxy autentica dentro do orquestrador e por isso fica fora do AuthMiddleware
func Proxy(service insighting.Orchestrator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/pinterest-analytics",
			Method:  http.MethodPost,
			Handler: PinterestAnalytics(service),
		},
	}
}

func Accounts(accounts account.AccountService, dashboard insighting.Dashboard) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/accounts",
			Method:  http.MethodGet,
			Handler: ListAccounts(accounts),
		},
		{
			Path:    "/v1/accounts/:id/analytics",
			Method:  http.MethodGet,
			Handler: AccountAnalytics(dashboard),
		},
		{
			Path:    "/v1/accounts/:id/audience",
			Method:  http.MethodGet,
			Handler: AccountAudience(dashboard),
		},
	}
}

func CronJobs(syncer SnapshotSyncer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/sync/run",
			Method:      http.MethodPost,
			Handler:     RunSnapshotSync(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(syncer),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
