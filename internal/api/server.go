package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/pinterest-insights-api/internal/api/handler"
	"github.com/vfg2006/pinterest-insights-api/internal/api/handler/router"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/account"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
	"github.com/vfg2006/pinterest-insights-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o router com a cadeia de middlewares global
func NewHandler(
	orchestrator insighting.Orchestrator,
	dashboard insighting.Dashboard,
	accountService account.AccountService,
	authenticator authenticating.Authenticator,
	syncer handler.SnapshotSyncer,
) http.Handler {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Proxy(orchestrator)...),
		router.WithRoutes(handler.Accounts(accountService, dashboard)...),
		router.WithRoutes(handler.CronJobs(syncer)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	return alice.New(middlewares...).Then(rt)
}

func New(config *config.Config, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("server: starting")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("server: listen failed")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		log.L.Info("server: interrupt signal received")
	case <-ctx.Done():
		log.L.Info("server: application context cancelled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.L.Info("server: graceful shutdown started (15s timeout)")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("server: shutdown failed")
		return err
	}

	log.L.Info("server: stopped")
	return nil
}
