package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/pinterestclient"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/lock"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository/memory"
	"github.com/vfg2006/pinterest-insights-api/internal/api"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/scheduler"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/account"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/mockdata"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/tokenrefresh"
)

// driverMemory sobe a API sem Postgres, útil para desenvolvimento do dashboard
const driverMemory = "memory"

type repositories struct {
	credentials repository.CredentialRepository
	analytics   repository.AnalyticsSnapshotRepository
	audience    repository.AudienceSnapshotRepository
}

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repos, closeRepos := newRepositories(ctx, cfg.Database)
	defer closeRepos()

	locker, closeLocker := newLocker(ctx, cfg.Redis)
	defer closeLocker()

	authenticator := authenticating.NewService(cfg)
	pinterestClient := pinterestclient.NewClient(cfg)
	refresher := tokenrefresh.NewService(cfg, pinterestClient, repos.credentials, locker)
	generator := mockdata.NewGenerator(uint64(time.Now().UnixNano()), domain.DefaultAudienceProfile())

	insightService := insighting.NewService(
		cfg,
		authenticator,
		repos.credentials,
		refresher,
		pinterestClient,
		repos.analytics,
		repos.audience,
		generator,
	)

	accountService := account.NewService(cfg, repos.credentials)

	snapshotSyncService := scheduler.NewSnapshotSyncService(repos.credentials, insightService, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de snapshots")
	}

	handler := api.NewHandler(insightService, insightService, accountService, authenticator, snapshotSyncService)
	server := api.New(cfg, handler)

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func newRepositories(ctx context.Context, dbConfig config.Database) (repositories, func()) {
	if dbConfig.Driver == driverMemory {
		logrus.Warn("DATABASE_DRIVER=memory: dados não sobrevivem ao reinício")
		return repositories{
			credentials: memory.NewCredentialRepository(),
			analytics:   memory.NewAnalyticsSnapshotRepository(),
			audience:    memory.NewAudienceSnapshotRepository(),
		}, func() {}
	}

	conn := pgconn(ctx, dbConfig)

	return repositories{
		credentials: repository.NewCredentialRepository(conn),
		analytics:   repository.NewAnalyticsSnapshotRepository(conn),
		audience:    repository.NewAudienceSnapshotRepository(conn),
	}, func() { _ = conn.Close() }
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newLocker usa Redis quando configurado. Sem Redis o lock de renovação vale só para este processo.
func newLocker(ctx context.Context, redisConfig config.Redis) (lock.Locker, func()) {
	if redisConfig.URL == "" {
		logrus.Info("REDIS_URL vazio, usando lock de renovação local")
		return lock.NewLocalLocker(), func() {}
	}

	locker, err := lock.NewRedisLocker(ctx, redisConfig.URL)
	if err != nil {
		logrus.WithError(err).Warn("Falha ao conectar ao Redis, usando lock de renovação local")
		return lock.NewLocalLocker(), func() {}
	}

	logrus.Info("Lock de renovação distribuído via Redis")
	return locker, func() { _ = locker.Close() }
}
