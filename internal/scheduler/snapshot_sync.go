package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
	"github.com/vfg2006/pinterest-insights-api/pkg/utils"
)

// SnapshotSyncConfig representa a configuração do agendador de snapshots do Pinterest
type SnapshotSyncConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	SyncEnabled         bool
}

// RunSummary resume uma execução completa do agendador
type RunSummary struct {
	RunID       string                   `json:"run_id"`
	StartedAt   time.Time                `json:"started_at"`
	CompletedAt time.Time                `json:"completed_at"`
	Accounts    int                      `json:"accounts"`
	Succeeded   int                      `json:"succeeded"`
	Failed      int                      `json:"failed"`
	Results     []*insighting.SyncResult `json:"results"`
}

// SnapshotSyncService grava periodicamente analytics e audiência de todas as contas,
// renovando tokens quando necessário
type SnapshotSyncService struct {
	scheduler   *gocron.Scheduler
	config      SnapshotSyncConfig
	credentials repository.CredentialRepository
	syncer      insighting.Syncer
	syncRunning bool
	syncMutex   sync.Mutex
	lastRun     *RunSummary
	sleep       func(time.Duration)
}

func NewSnapshotSyncService(
	credentials repository.CredentialRepository,
	syncer insighting.Syncer,
	appConfig *config.Config,
) *SnapshotSyncService {
	syncConfig := SnapshotSyncConfig{
		CronSchedule:        appConfig.SnapshotSync.CronSchedule,
		RequestDelaySeconds: appConfig.SnapshotSync.RequestDelaySeconds,
		SyncEnabled:         appConfig.SnapshotSync.Enabled,
	}

	log.L.WithFields(log.Fields{
		"cron_schedule":         syncConfig.CronSchedule,
		"request_delay_seconds": syncConfig.RequestDelaySeconds,
		"sync_enabled":          syncConfig.SyncEnabled,
	}).Info("scheduler: snapshot sync configuration loaded")

	return &SnapshotSyncService{
		scheduler:   gocron.NewScheduler(time.UTC),
		config:      syncConfig,
		credentials: credentials,
		syncer:      syncer,
		sleep:       time.Sleep,
	}
}

// Start agenda a sincronização. Com o agendador desabilitado nada é registrado.
func (s *SnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("scheduler: snapshot sync disabled by configuration")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("scheduler: starting snapshot sync")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if !s.tryStart() {
			log.L.Info("scheduler: snapshot sync already running, skipping")
			return
		}
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule snapshot sync: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("scheduler: stopping snapshot sync")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *SnapshotSyncService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	return true
}

// RunOnce executa uma sincronização completa de forma síncrona.
// Retorna false se outra execução estiver em andamento.
func (s *SnapshotSyncService) RunOnce(ctx context.Context) (*RunSummary, bool) {
	if !s.tryStart() {
		return nil, false
	}
	return s.run(ctx), true
}

// TriggerManualSync inicia uma sincronização em background e devolve o id da execução
func (s *SnapshotSyncService) TriggerManualSync() (string, bool) {
	if !s.tryStart() {
		log.L.Info("scheduler: snapshot sync already running, ignoring manual trigger")
		return "", false
	}

	runID := newRunID()
	ctx, _ := log.WithCorrelationID(context.Background())

	go s.runWithID(ctx, runID)

	return runID, true
}

func (s *SnapshotSyncService) run(ctx context.Context) *RunSummary {
	return s.runWithID(ctx, newRunID())
}

func (s *SnapshotSyncService) runWithID(ctx context.Context, runID string) *RunSummary {
	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	summary := &RunSummary{
		RunID:     runID,
		StartedAt: time.Now(),
		Results:   make([]*insighting.SyncResult, 0),
	}
	logger := log.ForContext(ctx).WithField("run_id", runID)
	logger.Info("scheduler: snapshot sync started")

	credentials, err := s.credentials.ListAll(ctx)
	if err != nil {
		logger.WithError(err).Error("scheduler: failed to list accounts")
		s.finish(summary)
		return summary
	}

	for i, credential := range credentials {
		if ctx.Err() != nil {
			logger.Warn("scheduler: context cancelled, stopping snapshot sync")
			break
		}
		if i > 0 && s.config.RequestDelaySeconds > 0 {
			s.sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}

		summary.Accounts++
		result, err := s.syncer.SyncAccount(ctx, credential)
		if result == nil {
			result = &insighting.SyncResult{AccountID: credential.ID}
		}
		summary.Results = append(summary.Results, result)

		if err != nil {
			summary.Failed++
			logger.WithError(err).WithField("account_id", credential.ID).Warn("scheduler: account sync failed")
			continue
		}
		summary.Succeeded++
	}

	s.finish(summary)
	logger.WithFields(log.Fields{
		"accounts":  summary.Accounts,
		"succeeded": summary.Succeeded,
		"failed":    summary.Failed,
		"duration":  summary.CompletedAt.Sub(summary.StartedAt).String(),
	}).Info("scheduler: snapshot sync completed")

	return summary
}

func (s *SnapshotSyncService) finish(summary *RunSummary) {
	summary.CompletedAt = time.Now()

	s.syncMutex.Lock()
	s.lastRun = summary
	s.syncMutex.Unlock()
}

// GetStatus retorna o status atual do agendador
func (s *SnapshotSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_enabled":         s.config.SyncEnabled,
		"sync_cron":            s.config.CronSchedule,
		"sync_request_delay_s": s.config.RequestDelaySeconds,
		"sync_running":         s.syncRunning,
	}

	if s.lastRun != nil {
		status["last_run_id"] = s.lastRun.RunID
		status["last_sync_started_at"] = s.lastRun.StartedAt
		status["last_sync_completed_at"] = s.lastRun.CompletedAt
		status["last_sync_accounts"] = s.lastRun.Accounts
		status["last_sync_failed"] = s.lastRun.Failed
	}

	return status
}

func newRunID() string {
	runID, err := utils.GenerateRunID()
	if err != nil {
		return time.Now().UTC().Format("20060102150405")
	}
	return runID
}
