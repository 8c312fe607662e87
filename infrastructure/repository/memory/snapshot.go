package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

type snapshotKey struct {
	accountID string
	date      string
}

// AnalyticsSnapshotRepository guarda uma linha por (account_id, date), como a tabela real
type AnalyticsSnapshotRepository struct {
	mu   sync.RWMutex
	rows map[snapshotKey]*domain.AnalyticsSnapshot
}

func NewAnalyticsSnapshotRepository() *AnalyticsSnapshotRepository {
	return &AnalyticsSnapshotRepository{
		rows: make(map[snapshotKey]*domain.AnalyticsSnapshot),
	}
}

func (r *AnalyticsSnapshotRepository) Upsert(_ context.Context, snapshots []*domain.AnalyticsSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range snapshots {
		if s == nil {
			continue
		}

		key := snapshotKey{s.AccountID, s.Date}
		row := *s
		if existing, ok := r.rows[key]; ok {
			row.ID = existing.ID
			row.CreatedAt = existing.CreatedAt
		} else {
			row.ID = uuid.NewString()
		}
		r.rows[key] = &row
	}

	return nil
}

func (r *AnalyticsSnapshotRepository) GetByDateRange(_ context.Context, accountID string, startDate, endDate string) ([]*domain.AnalyticsSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snapshots := make([]*domain.AnalyticsSnapshot, 0)
	for key, row := range r.rows {
		if key.accountID != accountID || key.date < startDate || key.date > endDate {
			continue
		}
		s := *row
		snapshots = append(snapshots, &s)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Date < snapshots[j].Date
	})

	return snapshots, nil
}

// Len retorna o número de linhas armazenadas
func (r *AnalyticsSnapshotRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.rows)
}

type AudienceSnapshotRepository struct {
	mu   sync.RWMutex
	rows map[snapshotKey]*domain.AudienceSnapshot
}

func NewAudienceSnapshotRepository() *AudienceSnapshotRepository {
	return &AudienceSnapshotRepository{
		rows: make(map[snapshotKey]*domain.AudienceSnapshot),
	}
}

func (r *AudienceSnapshotRepository) Upsert(_ context.Context, snapshot *domain.AudienceSnapshot) error {
	if snapshot == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := snapshotKey{snapshot.AccountID, snapshot.Date}
	row := *snapshot
	if existing, ok := r.rows[key]; ok {
		row.ID = existing.ID
	} else {
		row.ID = uuid.NewString()
	}
	r.rows[key] = &row

	return nil
}

func (r *AudienceSnapshotRepository) GetLatest(_ context.Context, accountID string) (*domain.AudienceSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.AudienceSnapshot
	for key, row := range r.rows {
		if key.accountID != accountID {
			continue
		}
		if latest == nil || row.Date > latest.Date {
			latest = row
		}
	}

	if latest == nil {
		return nil, nil
	}

	s := *latest
	return &s, nil
}

var (
	_ repository.AnalyticsSnapshotRepository = (*AnalyticsSnapshotRepository)(nil)
	_ repository.AudienceSnapshotRepository  = (*AudienceSnapshotRepository)(nil)
)
