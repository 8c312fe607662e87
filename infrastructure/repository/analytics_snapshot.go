package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

//go:generate mockgen -source=analytics_snapshot.go -destination=mocks/mock_analytics_snapshot.go -package=mocks

const (
	analyticsTable = "pinterest_analytics pan"

	// Linhas por INSERT. Um intervalo de 30 dias cabe em um único lote.
	analyticsUpsertBatchSize = 100
)

var analyticsInsertColumns = []string{
	"account_id", "date",
	"impressions", "engagements", "pin_clicks", "outbound_clicks", "saves", "total_audience", "engaged_audience",
	"engagement_rate", "pin_click_rate", "outbound_click_rate", "save_rate",
}

type AnalyticsSnapshotRepository interface {
	Upsert(ctx context.Context, snapshots []*domain.AnalyticsSnapshot) error
	GetByDateRange(ctx context.Context, accountID string, startDate, endDate string) ([]*domain.AnalyticsSnapshot, error)
}

type analyticsSnapshotRepository struct {
	conn postgres.Conn
}

func NewAnalyticsSnapshotRepository(conn postgres.Conn) AnalyticsSnapshotRepository {
	return &analyticsSnapshotRepository{
		conn: conn,
	}
}

// Upsert grava uma linha por (account_id, date). Reprocessar uma data sobrescreve a linha existente.
func (r *analyticsSnapshotRepository) Upsert(ctx context.Context, snapshots []*domain.AnalyticsSnapshot) error {
	batches := chunkAnalytics(snapshots, analyticsUpsertBatchSize)
	if len(batches) == 0 {
		return nil
	}

	return r.conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		for _, batch := range batches {
			query, args, err := buildAnalyticsUpsert(batch)
			if err != nil {
				return err
			}

			if _, err := q.Exec(ctx, query, args...); err != nil {
				var pqErr *pq.Error
				if errors.As(err, &pqErr) {
					return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
				}
				return fmt.Errorf("failed to execute query: %w", err)
			}
		}
		return nil
	})
}

func buildAnalyticsUpsert(snapshots []*domain.AnalyticsSnapshot) (string, []interface{}, error) {
	query := squirrel.StatementBuilder.
		Insert("pinterest_analytics").
		Columns(analyticsInsertColumns...).
		PlaceholderFormat(squirrel.Dollar)

	for _, s := range snapshots {
		query = query.Values(
			s.AccountID,
			s.Date,
			s.Impressions,
			s.Engagements,
			s.PinClicks,
			s.OutboundClicks,
			s.Saves,
			s.TotalAudience,
			s.EngagedAudience,
			s.EngagementRate,
			s.PinClickRate,
			s.OutboundClickRate,
			s.SaveRate,
		)
	}

	query = query.Suffix(`
		ON CONFLICT (account_id, date) DO UPDATE SET
			impressions = EXCLUDED.impressions,
			engagements = EXCLUDED.engagements,
			pin_clicks = EXCLUDED.pin_clicks,
			outbound_clicks = EXCLUDED.outbound_clicks,
			saves = EXCLUDED.saves,
			total_audience = EXCLUDED.total_audience,
			engaged_audience = EXCLUDED.engaged_audience,
			engagement_rate = EXCLUDED.engagement_rate,
			pin_click_rate = EXCLUDED.pin_click_rate,
			outbound_click_rate = EXCLUDED.outbound_click_rate,
			save_rate = EXCLUDED.save_rate,
			updated_at = NOW()
	`)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}

	return sqlQuery, args, nil
}

// chunkAnalytics descarta nulos e deduplica por data, mantendo a última ocorrência.
// O Postgres rejeita um INSERT ... ON CONFLICT que toque a mesma chave duas vezes.
func chunkAnalytics(snapshots []*domain.AnalyticsSnapshot, size int) [][]*domain.AnalyticsSnapshot {
	type key struct{ account, date string }

	index := make(map[key]int, len(snapshots))
	unique := make([]*domain.AnalyticsSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if s == nil {
			continue
		}
		k := key{s.AccountID, s.Date}
		if i, ok := index[k]; ok {
			unique[i] = s
			continue
		}
		index[k] = len(unique)
		unique = append(unique, s)
	}

	batches := make([][]*domain.AnalyticsSnapshot, 0, (len(unique)+size-1)/size)
	for start := 0; start < len(unique); start += size {
		end := min(start+size, len(unique))
		batches = append(batches, unique[start:end])
	}
	return batches
}

func (r *analyticsSnapshotRepository) GetByDateRange(ctx context.Context, accountID string, startDate, endDate string) ([]*domain.AnalyticsSnapshot, error) {
	query, args, err := squirrel.
		Select("pan.id, pan.account_id, pan.date, pan.impressions, pan.engagements, pan.pin_clicks, " +
			"pan.outbound_clicks, pan.saves, pan.total_audience, pan.engaged_audience, pan.engagement_rate, " +
			"pan.pin_click_rate, pan.outbound_click_rate, pan.save_rate, pan.created_at, pan.updated_at").
		From(analyticsTable).
		Where(squirrel.Eq{"pan.account_id": accountID}).
		Where(squirrel.GtOrEq{"pan.date": startDate}).
		Where(squirrel.LtOrEq{"pan.date": endDate}).
		OrderBy("pan.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.AnalyticsSnapshot, 0)
	for rows.Next() {
		var (
			s    domain.AnalyticsSnapshot
			date time.Time
		)

		if err := rows.Scan(
			&s.ID,
			&s.AccountID,
			&date,
			&s.Impressions,
			&s.Engagements,
			&s.PinClicks,
			&s.OutboundClicks,
			&s.Saves,
			&s.TotalAudience,
			&s.EngagedAudience,
			&s.EngagementRate,
			&s.PinClickRate,
			&s.OutboundClickRate,
			&s.SaveRate,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analytics snapshot: %w", err)
		}

		s.Date = date.Format(time.DateOnly)
		snapshots = append(snapshots, &s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics snapshots: %w", err)
	}

	return snapshots, nil
}
