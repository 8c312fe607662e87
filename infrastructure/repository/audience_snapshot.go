package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

//go:generate mockgen -source=audience_snapshot.go -destination=mocks/mock_audience_snapshot.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const audienceTable = "pinterest_audience pau"

type AudienceSnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *domain.AudienceSnapshot) error
	GetLatest(ctx context.Context, accountID string) (*domain.AudienceSnapshot, error)
}

type audienceSnapshotRepository struct {
	conn postgres.Queryer
}

func NewAudienceSnapshotRepository(conn postgres.Queryer) AudienceSnapshotRepository {
	return &audienceSnapshotRepository{
		conn: conn,
	}
}

func (r *audienceSnapshotRepository) Upsert(ctx context.Context, snapshot *domain.AudienceSnapshot) error {
	if snapshot == nil {
		return nil
	}

	query, args, err := buildAudienceUpsert(snapshot)
	if err != nil {
		return err
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	return nil
}

func buildAudienceUpsert(snapshot *domain.AudienceSnapshot) (string, []interface{}, error) {
	sections := [][]domain.AudienceSegment{
		snapshot.Insights.Categories,
		snapshot.Insights.Age,
		snapshot.Insights.Gender,
		snapshot.Insights.Locations,
		snapshot.Insights.Devices,
	}

	encoded := make([]interface{}, 0, len(sections))
	for _, section := range sections {
		if section == nil {
			section = []domain.AudienceSegment{}
		}
		raw, err := json.Marshal(section)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode audience section: %w", err)
		}
		encoded = append(encoded, string(raw))
	}

	values := append([]interface{}{snapshot.AccountID, snapshot.Date}, encoded...)

	query, args, err := squirrel.StatementBuilder.
		Insert("pinterest_audience").
		Columns("account_id", "date", "categories", "age_groups", "genders", "locations", "devices").
		Values(values...).
		Suffix(`
			ON CONFLICT (account_id, date) DO UPDATE SET
				categories = EXCLUDED.categories,
				age_groups = EXCLUDED.age_groups,
				genders = EXCLUDED.genders,
				locations = EXCLUDED.locations,
				devices = EXCLUDED.devices,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}

	return query, args, nil
}

// GetLatest devolve o snapshot de audiência mais recente da conta, ou nil
func (r *audienceSnapshotRepository) GetLatest(ctx context.Context, accountID string) (*domain.AudienceSnapshot, error) {
	query, args, err := squirrel.
		Select("pau.id, pau.account_id, pau.date, pau.categories, pau.age_groups, pau.genders, pau.locations, pau.devices, pau.created_at, pau.updated_at").
		From(audienceTable).
		Where(squirrel.Eq{"pau.account_id": accountID}).
		OrderBy("pau.date DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var s domain.AudienceSnapshot
	var date time.Time
	var categories, ages, genders, locations, devices []byte

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&s.ID,
		&s.AccountID,
		&date,
		&categories,
		&ages,
		&genders,
		&locations,
		&devices,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan audience snapshot: %w", err)
	}

	s.Date = date.Format(time.DateOnly)

	targets := []struct {
		raw []byte
		dst *[]domain.AudienceSegment
	}{
		{categories, &s.Insights.Categories},
		{ages, &s.Insights.Age},
		{genders, &s.Insights.Gender},
		{locations, &s.Insights.Locations},
		{devices, &s.Insights.Devices},
	}
	for _, t := range targets {
		if len(t.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(t.raw, t.dst); err != nil {
			return nil, fmt.Errorf("failed to decode audience section: %w", err)
		}
	}

	return &s, nil
}
