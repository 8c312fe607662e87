package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

//go:generate mockgen -source=credential.go -destination=mocks/mock_credential.go -package=mocks

const (
	credentialsTable = "pinterest_accounts pa"

	credentialColumns = "pa.id, pa.user_id, pa.name, pa.username, pa.avatar_url, pa.api_key, pa.refresh_token, " +
		"pa.app_id, pa.app_secret, pa.token_expires_at, pa.ad_account_id, pa.created_at, pa.updated_at"
)

var (
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialConflict indica que outra requisição rotacionou os tokens primeiro
	ErrCredentialConflict = errors.New("credential was updated concurrently")
)

// CredentialRepository acessa pinterest_accounts. Load sempre filtra pelo dono:
// uma conta de outro usuário é indistinguível de uma conta inexistente.
type CredentialRepository interface {
	Load(ctx context.Context, accountID, ownerID string) (*domain.AccountCredential, error)
	LoadByID(ctx context.Context, accountID string) (*domain.AccountCredential, error)
	Save(ctx context.Context, accountID string, update domain.CredentialUpdate) error
	SaveIfUnchanged(ctx context.Context, accountID string, expectedUpdatedAt time.Time, update domain.CredentialUpdate) error
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.AccountCredential, error)
	ListAll(ctx context.Context) ([]*domain.AccountCredential, error)
}

type credentialRepository struct {
	conn postgres.Queryer
	now  func() time.Time
}

func NewCredentialRepository(conn postgres.Queryer) CredentialRepository {
	return &credentialRepository{
		conn: conn,
		now:  time.Now,
	}
}

func (r *credentialRepository) Load(ctx context.Context, accountID, ownerID string) (*domain.AccountCredential, error) {
	if accountID == "" || ownerID == "" {
		return nil, nil
	}
	return r.getCredential(ctx, squirrel.Eq{"pa.id": accountID, "pa.user_id": ownerID})
}

// LoadByID ignora o dono. Uso interno: agendador e releitura após conflito.
func (r *credentialRepository) LoadByID(ctx context.Context, accountID string) (*domain.AccountCredential, error) {
	if accountID == "" {
		return nil, nil
	}
	return r.getCredential(ctx, squirrel.Eq{"pa.id": accountID})
}

func (r *credentialRepository) getCredential(ctx context.Context, where squirrel.Eq) (*domain.AccountCredential, error) {
	query, args, err := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		Where(where).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	credential, err := scanCredential(r.conn.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan credential: %w", err)
	}

	return credential, nil
}

func (r *credentialRepository) Save(ctx context.Context, accountID string, update domain.CredentialUpdate) error {
	query, args, err := buildCredentialUpdate(accountID, nil, update, r.stamp())
	if err != nil {
		return err
	}

	return r.execUpdate(ctx, query, args, ErrCredentialNotFound)
}

// SaveIfUnchanged só grava se updated_at ainda for o valor lido antes do refresh
func (r *credentialRepository) SaveIfUnchanged(ctx context.Context, accountID string, expectedUpdatedAt time.Time, update domain.CredentialUpdate) error {
	query, args, err := buildCredentialUpdate(accountID, &expectedUpdatedAt, update, r.stamp())
	if err != nil {
		return err
	}

	return r.execUpdate(ctx, query, args, ErrCredentialConflict)
}

// O Postgres guarda microssegundos; truncar mantém o valor em memória igual ao gravado
func (r *credentialRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

func (r *credentialRepository) execUpdate(ctx context.Context, query string, args []interface{}, noRowsErr error) error {
	result, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("failed to execute query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return noRowsErr
	}

	return nil
}

// buildCredentialUpdate monta o UPDATE parcial. Com expectedUpdatedAt vira um compare-and-swap.
func buildCredentialUpdate(accountID string, expectedUpdatedAt *time.Time, update domain.CredentialUpdate, now time.Time) (string, []interface{}, error) {
	if accountID == "" {
		return "", nil, errors.New("account ID is required")
	}

	builder := squirrel.
		Update("pinterest_accounts").
		Set("updated_at", now).
		Where(squirrel.Eq{"id": accountID}).
		PlaceholderFormat(squirrel.Dollar)

	if update.AccessToken != nil {
		builder = builder.Set("api_key", *update.AccessToken)
	}
	if update.RefreshToken != nil {
		builder = builder.Set("refresh_token", *update.RefreshToken)
	}
	if update.TokenExpiresAt != nil {
		builder = builder.Set("token_expires_at", update.TokenExpiresAt.UTC())
	}

	if expectedUpdatedAt != nil {
		builder = builder.Where(squirrel.Eq{"updated_at": expectedUpdatedAt.UTC()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build query: %w", err)
	}

	return query, args, nil
}

func (r *credentialRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.AccountCredential, error) {
	if ownerID == "" {
		return []*domain.AccountCredential{}, nil
	}
	return r.listCredentials(ctx, squirrel.Eq{"pa.user_id": ownerID})
}

func (r *credentialRepository) ListAll(ctx context.Context) ([]*domain.AccountCredential, error) {
	return r.listCredentials(ctx, nil)
}

func (r *credentialRepository) listCredentials(ctx context.Context, where squirrel.Sqlizer) ([]*domain.AccountCredential, error) {
	builder := squirrel.
		Select(credentialColumns).
		From(credentialsTable).
		OrderBy("pa.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	credentials := make([]*domain.AccountCredential, 0)
	for rows.Next() {
		credential, err := scanCredential(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		credentials = append(credentials, credential)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating credentials: %w", err)
	}

	return credentials, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCredential(row rowScanner) (*domain.AccountCredential, error) {
	var (
		c            domain.AccountCredential
		username     sql.NullString
		avatarURL    sql.NullString
		refreshToken sql.NullString
		appID        sql.NullString
		appSecret    sql.NullString
		expiresAt    sql.NullTime
		adAccountID  sql.NullString
	)

	if err := row.Scan(
		&c.ID,
		&c.OwnerID,
		&c.Name,
		&username,
		&avatarURL,
		&c.AccessToken,
		&refreshToken,
		&appID,
		&appSecret,
		&expiresAt,
		&adAccountID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	c.Username = username.String
	c.AppID = appID.String
	c.AvatarURL = nullableString(avatarURL)
	c.RefreshToken = nullableString(refreshToken)
	c.AppSecret = nullableString(appSecret)
	c.AdAccountID = nullableString(adAccountID)
	if expiresAt.Valid {
		t := expiresAt.Time
		c.TokenExpiresAt = &t
	}

	return &c, nil
}

func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
