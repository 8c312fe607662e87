package postgres

import (
	"context"
	"fmt"
)

// Schema cria as três tabelas do serviço. Todas as instruções são idempotentes.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS pinterest_accounts (
		id               TEXT PRIMARY KEY,
		user_id          TEXT NOT NULL,
		name             TEXT NOT NULL DEFAULT '',
		username         TEXT,
		avatar_url       TEXT,
		api_key          TEXT NOT NULL DEFAULT '',
		refresh_token    TEXT,
		app_id           TEXT,
		app_secret       TEXT,
		token_expires_at TIMESTAMPTZ,
		ad_account_id    TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_pinterest_accounts_user_id ON pinterest_accounts (user_id)`,
	`CREATE TABLE IF NOT EXISTS pinterest_analytics (
		id                  UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		account_id          TEXT NOT NULL REFERENCES pinterest_accounts (id) ON DELETE CASCADE,
		date                DATE NOT NULL,
		impressions         BIGINT NOT NULL DEFAULT 0,
		engagements         BIGINT NOT NULL DEFAULT 0,
		pin_clicks          BIGINT NOT NULL DEFAULT 0,
		outbound_clicks     BIGINT NOT NULL DEFAULT 0,
		saves               BIGINT NOT NULL DEFAULT 0,
		total_audience      BIGINT NOT NULL DEFAULT 0,
		engaged_audience    BIGINT NOT NULL DEFAULT 0,
		engagement_rate     NUMERIC(7, 2) NOT NULL DEFAULT 0,
		pin_click_rate      NUMERIC(7, 2) NOT NULL DEFAULT 0,
		outbound_click_rate NUMERIC(7, 2) NOT NULL DEFAULT 0,
		save_rate           NUMERIC(7, 2) NOT NULL DEFAULT 0,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at          TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (account_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS pinterest_audience (
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		account_id  TEXT NOT NULL REFERENCES pinterest_accounts (id) ON DELETE CASCADE,
		date        DATE NOT NULL,
		categories  JSONB NOT NULL DEFAULT '[]',
		age_groups  JSONB NOT NULL DEFAULT '[]',
		genders     JSONB NOT NULL DEFAULT '[]',
		locations   JSONB NOT NULL DEFAULT '[]',
		devices     JSONB NOT NULL DEFAULT '[]',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (account_id, date)
	)`,
}

// Migrate aplica o Schema em uma única transação
func Migrate(ctx context.Context, conn Conn) error {
	return conn.RunInTransaction(ctx, func(q Queryer) error {
		for i, statement := range Schema {
			if _, err := q.Exec(ctx, statement); err != nil {
				return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
