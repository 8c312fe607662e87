package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/database/postgres"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
)

const (
	idLength   = 12
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SeedAccount é uma linha do arquivo de carga de contas Pinterest
type SeedAccount struct {
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Username       string     `json:"username"`
	AccessToken    string     `json:"access_token"`
	RefreshToken   string     `json:"refresh_token"`
	AppID          string     `json:"app_id"`
	AppSecret      string     `json:"app_secret"`
	AdAccountID    string     `json:"ad_account_id"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
}

func generateID() (string, error) {
	return gonanoid.Generate(characters, idLength)
}

func loadSeed(path string) ([]SeedAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var accounts []SeedAccount
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode seed file: %w", err)
	}

	return accounts, nil
}

func nullable(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

// buildSeedInsert monta um INSERT único. Contas sem user_id ou access token são ignoradas.
func buildSeedInsert(accounts []SeedAccount, newID func() (string, error)) (string, []interface{}, int, error) {
	query := squirrel.StatementBuilder.
		Insert("pinterest_accounts").
		Columns("id", "user_id", "name", "username", "api_key", "refresh_token", "app_id", "app_secret", "ad_account_id", "token_expires_at").
		PlaceholderFormat(squirrel.Dollar)

	count := 0
	for i, a := range accounts {
		if a.UserID == "" || a.AccessToken == "" {
			logrus.Warnf("Conta [%d/%d] %q sem user_id ou access_token, ignorada", i+1, len(accounts), a.Name)
			continue
		}

		id, err := newID()
		if err != nil {
			return "", nil, 0, fmt.Errorf("failed to generate id: %w", err)
		}

		var expiresAt interface{}
		if a.TokenExpiresAt != nil {
			expiresAt = a.TokenExpiresAt.UTC()
		}

		query = query.Values(
			id,
			a.UserID,
			a.Name,
			nullable(a.Username),
			a.AccessToken,
			nullable(a.RefreshToken),
			nullable(a.AppID),
			nullable(a.AppSecret),
			nullable(a.AdAccountID),
			expiresAt,
		)
		count++
	}

	if count == 0 {
		return "", nil, 0, nil
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return "", nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	return sqlQuery, args, count, nil
}

func main() {
	seedPath := flag.String("seed", "", "arquivo JSON com contas Pinterest a inserir")
	flag.Parse()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.Info("Iniciando script de migração...")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	ctx := context.Background()
	startTime := time.Now()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao PostgreSQL: %v", err)
	}
	defer conn.Close()

	if err := postgres.Migrate(ctx, conn); err != nil {
		logrus.Fatalf("ERRO ao aplicar schema: %v", err)
	}
	logrus.Infof("Schema aplicado (%d instruções)", len(postgres.Schema))

	if *seedPath == "" {
		logrus.Infof("Migração concluída em %v", time.Since(startTime))
		return
	}

	accounts, err := loadSeed(*seedPath)
	if err != nil {
		logrus.Fatalf("ERRO ao carregar contas: %v", err)
	}

	query, args, count, err := buildSeedInsert(accounts, generateID)
	if err != nil {
		logrus.Fatalf("ERRO ao montar carga de contas: %v", err)
	}
	if count == 0 {
		logrus.Warn("Nenhuma conta válida no arquivo de carga")
		return
	}

	err = conn.RunInTransaction(ctx, func(q postgres.Queryer) error {
		_, err := q.Exec(ctx, query, args...)
		return err
	})
	if err != nil {
		logrus.Fatalf("ERRO ao inserir contas, transação revertida: %v", err)
	}

	logrus.Infof("Carga inicial de %d contas concluída em %v", count, time.Since(startTime))
}
