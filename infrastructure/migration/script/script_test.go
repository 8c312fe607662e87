package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() func() (string, error) {
	n := 0
	return func() (string, error) {
		n++
		return "id-" + string(rune('0'+n)), nil
	}
}

func TestBuildSeedInsert(t *testing.T) {
	expiresAt := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	accounts := []SeedAccount{
		{UserID: "owner-1", Name: "Loja", AccessToken: "T1", RefreshToken: "R1", AppSecret: "s", TokenExpiresAt: &expiresAt},
		{UserID: "", Name: "sem dono", AccessToken: "T2"},
		{UserID: "owner-2", Name: "sem token"},
		{UserID: "owner-2", Name: "mínima", AccessToken: "T3"},
	}

	query, args, count, err := buildSeedInsert(accounts, sequentialIDs())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO pinterest_accounts"))
	require.Len(t, args, 20)
	assert.Equal(t, "id-1", args[0])
	assert.Equal(t, "R1", args[5])
	assert.Equal(t, expiresAt, args[9])
	assert.Equal(t, "id-2", args[10])
	assert.Nil(t, args[15], "refresh_token vazio vira NULL")
	assert.Nil(t, args[19])
}

func TestBuildSeedInsert_Empty(t *testing.T) {
	query, args, count, err := buildSeedInsert([]SeedAccount{{Name: "inválida"}}, sequentialIDs())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, query)
	assert.Nil(t, args)
}

func TestLoadSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "accounts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"user_id":"owner-1","access_token":"T1","token_expires_at":"2024-02-01T00:00:00Z"}]`), 0o600))

	accounts, err := loadSeed(path)
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "owner-1", accounts[0].UserID)
	require.NotNil(t, accounts[0].TokenExpiresAt)

	_, err = loadSeed(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
