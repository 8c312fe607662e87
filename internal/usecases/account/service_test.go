package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository/memory"
	repomocks "github.com/vfg2006/pinterest-insights-api/infrastructure/repository/mocks"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time { return &t }
func strPtr(s string) *string        { return &s }

func newTestService(repo *memory.CredentialRepository) *Service {
	s := NewService(&config.Config{Pinterest: config.Pinterest{RefreshBuffer: 10 * time.Minute}}, repo)
	s.now = func() time.Time { return testNow }
	return s
}

func TestService_ListAccounts(t *testing.T) {
	repo := memory.NewCredentialRepository()
	repo.Put(&domain.AccountCredential{
		ID:             "acc-1",
		OwnerID:        "owner-1",
		Name:           "Loja",
		AccessToken:    "T1",
		RefreshToken:   strPtr("R1"),
		AppSecret:      strPtr("secret"),
		TokenExpiresAt: timePtr(testNow.Add(5 * time.Minute)),
		CreatedAt:      testNow.Add(-2 * time.Hour),
	})
	repo.Put(&domain.AccountCredential{
		ID:             "acc-2",
		OwnerID:        "owner-1",
		AccessToken:    "T2",
		TokenExpiresAt: timePtr(testNow.Add(24 * time.Hour)),
		CreatedAt:      testNow.Add(-time.Hour),
	})
	repo.Put(&domain.AccountCredential{ID: "acc-3", OwnerID: "owner-2"})

	accounts, err := newTestService(repo).ListAccounts(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)

	tests := []struct {
		name            string
		account         *domain.AccountResponse
		wantID          string
		wantRefresh     bool
		wantNeedRefresh bool
	}{
		{name: "expira dentro da margem", account: accounts[0], wantID: "acc-1", wantRefresh: true, wantNeedRefresh: true},
		{name: "token válido por um dia", account: accounts[1], wantID: "acc-2", wantRefresh: false, wantNeedRefresh: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, tt.account.ID)
			assert.Equal(t, tt.wantRefresh, tt.account.HasRefreshToken)
			assert.Equal(t, tt.wantNeedRefresh, tt.account.NeedsRefresh)
		})
	}
}

func TestService_ListAccounts_Errors(t *testing.T) {
	t.Run("dono obrigatório", func(t *testing.T) {
		_, err := newTestService(memory.NewCredentialRepository()).ListAccounts(context.Background(), "")

		var accountErr *AccountError
		require.ErrorAs(t, err, &accountErr)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, accountErr.Code)
		assert.ErrorIs(t, err, ErrOwnerRequired)
	})

	t.Run("falha no banco", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := repomocks.NewMockCredentialRepository(ctrl)
		repo.EXPECT().ListByOwner(gomock.Any(), "owner-1").Return(nil, errors.New("connection refused"))

		_, err := NewService(&config.Config{}, repo).ListAccounts(context.Background(), "owner-1")

		var accountErr *AccountError
		require.ErrorAs(t, err, &accountErr)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, accountErr.Code)
		assert.ErrorIs(t, err, ErrFetchAccounts)
	})
}
