package account

import (
	"context"
	"time"

	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/tokenrefresh"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_account.go -package=mocks

type AccountService interface {
	ListAccounts(ctx context.Context, ownerID string) ([]*domain.AccountResponse, error)
}

type Service struct {
	credentials repository.CredentialRepository
	buffer      time.Duration
	now         func() time.Time
}

func NewService(cfg *config.Config, credentials repository.CredentialRepository) *Service {
	return &Service{
		credentials: credentials,
		buffer:      cfg.Pinterest.RefreshBuffer,
		now:         time.Now,
	}
}

// ListAccounts lista as contas do usuário sem expor tokens nem app_secret
func (s *Service) ListAccounts(ctx context.Context, ownerID string) ([]*domain.AccountResponse, error) {
	if ownerID == "" {
		return nil, NewAccountError(ErrOwnerRequired, apiErrors.ErrMissingRequiredData, "")
	}

	credentials, err := s.credentials.ListByOwner(ctx, ownerID)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("owner_id", ownerID).Error("accounts: failed to list accounts")
		return nil, NewAccountError(ErrFetchAccounts, apiErrors.ErrDatabaseOperation, "Falha ao listar contas no banco de dados")
	}

	now := s.now()
	accounts := make([]*domain.AccountResponse, 0, len(credentials))
	for _, c := range credentials {
		accounts = append(accounts, &domain.AccountResponse{
			ID:              c.ID,
			Name:            c.Name,
			Username:        c.Username,
			AvatarURL:       c.AvatarURL,
			AppID:           c.AppID,
			AdAccountID:     c.AdAccountID,
			HasRefreshToken: c.HasRefreshToken(),
			TokenExpiresAt:  c.TokenExpiresAt,
			NeedsRefresh:    tokenrefresh.NeedsRefresh(c.TokenExpiresAt, now, s.buffer),
			CreatedAt:       c.CreatedAt,
		})
	}

	return accounts, nil
}
