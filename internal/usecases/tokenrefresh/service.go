package tokenrefresh

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/pinterestclient"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/lock"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_refresher.go -package=mocks

const (
	lockKeyPrefix       = "pinterest:token-refresh:"
	defaultPollInterval = 200 * time.Millisecond

	// Vida útil assumida quando o Pinterest não informa expires_in
	fallbackTokenLifetime = time.Hour
)

type Refresher interface {
	NeedsRefresh(credential *domain.AccountCredential) bool
	Refresh(ctx context.Context, credential *domain.AccountCredential) (*domain.TokenPair, error)
}

// NeedsRefresh é verdadeiro quando não há expiração registrada ou quando ela cai dentro do buffer
func NeedsRefresh(expiresAt *time.Time, now time.Time, buffer time.Duration) bool {
	if expiresAt == nil {
		return true
	}
	return !now.Add(buffer).Before(*expiresAt)
}

type Service struct {
	client       pinterestclient.Client
	repo         repository.CredentialRepository
	locker       lock.Locker
	buffer       time.Duration
	lockTTL      time.Duration
	pollInterval time.Duration
	now          func() time.Time
}

func NewService(
	cfg *config.Config,
	client pinterestclient.Client,
	repo repository.CredentialRepository,
	locker lock.Locker,
) *Service {
	if locker == nil {
		locker = lock.NewLocalLocker()
	}

	return &Service{
		client:       client,
		repo:         repo,
		locker:       locker,
		buffer:       cfg.Pinterest.RefreshBuffer,
		lockTTL:      cfg.Pinterest.RefreshLockTTL,
		pollInterval: defaultPollInterval,
		now:          time.Now,
	}
}

func (s *Service) NeedsRefresh(credential *domain.AccountCredential) bool {
	return NeedsRefresh(credential.TokenExpiresAt, s.now(), s.buffer)
}

// Refresh troca o refresh token da conta e grava o novo par. Apenas uma requisição por conta
// fala com o endpoint OAuth por vez; as demais adotam o token gravado pela vencedora.
func (s *Service) Refresh(ctx context.Context, credential *domain.AccountCredential) (*domain.TokenPair, error) {
	if !credential.HasAppSecret() {
		return nil, ErrMissingAppSecret
	}
	if !credential.HasRefreshToken() {
		return nil, ErrMissingRefreshToken
	}

	logger := log.ForContext(ctx).WithField("account_id", credential.ID)

	release, acquired, err := s.locker.Acquire(ctx, lockKeyPrefix+credential.ID, s.lockTTL)
	if err != nil {
		// Sem lock o compare-and-swap continua impedindo a sobrescrita
		logger.WithError(err).Warn("token: failed to acquire refresh lock, continuing without it")
	} else if !acquired {
		logger.Info("token: refresh already in progress, waiting for the winner")
		return s.waitForWinner(ctx, credential)
	} else {
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.WithError(err).Warn("token: failed to release refresh lock")
			}
		}()
	}

	current, err := s.repo.LoadByID(ctx, credential.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload credential: %w", err)
	}
	if current == nil {
		return nil, ErrCredentialGone
	}

	// Outra requisição pode ter concluído a rotação entre a leitura original e o lock
	if s.rotatedSince(credential, current) {
		logger.Info("token: credential already refreshed by another request")
		return pairFrom(current), nil
	}

	tokenResp, err := s.client.RefreshToken(ctx, current.AppID, *current.AppSecret, *current.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	now := s.now()
	update := domain.CredentialUpdate{AccessToken: &tokenResp.AccessToken}
	if tokenResp.RefreshToken != "" {
		update.RefreshToken = &tokenResp.RefreshToken
	}
	lifetime := time.Duration(tokenResp.ExpiresIn) * time.Second
	if lifetime <= 0 {
		logger.WithField("expires_in", tokenResp.ExpiresIn).
			Warnf("token: refresh response without a valid expires_in, assuming %s", fallbackTokenLifetime)
		lifetime = fallbackTokenLifetime
	}
	expiresAt := now.Add(lifetime).UTC()
	update.TokenExpiresAt = &expiresAt

	pair := &domain.TokenPair{
		AccessToken:  tokenResp.AccessToken,
		RefreshToken: *current.RefreshToken,
	}
	if update.RefreshToken != nil {
		pair.RefreshToken = *update.RefreshToken
	}
	pair.ExpiresAt = expiresAt

	err = s.repo.SaveIfUnchanged(ctx, current.ID, current.UpdatedAt, update)
	switch {
	case errors.Is(err, repository.ErrCredentialConflict):
		logger.Warn("token: concurrent rotation detected, adopting the stored token")
		winner, loadErr := s.repo.LoadByID(ctx, current.ID)
		if loadErr != nil || winner == nil {
			return pair, nil
		}
		return pairFrom(winner), nil
	case err != nil:
		// O novo access token é válido mesmo sem persistir; a próxima requisição tentará de novo
		logger.WithError(err).Error("token: failed to persist rotated tokens")
		return pair, nil
	}

	logger.WithFields(log.Fields{
		"expires_at":   pair.ExpiresAt,
		"access_token": log.MaskSecret(pair.AccessToken),
	}).Info("token: access token refreshed")

	return pair, nil
}

// waitForWinner relê a credencial até a outra requisição gravar o novo token ou o lease expirar
func (s *Service) waitForWinner(ctx context.Context, credential *domain.AccountCredential) (*domain.TokenPair, error) {
	deadline := s.now().Add(s.lockTTL)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}

		current, err := s.repo.LoadByID(ctx, credential.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload credential: %w", err)
		}
		if current == nil {
			return nil, ErrCredentialGone
		}

		if s.rotatedSince(credential, current) {
			return pairFrom(current), nil
		}

		if !s.now().Before(deadline) {
			return nil, ErrRefreshInProgress
		}
	}
}

func (s *Service) rotatedSince(loaded, current *domain.AccountCredential) bool {
	return current.UpdatedAt.After(loaded.UpdatedAt) &&
		current.AccessToken != loaded.AccessToken &&
		!NeedsRefresh(current.TokenExpiresAt, s.now(), s.buffer)
}

func pairFrom(c *domain.AccountCredential) *domain.TokenPair {
	pair := &domain.TokenPair{AccessToken: c.AccessToken}
	if c.RefreshToken != nil {
		pair.RefreshToken = *c.RefreshToken
	}
	if c.TokenExpiresAt != nil {
		pair.ExpiresAt = *c.TokenExpiresAt
	}
	return pair
}
