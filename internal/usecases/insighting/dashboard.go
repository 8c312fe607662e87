package insighting

import (
	"context"
	"fmt"

	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
	"github.com/vfg2006/pinterest-insights-api/pkg/utils"
)

// GetAnalytics tenta, em ordem, os snapshots gravados, o Pinterest e o gerador sintético
func (s *Service) GetAnalytics(ctx context.Context, ownerID, accountID string, dateRange *domain.DateRange) (*domain.AnalyticsResponse, error) {
	credential, err := s.loadOwned(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	resolved, err := domain.ResolveDateRange(dateRange, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDateRange, err)
	}

	logger := log.ForContext(ctx).WithField("account_id", accountID)

	snapshots, err := s.analyticsRepo.GetByDateRange(ctx, accountID, resolved.StartDate, resolved.EndDate)
	if err != nil {
		logger.WithError(err).Warn("insights: failed to read analytics snapshots")
	} else if len(snapshots) > 0 {
		logger.WithField("source", domain.SourceSnapshot).Debugf("insights: serving %d analytics snapshots", len(snapshots))
		return domain.NewAnalyticsResponse(accountID, domain.SourceSnapshot, &resolved, snapshots), nil
	}

	if token, _ := s.ensureToken(ctx, credential); token != "" {
		response, err := s.fetchAnalytics(ctx, &call{credential: credential, accessToken: token, dateRange: resolved})
		if err == nil {
			return response, nil
		}
		logger.WithError(err).Warn("insights: live analytics failed, using mock data")
	}

	logger.WithField("source", domain.SourceMock).Info("insights: serving mock analytics")
	mock := s.generator.Analytics(accountID, resolved)

	return domain.NewAnalyticsResponse(accountID, domain.SourceMock, &resolved, mock), nil
}

func (s *Service) GetAudience(ctx context.Context, ownerID, accountID string) (*domain.AudienceResponse, error) {
	credential, err := s.loadOwned(ctx, ownerID, accountID)
	if err != nil {
		return nil, err
	}

	logger := log.ForContext(ctx).WithField("account_id", accountID)

	snapshot, err := s.audienceRepo.GetLatest(ctx, accountID)
	if err != nil {
		logger.WithError(err).Warn("insights: failed to read audience snapshot")
	} else if snapshot != nil {
		return audienceResponse(snapshot, domain.SourceSnapshot), nil
	}

	if token, _ := s.ensureToken(ctx, credential); token != "" {
		response, err := s.fetchAudience(ctx, &call{credential: credential, accessToken: token})
		if err == nil {
			return response, nil
		}
		logger.WithError(err).Warn("insights: live audience failed, using mock data")
	}

	logger.WithField("source", domain.SourceMock).Info("insights: serving mock audience")

	return audienceResponse(s.generator.Audience(accountID, utils.Today(s.now())), domain.SourceMock), nil
}

func (s *Service) loadOwned(ctx context.Context, ownerID, accountID string) (*domain.AccountCredential, error) {
	if accountID == "" {
		return nil, ErrMissingAccountID
	}

	credential, err := s.credentials.Load(ctx, accountID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if credential == nil {
		return nil, ErrNotFound
	}

	return credential, nil
}
