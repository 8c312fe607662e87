package insighting

import (
	"context"
	"errors"

	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

// SyncAccount busca analytics dos últimos 30 dias e a audiência atual e grava os snapshots.
// Só retorna erro quando nada pôde ser sincronizado.
func (s *Service) SyncAccount(ctx context.Context, credential *domain.AccountCredential) (*SyncResult, error) {
	result := &SyncResult{AccountID: credential.ID}

	token, refreshed := s.ensureToken(ctx, credential)
	result.TokenRefreshed = refreshed
	if token == "" {
		return result, ErrNoCredential
	}

	dateRange, err := domain.ResolveDateRange(nil, s.now())
	if err != nil {
		return result, err
	}

	c := &call{credential: credential, accessToken: token, dateRange: dateRange}
	logger := log.ForContext(ctx).WithField("account_id", credential.ID)

	analytics, analyticsErr := s.fetchAnalytics(ctx, c)
	if analyticsErr != nil {
		result.AnalyticsError = analyticsErr.Error()
		logger.WithError(analyticsErr).Warn("insights: analytics sync failed")
	} else {
		result.AnalyticsDays = len(analytics.Daily)
	}

	_, audienceErr := s.fetchAudience(ctx, c)
	if audienceErr != nil {
		result.AudienceError = audienceErr.Error()
		logger.WithError(audienceErr).Warn("insights: audience sync failed")
	} else {
		result.AudienceSynced = true
	}

	if analyticsErr != nil && audienceErr != nil {
		return result, errors.Join(analyticsErr, audienceErr)
	}

	return result, nil
}
