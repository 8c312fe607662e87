package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/pinterestclient"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/mockdata"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/tokenrefresh"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
	"github.com/vfg2006/pinterest-insights-api/pkg/utils"
)

// call é o estado de uma requisição já autenticada e com token resolvido
type call struct {
	credential  *domain.AccountCredential
	accessToken string
	dateRange   domain.DateRange
}

type endpointHandler func(ctx context.Context, c *call) (interface{}, error)

var (
	_ Orchestrator = (*Service)(nil)
	_ Dashboard    = (*Service)(nil)
	_ Syncer       = (*Service)(nil)
)

type Service struct {
	cfg           *config.Config
	authenticator authenticating.Authenticator
	credentials   repository.CredentialRepository
	refresher     tokenrefresh.Refresher
	client        pinterestclient.Client
	analyticsRepo repository.AnalyticsSnapshotRepository
	audienceRepo  repository.AudienceSnapshotRepository
	writer        *SnapshotWriter
	generator     *mockdata.Generator
	defaults      domain.AudienceInsights
	handlers      map[domain.Endpoint]endpointHandler
	now           func() time.Time
}

func NewService(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	credentials repository.CredentialRepository,
	refresher tokenrefresh.Refresher,
	client pinterestclient.Client,
	analyticsRepo repository.AnalyticsSnapshotRepository,
	audienceRepo repository.AudienceSnapshotRepository,
	generator *mockdata.Generator,
) *Service {
	s := &Service{
		cfg:           cfg,
		authenticator: authenticator,
		credentials:   credentials,
		refresher:     refresher,
		client:        client,
		analyticsRepo: analyticsRepo,
		audienceRepo:  audienceRepo,
		writer:        NewSnapshotWriter(analyticsRepo, audienceRepo, cfg.Pinterest.SnapshotWritesEnabled),
		generator:     generator,
		defaults:      domain.DefaultAudienceProfile(),
		now:           time.Now,
	}

	s.handlers = map[domain.Endpoint]endpointHandler{
		domain.EndpointAnalytics:       s.liveAnalytics,
		domain.EndpointAudience:        s.liveAudience,
		domain.EndpointProfile:         s.profile,
		domain.EndpointStoredAnalytics: s.storedAnalytics,
		domain.EndpointStoredAudience:  s.storedAudience,
	}

	return s
}

// Handle executa autenticar, validar, carregar, renovar, despachar e normalizar, nessa ordem.
// Um erro retornado é sempre um erro de requisição ou identidade; falhas do Pinterest voltam
// como Result.Fallback.
func (s *Service) Handle(ctx context.Context, authorization string, request Request) (*Result, error) {
	ownerID, err := s.authenticate(authorization)
	if err != nil {
		return nil, err
	}

	if request.AccountID == "" {
		return nil, ErrMissingAccountID
	}

	endpoint, err := domain.ParseEndpoint(request.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, request.Endpoint)
	}

	dateRange, err := domain.ResolveDateRange(request.DateRange, s.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDateRange, err)
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"account_id": request.AccountID,
		"endpoint":   endpoint,
	})

	credential, err := s.credentials.Load(ctx, request.AccountID, ownerID)
	if err != nil {
		logger.WithError(err).Error("insights: failed to load credential")
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if credential == nil {
		return nil, ErrNotFound
	}

	c := &call{credential: credential, dateRange: dateRange}

	if endpoint.IsUpstream() {
		c.accessToken, _ = s.ensureToken(ctx, credential)
		if c.accessToken == "" {
			return nil, ErrNoCredential
		}
	}

	payload, err := s.handlers[endpoint](ctx, c)
	if err != nil {
		logger.WithError(err).Warn("insights: dispatch failed")

		if !s.cfg.Pinterest.FallbackEnabled {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}

		return &Result{Fallback: &Fallback{
			Error:    err.Error(),
			Fallback: true,
			Message:  s.cfg.Pinterest.FallbackMessage,
		}}, nil
	}

	return &Result{Payload: payload}, nil
}

func (s *Service) authenticate(authorization string) (string, error) {
	token, err := authenticating.BearerToken(authorization)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	claims, err := s.authenticator.ValidateToken(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	return claims.OwnerID(), nil
}

// ensureToken renova o token quando necessário. Falhas de renovação não interrompem a
// requisição: segue com o token atual. refreshed indica se houve rotação.
func (s *Service) ensureToken(ctx context.Context, credential *domain.AccountCredential) (token string, refreshed bool) {
	logger := log.ForContext(ctx).WithField("account_id", credential.ID)

	if !s.refresher.NeedsRefresh(credential) {
		return credential.AccessToken, false
	}

	if !credential.CanRefresh() {
		logger.Warn("token: expired or expiring but no refresh token/app secret, using existing access token")
		return credential.AccessToken, false
	}

	pair, err := s.refresher.Refresh(ctx, credential)
	if err != nil {
		logger.WithError(err).Warn("token: refresh failed, using existing access token")
		return credential.AccessToken, false
	}

	credential.AccessToken = pair.AccessToken
	if pair.RefreshToken != "" {
		credential.RefreshToken = &pair.RefreshToken
	}
	if !pair.ExpiresAt.IsZero() {
		expiresAt := pair.ExpiresAt
		credential.TokenExpiresAt = &expiresAt
	}

	return pair.AccessToken, true
}

// resolveAdAccountID usa ad_account_id; registros antigos só têm app_id
func (s *Service) resolveAdAccountID(ctx context.Context, credential *domain.AccountCredential) (string, error) {
	if id := credential.GetAdAccountID(); id != "" {
		return id, nil
	}

	if s.cfg.Pinterest.AppIDAsAdAccount && credential.AppID != "" {
		log.ForContext(ctx).
			WithField("account_id", credential.ID).
			Warn("insights: ad_account_id missing, falling back to app_id")
		return credential.AppID, nil
	}

	return "", ErrAdAccountRequired
}

func (s *Service) liveAnalytics(ctx context.Context, c *call) (interface{}, error) {
	return s.fetchAnalytics(ctx, c)
}

func (s *Service) fetchAnalytics(ctx context.Context, c *call) (*domain.AnalyticsResponse, error) {
	adAccountID, err := s.resolveAdAccountID(ctx, c.credential)
	if err != nil {
		return nil, err
	}

	payload, err := s.client.GetAnalytics(ctx, c.accessToken, adAccountID, c.dateRange)
	if err != nil {
		return nil, err
	}

	snapshots, _ := NormalizeAnalytics(c.credential.ID, payload)
	s.writer.PersistAnalytics(ctx, snapshots)

	dateRange := c.dateRange
	return domain.NewAnalyticsResponse(c.credential.ID, domain.SourceLive, &dateRange, snapshots), nil
}

func (s *Service) liveAudience(ctx context.Context, c *call) (interface{}, error) {
	return s.fetchAudience(ctx, c)
}

func (s *Service) fetchAudience(ctx context.Context, c *call) (*domain.AudienceResponse, error) {
	adAccountID, err := s.resolveAdAccountID(ctx, c.credential)
	if err != nil {
		return nil, err
	}

	payload, err := s.client.GetAudience(ctx, c.accessToken, adAccountID)
	if err != nil {
		return nil, err
	}

	snapshot := NormalizeAudience(c.credential.ID, utils.Today(s.now()), payload, s.defaults)
	s.writer.PersistAudience(ctx, snapshot)

	return audienceResponse(snapshot, domain.SourceLive), nil
}

func (s *Service) profile(ctx context.Context, c *call) (interface{}, error) {
	return s.client.GetProfile(ctx, c.accessToken)
}

func (s *Service) storedAnalytics(ctx context.Context, c *call) (interface{}, error) {
	snapshots, err := s.analyticsRepo.GetByDateRange(ctx, c.credential.ID, c.dateRange.StartDate, c.dateRange.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to read analytics snapshots: %w", err)
	}

	dateRange := c.dateRange
	return domain.NewAnalyticsResponse(c.credential.ID, domain.SourceSnapshot, &dateRange, snapshots), nil
}

func (s *Service) storedAudience(ctx context.Context, c *call) (interface{}, error) {
	snapshot, err := s.audienceRepo.GetLatest(ctx, c.credential.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read audience snapshot: %w", err)
	}
	if snapshot == nil {
		return nil, nil
	}

	return audienceResponse(snapshot, domain.SourceSnapshot), nil
}

func audienceResponse(snapshot *domain.AudienceSnapshot, source domain.DataSource) *domain.AudienceResponse {
	return &domain.AudienceResponse{
		AccountID:        snapshot.AccountID,
		Source:           source,
		Date:             snapshot.Date,
		AudienceInsights: snapshot.Insights,
	}
}
