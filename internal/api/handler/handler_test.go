package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clientmocks "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/pinterestclient/mocks"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository/memory"
	"github.com/vfg2006/pinterest-insights-api/internal/api/handler/router"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/account"
	accountmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/account/mocks"
	authmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	insightmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting/mocks"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/mockdata"
	refreshmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/tokenrefresh/mocks"
	"github.com/vfg2006/pinterest-insights-api/pkg/apiErrors"
	"github.com/vfg2006/pinterest-insights-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func withClaims(req *http.Request, ownerID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.ContextKeyUser, &domain.Claims{UserID: ownerID})
	return req.WithContext(ctx)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPinterestAnalytics(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *insightmocks.MockOrchestrator)
		wantStatus int
		wantBody   map[string]any
	}{
		{
			name: "payload normalizado",
			body: `{"accountId":"acc-1","endpoint":"fetch_analytics","dateRange":{"startDate":"2024-01-01","endDate":"2024-01-31"}}`,
			setup: func(m *insightmocks.MockOrchestrator) {
				m.EXPECT().
					Handle(gomock.Any(), "Bearer jwt", insighting.Request{
						AccountID: "acc-1",
						Endpoint:  "fetch_analytics",
						DateRange: &domain.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-31"},
					}).
					Return(&insighting.Result{Payload: map[string]any{"source": "live"}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"source": "live"},
		},
		{
			name: "envelope de fallback é 200",
			body: `{"accountId":"acc-1","endpoint":"fetch_audience"}`,
			setup: func(m *insightmocks.MockOrchestrator) {
				m.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(&insighting.Result{
					Fallback: &insighting.Fallback{Error: "pinterest api error: 401", Fallback: true, Message: "using substitute data"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   map[string]any{"error": "pinterest api error: 401", "fallback": true, "message": "using substitute data"},
		},
		{
			name: "conta inexistente é 400 sem código",
			body: `{"accountId":"acc-404","endpoint":"fetch_analytics"}`,
			setup: func(m *insightmocks.MockOrchestrator) {
				m.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, insighting.ErrNotFound)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": insighting.ErrNotFound.Error()},
		},
		{
			name: "falha do Pinterest sem fallback leva o código",
			body: `{"accountId":"acc-1","endpoint":"fetch_analytics"}`,
			setup: func(m *insightmocks.MockOrchestrator) {
				m.EXPECT().Handle(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: timeout", insighting.ErrUpstream))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "pinterest api error: timeout", "code": apiErrors.PinterestAPIError},
		},
		{
			name:       "corpo inválido",
			body:       `{"accountId":`,
			setup:      func(m *insightmocks.MockOrchestrator) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "invalid request body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orchestrator := insightmocks.NewMockOrchestrator(ctrl)
			tt.setup(orchestrator)

			req := httptest.NewRequest(http.MethodPost, "/v1/pinterest-analytics", strings.NewReader(tt.body))
			req.Header.Set("Authorization", "Bearer jwt")
			rec := httptest.NewRecorder()

			PinterestAnalytics(orchestrator).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.wantBody, decode[map[string]any](t, rec))
		})
	}
}

func TestAccountRoutes(t *testing.T) {
	t.Run("lista as contas do usuário", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := accountmocks.NewMockAccountService(ctrl)
		accounts.EXPECT().ListAccounts(gomock.Any(), "owner-1").Return([]*domain.AccountResponse{
			{ID: "acc-1", HasRefreshToken: true, NeedsRefresh: true},
		}, nil)

		rt := router.New(router.WithRoutes(Accounts(accounts, insightmocks.NewMockDashboard(ctrl))...))
		rec := httptest.NewRecorder()
		rt.ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/v1/accounts", nil), "owner-1"))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[[]map[string]any](t, rec)
		require.Len(t, body, 1)
		assert.Equal(t, true, body[0]["needsRefresh"])
		assert.NotContains(t, body[0], "accessToken")
	})

	t.Run("erro de conta usa o código do serviço", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		accounts := accountmocks.NewMockAccountService(ctrl)
		accounts.EXPECT().ListAccounts(gomock.Any(), "owner-1").
			Return(nil, account.NewAccountError(account.ErrFetchAccounts, apiErrors.ErrDatabaseOperation, ""))

		rec := httptest.NewRecorder()
		ListAccounts(accounts).ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, "/v1/accounts", nil), "owner-1"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decode[apiErrors.APIError](t, rec).Code)
	})

	t.Run("sem claims", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		rec := httptest.NewRecorder()
		ListAccounts(accountmocks.NewMockAccountService(ctrl)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/accounts", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestDashboardRoutes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		setup      func(m *insightmocks.MockDashboard)
		wantStatus int
		wantCode   string
	}{
		{
			name: "analytics com intervalo",
			path: "/v1/accounts/acc-1/analytics?startDate=2024-01-01&endDate=2024-01-07",
			setup: func(m *insightmocks.MockDashboard) {
				m.EXPECT().
					GetAnalytics(gomock.Any(), "owner-1", "acc-1", &domain.DateRange{StartDate: "2024-01-01", EndDate: "2024-01-07"}).
					Return(&domain.AnalyticsResponse{AccountID: "acc-1", Source: domain.SourceSnapshot}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "analytics sem intervalo",
			path: "/v1/accounts/acc-1/analytics",
			setup: func(m *insightmocks.MockDashboard) {
				m.EXPECT().
					GetAnalytics(gomock.Any(), "owner-1", "acc-1", (*domain.DateRange)(nil)).
					Return(&domain.AnalyticsResponse{AccountID: "acc-1", Source: domain.SourceMock}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "conta de outro usuário",
			path: "/v1/accounts/acc-2/audience",
			setup: func(m *insightmocks.MockDashboard) {
				m.EXPECT().GetAudience(gomock.Any(), "owner-1", "acc-2").Return(nil, insighting.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantCode:   apiErrors.ErrAccountNotFound,
		},
		{
			name: "intervalo inválido",
			path: "/v1/accounts/acc-1/analytics?startDate=ontem",
			setup: func(m *insightmocks.MockDashboard) {
				m.EXPECT().GetAnalytics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("%w: bad date", insighting.ErrInvalidDateRange))
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   apiErrors.ErrInvalidFormat,
		},
		{
			name: "falha inesperada",
			path: "/v1/accounts/acc-1/audience",
			setup: func(m *insightmocks.MockDashboard) {
				m.EXPECT().GetAudience(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   apiErrors.ErrDatabaseOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			dashboard := insightmocks.NewMockDashboard(ctrl)
			tt.setup(dashboard)

			rt := router.New(router.WithRoutes(Accounts(accountmocks.NewMockAccountService(ctrl), dashboard)...))
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, withClaims(httptest.NewRequest(http.MethodGet, tt.path, nil), "owner-1"))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode[apiErrors.APIError](t, rec).Code)
			}
		})
	}
}

func TestDashboardRoutes_DateRangeLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	credentials := memory.NewCredentialRepository()
	credentials.Put(&domain.AccountCredential{ID: "acc-1", OwnerID: "owner-1", AccessToken: "T1"})

	service := insighting.NewService(
		&config.Config{Pinterest: config.Pinterest{FallbackEnabled: true}},
		authmocks.NewMockAuthenticator(ctrl),
		credentials,
		refreshmocks.NewMockRefresher(ctrl),
		clientmocks.NewMockClient(ctrl),
		memory.NewAnalyticsSnapshotRepository(),
		memory.NewAudienceSnapshotRepository(),
		mockdata.NewGenerator(1, domain.DefaultAudienceProfile()),
	)

	rt := router.New(router.WithRoutes(Accounts(accountmocks.NewMockAccountService(ctrl), service)...))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/accounts/acc-1/analytics?startDate=0001-01-01&endDate=2024-01-31", nil)
	rt.ServeHTTP(rec, withClaims(req, "owner-1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidFormat, decode[apiErrors.APIError](t, rec).Code)
}

type fakeSyncer struct {
	runID   string
	started bool
	status  map[string]any
}

func (f *fakeSyncer) TriggerManualSync() (string, bool) { return f.runID, f.started }
func (f *fakeSyncer) GetStatus() map[string]any        { return f.status }

func TestCronRoutes(t *testing.T) {
	t.Run("dispara a sincronização", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RunSnapshotSync(&fakeSyncer{runID: "abc12345", started: true}).
			ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, "abc12345", decode[map[string]any](t, rec)["run_id"])
	})

	t.Run("execução em andamento", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RunSnapshotSync(&fakeSyncer{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/cron/sync/run", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		GetCronStatus(&fakeSyncer{status: map[string]any{"sync_enabled": true}}).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]map[string]any](t, rec)
		assert.Equal(t, true, body["snapshot_sync"]["sync_enabled"])
	})
}

func TestRouter_NotFound(t *testing.T) {
	rt := router.New(router.WithRoutes(Healthcheck()...))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthcheck", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	assert.Len(t, rt.Routes(), 1)
}
