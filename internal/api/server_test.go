package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	accountmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/account/mocks"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/authenticating"
	"github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting"
	insightmocks "github.com/vfg2006/pinterest-insights-api/internal/usecases/insighting/mocks"
	"go.uber.org/mock/gomock"
)

const testSecret = "test-secret"

type stubSyncer struct{}

func (stubSyncer) TriggerManualSync() (string, bool) { return "run00001", true }
func (stubSyncer) GetStatus() map[string]any        { return map[string]any{} }

func signedToken(t *testing.T, role string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		UserID: "owner-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

type harness struct {
	handler      http.Handler
	orchestrator *insightmocks.MockOrchestrator
	accounts     *accountmocks.MockAccountService
}

func newHarness(t *testing.T) *harness {
	ctrl := gomock.NewController(t)
	h := &harness{
		orchestrator: insightmocks.NewMockOrchestrator(ctrl),
		accounts:     accountmocks.NewMockAccountService(ctrl),
	}
	h.handler = NewHandler(
		h.orchestrator,
		insightmocks.NewMockDashboard(ctrl),
		h.accounts,
		authenticating.NewService(&config.Config{Auth: config.Auth{Secret: testSecret}}),
		stubSyncer{},
	)
	return h
}

func (h *harness) do(method, path, authorization, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func TestNewHandler_Cors(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodOptions, "/v1/pinterest-analytics", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestNewHandler_ProxySkipsAuthMiddleware(t *testing.T) {
	h := newHarness(t)
	h.orchestrator.EXPECT().
		Handle(gomock.Any(), "", gomock.Any()).
		Return(nil, insighting.ErrUnauthorized)

	rec := h.do(http.MethodPost, "/v1/pinterest-analytics", "", `{"accountId":"acc-1","endpoint":"fetch_analytics"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "a rota de proxy responde 400, não 401")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewHandler_ProtectedRoutes(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		path          string
		authorization func(t *testing.T) string
		setup         func(h *harness)
		wantStatus    int
	}{
		{
			name:          "sem token",
			method:        http.MethodGet,
			path:          "/v1/accounts",
			authorization: func(*testing.T) string { return "" },
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "token inválido",
			method:        http.MethodGet,
			path:          "/v1/accounts",
			authorization: func(*testing.T) string { return "Bearer lixo" },
			wantStatus:    http.StatusUnauthorized,
		},
		{
			name:          "usuário autenticado",
			method:        http.MethodGet,
			path:          "/v1/accounts",
			authorization: func(t *testing.T) string { return "Bearer " + signedToken(t, "user") },
			setup: func(h *harness) {
				h.accounts.EXPECT().ListAccounts(gomock.Any(), "owner-1").Return([]*domain.AccountResponse{}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:          "cron exige administrador",
			method:        http.MethodPost,
			path:          "/v1/cron/sync/run",
			authorization: func(t *testing.T) string { return "Bearer " + signedToken(t, "user") },
			wantStatus:    http.StatusForbidden,
		},
		{
			name:          "administrador dispara o cron",
			method:        http.MethodPost,
			path:          "/v1/cron/sync/run",
			authorization: func(t *testing.T) string { return "Bearer " + signedToken(t, "admin") },
			wantStatus:    http.StatusAccepted,
		},
		{
			name:          "healthcheck é público",
			method:        http.MethodGet,
			path:          "/healthcheck",
			authorization: func(*testing.T) string { return "" },
			wantStatus:    http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			if tt.setup != nil {
				tt.setup(h)
			}

			rec := h.do(tt.method, tt.path, tt.authorization(t), "")

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
