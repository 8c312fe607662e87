package pinterestclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *PinterestClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Pinterest: config.Pinterest{
			BaseURL:         server.URL,
			Version:         "v5",
			TokenURL:        server.URL + "/v5/oauth/token",
			Metrics:         []string{"IMPRESSION", "ENGAGEMENT"},
			AttributionType: "ORGANIC",
			Timeout:         2 * time.Second,
		},
	}
	cfg.Normalize()

	return NewClient(cfg).(*PinterestClient)
}

func TestPinterestClient_GetAnalytics(t *testing.T) {
	var gotQuery url.Values
	var gotAuth, gotPath string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[{"date":"2024-01-01","metrics":{"IMPRESSION":1000,"ENGAGEMENT":50}}]`))
	})

	payload, err := client.GetAnalytics(context.Background(), "T1", "549755885175", domain.DateRange{
		StartDate: "2024-01-01",
		EndDate:   "2024-01-31",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v5/ad_accounts/549755885175/analytics", gotPath)
	assert.Equal(t, "Bearer T1", gotAuth)
	assert.Equal(t, "2024-01-01", gotQuery.Get("start_date"))
	assert.Equal(t, "2024-01-31", gotQuery.Get("end_date"))
	assert.Equal(t, "DAY", gotQuery.Get("granularity"))
	assert.Equal(t, "IMPRESSION,ENGAGEMENT", gotQuery.Get("metrics"))
	assert.Equal(t, "ORGANIC", gotQuery.Get("report_attribution_type"))

	require.Len(t, payload.Days, 1)
	assert.Equal(t, int64(1000), payload.Days[0].Metric(pinterestdomain.MetricImpression))
}

func TestPinterestClient_GetAudience(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"interests":[{"name":"Home Decor","percentage":40}]}`))
	})

	payload, err := client.GetAudience(context.Background(), "T1", "123")
	require.NoError(t, err)

	assert.Equal(t, "/v5/ad_accounts/123/audience_insights/interests", gotPath)
	assert.Equal(t, "ENGAGED", gotQuery.Get("audience_type"))
	assert.Equal(t, "PERCENTAGE", gotQuery.Get("format"))
	require.Len(t, payload.Interests, 1)
}

func TestPinterestClient_GetProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/users/me", r.URL.Path)
		_, _ = w.Write([]byte(`{"username":"studio","account_type":"BUSINESS","follower_count":42}`))
	})

	profile, err := client.GetProfile(context.Background(), "T1")
	require.NoError(t, err)
	assert.Equal(t, "studio", profile.Username)
	assert.Equal(t, int64(42), profile.FollowerCount)
}

func TestPinterestClient_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantKind   ErrorKind
		wantAuth   bool
		wantInText string
	}{
		{
			name:       "401 é falha de autenticação",
			status:     http.StatusUnauthorized,
			body:       `{"code":2,"message":"Authentication failed."}`,
			wantKind:   AuthFailure,
			wantAuth:   true,
			wantInText: "Authentication failed.",
		},
		{
			name:     "403 é falha do upstream",
			status:   http.StatusForbidden,
			body:     `{"code":29,"message":"forbidden"}`,
			wantKind: UpstreamFailure,
		},
		{
			name:       "500 com corpo não JSON",
			status:     http.StatusInternalServerError,
			body:       `<html>oops</html>`,
			wantKind:   UpstreamFailure,
			wantInText: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetProfile(context.Background(), "T1")
			require.Error(t, err)

			upstreamErr, ok := AsUpstreamError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantKind, upstreamErr.Kind)
			assert.Equal(t, tt.status, upstreamErr.StatusCode)
			assert.Equal(t, tt.body, upstreamErr.Body)
			assert.Equal(t, tt.wantAuth, IsAuthFailure(err))
			if tt.wantInText != "" {
				assert.Contains(t, err.Error(), tt.wantInText)
			}
		})
	}
}

func TestPinterestClient_TimeoutIsUpstreamFailure(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	client.httpClient.Timeout = 50 * time.Millisecond

	_, err := client.GetProfile(context.Background(), "T1")
	require.Error(t, err)

	upstreamErr, ok := AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, UpstreamFailure, upstreamErr.Kind)
	assert.Equal(t, 0, upstreamErr.StatusCode)
	assert.False(t, IsAuthFailure(err))
}

func TestPinterestClient_RefreshToken(t *testing.T) {
	var gotForm url.Values
	var gotUser, gotPass, gotContentType string

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v5/oauth/token", r.URL.Path)

		gotUser, gotPass, _ = r.BasicAuth()
		gotContentType = r.Header.Get("Content-Type")

		raw, _ := io.ReadAll(r.Body)
		gotForm, _ = url.ParseQuery(string(raw))

		_, _ = w.Write([]byte(`{"access_token":"T2","refresh_token":"R2","token_type":"bearer","expires_in":2592000}`))
	})

	tokenResp, err := client.RefreshToken(context.Background(), "app-1", "secret-1", "R1")
	require.NoError(t, err)

	assert.Equal(t, "app-1", gotUser)
	assert.Equal(t, "secret-1", gotPass)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, "refresh_token", gotForm.Get("grant_type"))
	assert.Equal(t, "R1", gotForm.Get("refresh_token"))

	assert.Equal(t, "T2", tokenResp.AccessToken)
	assert.Equal(t, "R2", tokenResp.RefreshToken)
	assert.Equal(t, int64(2592000), tokenResp.ExpiresIn)
}

func TestPinterestClient_RefreshTokenFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"refresh token revoked"}`))
	})

	_, err := client.RefreshToken(context.Background(), "app-1", "secret-1", "R1")
	require.Error(t, err)

	upstreamErr, ok := AsUpstreamError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "invalid_grant")
	assert.Contains(t, err.Error(), "refresh token revoked")
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30d 0h 0m", FormatDuration(2592000))
	assert.Equal(t, "0d 1h 1m", FormatDuration(3660))
}
