package pinterestclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/config"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Client emite exatamente uma requisição por chamada. Não há retentativas: a decisão de
// degradar fica com quem chama.
type Client interface {
	GetAnalytics(ctx context.Context, accessToken, adAccountID string, dateRange domain.DateRange) (*pinterestdomain.AnalyticsPayload, error)
	GetAudience(ctx context.Context, accessToken, adAccountID string) (*pinterestdomain.AudiencePayload, error)
	GetProfile(ctx context.Context, accessToken string) (*pinterestdomain.Profile, error)
	RefreshToken(ctx context.Context, appID, appSecret, refreshToken string) (*pinterestdomain.TokenResponse, error)
}

type PinterestClient struct {
	Cfg        config.Pinterest
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &PinterestClient{
		Cfg: cfg.Pinterest,
		httpClient: &http.Client{
			Timeout: cfg.Pinterest.Timeout,
		},
	}
}

// get executa um GET autenticado e decodifica a resposta em out
func (c *PinterestClient) get(ctx context.Context, accessToken, requestURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return newTransportError(fmt.Errorf("failed to decode response: %w", err))
	}

	return nil
}

// do envia a requisição e classifica o resultado. Qualquer status fora de 2xx vira UpstreamError.
func (c *PinterestClient) do(ctx context.Context, req *http.Request) ([]byte, error) {
	logger := log.ForContext(ctx).WithField("path", req.URL.Path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WithError(err).Warn("pinterest: request failed")
		return nil, newTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.WithError(err).Warn("pinterest: failed to read response body")
		return nil, newTransportError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upstreamErr := newStatusError(resp.StatusCode, body)
		logger.WithFields(log.Fields{
			"status_code": resp.StatusCode,
			"error":       upstreamErr.Error(),
		}).Warn("pinterest: non-2xx response")
		return nil, upstreamErr
	}

	logger.WithField("status_code", resp.StatusCode).Debug("pinterest: request succeeded")

	return body, nil
}
