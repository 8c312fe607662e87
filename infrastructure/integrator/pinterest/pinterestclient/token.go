package pinterestclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

// RefreshToken troca o refresh token por um novo par. Autenticação Basic appID:appSecret.
func (c *PinterestClient) RefreshToken(ctx context.Context, appID, appSecret, refreshToken string) (*pinterestdomain.TokenResponse, error) {
	if refreshToken == "" {
		return nil, errors.New("refresh token cannot be empty")
	}

	form := url.Values{}
	form.Add("grant_type", "refresh_token")
	form.Add("refresh_token", refreshToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(appID, appSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	var tokenResp pinterestdomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, errors.New("token endpoint returned an empty access token")
	}

	log.ForContext(ctx).Infof("pinterest: token refreshed, expires in %s", FormatDuration(tokenResp.ExpiresIn))

	return &tokenResp, nil
}
