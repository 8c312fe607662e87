package pinterestclient

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

func (c *PinterestClient) GetAnalytics(ctx context.Context, accessToken, adAccountID string, dateRange domain.DateRange) (*pinterestdomain.AnalyticsPayload, error) {
	baseURL := fmt.Sprintf("%s/ad_accounts/%s/analytics", c.Cfg.URL, url.PathEscape(adAccountID))

	params := url.Values{}
	params.Add("start_date", dateRange.StartDate)
	params.Add("end_date", dateRange.EndDate)
	params.Add("granularity", "DAY")
	params.Add("metrics", strings.Join(c.Cfg.Metrics, ","))
	params.Add("report_attribution_type", c.Cfg.AttributionType)

	var payload pinterestdomain.AnalyticsPayload
	if err := c.get(ctx, accessToken, baseURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func (c *PinterestClient) GetAudience(ctx context.Context, accessToken, adAccountID string) (*pinterestdomain.AudiencePayload, error) {
	baseURL := fmt.Sprintf("%s/ad_accounts/%s/audience_insights/interests", c.Cfg.URL, url.PathEscape(adAccountID))

	params := url.Values{}
	params.Add("audience_type", "ENGAGED")
	params.Add("format", "PERCENTAGE")

	var payload pinterestdomain.AudiencePayload
	if err := c.get(ctx, accessToken, baseURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func (c *PinterestClient) GetProfile(ctx context.Context, accessToken string) (*pinterestdomain.Profile, error) {
	var profile pinterestdomain.Profile
	if err := c.get(ctx, accessToken, c.Cfg.URL+"/users/me", &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}
