package domain

import (
	"sort"
	"time"

	"github.com/vfg2006/pinterest-insights-api/pkg/utils"
)

type MetricName string

const (
	MetricImpressions     MetricName = "impressions"
	MetricEngagements     MetricName = "engagements"
	MetricPinClicks       MetricName = "pinClicks"
	MetricOutboundClicks  MetricName = "outboundClicks"
	MetricSaves           MetricName = "saves"
	MetricTotalAudience   MetricName = "totalAudience"
	MetricEngagedAudience MetricName = "engagedAudience"
)

// MetricNames define a ordem canônica das sete métricas
var MetricNames = []MetricName{
	MetricImpressions,
	MetricEngagements,
	MetricPinClicks,
	MetricOutboundClicks,
	MetricSaves,
	MetricTotalAudience,
	MetricEngagedAudience,
}

type DataSource string

const (
	SourceLive     DataSource = "live"
	SourceSnapshot DataSource = "snapshot"
	SourceMock     DataSource = "mock"
)

type MetricPoint struct {
	Date  string `json:"date"`
	Value int64  `json:"value"`
}

// MetricSeries é o formato canônico consumido pelo dashboard, independente da origem dos dados
type MetricSeries map[MetricName][]MetricPoint

func NewMetricSeries() MetricSeries {
	series := make(MetricSeries, len(MetricNames))
	for _, name := range MetricNames {
		series[name] = make([]MetricPoint, 0)
	}
	return series
}

// AnalyticsSnapshot é uma linha diária de pinterest_analytics, única por (account_id, date)
type AnalyticsSnapshot struct {
	ID                string    `json:"id,omitempty"`
	AccountID         string    `json:"account_id"`
	Date              string    `json:"date"`
	Impressions       int64     `json:"impressions"`
	Engagements       int64     `json:"engagements"`
	PinClicks         int64     `json:"pin_clicks"`
	OutboundClicks    int64     `json:"outbound_clicks"`
	Saves             int64     `json:"saves"`
	TotalAudience     int64     `json:"total_audience"`
	EngagedAudience   int64     `json:"engaged_audience"`
	EngagementRate    float64   `json:"engagement_rate"`
	PinClickRate      float64   `json:"pin_click_rate"`
	OutboundClickRate float64   `json:"outbound_click_rate"`
	SaveRate          float64   `json:"save_rate"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
	UpdatedAt         time.Time `json:"updated_at,omitempty"`
}

// ComputeRates recalcula as taxas como porcentagem das impressões
func (s *AnalyticsSnapshot) ComputeRates() {
	s.EngagementRate = utils.PercentOf(s.Engagements, s.Impressions)
	s.PinClickRate = utils.PercentOf(s.PinClicks, s.Impressions)
	s.OutboundClickRate = utils.PercentOf(s.OutboundClicks, s.Impressions)
	s.SaveRate = utils.PercentOf(s.Saves, s.Impressions)
}

func (s *AnalyticsSnapshot) Value(metric MetricName) int64 {
	switch metric {
	case MetricImpressions:
		return s.Impressions
	case MetricEngagements:
		return s.Engagements
	case MetricPinClicks:
		return s.PinClicks
	case MetricOutboundClicks:
		return s.OutboundClicks
	case MetricSaves:
		return s.Saves
	case MetricTotalAudience:
		return s.TotalAudience
	case MetricEngagedAudience:
		return s.EngagedAudience
	}
	return 0
}

// SeriesFromSnapshots monta a série canônica ordenada por data
func SeriesFromSnapshots(snapshots []*AnalyticsSnapshot) MetricSeries {
	ordered := make([]*AnalyticsSnapshot, 0, len(snapshots))
	for _, s := range snapshots {
		if s != nil {
			ordered = append(ordered, s)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date < ordered[j].Date
	})

	series := NewMetricSeries()
	for _, s := range ordered {
		for _, name := range MetricNames {
			series[name] = append(series[name], MetricPoint{Date: s.Date, Value: s.Value(name)})
		}
	}
	return series
}

type AnalyticsSummary struct {
	Impressions     int64   `json:"impressions"`
	Engagements     int64   `json:"engagements"`
	PinClicks       int64   `json:"pin_clicks"`
	OutboundClicks  int64   `json:"outbound_clicks"`
	Saves           int64   `json:"saves"`
	TotalAudience   int64   `json:"total_audience"`
	EngagedAudience int64   `json:"engaged_audience"`
	EngagementRate  float64 `json:"engagement_rate"`
}

// Summarize soma cada métrica no período
func Summarize(series MetricSeries) AnalyticsSummary {
	total := func(name MetricName) int64 {
		var sum int64
		for _, p := range series[name] {
			sum += p.Value
		}
		return sum
	}

	summary := AnalyticsSummary{
		Impressions:     total(MetricImpressions),
		Engagements:     total(MetricEngagements),
		PinClicks:       total(MetricPinClicks),
		OutboundClicks:  total(MetricOutboundClicks),
		Saves:           total(MetricSaves),
		TotalAudience:   total(MetricTotalAudience),
		EngagedAudience: total(MetricEngagedAudience),
	}
	summary.EngagementRate = utils.PercentOf(summary.Engagements, summary.Impressions)

	return summary
}

type AnalyticsResponse struct {
	AccountID string               `json:"accountId"`
	Source    DataSource           `json:"source"`
	DateRange *DateRange           `json:"dateRange,omitempty"`
	Metrics   MetricSeries         `json:"metrics"`
	Summary   AnalyticsSummary     `json:"summary"`
	Daily     []*AnalyticsSnapshot `json:"daily,omitempty"`
}

func NewAnalyticsResponse(accountID string, source DataSource, dateRange *DateRange, snapshots []*AnalyticsSnapshot) *AnalyticsResponse {
	series := SeriesFromSnapshots(snapshots)
	return &AnalyticsResponse{
		AccountID: accountID,
		Source:    source,
		DateRange: dateRange,
		Metrics:   series,
		Summary:   Summarize(series),
		Daily:     snapshots,
	}
}
