package insighting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository/memory"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

func TestNormalizeAnalytics(t *testing.T) {
	tests := []struct {
		name           string
		days           []pinterestdomain.DailyMetrics
		wantCount      int
		wantEngagement float64
		wantSaveRate   float64
	}{
		{
			name:           "taxa de engajamento com duas casas",
			days:           []pinterestdomain.DailyMetrics{{Date: "2024-01-01", Metrics: map[string]float64{"IMPRESSION": 1000, "ENGAGEMENT": 50}}},
			wantCount:      1,
			wantEngagement: 5.00,
		},
		{
			name:      "impressões zeradas não dividem por zero",
			days:      []pinterestdomain.DailyMetrics{{Date: "2024-01-01", Metrics: map[string]float64{"ENGAGEMENT": 50, "SAVE": 3}}},
			wantCount: 1,
		},
		{
			name:         "arredondamento",
			days:         []pinterestdomain.DailyMetrics{{Date: "2024-01-01", Metrics: map[string]float64{"IMPRESSION": 3, "SAVE": 1}}},
			wantCount:    1,
			wantSaveRate: 33.33,
		},
		{
			name:      "dia sem data é ignorado",
			days:      []pinterestdomain.DailyMetrics{{Metrics: map[string]float64{"IMPRESSION": 10}}},
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snapshots, series := NormalizeAnalytics("acc-1", &pinterestdomain.AnalyticsPayload{Days: tt.days})
			require.Len(t, snapshots, tt.wantCount)
			assert.Len(t, series[domain.MetricImpressions], tt.wantCount)
			if tt.wantCount == 0 {
				return
			}
			assert.Equal(t, "acc-1", snapshots[0].AccountID)
			assert.Equal(t, tt.wantEngagement, snapshots[0].EngagementRate)
			assert.Equal(t, tt.wantSaveRate, snapshots[0].SaveRate)
			assert.Equal(t, int64(0), snapshots[0].TotalAudience)
		})
	}
}

func TestNormalizeAnalytics_OrdersSeriesByDate(t *testing.T) {
	payload := &pinterestdomain.AnalyticsPayload{Days: []pinterestdomain.DailyMetrics{
		{Date: "2024-01-03", Metrics: map[string]float64{"IMPRESSION": 3}},
		{Date: "2024-01-01", Metrics: map[string]float64{"IMPRESSION": 1}},
		{Date: "2024-01-02", Metrics: map[string]float64{"IMPRESSION": 2}},
	}}

	_, series := NormalizeAnalytics("acc-1", payload)
	assert.Equal(t, []domain.MetricPoint{
		{Date: "2024-01-01", Value: 1},
		{Date: "2024-01-02", Value: 2},
		{Date: "2024-01-03", Value: 3},
	}, series[domain.MetricImpressions])
}

func TestNormalizeAnalytics_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewAnalyticsSnapshotRepository()
	writer := NewSnapshotWriter(repo, nil, true)
	payload := &pinterestdomain.AnalyticsPayload{Days: []pinterestdomain.DailyMetrics{
		{Date: "2024-01-01", Metrics: map[string]float64{"IMPRESSION": 1000, "ENGAGEMENT": 50}},
	}}

	first, _ := NormalizeAnalytics("acc-1", payload)
	require.True(t, writer.PersistAnalytics(ctx, first))
	second, _ := NormalizeAnalytics("acc-1", payload)
	require.True(t, writer.PersistAnalytics(ctx, second))

	assert.Equal(t, 1, repo.Len())

	stored, err := repo.GetByDateRange(ctx, "acc-1", "2024-01-01", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, domain.SeriesFromSnapshots(first), domain.SeriesFromSnapshots(stored))
}

func TestNormalizeAudience(t *testing.T) {
	defaults := domain.DefaultAudienceProfile()

	t.Run("seções ausentes vêm do perfil padrão", func(t *testing.T) {
		snapshot := NormalizeAudience("acc-1", "2024-01-31", &pinterestdomain.AudiencePayload{
			Interests: []pinterestdomain.AudienceSegment{{Name: "Travel", Percentage: 60}},
		}, defaults)

		assert.Equal(t, []domain.AudienceSegment{{Label: "Travel", Percentage: 60}}, snapshot.Insights.Categories)
		assert.Equal(t, defaults.Age, snapshot.Insights.Age)
		assert.Equal(t, defaults.Gender, snapshot.Insights.Gender)
		assert.Equal(t, defaults.Locations, snapshot.Insights.Locations)
		assert.Equal(t, defaults.Devices, snapshot.Insights.Devices)
	})

	t.Run("localizações limitadas a seis", func(t *testing.T) {
		locations := make([]pinterestdomain.AudienceSegment, 0, 8)
		for i, name := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
			locations = append(locations, pinterestdomain.AudienceSegment{Name: name, Percentage: float64(i)})
		}

		snapshot := NormalizeAudience("acc-1", "2024-01-31", &pinterestdomain.AudiencePayload{
			Demographics: &pinterestdomain.Demographics{Locations: locations},
		}, defaults)

		require.Len(t, snapshot.Insights.Locations, domain.MaxAudienceLocations)
		assert.Equal(t, "H", snapshot.Insights.Locations[0].Label)
		assert.Equal(t, defaults.Categories, snapshot.Insights.Categories)
	})

	t.Run("payload nulo devolve o perfil padrão completo", func(t *testing.T) {
		snapshot := NormalizeAudience("acc-1", "2024-01-31", nil, defaults)
		assert.Equal(t, defaults, snapshot.Insights)
		assert.Equal(t, "2024-01-31", snapshot.Date)
	})
}

func TestSnapshotWriter_Disabled(t *testing.T) {
	repo := memory.NewAnalyticsSnapshotRepository()
	writer := NewSnapshotWriter(repo, memory.NewAudienceSnapshotRepository(), false)

	assert.False(t, writer.PersistAnalytics(context.Background(), []*domain.AnalyticsSnapshot{{AccountID: "acc-1", Date: "2024-01-01"}}))
	assert.False(t, writer.PersistAudience(context.Background(), &domain.AudienceSnapshot{AccountID: "acc-1", Date: "2024-01-01"}))
	assert.Equal(t, 0, repo.Len())
}
