package insighting

import (
	"context"

	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
	"github.com/vfg2006/pinterest-insights-api/pkg/log"
)

// NormalizeAnalytics converte cada dia do relatório em um snapshot com as taxas calculadas.
// Não tem efeitos colaterais; dias sem data são ignorados.
func NormalizeAnalytics(accountID string, payload *pinterestdomain.AnalyticsPayload) ([]*domain.AnalyticsSnapshot, domain.MetricSeries) {
	snapshots := make([]*domain.AnalyticsSnapshot, 0)
	if payload == nil {
		return snapshots, domain.NewMetricSeries()
	}

	for _, day := range payload.Days {
		if day.Date == "" {
			continue
		}

		s := &domain.AnalyticsSnapshot{
			AccountID:       accountID,
			Date:            day.Date,
			Impressions:     day.Metric(pinterestdomain.MetricImpression),
			Engagements:     day.Metric(pinterestdomain.MetricEngagement),
			PinClicks:       day.Metric(pinterestdomain.MetricPinClick),
			OutboundClicks:  day.Metric(pinterestdomain.MetricOutboundClick),
			Saves:           day.Metric(pinterestdomain.MetricSave),
			TotalAudience:   day.Metric(pinterestdomain.MetricTotalAudience),
			EngagedAudience: day.Metric(pinterestdomain.MetricEngagedAudience),
		}
		s.ComputeRates()

		snapshots = append(snapshots, s)
	}

	return snapshots, domain.SeriesFromSnapshots(snapshots)
}

// NormalizeAudience monta o snapshot de audiência do dia. Seções que o Pinterest não
// devolveu são preenchidas com o perfil padrão.
func NormalizeAudience(accountID, date string, payload *pinterestdomain.AudiencePayload, defaults domain.AudienceInsights) *domain.AudienceSnapshot {
	var insights domain.AudienceInsights

	if payload != nil {
		insights.Categories = domain.TopSegments(toSegments(payload.Interests), domain.MaxAudienceCategories)

		if d := payload.Demographics; d != nil {
			insights.Age = toSegments(d.AgeGroups)
			insights.Gender = toSegments(d.Genders)
			insights.Locations = domain.TopSegments(toSegments(d.Locations), domain.MaxAudienceLocations)
			insights.Devices = toSegments(d.Devices)
		}
	}

	return &domain.AudienceSnapshot{
		AccountID: accountID,
		Date:      date,
		Insights:  insights.WithDefaults(defaults),
	}
}

func toSegments(items []pinterestdomain.AudienceSegment) []domain.AudienceSegment {
	segments := make([]domain.AudienceSegment, 0, len(items))
	for _, item := range items {
		if item.Name == "" {
			continue
		}
		segments = append(segments, domain.AudienceSegment{
			Label:      item.Name,
			Percentage: item.Percentage,
		})
	}
	return segments
}

// SnapshotWriter grava os snapshots normalizados. Falhas são registradas e descartadas:
// a resposta ao cliente nunca depende da escrita.
type SnapshotWriter struct {
	analyticsRepo repository.AnalyticsSnapshotRepository
	audienceRepo  repository.AudienceSnapshotRepository
	enabled       bool
}

func NewSnapshotWriter(
	analyticsRepo repository.AnalyticsSnapshotRepository,
	audienceRepo repository.AudienceSnapshotRepository,
	enabled bool,
) *SnapshotWriter {
	return &SnapshotWriter{
		analyticsRepo: analyticsRepo,
		audienceRepo:  audienceRepo,
		enabled:       enabled,
	}
}

// PersistAnalytics devolve true quando os snapshots foram gravados
func (w *SnapshotWriter) PersistAnalytics(ctx context.Context, snapshots []*domain.AnalyticsSnapshot) bool {
	if !w.enabled || w.analyticsRepo == nil || len(snapshots) == 0 {
		return false
	}

	if err := w.analyticsRepo.Upsert(ctx, snapshots); err != nil {
		log.ForContext(ctx).
			WithError(err).
			WithField("account_id", snapshots[0].AccountID).
			Error("insights: failed to persist analytics snapshots")
		return false
	}

	return true
}

func (w *SnapshotWriter) PersistAudience(ctx context.Context, snapshot *domain.AudienceSnapshot) bool {
	if !w.enabled || w.audienceRepo == nil || snapshot == nil {
		return false
	}

	if err := w.audienceRepo.Upsert(ctx, snapshot); err != nil {
		log.ForContext(ctx).
			WithError(err).
			WithField("account_id", snapshot.AccountID).
			Error("insights: failed to persist audience snapshot")
		return false
	}

	return true
}
