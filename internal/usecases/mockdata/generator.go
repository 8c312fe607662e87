package mockdata

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

// Range é um intervalo fechado [Min, Max] de valores diários
type Range struct {
	Min int64
	Max int64
}

// DailyRanges define os intervalos usados para cada métrica sintética
var DailyRanges = map[domain.MetricName]Range{
	domain.MetricImpressions:     {Min: 30000, Max: 50000},
	domain.MetricEngagements:     {Min: 5000, Max: 8000},
	domain.MetricPinClicks:       {Min: 4000, Max: 7000},
	domain.MetricOutboundClicks:  {Min: 2000, Max: 4000},
	domain.MetricSaves:           {Min: 1500, Max: 3500},
	domain.MetricTotalAudience:   {Min: 100000, Max: 120000},
	domain.MetricEngagedAudience: {Min: 50000, Max: 65000},
}

// Generator produz dados sintéticos no mesmo formato canônico das respostas reais.
// É o último recurso do dashboard quando não há snapshot nem resposta do Pinterest.
type Generator struct {
	mu       sync.Mutex
	rnd      *rand.Rand
	defaults domain.AudienceInsights
}

func NewGenerator(seed uint64, defaults domain.AudienceInsights) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		defaults: defaults,
	}
}

func (g *Generator) between(r Range) int64 {
	return r.Min + g.rnd.Int64N(r.Max-r.Min+1)
}

// Analytics gera um snapshot por dia do intervalo, inclusive nas duas pontas.
// Intervalos inválidos ou maiores que domain.MaxDateRangeDays não geram nada.
func (g *Generator) Analytics(accountID string, dateRange domain.DateRange) []*domain.AnalyticsSnapshot {
	start, errStart := time.Parse(time.DateOnly, dateRange.StartDate)
	end, errEnd := time.Parse(time.DateOnly, dateRange.EndDate)
	if errStart != nil || errEnd != nil || start.After(end) || !domain.WithinMaxSpan(start, end) {
		return []*domain.AnalyticsSnapshot{}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	snapshots := make([]*domain.AnalyticsSnapshot, 0, int(end.Sub(start).Hours()/24)+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		s := &domain.AnalyticsSnapshot{
			AccountID:       accountID,
			Date:            day.Format(time.DateOnly),
			Impressions:     g.between(DailyRanges[domain.MetricImpressions]),
			Engagements:     g.between(DailyRanges[domain.MetricEngagements]),
			PinClicks:       g.between(DailyRanges[domain.MetricPinClicks]),
			OutboundClicks:  g.between(DailyRanges[domain.MetricOutboundClicks]),
			Saves:           g.between(DailyRanges[domain.MetricSaves]),
			TotalAudience:   g.between(DailyRanges[domain.MetricTotalAudience]),
			EngagedAudience: g.between(DailyRanges[domain.MetricEngagedAudience]),
		}
		s.ComputeRates()
		snapshots = append(snapshots, s)
	}

	return snapshots
}

// Audience devolve o perfil padrão injetado, sem aleatoriedade
func (g *Generator) Audience(accountID, date string) *domain.AudienceSnapshot {
	return &domain.AudienceSnapshot{
		AccountID: accountID,
		Date:      date,
		Insights:  domain.AudienceInsights{}.WithDefaults(g.defaults),
	}
}
