package pinterestdomain

import (
	"bytes"
	"fmt"
	"math"
	"strings"
)

// Nomes das métricas no contrato do Pinterest
const (
	MetricImpression      = "IMPRESSION"
	MetricEngagement      = "ENGAGEMENT"
	MetricPinClick        = "PIN_CLICK"
	MetricOutboundClick   = "OUTBOUND_CLICK"
	MetricSave            = "SAVE"
	MetricTotalAudience   = "TOTAL_AUDIENCE"
	MetricEngagedAudience = "ENGAGED_AUDIENCE"
)

// DailyMetrics é um registro diário do relatório de analytics
type DailyMetrics struct {
	Date    string
	Metrics map[string]float64
}

// Metric devolve a contagem arredondada. Métrica ausente ou negativa vale 0.
func (d DailyMetrics) Metric(name string) int64 {
	v, ok := d.Metrics[name]
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return int64(math.Round(v))
}

// UnmarshalJSON aceita {date, metrics:{...}} e também o formato plano {DATE, IMPRESSION, ...}
func (d *DailyMetrics) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Metrics = make(map[string]float64)

	for key, value := range raw {
		switch strings.ToLower(key) {
		case "date":
			if s, ok := value.(string); ok {
				d.Date = s
			}
		case "metrics":
			nested, ok := value.(map[string]interface{})
			if !ok {
				continue
			}
			for name, v := range nested {
				if n, ok := v.(float64); ok {
					d.Metrics[strings.ToUpper(name)] = n
				}
			}
		default:
			if n, ok := value.(float64); ok {
				d.Metrics[strings.ToUpper(key)] = n
			}
		}
	}

	return nil
}

// AnalyticsPayload é a resposta de /ad_accounts/{id}/analytics
type AnalyticsPayload struct {
	Days []DailyMetrics
}

// UnmarshalJSON aceita um array de dias, {data: [...]} ou {items: [...]}
func (p *AnalyticsPayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		p.Days = []DailyMetrics{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var days []DailyMetrics
		if err := json.Unmarshal(trimmed, &days); err != nil {
			return fmt.Errorf("invalid analytics payload: %w", err)
		}
		p.Days = days
	case '{':
		var wrapped struct {
			Data  []DailyMetrics `json:"data"`
			Items []DailyMetrics `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return fmt.Errorf("invalid analytics payload: %w", err)
		}
		p.Days = wrapped.Data
		if len(p.Days) == 0 {
			p.Days = wrapped.Items
		}
	default:
		return fmt.Errorf("invalid analytics payload: unexpected %q", trimmed[0])
	}

	if p.Days == nil {
		p.Days = []DailyMetrics{}
	}

	return nil
}
