package domain

import (
	"sort"
	"time"
)

const (
	MaxAudienceCategories = 5
	MaxAudienceLocations  = 6
)

type AudienceSegment struct {
	Label      string  `json:"label"`
	Percentage float64 `json:"percentage"`
}

type AudienceInsights struct {
	Categories []AudienceSegment `json:"categories"`
	Age        []AudienceSegment `json:"age"`
	Gender     []AudienceSegment `json:"gender"`
	Locations  []AudienceSegment `json:"locations"`
	Devices    []AudienceSegment `json:"devices"`
}

// AudienceSnapshot é uma linha de pinterest_audience, única por (account_id, date)
type AudienceSnapshot struct {
	ID        string           `json:"id,omitempty"`
	AccountID string           `json:"account_id"`
	Date      string           `json:"date"`
	Insights  AudienceInsights `json:"insights"`
	CreatedAt time.Time        `json:"created_at,omitempty"`
	UpdatedAt time.Time        `json:"updated_at,omitempty"`
}

type AudienceResponse struct {
	AccountID string     `json:"accountId"`
	Source    DataSource `json:"source"`
	Date      string     `json:"date"`
	AudienceInsights
}

// DefaultAudienceProfile retorna o perfil representativo usado quando o Pinterest não
// fornece uma seção. Cada chamada devolve slices novos.
func DefaultAudienceProfile() AudienceInsights {
	return AudienceInsights{
		Categories: []AudienceSegment{
			{Label: "Home Decor", Percentage: 35},
			{Label: "DIY & Crafts", Percentage: 25},
			{Label: "Food & Drink", Percentage: 20},
			{Label: "Fashion", Percentage: 15},
			{Label: "Others", Percentage: 5},
		},
		Age: []AudienceSegment{
			{Label: "18-24", Percentage: 15},
			{Label: "25-34", Percentage: 40},
			{Label: "35-44", Percentage: 25},
			{Label: "45-54", Percentage: 12},
			{Label: "55+", Percentage: 8},
		},
		Gender: []AudienceSegment{
			{Label: "Female", Percentage: 78},
			{Label: "Male", Percentage: 21},
			{Label: "Other", Percentage: 1},
		},
		Locations: []AudienceSegment{
			{Label: "United States", Percentage: 45},
			{Label: "United Kingdom", Percentage: 12},
			{Label: "Canada", Percentage: 10},
			{Label: "Australia", Percentage: 8},
			{Label: "Germany", Percentage: 5},
			{Label: "Others", Percentage: 20},
		},
		Devices: []AudienceSegment{
			{Label: "Mobile", Percentage: 65},
			{Label: "Desktop", Percentage: 30},
			{Label: "Tablet", Percentage: 5},
		},
	}
}

// TopSegments ordena por porcentagem decrescente e mantém no máximo limit itens
func TopSegments(segments []AudienceSegment, limit int) []AudienceSegment {
	out := make([]AudienceSegment, len(segments))
	copy(out, segments)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Percentage > out[j].Percentage
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// WithDefaults preenche seções vazias a partir do perfil informado
func (a AudienceInsights) WithDefaults(defaults AudienceInsights) AudienceInsights {
	pick := func(current, fallback []AudienceSegment) []AudienceSegment {
		if len(current) > 0 {
			return current
		}
		out := make([]AudienceSegment, len(fallback))
		copy(out, fallback)
		return out
	}

	return AudienceInsights{
		Categories: pick(a.Categories, defaults.Categories),
		Age:        pick(a.Age, defaults.Age),
		Gender:     pick(a.Gender, defaults.Gender),
		Locations:  pick(a.Locations, defaults.Locations),
		Devices:    pick(a.Devices, defaults.Devices),
	}
}
