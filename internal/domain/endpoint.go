package domain

import (
	"fmt"
	"time"
)

// Endpoint identifica qual operação o orquestrador deve executar
type Endpoint string

const (
	EndpointAnalytics Endpoint = "analytics"
	EndpointAudience  Endpoint = "audience"
	EndpointProfile   Endpoint = "profile"

	// Leituras das tabelas de snapshot, sem chamada ao Pinterest
	EndpointStoredAnalytics Endpoint = "fetch_db_analytics"
	EndpointStoredAudience  Endpoint = "fetch_db_audience"
)

// Endpoints lista todos os valores aceitos, na ordem em que são documentados
var Endpoints = []Endpoint{
	EndpointAnalytics,
	EndpointAudience,
	EndpointProfile,
	EndpointStoredAnalytics,
	EndpointStoredAudience,
}

func ParseEndpoint(value string) (Endpoint, error) {
	for _, e := range Endpoints {
		if string(e) == value {
			return e, nil
		}
	}
	return "", fmt.Errorf("invalid endpoint: %q", value)
}

// IsUpstream indica se o endpoint exige uma chamada ao Pinterest
func (e Endpoint) IsUpstream() bool {
	switch e {
	case EndpointAnalytics, EndpointAudience, EndpointProfile:
		return true
	}
	return false
}

func (e Endpoint) RequiresAdAccount() bool {
	return e == EndpointAnalytics || e == EndpointAudience
}

const (
	// DefaultLookbackDays é a janela usada quando a requisição não informa dateRange
	DefaultLookbackDays = 30

	// MaxDateRangeDays limita a distância entre startDate e endDate, como a API de analytics do Pinterest
	MaxDateRangeDays = 90
)

var ErrDateRangeTooLong = fmt.Errorf("dateRange exceeds %d days", MaxDateRangeDays)

type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ResolveDateRange completa datas ausentes com [hoje-30d, hoje], valida o formato ISO e o tamanho da janela
func ResolveDateRange(in *DateRange, now time.Time) (DateRange, error) {
	out := DateRange{
		StartDate: now.AddDate(0, 0, -DefaultLookbackDays).Format(time.DateOnly),
		EndDate:   now.Format(time.DateOnly),
	}

	if in != nil {
		if in.StartDate != "" {
			out.StartDate = in.StartDate
		}
		if in.EndDate != "" {
			out.EndDate = in.EndDate
		}
	}

	start, err := time.Parse(time.DateOnly, out.StartDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid startDate %q: %w", out.StartDate, err)
	}

	end, err := time.Parse(time.DateOnly, out.EndDate)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid endDate %q: %w", out.EndDate, err)
	}

	if start.After(end) {
		return DateRange{}, fmt.Errorf("startDate %s is after endDate %s", out.StartDate, out.EndDate)
	}

	if !WithinMaxSpan(start, end) {
		return DateRange{}, fmt.Errorf("%w: %s to %s", ErrDateRangeTooLong, out.StartDate, out.EndDate)
	}

	return out, nil
}

func WithinMaxSpan(start, end time.Time) bool {
	return !end.After(start.AddDate(0, 0, MaxDateRangeDays))
}
