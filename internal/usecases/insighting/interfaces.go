package insighting

import (
	"context"

	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock_insighting.go -package=mocks

// Request é o corpo de POST /v1/pinterest-analytics
type Request struct {
	AccountID string            `json:"accountId"`
	Endpoint  string            `json:"endpoint"`
	DateRange *domain.DateRange `json:"dateRange,omitempty"`
}

// Fallback é devolvido com HTTP 200 quando o Pinterest falha; o dashboard troca por dados sintéticos
type Fallback struct {
	Error    string `json:"error"`
	Fallback bool   `json:"fallback"`
	Message  string `json:"message"`
}

// Result carrega exatamente um dos dois: o payload normalizado ou o envelope de fallback
type Result struct {
	Payload  interface{}
	Fallback *Fallback
}

// Body devolve o que deve ser serializado na resposta
func (r *Result) Body() interface{} {
	if r.Fallback != nil {
		return r.Fallback
	}
	return r.Payload
}

// Orchestrator é o ponto de entrada da rota de proxy
type Orchestrator interface {
	Handle(ctx context.Context, authorization string, request Request) (*Result, error)
}

// Dashboard lê snapshot, depois Pinterest, depois dados sintéticos
type Dashboard interface {
	GetAnalytics(ctx context.Context, ownerID, accountID string, dateRange *domain.DateRange) (*domain.AnalyticsResponse, error)
	GetAudience(ctx context.Context, ownerID, accountID string) (*domain.AudienceResponse, error)
}

// Syncer atualiza os snapshots de uma conta. Usado pelo agendador.
type Syncer interface {
	SyncAccount(ctx context.Context, credential *domain.AccountCredential) (*SyncResult, error)
}

type SyncResult struct {
	AccountID      string `json:"accountId"`
	AnalyticsDays  int    `json:"analyticsDays"`
	AudienceSynced bool   `json:"audienceSynced"`
	TokenRefreshed bool   `json:"tokenRefreshed"`
	AnalyticsError string `json:"analyticsError,omitempty"`
	AudienceError  string `json:"audienceError,omitempty"`
}
