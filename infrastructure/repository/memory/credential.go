package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/pinterest-insights-api/infrastructure/repository"
	"github.com/vfg2006/pinterest-insights-api/internal/domain"
)

// CredentialRepository é uma implementação em memória de repository.CredentialRepository
type CredentialRepository struct {
	mu          sync.RWMutex
	credentials map[string]*domain.AccountCredential
	now         func() time.Time
}

func NewCredentialRepository() *CredentialRepository {
	return &CredentialRepository{
		credentials: make(map[string]*domain.AccountCredential),
		now:         time.Now,
	}
}

// WithClock substitui o relógio usado para carimbar updated_at
func (r *CredentialRepository) WithClock(now func() time.Time) *CredentialRepository {
	r.now = now
	return r
}

// Put grava a credencial como está. Vincular contas acontece fora deste serviço.
func (r *CredentialRepository) Put(credential *domain.AccountCredential) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.credentials[credential.ID] = cloneCredential(credential)
}

func (r *CredentialRepository) Load(_ context.Context, accountID, ownerID string) (*domain.AccountCredential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, exists := r.credentials[accountID]
	if !exists || ownerID == "" || credential.OwnerID != ownerID {
		return nil, nil
	}

	return cloneCredential(credential), nil
}

func (r *CredentialRepository) LoadByID(_ context.Context, accountID string) (*domain.AccountCredential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credential, exists := r.credentials[accountID]
	if !exists {
		return nil, nil
	}

	return cloneCredential(credential), nil
}

func (r *CredentialRepository) Save(_ context.Context, accountID string, update domain.CredentialUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	credential, exists := r.credentials[accountID]
	if !exists {
		return repository.ErrCredentialNotFound
	}

	update.Apply(credential, r.now().UTC())
	return nil
}

func (r *CredentialRepository) SaveIfUnchanged(_ context.Context, accountID string, expectedUpdatedAt time.Time, update domain.CredentialUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	credential, exists := r.credentials[accountID]
	if !exists || !credential.UpdatedAt.Equal(expectedUpdatedAt) {
		return repository.ErrCredentialConflict
	}

	update.Apply(credential, r.now().UTC())
	return nil
}

func (r *CredentialRepository) ListByOwner(_ context.Context, ownerID string) ([]*domain.AccountCredential, error) {
	return r.list(func(c *domain.AccountCredential) bool { return ownerID != "" && c.OwnerID == ownerID }), nil
}

func (r *CredentialRepository) ListAll(_ context.Context) ([]*domain.AccountCredential, error) {
	return r.list(func(*domain.AccountCredential) bool { return true }), nil
}

func (r *CredentialRepository) list(match func(*domain.AccountCredential) bool) []*domain.AccountCredential {
	r.mu.RLock()
	defer r.mu.RUnlock()

	credentials := make([]*domain.AccountCredential, 0)
	for _, credential := range r.credentials {
		if match(credential) {
			credentials = append(credentials, cloneCredential(credential))
		}
	}

	sort.Slice(credentials, func(i, j int) bool {
		if credentials[i].CreatedAt.Equal(credentials[j].CreatedAt) {
			return credentials[i].ID < credentials[j].ID
		}
		return credentials[i].CreatedAt.Before(credentials[j].CreatedAt)
	})

	return credentials
}

func cloneCredential(c *domain.AccountCredential) *domain.AccountCredential {
	out := *c
	out.AvatarURL = cloneString(c.AvatarURL)
	out.RefreshToken = cloneString(c.RefreshToken)
	out.AppSecret = cloneString(c.AppSecret)
	out.AdAccountID = cloneString(c.AdAccountID)
	if c.TokenExpiresAt != nil {
		t := *c.TokenExpiresAt
		out.TokenExpiresAt = &t
	}
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ repository.CredentialRepository = (*CredentialRepository)(nil)
