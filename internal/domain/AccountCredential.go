package domain

import (
	"time"
)

// AccountCredential é o conjunto de tokens e identificadores de uma conta Pinterest vinculada
type AccountCredential struct {
	ID             string     `json:"id"`
	OwnerID        string     `json:"user_id"`
	Name           string     `json:"name"`
	Username       string     `json:"username"`
	AvatarURL      *string    `json:"avatar_url"`
	AccessToken    string     `json:"-"`
	RefreshToken   *string    `json:"-"`
	AppID          string     `json:"app_id"`
	AppSecret      *string    `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at"`
	AdAccountID    *string    `json:"ad_account_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CanRefresh indica se existe material suficiente para a troca de refresh token
func (c *AccountCredential) CanRefresh() bool {
	return c.HasRefreshToken() && c.HasAppSecret()
}

func (c *AccountCredential) HasRefreshToken() bool {
	return c.RefreshToken != nil && *c.RefreshToken != ""
}

func (c *AccountCredential) HasAppSecret() bool {
	return c.AppSecret != nil && *c.AppSecret != ""
}

func (c *AccountCredential) HasAccessToken() bool {
	return c.AccessToken != ""
}

func (c *AccountCredential) GetAdAccountID() string {
	if c.AdAccountID == nil {
		return ""
	}
	return *c.AdAccountID
}

// CredentialUpdate é uma atualização parcial: apenas campos não nulos são gravados
type CredentialUpdate struct {
	AccessToken    *string
	RefreshToken   *string
	TokenExpiresAt *time.Time
}

func (u CredentialUpdate) IsEmpty() bool {
	return u.AccessToken == nil && u.RefreshToken == nil && u.TokenExpiresAt == nil
}

// Apply aplica a atualização na credencial em memória
func (u CredentialUpdate) Apply(c *AccountCredential, updatedAt time.Time) {
	if u.AccessToken != nil {
		c.AccessToken = *u.AccessToken
	}
	if u.RefreshToken != nil {
		refreshToken := *u.RefreshToken
		c.RefreshToken = &refreshToken
	}
	if u.TokenExpiresAt != nil {
		expiresAt := *u.TokenExpiresAt
		c.TokenExpiresAt = &expiresAt
	}
	c.UpdatedAt = updatedAt
}

// TokenPair é o resultado de uma rotação de tokens bem sucedida
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type AccountResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Username        string     `json:"username"`
	AvatarURL       *string    `json:"avatarUrl"`
	AppID           string     `json:"appId"`
	AdAccountID     *string    `json:"adAccountId"`
	HasRefreshToken bool       `json:"hasRefreshToken"`
	TokenExpiresAt  *time.Time `json:"tokenExpiresAt"`
	NeedsRefresh    bool       `json:"needsRefresh"`
	CreatedAt       time.Time  `json:"createdAt"`
}
