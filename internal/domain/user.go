package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são as declarações do JWT emitido pelo provedor de autenticação do dashboard
type Claims struct {
	UserID    string `json:"user_id,omitempty"`
	UserEmail string `json:"email,omitempty"`
	Role      string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// OwnerID resolve a identidade do dono das contas: user_id ou, na falta, o subject
func (c *Claims) OwnerID() string {
	if c == nil {
		return ""
	}
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}
