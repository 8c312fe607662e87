package authenticating

import (
	"errors"
)

var (
	ErrMissingToken  = errors.New("authorization header is required")
	ErrMissingBearer = errors.New("bearer token is required")
	ErrInvalidToken  = errors.New("invalid token")
	ErrExpiredToken  = errors.New("token expired")
	ErrMissingOwner  = errors.New("token has no user identity")
)

// IsAuthorizationError verifica se o erro está relacionado ao token do chamador
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrMissingBearer) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrExpiredToken) ||
		errors.Is(err, ErrMissingOwner)
}
