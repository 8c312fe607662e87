package tokenrefresh

import "errors"

var (
	ErrMissingAppSecret    = errors.New("app secret is not configured for this account")
	ErrMissingRefreshToken = errors.New("refresh token is not available for this account")
	// ErrRefreshInProgress indica que outra requisição detém o lock e não concluiu a tempo
	ErrRefreshInProgress = errors.New("token refresh already in progress")
	ErrCredentialGone    = errors.New("credential disappeared during refresh")
)
