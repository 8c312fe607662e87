package insighting

import "errors"

// Erros de requisição e identidade. O handler responde 400 para todos eles.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrMissingAccountID = errors.New("accountId is required")
	ErrInvalidEndpoint  = errors.New("invalid endpoint")
	ErrInvalidDateRange = errors.New("invalid dateRange")
	ErrNotFound         = errors.New("pinterest account not found")
	ErrNoCredential     = errors.New("no access token available for this account")
)

// Erros de despacho. Com fallback habilitado viram o envelope {error, fallback, message}.
var (
	ErrAdAccountRequired = errors.New("adAccountId required")
	// ErrUpstream marca falhas do Pinterest que chegam ao cliente como 400 PINTEREST_API_ERROR
	ErrUpstream = errors.New("pinterest api error")
)
