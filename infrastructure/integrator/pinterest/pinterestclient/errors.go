package pinterestclient

import (
	"errors"
	"fmt"
	"net/http"

	pinterestdomain "github.com/vfg2006/pinterest-insights-api/infrastructure/integrator/pinterest/domain"
)

// ErrorKind classifica o resultado de uma chamada que não retornou 2xx
type ErrorKind string

const (
	// AuthFailure é um 401: o token foi rejeitado pelo Pinterest
	AuthFailure ErrorKind = "auth_failure"
	// UpstreamFailure cobre os demais status, erros de transporte e timeouts
	UpstreamFailure ErrorKind = "upstream_failure"
)

// Quantos bytes do corpo de erro são mantidos no UpstreamError
const maxErrorBody = 2048

type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("pinterest api %s: %v", e.Kind, e.Err)
	}

	if msg := pinterestdomain.ParseErrorMessage([]byte(e.Body)); msg != "" {
		return fmt.Sprintf("pinterest api error: %d: %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("pinterest api error: %d", e.StatusCode)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func newStatusError(statusCode int, body []byte) *UpstreamError {
	kind := UpstreamFailure
	if statusCode == http.StatusUnauthorized {
		kind = AuthFailure
	}

	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}

	return &UpstreamError{
		Kind:       kind,
		StatusCode: statusCode,
		Body:       string(body),
	}
}

func newTransportError(err error) *UpstreamError {
	return &UpstreamError{
		Kind: UpstreamFailure,
		Err:  err,
	}
}

// AsUpstreamError extrai o UpstreamError da cadeia de erros
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr, true
	}
	return nil, false
}

func IsAuthFailure(err error) bool {
	upstreamErr, ok := AsUpstreamError(err)
	return ok && upstreamErr.Kind == AuthFailure
}
