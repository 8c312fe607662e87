package account

import (
	"errors"
	"fmt"
)

var (
	ErrOwnerRequired = errors.New("owner ID is required")
	ErrFetchAccounts = errors.New("error fetching accounts from database")
)

// AccountError carrega o código de erro exposto pela API
type AccountError struct {
	Err     error
	Code    string
	Details string
}

func (e *AccountError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AccountError) Unwrap() error {
	return e.Err
}

func NewAccountError(err error, code string, details string) *AccountError {
	return &AccountError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
