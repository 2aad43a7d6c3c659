package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized means the directory authenticated the user but no employee record matches.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidCredential covers every missing, malformed, forged or expired session credential.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrMissingEmail is the cause used when the identity token carries no email claim.
	ErrMissingEmail = errors.New("identity token has no email claim")
)

// ExchangeError reports a failed authorization code exchange with the external directory.
type ExchangeError struct {
	Op  string
	Err error
}

func (e *ExchangeError) Error() string {
	if e.Err == nil {
		return "exchange: " + e.Op
	}
	return fmt.Sprintf("exchange: %s: %v", e.Op, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// NewExchangeError wraps err as an ExchangeError for the given step.
func NewExchangeError(op string, err error) *ExchangeError {
	return &ExchangeError{Op: op, Err: err}
}

// SigningError reports a failure to sign a session credential.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string { return "sign session: " + e.Err.Error() }

func (e *SigningError) Unwrap() error { return e.Err }

// IsExchangeError reports whether err (or anything it wraps) is an ExchangeError.
func IsExchangeError(err error) bool {
	var ee *ExchangeError
	return errors.As(err, &ee)
}

// IsSigningError reports whether err (or anything it wraps) is a SigningError.
func IsSigningError(err error) bool {
	var se *SigningError
	return errors.As(err, &se)
}
