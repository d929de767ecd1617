package errors

import "github.com/pkg/errors"

var (
	// common errors
	ErrUserIDNotSet = errors.New("userId not set on context")

	// credential errors
	ErrCredentialNotFound = errors.New("mailbox credential not found")
	ErrCredentialInactive = errors.New("mailbox credential is not active")
)

// Code is a stable machine-readable error code surfaced to API callers.
type Code string

const (
	CodeNotAuthenticated Code = "NOT_AUTHENTICATED"
	CodeNoIntegration    Code = "NO_INTEGRATION"
	CodeAuthFailed       Code = "AUTH_FAILED"
	CodeConnectionFailed Code = "CONNECTION_FAILED"
	CodeSSLError         Code = "SSL_ERROR"
	CodeFetchError       Code = "FETCH_ERROR"
)

// RetrievalError pairs a taxonomy code with a user-facing message. The
// underlying cause is kept for logs and traces but never surfaced raw.
type RetrievalError struct {
	Code    Code
	Message string
	Cause   error
}

func (e *RetrievalError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RetrievalError) Unwrap() error {
	return e.Cause
}

func NewRetrievalError(code Code, message string, cause error) *RetrievalError {
	return &RetrievalError{Code: code, Message: message, Cause: cause}
}

// AsRetrievalError returns the typed error if err carries one, otherwise
// wraps it as a generic FETCH_ERROR so callers always get a classified code.
func AsRetrievalError(err error) *RetrievalError {
	if err == nil {
		return nil
	}
	var re *RetrievalError
	if errors.As(err, &re) {
		return re
	}
	return NewRetrievalError(CodeFetchError, "failed to fetch emails", err)
}
