package imap

import (
	"strings"

	"github.com/coldreach/inboxstack/internal/errors"
)

// Connection-level failures are classified into stable codes by inspecting
// the underlying error text; the raw error never reaches the caller.

var sslErrorMarkers = []string{
	"tls",
	"ssl",
	"certificate",
	"handshake",
	"x509",
}

var connectionErrorMarkers = []string{
	"no such host",
	"connection refused",
	"connection reset",
	"network is unreachable",
	"i/o timeout",
	"timeout",
	"eof",
	"connection closed",
}

var authErrorMarkers = []string{
	"authentication",
	"authenticate",
	"login",
	"credentials",
	"password",
	"authorizationfailed",
}

func classifyConnectionError(err error) *errors.RetrievalError {
	if err == nil {
		return nil
	}

	message := strings.ToLower(err.Error())

	for _, marker := range sslErrorMarkers {
		if strings.Contains(message, marker) {
			return errors.NewRetrievalError(errors.CodeSSLError,
				"secure connection to the mail server failed", err)
		}
	}

	for _, marker := range connectionErrorMarkers {
		if strings.Contains(message, marker) {
			return errors.NewRetrievalError(errors.CodeConnectionFailed,
				"could not reach the mail server, check the server settings", err)
		}
	}

	for _, marker := range authErrorMarkers {
		if strings.Contains(message, marker) {
			return errors.NewRetrievalError(errors.CodeAuthFailed,
				"the mail server rejected the credentials, check the email password", err)
		}
	}

	return errors.NewRetrievalError(errors.CodeConnectionFailed,
		"could not reach the mail server, check the server settings", err)
}

// classifyLoginError always maps to AUTH_FAILED; the server already accepted
// the connection, so a failure here is about the credentials.
func classifyLoginError(err error) *errors.RetrievalError {
	if err == nil {
		return nil
	}
	return errors.NewRetrievalError(errors.CodeAuthFailed,
		"the mail server rejected the credentials, check the email password", err)
}

func classifyFetchError(err error, message string) *errors.RetrievalError {
	if err == nil {
		return nil
	}

	lowered := strings.ToLower(err.Error())
	for _, marker := range connectionErrorMarkers {
		if strings.Contains(lowered, marker) {
			return errors.NewRetrievalError(errors.CodeConnectionFailed,
				"lost connection to the mail server", err)
		}
	}

	return errors.NewRetrievalError(errors.CodeFetchError, message, err)
}
