package imap

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldreach/inboxstack/internal/errors"
)

func TestClassifyConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode errors.Code
	}{
		{"tls handshake", pkgerrors.New("tls: handshake failure"), errors.CodeSSLError},
		{"certificate", pkgerrors.New("x509: certificate signed by unknown authority"), errors.CodeSSLError},
		{"unknown host", pkgerrors.New("dial tcp: lookup imap.example.com: no such host"), errors.CodeConnectionFailed},
		{"refused", pkgerrors.New("dial tcp 10.0.0.1:993: connection refused"), errors.CodeConnectionFailed},
		{"timeout", pkgerrors.New("dial tcp 10.0.0.1:993: i/o timeout"), errors.CodeConnectionFailed},
		{"auth in banner", pkgerrors.New("server said: AUTHENTICATE failed"), errors.CodeAuthFailed},
		{"unrecognized", pkgerrors.New("something odd happened"), errors.CodeConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrievalErr := classifyConnectionError(tt.err)
			require.NotNil(t, retrievalErr)
			assert.Equal(t, tt.wantCode, retrievalErr.Code)
			assert.ErrorIs(t, retrievalErr, tt.err)
		})
	}
}

func TestClassifyConnectionError_Nil(t *testing.T) {
	assert.Nil(t, classifyConnectionError(nil))
}

func TestClassifyLoginError_AlwaysAuthFailed(t *testing.T) {
	// Post-connect failures are about the credentials, whatever the text says
	retrievalErr := classifyLoginError(pkgerrors.New("NO [SERVERBUG] internal error"))
	require.NotNil(t, retrievalErr)
	assert.Equal(t, errors.CodeAuthFailed, retrievalErr.Code)
}

func TestClassifyFetchError(t *testing.T) {
	dropped := classifyFetchError(pkgerrors.New("read tcp: connection reset by peer"), "error fetching envelopes")
	require.NotNil(t, dropped)
	assert.Equal(t, errors.CodeConnectionFailed, dropped.Code)

	other := classifyFetchError(pkgerrors.New("BAD parse error"), "error fetching envelopes")
	require.NotNil(t, other)
	assert.Equal(t, errors.CodeFetchError, other.Code)
	assert.Equal(t, "error fetching envelopes", other.Message)
}
