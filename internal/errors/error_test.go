package errors

import (
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrievalError_ErrorIncludesCause(t *testing.T) {
	cause := pkgerrors.New("connection reset")
	err := NewRetrievalError(CodeConnectionFailed, "lost connection to the mail server", cause)

	assert.Equal(t, "lost connection to the mail server: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestRetrievalError_ErrorWithoutCause(t *testing.T) {
	err := NewRetrievalError(CodeFetchError, "could not decode message content", nil)
	assert.Equal(t, "could not decode message content", err.Error())
}

func TestAsRetrievalError_PreservesTypedError(t *testing.T) {
	typed := NewRetrievalError(CodeAuthFailed, "rejected", nil)
	wrapped := pkgerrors.Wrap(typed, "while listing")

	got := AsRetrievalError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, CodeAuthFailed, got.Code)
}

func TestAsRetrievalError_WrapsUnknownAsFetchError(t *testing.T) {
	got := AsRetrievalError(pkgerrors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, CodeFetchError, got.Code)
}

func TestAsRetrievalError_NilStaysNil(t *testing.T) {
	assert.Nil(t, AsRetrievalError(nil))
}
