package mimeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeQuotedPrintableBody_SoftLineBreaks(t *testing.T) {
	assert.Equal(t, "foobar", DecodeQuotedPrintableBody("foo=\r\nbar", "utf-8"))
	assert.Equal(t, "foobar", DecodeQuotedPrintableBody("foo=\nbar", "utf-8"))
}

func TestDecodeQuotedPrintableBody_HexEscapes(t *testing.T) {
	assert.Equal(t, "A=B", DecodeQuotedPrintableBody("=41=3DB", "utf-8"))
	assert.Equal(t, "café", DecodeQuotedPrintableBody("caf=C3=A9", "utf-8"))
}

func TestDecodeQuotedPrintableBody_UnderscoreIsLiteral(t *testing.T) {
	// Underscore mapping is a header-only rule, bodies keep it verbatim
	assert.Equal(t, "snake_case_name", DecodeQuotedPrintableBody("snake_case_name", "utf-8"))
}

func TestDecodeQuotedPrintableBody_MalformedEscapesKept(t *testing.T) {
	assert.Equal(t, "=G1", DecodeQuotedPrintableBody("=G1", "utf-8"))
	assert.Equal(t, "trailing=", DecodeQuotedPrintableBody("trailing=", "utf-8"))
}

func TestDecodeBase64Body(t *testing.T) {
	assert.Equal(t, "Hello World", DecodeBase64Body("SGVsbG8gV29ybGQ=", "utf-8"))
}

func TestDecodeBase64Body_LineWrappedPayload(t *testing.T) {
	assert.Equal(t, "Hello World", DecodeBase64Body("SGVsbG8g\r\nV29ybGQ=", "utf-8"))
}

func TestDecodeBase64Body_MissingPadding(t *testing.T) {
	assert.Equal(t, "Hello", DecodeBase64Body("SGVsbG8", "utf-8"))
}

func TestDecodeBase64Body_InvalidPayloadReturnedVerbatim(t *testing.T) {
	payload := "this is not base64 at all!"
	assert.Equal(t, payload, DecodeBase64Body(payload, "utf-8"))
}

func TestDecodeTransfer_Dispatch(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		encoding string
		want     string
	}{
		{"base64", "SGVsbG8=", "base64", "Hello"},
		{"base64 uppercase", "SGVsbG8=", "BASE64", "Hello"},
		{"quoted-printable", "caf=C3=A9", "quoted-printable", "café"},
		{"7bit identity", "plain text", "7bit", "plain text"},
		{"8bit identity", "plain text", "8bit", "plain text"},
		{"empty encoding", "plain text", "", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeTransfer(tt.payload, tt.encoding, "utf-8"))
		})
	}
}

func TestDecodeCharset_Latin1(t *testing.T) {
	assert.Equal(t, "café", DecodeCharset([]byte{'c', 'a', 'f', 0xE9}, "iso-8859-1"))
}

func TestDecodeCharset_UnknownCharsetFallsBackToUTF8(t *testing.T) {
	assert.Equal(t, "hello", DecodeCharset([]byte("hello"), "x-no-such-charset"))
}

func TestDecodeCharset_InvalidBytesReplacedNeverRejected(t *testing.T) {
	decoded := DecodeCharset([]byte{'o', 'k', 0xFF, 0xFE}, "utf-8")
	assert.Contains(t, decoded, "ok")
	assert.Contains(t, decoded, "�")
}
