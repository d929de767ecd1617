package mimeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeHeader_Base64Word(t *testing.T) {
	decoded := DecodeHeader("=?UTF-8?B?SGVsbG8gV29ybGQ=?=")
	assert.Equal(t, "Hello World", decoded)
}

func TestDecodeHeader_QWordUnderscoreIsSpace(t *testing.T) {
	decoded := DecodeHeader("=?utf-8?Q?Hello_World?=")
	assert.Equal(t, "Hello World", decoded)
}

func TestDecodeHeader_QWordHexEscape(t *testing.T) {
	decoded := DecodeHeader("=?ISO-8859-1?Q?caf=E9?=")
	assert.Equal(t, "café", decoded)
}

func TestDecodeHeader_LowercaseEncodingMarkers(t *testing.T) {
	assert.Equal(t, "Hello World", DecodeHeader("=?utf-8?b?SGVsbG8gV29ybGQ=?="))
	assert.Equal(t, "Hello World", DecodeHeader("=?utf-8?q?Hello_World?="))
}

func TestDecodeHeader_MixedPlainAndEncoded(t *testing.T) {
	decoded := DecodeHeader("Re: =?utf-8?Q?r=C3=A9ponse?= needed")
	assert.Equal(t, "Re: réponse needed", decoded)
}

func TestDecodeHeader_PlainHeaderUntouched(t *testing.T) {
	header := "Weekly sync notes"
	assert.Equal(t, header, DecodeHeader(header))
}

func TestDecodeHeader_MalformedWordsPassThrough(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"unknown encoding", "=?utf-8?X?SGVsbG8=?="},
		{"invalid base64 payload", "=?utf-8?B?not base64!?="},
		{"truncated hex escape", "=?utf-8?Q?abc=1?="},
		{"invalid hex digits", "=?utf-8?Q?abc=ZZ?="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.header, DecodeHeader(tt.header))
		})
	}
}

func TestDecodeHeader_Latin1Base64(t *testing.T) {
	// 0xE9 is é in ISO-8859-1
	decoded := DecodeHeader("=?iso-8859-1?B?Y2Fm6Q==?=")
	assert.Equal(t, "café", decoded)
}

func TestDecodeHeader_AdjacentWords(t *testing.T) {
	decoded := DecodeHeader("=?utf-8?Q?Hello_?==?utf-8?Q?World?=")
	assert.Equal(t, "Hello World", decoded)
}
