package mimeutil

import (
	"encoding/base64"
	"regexp"
	"strings"
)

// RFC 2047 encoded word: =?charset?encoding?payload?=
var encodedWordRegex = regexp.MustCompile(`=\?([^?]+)\?([BbQq])\?([^?]*)\?=`)

// DecodeHeader expands every RFC 2047 encoded word in a header value.
// Malformed encoded words are left untouched; header input is adversarial and
// a bad token must never take down the whole request.
func DecodeHeader(header string) string {
	if !strings.Contains(header, "=?") {
		return header
	}

	return encodedWordRegex.ReplaceAllStringFunc(header, func(match string) string {
		groups := encodedWordRegex.FindStringSubmatch(match)
		if groups == nil {
			return match
		}

		decoded, ok := decodeEncodedWord(groups[1], groups[2], groups[3])
		if !ok {
			return match
		}
		return decoded
	})
}

func decodeEncodedWord(charset, encoding, payload string) (string, bool) {
	switch strings.ToUpper(encoding) {
	case "B":
		raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
		if err != nil {
			return "", false
		}
		return DecodeCharset(raw, charset), true

	case "Q":
		raw, ok := decodeQHeaderPayload(payload)
		if !ok {
			return "", false
		}
		return DecodeCharset(raw, charset), true
	}

	return "", false
}

// decodeQHeaderPayload handles the Q variant of RFC 2047. Unlike body
// quoted-printable, underscore maps to a literal space before the =XX hex
// escapes are substituted.
func decodeQHeaderPayload(payload string) ([]byte, bool) {
	out := make([]byte, 0, len(payload))

	for i := 0; i < len(payload); i++ {
		switch c := payload[i]; c {
		case '_':
			out = append(out, ' ')
		case '=':
			if i+2 >= len(payload) {
				return nil, false
			}
			b, ok := hexByte(payload[i+1], payload[i+2])
			if !ok {
				return nil, false
			}
			out = append(out, b)
			i += 2
		default:
			out = append(out, c)
		}
	}

	return out, true
}

func hexByte(hi, lo byte) (byte, bool) {
	h, ok := hexNibble(hi)
	if !ok {
		return 0, false
	}
	l, ok := hexNibble(lo)
	if !ok {
		return 0, false
	}
	return h<<4 | l, true
}

func hexNibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}
