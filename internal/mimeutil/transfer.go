package mimeutil

import (
	"encoding/base64"
	"strings"
)

// DecodeTransfer decodes a body payload according to its declared transfer
// encoding, then interprets the bytes with the declared charset. Unknown or
// identity encodings (7bit, 8bit, binary) go straight to charset decoding.
func DecodeTransfer(payload, encoding, charset string) string {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return DecodeBase64Body(payload, charset)
	case "quoted-printable":
		return DecodeQuotedPrintableBody(payload, charset)
	default:
		return DecodeCharset([]byte(payload), charset)
	}
}

// DecodeQuotedPrintableBody strips soft line breaks and substitutes =XX hex
// escapes. Underscores are NOT remapped to spaces here; that rule only applies
// to the RFC 2047 Q header variant. Malformed escapes are carried through
// verbatim instead of failing the message.
func DecodeQuotedPrintableBody(payload, charset string) string {
	out := make([]byte, 0, len(payload))

	for i := 0; i < len(payload); i++ {
		c := payload[i]
		if c != '=' {
			out = append(out, c)
			continue
		}

		// Soft line break: '=' immediately followed by a line ending
		if i+1 < len(payload) && payload[i+1] == '\n' {
			i++
			continue
		}
		if i+2 < len(payload) && payload[i+1] == '\r' && payload[i+2] == '\n' {
			i += 2
			continue
		}

		if i+2 < len(payload) {
			if b, ok := hexByte(payload[i+1], payload[i+2]); ok {
				out = append(out, b)
				i += 2
				continue
			}
		}

		// Dangling or malformed escape, keep the literal byte
		out = append(out, c)
	}

	return DecodeCharset(out, charset)
}

// DecodeBase64Body strips whitespace and decodes. When the payload is not
// valid base64 the original text is returned so the caller still has
// something to show.
func DecodeBase64Body(payload, charset string) string {
	cleaned := stripWhitespace(payload)

	raw, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(cleaned, "="))
		if err != nil {
			return payload
		}
	}

	return DecodeCharset(raw, charset)
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
}
