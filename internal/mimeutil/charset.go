package mimeutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/ianaindex"
)

// DecodeCharset interprets raw bytes using the declared character set and
// returns a valid UTF-8 string. Unknown charsets fall back to UTF-8; invalid
// byte sequences are substituted with the replacement rune, never rejected.
func DecodeCharset(data []byte, charset string) string {
	charset = strings.ToLower(strings.TrimSpace(charset))

	if charset == "" || charset == "utf-8" || charset == "us-ascii" || charset == "ascii" {
		return toValidUTF8(data)
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err != nil || enc == nil {
		return toValidUTF8(data)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return toValidUTF8(data)
	}
	return toValidUTF8(decoded)
}

func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	return strings.ToValidUTF8(string(data), string(utf8.RuneError))
}
