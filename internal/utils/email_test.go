package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractLocalPartFromEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"plain address", "jane.doe@example.com", "jane.doe"},
		{"angle brackets", "Jane Doe <jane@example.com>", "jane"},
		{"no at sign", "not-an-address", "not-an-address"},
		{"empty", "", ""},
		{"surrounding whitespace", "  jane@example.com  ", "jane"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractLocalPartFromEmail(tt.email))
		})
	}
}

func TestExtractDomainFromEmail(t *testing.T) {
	assert.Equal(t, "example.com", ExtractDomainFromEmail("jane@Example.COM"))
	assert.Equal(t, "", ExtractDomainFromEmail("not-an-address"))
	assert.Equal(t, "", ExtractDomainFromEmail(""))
}
