package utils

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateNanoIDWithPrefix returns ids of the form "<prefix>_<nanoid>".
func GenerateNanoIDWithPrefix(prefix string, length int) string {
	id, err := gonanoid.Generate(idAlphabet, length)
	if err != nil {
		// gonanoid only fails on a bad alphabet/length combination
		panic(err)
	}

	var sb strings.Builder
	sb.WriteString(prefix)
	sb.WriteString("_")
	sb.WriteString(id)
	return sb.String()
}
