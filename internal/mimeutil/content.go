package mimeutil

import "strings"

var htmlMarkers = []string{"<html", "<body", "<div", "<p>"}

// LooksLikeHTML is the last-resort classifier for payloads whose structure
// could not be determined: any characteristic markup token counts.
func LooksLikeHTML(content string) bool {
	lowered := strings.ToLower(content)
	for _, marker := range htmlMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}
