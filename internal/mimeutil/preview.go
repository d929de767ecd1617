package mimeutil

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const previewMaxLength = 500

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	scriptRegex     = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	tagRegex        = regexp.MustCompile(`<[^>]*>`)
)

// PreviewText reduces an HTML (or plain) body to a short single-line preview
// for list views: script/style blocks and tags stripped, entities unescaped,
// whitespace collapsed, truncated. It always returns a string, even if empty.
func PreviewText(content string) string {
	text := htmlToText(content)
	text = whitespaceRegex.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return truncateRunes(text, previewMaxLength)
}

func htmlToText(content string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		// Degenerate markup, fall back to regex stripping
		stripped := scriptRegex.ReplaceAllString(content, " ")
		stripped = tagRegex.ReplaceAllString(stripped, " ")
		return html.UnescapeString(stripped)
	}

	doc.Find("script, style").Each(func(i int, el *goquery.Selection) {
		el.Remove()
	})

	return doc.Text()
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
