package dedup

import (
	"regexp"
	"strings"
)

// imageCreditLineRE strips trailing "Image credit: ..." / "Photo by ... on
// Unsplash ..." attribution lines, pinned from the predecessor's advanced
// text cleaner.
var imageCreditLineRE = regexp.MustCompile(`(?im)^\s*(image credit:.*|photo by .*(on unsplash)?.*)$`)

var whitespaceRE = regexp.MustCompile(`\s+`)

// AdvancedClean normalizes text before it is measured or embedded: strip
// image/photo credit lines, collapse whitespace, and trim.
func AdvancedClean(text string) string {
	text = imageCreditLineRE.ReplaceAllString(text, "")
	text = whitespaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// MaxSnippetChars is the default prefix length taken from raw scraped text
// when building the classification text, per spec §4.3.
const MaxSnippetChars = 2000

// BuildClassificationText assembles the text used for embedding/dedup
// classification from title, summary, and a raw-text prefix, following the
// predecessor's fallback chain: prefer final page H1 over initial title,
// processed summary over a generated meta description-shaped summary, and
// truncate the raw text to maxSnippet chars with a trailing ellipsis.
func BuildClassificationText(title, summary, rawText string, maxSnippet int) string {
	if maxSnippet <= 0 {
		maxSnippet = MaxSnippetChars
	}
	var b strings.Builder
	if title != "" {
		b.WriteString(title)
		b.WriteString(". ")
	}
	if summary != "" {
		b.WriteString(summary)
		b.WriteString(". ")
	}
	if rawText != "" {
		snippet := rawText
		if len(snippet) > maxSnippet {
			snippet = snippet[:maxSnippet] + "..."
		}
		b.WriteString(snippet)
	}
	return AdvancedClean(b.String())
}
