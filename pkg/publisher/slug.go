package publisher

import (
	"regexp"
	"strings"
)

const slugMaxLen = 75

var (
	slugNonAlnumRE = regexp.MustCompile(`[^\w\s-]`)
	slugHyphenRE   = regexp.MustCompile(`[-\s]+`)
)

// Slugify turns text into a stable, URL-safe slug: lowercase,
// non-alphanumeric characters dropped, runs of whitespace/hyphens
// collapsed to a single hyphen, truncated to slugMaxLen.
func Slugify(text string) string {
	if strings.TrimSpace(text) == "" {
		return "untitled-article"
	}
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugNonAlnumRE.ReplaceAllString(s, "")
	s = slugHyphenRE.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled-article"
	}
	return s
}

// CanonicalURL composes the public URL for a published article.
func CanonicalURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/articles/" + slug + ".html"
}
