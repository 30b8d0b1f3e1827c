package publisher

import (
	"regexp"
	"strings"
	"time"
)

const (
	maxArticleBodyForJSONLD = 3000
	maxKeywordsForJSONLD    = 15
)

var (
	scriptTagRE     = regexp.MustCompile(`(?is)<script.*?>.*?</script>`)
	styleTagRE      = regexp.MustCompile(`(?is)<style.*?>.*?</style>`)
	htmlTagRE       = regexp.MustCompile(`<[^>]+>`)
	mdHeadingRE     = regexp.MustCompile(`(?m)^\s*#{1,6}\s+`)
	mdLinkRE        = regexp.MustCompile(`\[(.*?)\]\(.*?\)`)
	mdImageRE       = regexp.MustCompile(`!\[(.*?)\]\(.*?\)`)
	mdBoldStarRE    = regexp.MustCompile(`\*\*([^*]+?)\*\*`)
	mdBoldUnderRE   = regexp.MustCompile(`__([^_]+?)__`)
	mdItalicStarRE  = regexp.MustCompile(`\*([^*]+?)\*`)
	mdItalicUnderRE = regexp.MustCompile(`_([^_]+?)_`)
	mdInlineCodeRE  = regexp.MustCompile("`(.*?)`")
	mdFencedCodeRE  = regexp.MustCompile("(?s)```[\\s\\S]*?```")
	mdBlockquoteRE  = regexp.MustCompile(`(?m)^\s*>\s*`)
	mdBulletRE      = regexp.MustCompile(`(?m)^\s*[*\-+]\s+`)
	mdNumberedRE    = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	imagePlaceRE    = regexp.MustCompile(`(?s)<!-- IMAGE_PLACEHOLDER:.*?-->`)
	adPlaceRE       = regexp.MustCompile(`<!-- DACOOLA_IN_ARTICLE_AD_HERE -->`)
	multiSpaceRE    = regexp.MustCompile(`\s{2,}`)
)

// StripMarkdownHTML reduces a markdown/HTML article body to plain text for
// embedding in structured data: strips script/style blocks, HTML tags,
// markdown syntax, and known placeholder comments, then collapses runs of
// whitespace.
func StripMarkdownHTML(text string) string {
	if text == "" {
		return ""
	}
	text = scriptTagRE.ReplaceAllString(text, "")
	text = styleTagRE.ReplaceAllString(text, "")
	text = htmlTagRE.ReplaceAllString(text, " ")
	text = mdHeadingRE.ReplaceAllString(text, "")
	text = mdLinkRE.ReplaceAllString(text, "$1")
	text = mdImageRE.ReplaceAllString(text, "$1")
	text = mdBoldStarRE.ReplaceAllString(text, "$1")
	text = mdBoldUnderRE.ReplaceAllString(text, "$1")
	text = mdItalicStarRE.ReplaceAllString(text, "$1")
	text = mdItalicUnderRE.ReplaceAllString(text, "$1")
	text = mdInlineCodeRE.ReplaceAllString(text, "$1")
	text = mdFencedCodeRE.ReplaceAllString(text, "")
	text = mdBlockquoteRE.ReplaceAllString(text, "")
	text = mdBulletRE.ReplaceAllString(text, "")
	text = mdNumberedRE.ReplaceAllString(text, "")
	text = imagePlaceRE.ReplaceAllString(text, "")
	text = adPlaceRE.ReplaceAllString(text, "")
	text = multiSpaceRE.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// TruncateAtWordBoundary truncates text to maxLength, preferring to cut at
// the last space within 50 chars of the limit so words are not split, and
// appending an ellipsis whenever truncation occurred.
func TruncateAtWordBoundary(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	truncated := text[:maxLength]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace != -1 && lastSpace > maxLength-50 {
		return strings.TrimSpace(truncated[:lastSpace]) + "..."
	}
	return strings.TrimSpace(truncated) + "..."
}

// Organization describes the publisher.name/logo fields shared by every
// NewsArticle document.
type Organization struct {
	Name    string
	LogoURL string
}

// JSONLDInput gathers everything needed to synthesize one article's
// NewsArticle structured data.
type JSONLDInput struct {
	Headline        string
	Slug            string
	BaseURL         string
	AuthorName      string
	PublishedISO    string
	ModifiedISO     string
	ImageURL        string
	MetaDescription string
	BodyMarkdown    string
	Keywords        []string
	PrimaryTopic    string
	Site            Organization
}

// BuildNewsArticle synthesizes a schema.org NewsArticle object as a plain
// map, ready for JSON encoding into a <script type="application/ld+json">
// tag. Optional fields are included only when they parse/validate cleanly;
// dateModified is never emitted without datePublished.
func BuildNewsArticle(in JSONLDInput) map[string]any {
	headline := in.Headline
	if headline == "" {
		headline = "Untitled Tech Article"
	}

	author := in.AuthorName
	if author == "" {
		author = "Dacoola AI Team"
	}

	bodyPlain := StripMarkdownHTML(in.BodyMarkdown)
	bodyForJSONLD := TruncateAtWordBoundary(bodyPlain, maxArticleBodyForJSONLD)
	wordCount := 0
	if strings.TrimSpace(bodyPlain) != "" {
		wordCount = len(strings.Fields(bodyPlain))
	}

	description := in.MetaDescription
	if description == "" {
		description = TruncateAtWordBoundary(headline, 160)
	}

	datePublished := parseISOUTC(in.PublishedISO)
	dateModified := ""
	if datePublished != "" {
		if m := parseISOUTC(in.ModifiedISO); m != "" {
			dateModified = m
		} else {
			dateModified = datePublished
		}
	}

	doc := map[string]any{
		"@context": "https://schema.org",
		"@type":    "NewsArticle",
		"headline": headline,
		"mainEntityOfPage": map[string]any{
			"@type": "WebPage",
			"@id":   CanonicalURL(in.BaseURL, in.Slug),
		},
		"author": map[string]any{"@type": "Person", "name": author},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  in.Site.Name,
			"logo":  map[string]any{"@type": "ImageObject", "url": in.Site.LogoURL},
		},
		"description": description,
		"articleBody": bodyForJSONLD,
		"wordCount":   wordCount,
		"isPartOf":    map[string]any{"@type": "WebSite", "name": in.Site.Name, "url": in.BaseURL},
	}

	keywords := cleanKeywordsForJSONLD(in.Keywords)
	if len(keywords) > 0 {
		doc["keywords"] = keywords
	}
	if datePublished != "" {
		doc["datePublished"] = datePublished
	}
	if dateModified != "" {
		doc["dateModified"] = dateModified
	}
	if in.ImageURL != "" && strings.HasPrefix(in.ImageURL, "http") {
		doc["image"] = []map[string]any{{"@type": "ImageObject", "url": in.ImageURL}}
	}
	if in.PrimaryTopic != "" {
		doc["about"] = []map[string]any{{"@type": "Thing", "name": in.PrimaryTopic}}
	}
	return doc
}

func cleanKeywordsForJSONLD(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) == "" {
			continue
		}
		out = append(out, k)
		if len(out) == maxKeywordsForJSONLD {
			break
		}
	}
	return out
}

// parseISOUTC parses an ISO-8601 timestamp (accepting a trailing "Z") and
// re-renders it as a timezone-aware UTC ISO-8601 string; it returns "" on
// any parse failure so the caller can omit the field entirely.
func parseISOUTC(raw string) string {
	if raw == "" {
		return ""
	}
	candidates := []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"}
	for _, layout := range candidates {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return ""
}
