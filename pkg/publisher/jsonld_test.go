package publisher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildNewsArticle_CompleteRecord(t *testing.T) {
	doc := BuildNewsArticle(JSONLDInput{
		Headline:        "NVIDIA Blackwell B200: A New Titan for AI Supercomputing",
		Slug:            "nvidia-blackwell-b200-ai-supercomputing-titan",
		BaseURL:         "https://example.com",
		AuthorName:      "Tech Analyst Pro",
		PublishedISO:    "2024-03-18T10:00:00Z",
		ModifiedISO:     "2024-03-19T11:30:00Z",
		ImageURL:        "https://example.com/images/nvidia.jpg",
		MetaDescription: "NVIDIA's Blackwell B200 GPU sets a new standard.",
		BodyMarkdown:    "## The Blackwell Architecture\n\nNVIDIA today announced **Blackwell**. It's *fast*.",
		Keywords:        []string{"NVIDIA Blackwell B200", "AI GPU"},
		PrimaryTopic:    "AI Hardware",
		Site:            Organization{Name: "Dacoola", LogoURL: "https://example.com/logo.png"},
	})

	assert.Equal(t, "NewsArticle", doc["@type"])
	assert.Equal(t, "NVIDIA Blackwell B200: A New Titan for AI Supercomputing", doc["headline"])
	assert.Contains(t, doc["articleBody"], "NVIDIA today announced Blackwell. It's fast.")
	assert.Equal(t, "2024-03-18T10:00:00Z", doc["datePublished"])
	assert.Equal(t, "2024-03-19T11:30:00Z", doc["dateModified"])
	assert.Equal(t, []string{"NVIDIA Blackwell B200", "AI GPU"}, doc["keywords"])
	require.Contains(t, doc, "image")
	require.Contains(t, doc, "about")
}

func TestBuildNewsArticle_MinimalRecordOmitsOptionalFields(t *testing.T) {
	doc := BuildNewsArticle(JSONLDInput{
		Headline: "Quick Tech Note",
		Slug:     "quick-tech-note",
		BaseURL:  "https://example.com",
		Site:     Organization{Name: "Dacoola"},
	})
	assert.NotContains(t, doc, "datePublished")
	assert.NotContains(t, doc, "dateModified")
	assert.NotContains(t, doc, "image")
	assert.NotContains(t, doc, "keywords")
	assert.NotContains(t, doc, "about")
}

func TestBuildNewsArticle_InvalidDateOmitsBothDates(t *testing.T) {
	doc := BuildNewsArticle(JSONLDInput{
		Headline:     "Article With Bad Date",
		Slug:         "article-bad-date",
		BaseURL:      "https://example.com",
		PublishedISO: "NOT_A_VALID_DATE",
		ImageURL:     "http://example.com/image.png",
		BodyMarkdown: "Some content.",
		Site:         Organization{Name: "Dacoola"},
	})
	assert.NotContains(t, doc, "datePublished")
	assert.NotContains(t, doc, "dateModified")
}

func TestBuildNewsArticle_ValidPublishedInvalidModifiedFallsBackToPublished(t *testing.T) {
	doc := BuildNewsArticle(JSONLDInput{
		Headline:     "Article",
		Slug:         "article",
		BaseURL:      "https://example.com",
		PublishedISO: "2024-03-18T10:00:00Z",
		ModifiedISO:  "garbage",
		Site:         Organization{Name: "Dacoola"},
	})
	assert.Equal(t, "2024-03-18T10:00:00Z", doc["datePublished"])
	assert.Equal(t, "2024-03-18T10:00:00Z", doc["dateModified"])
}

func TestStripMarkdownHTML_RemovesMarkupAndPlaceholders(t *testing.T) {
	out := StripMarkdownHTML("## Heading\n\n<script>evil()</script>A **bold** [link](http://x) <!-- IMAGE_PLACEHOLDER: x -->done.")
	assert.NotContains(t, out, "evil")
	assert.NotContains(t, out, "**")
	assert.NotContains(t, out, "IMAGE_PLACEHOLDER")
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "link")
}

func TestTruncateAtWordBoundary_DoesNotCutMidWord(t *testing.T) {
	text := "one two three four five six seven eight nine ten"
	out := TruncateAtWordBoundary(text, 20)
	assert.True(t, strings.HasSuffix(out, "..."))
	trimmed := strings.TrimSuffix(out, "...")
	assert.False(t, strings.HasSuffix(trimmed, " "))
	for _, word := range strings.Fields(trimmed) {
		assert.Contains(t, text, word)
	}
}

func TestTruncateAtWordBoundary_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short", TruncateAtWordBoundary("short", 20))
}
