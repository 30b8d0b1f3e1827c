package publisher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

func testPaths(t *testing.T) config.Paths {
	dir := t.TempDir()
	return config.Paths{
		ArticlesDir:          filepath.Join(dir, "public", "articles"),
		MasterIndexPath:      filepath.Join(dir, "public", "all_articles.json"),
		ProcessedJSONDir:     filepath.Join(dir, "data", "processed_json"),
		PublicDir:            filepath.Join(dir, "public"),
		HistoricalEmbeddings: filepath.Join(dir, "data", "historical_embeddings.json"),
		RawWebResearchDir:    filepath.Join(dir, "data", "raw_web_research"),
		AudioDir:             filepath.Join(dir, "public", "audio"),
	}
}

func testSite() config.SiteConfig {
	return config.SiteConfig{BaseURL: "https://example.com", Name: "Dacoola", LogoURL: "https://example.com/logo.png"}
}

func TestPublisher_PublishWritesHTMLAndIndex(t *testing.T) {
	paths := testPaths(t)
	p := New(testSite(), paths)

	rec := &article.Record{
		ID:                        "art-1",
		FinalPageH1:               "A Great Tech Story",
		GeneratedTitleTag:         "A Great Tech Story - Dacoola",
		GeneratedMetaDesc:         "Summary of the story.",
		PublishedISOUTC:           "2024-03-18T10:00:00Z",
		GeneratedArticleBodyFinal: "## Intro\n\nBody text.",
		FinalKeywords:             []string{"tech", "ai"},
	}

	res, err := p.Publish(rec)
	require.NoError(t, err)
	assert.Equal(t, "a-great-tech-story", res.Slug)
	assert.Equal(t, "https://example.com/articles/a-great-tech-story.html", res.CanonicalURL)

	data, err := os.ReadFile(res.HTMLPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "A Great Tech Story")
	assert.Contains(t, string(data), "NewsArticle")

	idx, err := LoadMasterIndex(paths.MasterIndexPath)
	require.NoError(t, err)
	require.Len(t, idx.Articles, 1)
	assert.Equal(t, "art-1", idx.Articles[0].ID)
	assert.Equal(t, "articles/a-great-tech-story.html", idx.Articles[0].Link)
}

func TestPublisher_PublishPreservesExistingSlug(t *testing.T) {
	paths := testPaths(t)
	p := New(testSite(), paths)

	rec := &article.Record{ID: "art-2", Slug: "custom-slug", FinalPageH1: "Ignored For Slug"}
	res, err := p.Publish(rec)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", res.Slug)
}
