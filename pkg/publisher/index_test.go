package publisher

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMasterIndex_LoadMissingFileReturnsEmpty(t *testing.T) {
	idx, err := LoadMasterIndex(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Empty(t, idx.Articles)
}

func TestMasterIndex_UpsertSortsDescendingByPublishedDate(t *testing.T) {
	idx := &MasterIndex{}
	idx.Upsert(ArticleSummary{ID: "a", PublishedISO: "2024-01-01T00:00:00Z"})
	idx.Upsert(ArticleSummary{ID: "b", PublishedISO: "2024-06-01T00:00:00Z"})
	idx.Upsert(ArticleSummary{ID: "c", PublishedISO: "2024-03-01T00:00:00Z"})

	require.Len(t, idx.Articles, 3)
	assert.Equal(t, "b", idx.Articles[0].ID)
	assert.Equal(t, "c", idx.Articles[1].ID)
	assert.Equal(t, "a", idx.Articles[2].ID)
}

func TestMasterIndex_UnparseableDateSortsAsEpochFallback(t *testing.T) {
	idx := &MasterIndex{}
	idx.Upsert(ArticleSummary{ID: "dated", PublishedISO: "2024-01-01T00:00:00Z"})
	idx.Upsert(ArticleSummary{ID: "undated"})

	require.Len(t, idx.Articles, 2)
	assert.Equal(t, "dated", idx.Articles[0].ID)
	assert.Equal(t, "undated", idx.Articles[1].ID)
}

func TestMasterIndex_UpsertReplacesExistingID(t *testing.T) {
	idx := &MasterIndex{}
	idx.Upsert(ArticleSummary{ID: "a", Title: "First"})
	idx.Upsert(ArticleSummary{ID: "a", Title: "Updated"})

	require.Len(t, idx.Articles, 1)
	assert.Equal(t, "Updated", idx.Articles[0].Title)
}

func TestMasterIndex_SaveAndReloadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_articles.json")
	idx := &MasterIndex{}
	idx.Upsert(ArticleSummary{ID: "a", Title: "Some Article", PublishedISO: "2024-01-01T00:00:00Z"})
	require.NoError(t, idx.Save(path))

	reloaded, err := LoadMasterIndex(path)
	require.NoError(t, err)
	require.Len(t, reloaded.Articles, 1)
	assert.Equal(t, "Some Article", reloaded.Articles[0].Title)
}

func TestMasterIndex_RemoveFirstByIDIsConservative(t *testing.T) {
	idx := &MasterIndex{}
	idx.Articles = []ArticleSummary{{ID: "dup", Link: "articles/dup.html"}, {ID: "dup", Link: "articles/dup.html"}}

	removed := idx.RemoveFirstByID("dup")
	assert.True(t, removed)
	assert.Len(t, idx.Articles, 1)
}

func TestMasterIndex_RemoveFirstByLinkMatchesCaseInsensitively(t *testing.T) {
	idx := &MasterIndex{}
	idx.Articles = []ArticleSummary{{ID: "a", Link: "Articles/Slug.html"}}

	id, found := idx.RemoveFirstByLink("articles/slug.html")
	assert.True(t, found)
	assert.Equal(t, "a", id)
	assert.Empty(t, idx.Articles)
}
