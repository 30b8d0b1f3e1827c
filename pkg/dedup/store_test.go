package dedup

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEmbedder returns a pre-assigned vector per input text, letting
// tests control similarity outcomes deterministically without a real
// embedding model.
type fixedEmbedder struct {
	vectors map[string][]float32
}

func (f *fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if len(text) < defaultThresholds().MinTextLen {
		return nil, nil
	}
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 0, 1}, nil
}

func defaultThresholds() Thresholds {
	return Thresholds{Duplicate: 0.92, NearDup: 0.82, MinTextLen: 75, MaxSnippet: 2000}
}

func TestClassify_EmptyStoreAlwaysUnique(t *testing.T) {
	longText := "AI Breakthrough: researchers at a leading lab unveiled project Cognito-7, a new large language model that sets benchmarks."
	emb := &fixedEmbedder{vectors: map[string][]float32{}}
	s, err := Load(filepath.Join(t.TempDir(), "hist.json"), emb, defaultThresholds())
	require.NoError(t, err)

	v, err := s.Classify(context.Background(), "test_dup_001", longText, "", "")
	require.NoError(t, err)
	assert.False(t, v.IsDuplicate)
	assert.False(t, v.Skipped)
}

func TestClassify_NearIdenticalArticleIsDuplicate(t *testing.T) {
	textA := "AI Breakthrough: researchers at a leading lab unveiled project Cognito-7, a new large language model that sets industry benchmarks for reasoning tasks."
	textB := "Major AI Milestone: Cognito-7 sets new benchmarks as researchers unveil the large language model built for advanced reasoning tasks."
	textC := "Quantum computing startup announces a new superconducting qubit design aiming to improve error correction rates substantially."

	emb := &fixedEmbedder{vectors: map[string][]float32{
		BuildClassificationText(textA, "", "", 0): {1, 0, 0, 0},
		BuildClassificationText(textB, "", "", 0): {0.97, 0.2, 0, 0},
		BuildClassificationText(textC, "", "", 0): {0, 1, 0, 0},
	}}
	s, err := Load(filepath.Join(t.TempDir(), "hist.json"), emb, defaultThresholds())
	require.NoError(t, err)

	_, err = s.Classify(context.Background(), "test_dup_001", textA, "", "")
	require.NoError(t, err)

	v, err := s.Classify(context.Background(), "test_dup_002", textB, "", "")
	require.NoError(t, err)
	assert.True(t, v.IsDuplicate)
	assert.Equal(t, "test_dup_001", v.HighestSimilarID)

	v3, err := s.Classify(context.Background(), "test_dup_003", textC, "", "")
	require.NoError(t, err)
	assert.False(t, v3.IsDuplicate)
	assert.False(t, v3.IsNearDuplicate)
}

func TestClassify_TooShortTextIsSkipped(t *testing.T) {
	emb := &fixedEmbedder{vectors: map[string][]float32{}}
	s, err := Load(filepath.Join(t.TempDir(), "hist.json"), emb, defaultThresholds())
	require.NoError(t, err)

	v, err := s.Classify(context.Background(), "test_dup_004", "Too short.", "", "")
	require.NoError(t, err)
	assert.True(t, v.Skipped)
}

func TestClassify_DuplicateIsNotStored(t *testing.T) {
	textA := "AI Breakthrough: researchers at a leading lab unveiled project Cognito-7, a new large language model that sets industry benchmarks for reasoning tasks."
	textB := "Major AI Milestone: Cognito-7 sets new benchmarks as researchers unveil the large language model built for advanced reasoning tasks."

	emb := &fixedEmbedder{vectors: map[string][]float32{
		BuildClassificationText(textA, "", "", 0): {1, 0, 0, 0},
		BuildClassificationText(textB, "", "", 0): {0.97, 0.2, 0, 0},
	}}
	path := filepath.Join(t.TempDir(), "hist.json")
	s, err := Load(path, emb, defaultThresholds())
	require.NoError(t, err)

	_, err = s.Classify(context.Background(), "test_dup_001", textA, "", "")
	require.NoError(t, err)
	_, err = s.Classify(context.Background(), "test_dup_002", textB, "", "")
	require.NoError(t, err)

	reloaded, err := Load(path, emb, defaultThresholds())
	require.NoError(t, err)
	assert.Len(t, reloaded.entries, 1)
	assert.Equal(t, "test_dup_001", reloaded.entries[0].ArticleID)
}

func TestCosineSimilarity_ZeroNormIsZero(t *testing.T) {
	assert.Equal(t, 0.0, CosineSimilarity([]float32{0, 0, 0}, []float32{1, 2, 3}))
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{4, 5, 6}
	assert.InDelta(t, CosineSimilarity(a, b), CosineSimilarity(b, a), 1e-6)
}
