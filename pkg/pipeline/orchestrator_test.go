package pipeline

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
	"github.com/Gyro1978/Dacoola-sub001/pkg/dedup"
	"github.com/Gyro1978/Dacoola-sub001/pkg/media"
	"github.com/Gyro1978/Dacoola-sub001/pkg/publisher"
	"github.com/Gyro1978/Dacoola-sub001/pkg/recordstore"
)

// fakeGateway answers every Call with a canned response keyed by which
// schema key was requested, enough to drive every analyzer/outline stage
// through a realistic success path.
type fakeGateway struct {
	boring bool
}

func (f *fakeGateway) Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error) {
	out := map[string]any{}
	for _, key := range expectSchema {
		switch key {
		case "editorial_verdict":
			if f.boring {
				out[key] = "Boring"
			} else {
				out[key] = "Interesting"
			}
		case "editorial_reason":
			out[key] = "looks fine"
		case "novelty_level":
			out[key] = "Significant"
		case "novelty_confidence":
			out[key] = 0.8
		case "breakthrough_evidence":
			out[key] = []any{}
		case "estimated_impact_scale":
			out[key] = "Specific Tech Sector"
		case "impact_magnitude_qualifier":
			out[key] = "Substantial"
		case "impact_confidence_score":
			out[key] = 0.7
		case "impact_rationale_summary":
			out[key] = "ok"
		case "hype_score":
			out[key] = 0.1
		case "substantiation_level":
			out[key] = "Well-Substantiated"
		case "recommendation_for_publication":
			out[key] = "Proceed As Is"
		case "technical_depth_level":
			out[key] = "Moderately In-Depth"
		case "language_sophistication":
			out[key] = "Appropriate (Clear & Professional)"
		case "overall_stylistic_recommendation":
			out[key] = "Publish As Is (Style)"
		case "corroboration_level":
			out[key] = "Moderately Corroborated"
		case "corroboration_confidence_score":
			out[key] = 0.6
		case "corroboration_summary_notes":
			out[key] = "ok"
		case "overall_value_excitement_score":
			out[key] = 90
		case "decision_rationale_summary":
			out[key] = "strong story"
		case "analyzed_primary_keyword":
			out[key] = "golang"
		case "secondary_lsi_keywords":
			out[key] = []any{"testing"}
		case "long_tail_question_keywords":
			out[key] = []any{}
		case "entity_keywords":
			out[key] = []any{}
		case "generated_title_tag":
			out[key] = "Go Testing Guide"
		case "generated_seo_h1":
			out[key] = "Go Testing Guide For Everyone"
		case "generated_meta_description":
			out[key] = "Learn Go testing today."
		case "headings":
			out[key] = []any{"## Intro", "## Details"}
		case "section_body":
			out[key] = "## Section\nBody text."
		default:
			out[key] = ""
		}
	}
	return out, nil
}

// nullEmbedder returns a one-hot vector in a dimension no earlier call has
// used, so two different records are never mistaken for duplicates.
type nullEmbedder struct{}

var nullEmbedderCalls atomic.Int32

func (nullEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	n := int(nullEmbedderCalls.Add(1))
	vec := make([]float32, n)
	vec[n-1] = 1
	return vec, nil
}

func newTestOrchestrator(t *testing.T, gw *fakeGateway, embedder dedup.Embedder, dedupPath string) (*Orchestrator, *recordstore.Store) {
	t.Helper()
	dir := t.TempDir()

	store, err := recordstore.New(filepath.Join(dir, "processed"))
	require.NoError(t, err)

	if dedupPath == "" {
		dedupPath = filepath.Join(dir, "dedup.json")
	}
	dedupStore, err := dedup.Load(dedupPath, embedder, dedup.Thresholds{
		Duplicate: 0.95, NearDup: 0.85, MinTextLen: 1, MaxSnippet: 2000,
	})
	require.NoError(t, err)

	pub := publisher.New(config.SiteConfig{BaseURL: "https://example.com", Name: "Example"}, config.Paths{
		ArticlesDir:     filepath.Join(dir, "public", "articles"),
		MasterIndexPath: filepath.Join(dir, "public", "all_articles.json"),
	})

	deps := Deps{
		Gateway:   gw,
		Dedup:     dedupStore,
		Publisher: pub,
		Store:     store,
		MediaOpts: media.Options{CaptionStyle: config.CaptionMarkdownItalic, MaxReuseCount: 1},
		Config:    config.PipelineConfig{PerStageTimeout: 0, PerRecordBudget: 0},
	}
	return New(deps), store
}

func TestProcessRecord_HappyPathReachesCompleted(t *testing.T) {
	gw := &fakeGateway{}
	orch, store := newTestOrchestrator(t, gw, nullEmbedder{}, "")

	rec := &article.Record{ID: "a1", InitialTitle: "Go 2.0 Released", RawScrapedText: "Lots of real substantive news content about the Go programming language release today."}
	require.NoError(t, store.Save(rec))

	status := orch.ProcessRecord(context.Background(), rec)
	assert.Equal(t, TerminalCompleted, status)
	assert.Equal(t, article.StatusSuccess, rec.Status("publish"))
	assert.NotEmpty(t, rec.Slug)
	assert.NotEmpty(t, rec.GeneratedArticleBodyFinal)
}

func TestProcessRecord_BoringArticleHaltsAtEditorialGate(t *testing.T) {
	gw := &fakeGateway{boring: true}
	orch, store := newTestOrchestrator(t, gw, nullEmbedder{}, "")

	rec := &article.Record{ID: "a2", InitialTitle: "Yet Another Minor Update", RawScrapedText: "nothing much happened here really"}
	require.NoError(t, store.Save(rec))

	status := orch.ProcessRecord(context.Background(), rec)
	assert.Equal(t, TerminalRejectedBoring, status)
	_, hasNovelty := rec.StageStatus["novelty"]
	assert.False(t, hasNovelty, "stages after the gate must not run")
}

// fixedEmbedder returns the same vector for every text so that two
// records are always judged near-identical, exercising the dedup gate.
type fixedEmbedder struct{}

func (fixedEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0, 0}, nil
}

func TestProcessRecord_DuplicateHaltsBeforeEditorialPrime(t *testing.T) {
	gw := &fakeGateway{}
	dir := t.TempDir()
	dedupPath := filepath.Join(dir, "shared-dedup.json")

	orch1, store1 := newTestOrchestrator(t, gw, fixedEmbedder{}, dedupPath)
	first := &article.Record{ID: "dup-1", InitialTitle: "Breaking AI News Today", RawScrapedText: "A very long piece of substantive text about an important technology event happening right now."}
	require.NoError(t, store1.Save(first))
	status := orch1.ProcessRecord(context.Background(), first)
	assert.Equal(t, TerminalCompleted, status)

	orch2, store2 := newTestOrchestrator(t, gw, fixedEmbedder{}, dedupPath)
	second := &article.Record{ID: "dup-2", InitialTitle: "Breaking AI News Today Again", RawScrapedText: "A very long piece of substantive text about an important technology event happening right now."}
	require.NoError(t, store2.Save(second))
	status2 := orch2.ProcessRecord(context.Background(), second)

	assert.Equal(t, TerminalDuplicate, status2)
	_, hasEditorial := second.StageStatus["editorial_prime"]
	assert.False(t, hasEditorial, "gate must halt before editorial_prime runs")
}
