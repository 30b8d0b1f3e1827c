package outline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

type fakeGW struct {
	response map[string]any
	err      error
}

func (f *fakeGW) Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func TestTruncateNoMidWord_DoesNotCutWordNearBoundary(t *testing.T) {
	text := "This is a reasonably long headline about chips"
	got := TruncateNoMidWord(text, 30, 20)
	assert.LessOrEqual(t, len(got), 30)
	assert.False(t, strings.HasSuffix(got, " abou"))
	for _, r := range got {
		_ = r
	}
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestTruncateNoMidWord_ShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short", TruncateNoMidWord("short", 30, 20))
}

func TestTruncateMetaDescription_RespectsSoftAndHardCaps(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := TruncateMetaDescription(long, 160)
	assert.LessOrEqual(t, len(got), 160)
}

func TestTitle_SetsFinalPageH1OnceAndNotAgain(t *testing.T) {
	gw := &fakeGW{response: map[string]any{
		"generated_title_tag": "cognito-7 launches today",
		"generated_seo_h1":    "cognito-7 sets new benchmark for reasoning",
	}}
	rec := &article.Record{ID: "a1", FinalKeywords: []string{"Cognito-7"}}

	_, status, err := Title(gw)(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, article.StatusSuccess, status)
	first := rec.FinalPageH1
	assert.NotEmpty(t, first)

	// calling Title again must not change an already-set final_page_h1
	gw.response = map[string]any{"generated_title_tag": "different", "generated_seo_h1": "totally different headline"}
	_, _, err = Title(gw)(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, first, rec.FinalPageH1)
}

func TestTitle_FallsBackOnGatewayError(t *testing.T) {
	gw := &fakeGW{err: errors.New("transport down")}
	rec := &article.Record{ID: "a1", PrimaryTopic: "quantum computing"}

	_, status, err := Title(gw)(context.Background(), rec)
	require.Error(t, err)
	assert.Equal(t, article.StatusFailedLLMCall, status)
	assert.NotEmpty(t, rec.FinalPageH1)
	assert.LessOrEqual(t, len(rec.FinalPageH1), SEOH1HardMaxLen)
}

func TestGenerateOutline_EmptyHeadingsIsSuccessEmptyOutline(t *testing.T) {
	gw := &fakeGW{response: map[string]any{"headings": []any{}}}
	rec := &article.Record{ID: "a1"}

	_, status, err := GenerateOutline(gw)(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, article.StatusSuccessEmptyOutline, status)
}

func TestWriteSections_PartialFailureIsWarningPartial(t *testing.T) {
	rec := &article.Record{ID: "a1", ArticleOutline: []string{"## Intro", "## Details"}}
	calls := 0
	gw := &callCountingGW{fn: func() (map[string]any, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("boom")
		}
		return map[string]any{"section_body": "## Intro\ncontent"}, nil
	}}

	_, status, err := WriteSections(gw)(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, article.StatusWarningPartial, status)
}

type callCountingGW struct {
	fn func() (map[string]any, error)
}

func (c *callCountingGW) Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error) {
	return c.fn()
}
