package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const keywordIntelligenceSystemPrompt = `You are an SEO keyword strategist. Given an article's title, ` +
	`summary, primary topic, and candidate keywords, produce a refined keyword set. Respond with JSON ` +
	`containing "analyzed_primary_keyword" (string), "secondary_lsi_keywords" (array), ` +
	`"long_tail_question_keywords" (array), and "entity_keywords" (array).`

// KeywordIntelligence refines the candidate keyword list into a primary
// keyword plus supporting keyword sets, and sets rec.FinalKeywords with
// the primary keyword at index 0 per spec §3's invariant.
func KeywordIntelligence(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nPrimary topic: %s\nCandidate keywords: %s",
			rec.InitialTitle, rec.ProcessedSummary, rec.PrimaryTopic, strings.Join(rec.CandidateKeywords, ", "))
		out, err := gw.Call(ctx, "analytical", keywordIntelligenceSystemPrompt, payload,
			[]string{"analyzed_primary_keyword", "secondary_lsi_keywords", "long_tail_question_keywords", "entity_keywords"})
		if err != nil {
			return nil, "", err
		}

		block := &article.AssessmentBlock{
			AnalyzedPrimaryKeyword:   str(out, "analyzed_primary_keyword"),
			SecondaryLSIKeywords:     strSlice(out, "secondary_lsi_keywords"),
			LongTailQuestionKeywords: strSlice(out, "long_tail_question_keywords"),
			EntityKeywords:           strSlice(out, "entity_keywords"),
		}

		rec.FinalKeywords = cleanAndDedupeKeywords(append([]string{block.AnalyzedPrimaryKeyword}, block.SecondaryLSIKeywords...))
		return block, article.StatusSuccess, nil
	}
}

// cleanAndDedupeKeywords trims, lowercases-for-comparison, and removes
// duplicate/empty keywords while preserving first-seen order and the
// original casing of the first occurrence, mirroring the predecessor's
// clean_and_deduplicate_keywords helper.
func cleanAndDedupeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		key := strings.ToLower(kw)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, kw)
	}
	return out
}
