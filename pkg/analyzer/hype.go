package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const hypeDetectorSystemPrompt = `You are a skeptical technology editor scrutinizing an article's ` +
	`language and claims for marketing hype versus factual substance. Respond with JSON containing ` +
	`"hype_score" (float 0.0-1.0, where 1.0 is pure hype), "substantiation_level" (one of ` +
	`"Well-Substantiated", "Partially Substantiated", "Poorly Substantiated", "Highly Unsubstantiated"), ` +
	`"identified_hype_phrases_or_claims" (array, up to 5 verbatim phrases), "evidence_gaps_summary" ` +
	`(1-2 sentences), "overall_content_tone_evaluation" (one of "Objective & Factual", ` +
	`"Balanced but Optimistic", "Promotional & Enthusiastic", "Exaggerated & Speculative"), and ` +
	`"recommendation_for_publication" (one of "Proceed As Is", "Proceed with Caution (verify claims)", ` +
	`"High Hype - Needs Heavy Editing/Fact-Checking", "Reject (Primarily Hype/PR)"). If novelty is ` +
	`"Revolutionary" and impact magnitude is "Transformative", allow a slightly higher tolerance for ` +
	`enthusiastic language, but never at the expense of clear evidence.`

// HypeDetector scores how much of the article's framing is unsubstantiated hype.
func HypeDetector(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		novelty := orDefault(rec.Assessment("novelty"), "novelty")
		impact := orDefault(rec.Assessment("impact_scope"), "impact_scope")
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nRaw text excerpt: %.1500s\nNovelty level: %s\nBreakthrough evidence: %v\nImpact magnitude: %s\nImpact rationale: %s",
			rec.InitialTitle, rec.ProcessedSummary, rec.RawScrapedText,
			novelty.NoveltyLevel, novelty.BreakthroughEvidence,
			impact.ImpactMagnitudeQualifier, impact.ImpactRationaleSummary)
		out, err := gw.Call(ctx, "analytical", hypeDetectorSystemPrompt, payload,
			[]string{"hype_score", "substantiation_level", "recommendation_for_publication"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			HypeScore:                     floatVal(out, "hype_score"),
			SubstantiationLevel:           str(out, "substantiation_level"),
			IdentifiedHypePhrasesOrClaims: strSlice(out, "identified_hype_phrases_or_claims"),
			EvidenceGapsSummary:           str(out, "evidence_gaps_summary"),
			OverallContentToneEvaluation:  str(out, "overall_content_tone_evaluation"),
			RecommendationForPublication:  str(out, "recommendation_for_publication"),
		}
		return block, article.StatusSuccess, nil
	}
}
