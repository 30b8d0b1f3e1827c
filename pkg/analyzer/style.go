package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const sophisticationStylistSystemPrompt = `You are a content style and depth critic evaluating a ` +
	`technology article for a highly knowledgeable tech audience. Respond with JSON containing ` +
	`"technical_depth_level" (one of "Surface-Level", "Moderately In-Depth", "Deeply Technical", ` +
	`"Overly Simplistic", "Excessively Jargony (Unexplained)"), "language_sophistication" (one of ` +
	`"High (Precise & Nuanced)", "Appropriate (Clear & Professional)", "Basic (Lacks Nuance)", ` +
	`"Colloquial/Informal"), "tone_suitability_for_experts" (one of "Highly Suitable", ` +
	`"Generally Suitable", "Borderline (May need adjustments)", "Not Suitable (Too basic/promotional)"), ` +
	`"clarity_of_explanation_score" (float 0.0-1.0), "jargon_usage_evaluation" (one of ` +
	`"Well-Explained", "Acceptable with Context", "Excessive & Unexplained"), ` +
	`"key_observations_on_style" (1-2 sentences), and "overall_stylistic_recommendation" (one of ` +
	`"Publish As Is (Style)", "Minor Edits for Clarity/Tone", "Substantial Rewrite for Depth/Sophistication", ` +
	`"Reject (Style Unsuitable)"). A low readability score may be acceptable for deeply technical content ` +
	`if jargon is well-managed, and a high one may reveal oversimplification.`

// SophisticationStylist recommends the technical register and tone for the final article.
func SophisticationStylist(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		novelty := orDefault(rec.Assessment("novelty"), "novelty")
		impact := orDefault(rec.Assessment("impact_scope"), "impact_scope")
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nNovelty level: %s\nImpact magnitude: %s",
			rec.InitialTitle, rec.ProcessedSummary, novelty.NoveltyLevel, impact.ImpactMagnitudeQualifier)
		out, err := gw.Call(ctx, "analytical", sophisticationStylistSystemPrompt, payload,
			[]string{"technical_depth_level", "language_sophistication", "overall_stylistic_recommendation"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			TechnicalDepthLevel:           str(out, "technical_depth_level"),
			LanguageSophistication:        str(out, "language_sophistication"),
			ToneSuitabilityForExperts:     str(out, "tone_suitability_for_experts"),
			ClarityOfExplanationScore:     floatVal(out, "clarity_of_explanation_score"),
			JargonUsageEvaluation:         str(out, "jargon_usage_evaluation"),
			KeyObservationsOnStyle:        str(out, "key_observations_on_style"),
			OverallStylisticRecommendation: str(out, "overall_stylistic_recommendation"),
		}
		return block, article.StatusSuccess, nil
	}
}
