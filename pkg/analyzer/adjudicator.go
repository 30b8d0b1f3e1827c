package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const adjudicatorSystemPrompt = `You are the chief editor AI delivering a single, definitive ` +
	`publication verdict by synthesizing the upstream novelty, impact scope, hype, style, and ` +
	`corroboration assessments. Respond with JSON containing "overall_value_excitement_score" ` +
	`(integer 0-100: 85-100 for breaking/revolutionary novelty with transformative impact, top-tier ` +
	`corroboration, low hype, and expert-level style; 70-84 for significant novelty with substantial ` +
	`impact and solid corroboration; 50-69 for incremental novelty with moderate impact and mixed ` +
	`signals; under 50 for no real novelty, negligible impact, or poor corroboration), ` +
	`"decision_rationale_summary" (one paragraph citing key upstream findings), "key_strengths" ` +
	`(array, up to three), "key_weaknesses_or_concerns" (array, up to three), and ` +
	`"suggested_next_steps_for_human_editor" (array; empty only if the score alone would warrant ` +
	`immediate publication).`

// DecideAdjudication implements the decision matrix from spec §4.6 as a
// pure, deterministic function: every input maps to exactly one
// publication decision, independent of whatever the LLM call in Adjudicate
// thinks the decision should be. editorialBoringWithoutOverride mirrors
// IsGateRejected's own boring-without-override condition: in the live
// pipeline the editorial-prime gate already halts that case before any
// analyzer stage runs, so this branch is a defensive backstop rather than
// a path that fires in practice, but DecideAdjudication is tested directly
// against spec §8 scenarios without requiring the gate to have run first.
func DecideAdjudication(score int, corroborationLevel, hypeRecommendation, styleRecommendation string, editorialBoringWithoutOverride bool) string {
	criticalFailure := corroborationLevel == article.CorroborationIsolatedClaim ||
		hypeRecommendation == article.HypeRecommendationReject ||
		editorialBoringWithoutOverride

	if criticalFailure || score < 50 {
		return article.DecisionReject
	}

	hypeCaution := hypeRecommendation == article.HypeRecommendationProceedWithCaution
	styleCaution := styleRecommendation != "" && styleRecommendation != article.StyleRecommendationPublishAsIs
	corroborationAtLeastModerate := corroborationLevel == article.CorroborationStronglyCorroborated ||
		corroborationLevel == article.CorroborationModeratelyCorroborated

	if score >= 85 && !hypeCaution && !styleCaution && corroborationAtLeastModerate {
		return article.DecisionPublishImmediately
	}

	mixedSignals := hypeCaution ||
		styleRecommendation == article.StyleRecommendationSubstantialRewrite ||
		corroborationLevel == article.CorroborationWeaklyCorroborated

	if score >= 70 && !mixedSignals {
		return article.DecisionPublishMinorEdits
	}

	return article.DecisionFlagForReview
}

// Adjudicate runs the adjudicator stage: it calls the LLM gateway for the
// qualitative synthesis, then applies DecideAdjudication over the
// resulting score and the upstream hype/style/corroboration/editorial
// signals to produce the authoritative FinalPublicationDecision. The
// LLM's own opinion of the decision, if it offered one, is never
// consulted.
func Adjudicate(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		novelty := orDefault(rec.Assessment("novelty"), "novelty")
		impact := orDefault(rec.Assessment("impact_scope"), "impact_scope")
		hype := orDefault(rec.Assessment("hype_detector"), "hype_detector")
		style := orDefault(rec.Assessment("sophistication_stylist"), "sophistication_stylist")
		corroboration := orDefault(rec.Assessment("corroboration_cognito"), "corroboration_cognito")

		payload := fmt.Sprintf("Novelty: %+v\nImpact: %+v\nHype: %+v\nStyle: %+v\nCorroboration: %+v",
			novelty, impact, hype, style, corroboration)
		out, err := gw.Call(ctx, "analytical", adjudicatorSystemPrompt, payload,
			[]string{"overall_value_excitement_score", "decision_rationale_summary"})
		if err != nil {
			return nil, "", err
		}

		score := intVal(out, "overall_value_excitement_score")

		block := &article.AssessmentBlock{
			FinalPublicationDecision: DecideAdjudication(score, corroboration.CorroborationLevel,
				hype.RecommendationForPublication, style.OverallStylisticRecommendation, IsGateRejected(rec)),
			OverallValueExcitementScore: score,
			DecisionRationaleSummary:    str(out, "decision_rationale_summary"),
			KeyStrengths:                strSlice(out, "key_strengths"),
			KeyWeaknessesOrConcerns:     strSlice(out, "key_weaknesses_or_concerns"),
			SuggestedNextStepsForEditor: strSlice(out, "suggested_next_steps_for_human_editor"),
		}
		return block, article.StatusSuccess, nil
	}
}

// orDefault substitutes the pinned default block for a nil upstream
// assessment, matching the predecessor's default-on-missing-input
// behavior (spec §7 / DESIGN.md).
func orDefault(block *article.AssessmentBlock, stage string) *article.AssessmentBlock {
	if block != nil {
		return block
	}
	return article.DefaultAssessment(stage)
}

// IsAdjudicatorRejected reports whether the record should halt at the
// adjudicator gate.
func IsAdjudicatorRejected(rec *article.Record) bool {
	block := rec.Assessment("adjudicator_prime")
	return block != nil && block.FinalPublicationDecision == article.DecisionReject
}
