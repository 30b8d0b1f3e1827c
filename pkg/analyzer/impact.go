package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const impactScopeSystemPrompt = `You are a technology foresight analyst. Assess the likely scope of ` +
	`impact of this development, accounting for the upstream novelty assessment. Respond with JSON ` +
	`containing "estimated_impact_scale" (one of "Global & Cross-Industry", "Multiple Key Industries", ` +
	`"Specific Tech Sector", "Niche Application", "Localized/Limited", "Uncertain/Too Early"), ` +
	`"primary_affected_sectors" (array, 3-5 industries directly transformed), ` +
	`"secondary_affected_sectors_or_domains" (array, 1-3 areas with lesser effects), ` +
	`"target_audience_relevance" (object mapping each of "c_suite_executives", ` +
	`"technical_leads_architects", "individual_developers_engineers", "researchers_academics", ` +
	`"investors_financial_analysts", "general_tech_enthusiasts", "policymakers_regulators" to a float ` +
	`0.0-1.0), "timeframe_for_significant_impact" (one of "Immediate (0-6 months)", ` +
	`"Short-term (6-18 months)", "Medium-term (1.5-3 years)", "Long-term (3+ years)", "Speculative"), ` +
	`"impact_magnitude_qualifier" (one of "Transformative", "Substantial", "Moderate", "Minor", ` +
	`"Negligible"), "impact_confidence_score" (float 0.0-1.0), and "impact_rationale_summary" ` +
	`(2-3 sentences).`

// ImpactScope assesses how broadly the development is likely to matter.
func ImpactScope(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		novelty := orDefault(rec.Assessment("novelty"), "novelty")
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nNovelty level: %s\nNovelty confidence: %v",
			rec.InitialTitle, rec.ProcessedSummary, novelty.NoveltyLevel, novelty.NoveltyConfidence)
		out, err := gw.Call(ctx, "analytical", impactScopeSystemPrompt, payload,
			[]string{"estimated_impact_scale", "impact_magnitude_qualifier", "impact_confidence_score", "impact_rationale_summary"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			EstimatedImpactScale:              str(out, "estimated_impact_scale"),
			PrimaryAffectedSectors:            strSlice(out, "primary_affected_sectors"),
			SecondaryAffectedSectorsOrDomains: strSlice(out, "secondary_affected_sectors_or_domains"),
			TargetAudienceRelevance:           floatMap(out, "target_audience_relevance"),
			TimeframeForSignificantImpact:     str(out, "timeframe_for_significant_impact"),
			ImpactMagnitudeQualifier:          str(out, "impact_magnitude_qualifier"),
			ImpactConfidenceScore:             floatVal(out, "impact_confidence_score"),
			ImpactRationaleSummary:            str(out, "impact_rationale_summary"),
		}
		return block, article.StatusSuccess, nil
	}
}
