package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// SearchProvider looks up corroborating sources for a query. A nil
// SearchProvider passed to Corroboration falls back to a simulated,
// empty-results path, matching the predecessor script's
// simulated_search_results parameter.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]string, error)
}

const corroborationSystemPrompt = `You are a fact-checking editor. Given an article summary and a list ` +
	`of search results gathered to corroborate it (excluding the article's own source domain), assess how ` +
	`well the claims are substantiated by independent coverage. Respond with JSON containing ` +
	`"corroboration_level" (one of "Strongly Corroborated", "Moderately Corroborated", "Weakly ` +
	`Corroborated", "Isolated Claim/Uncorroborated", "Unable to Determine"), ` +
	`"corroboration_confidence_score" (float 0.0-1.0), "supporting_source_domains_tier1" (array of ` +
	`high-authority domains drawn from the results), "supporting_source_domains_tier2" (array of ` +
	`secondary domains), "conflicting_information_flag" (true if any result contradicts the article's ` +
	`claims), and "corroboration_summary_notes" (one paragraph).`

// Corroboration checks how well external sources support the article's claims.
func Corroboration(gw Gateway, search SearchProvider) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		var results []string
		if search != nil {
			var err error
			results, err = search.Search(ctx, rec.CanonicalKeyword())
			if err != nil {
				results = nil // a search failure degrades to the simulated/empty path, not a stage failure
			}
		}
		payload := fmt.Sprintf("Summary: %s\nSource domain to exclude: %s\nSearch results:\n%s",
			rec.ProcessedSummary, rec.OriginalSourceURL, strings.Join(results, "\n"))
		out, err := gw.Call(ctx, "analytical", corroborationSystemPrompt, payload,
			[]string{"corroboration_level", "corroboration_confidence_score", "corroboration_summary_notes"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			CorroborationLevel:           str(out, "corroboration_level"),
			CorroborationConfidenceScore: floatVal(out, "corroboration_confidence_score"),
			SupportingSourceDomainsTier1: strSlice(out, "supporting_source_domains_tier1"),
			SupportingSourceDomainsTier2: strSlice(out, "supporting_source_domains_tier2"),
			ConflictingInformationFlag:   boolVal(out, "conflicting_information_flag"),
			CorroborationSummaryNotes:    str(out, "corroboration_summary_notes"),
		}
		return block, article.StatusSuccess, nil
	}
}
