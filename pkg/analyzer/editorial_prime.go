package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// EditorialPrime is the first analytical gate: a quick relevance/interest
// screen run before the more expensive analyzer stages. An
// "Editorial verdict" of Boring halts the pipeline for the record unless
// the caller has set an override flag in rec.Extension["editorial_override"].
func EditorialPrime(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		payload := fmt.Sprintf("Title: %s\nSummary: %s", rec.InitialTitle, rec.Summary)
		out, err := gw.Call(ctx, "analytical", editorialPrimeSystemPrompt, payload,
			[]string{"editorial_verdict", "editorial_reason"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			EditorialVerdict: str(out, "editorial_verdict"),
			EditorialReason:  str(out, "editorial_reason"),
		}
		return block, article.StatusSuccess, nil
	}
}

const editorialPrimeSystemPrompt = `You are an editorial screener for a technology news desk. Given a ` +
	`candidate article's title and summary, decide whether it is worth full analysis. Respond with JSON ` +
	`containing "editorial_verdict" ("Interesting" or "Boring") and "editorial_reason" (one sentence).`

// IsGateRejected reports whether the editorial-prime verdict should halt
// the pipeline, honoring a manual override recorded on the record.
func IsGateRejected(rec *article.Record) bool {
	block := rec.Assessment("editorial_prime")
	if block == nil || block.EditorialVerdict != article.EditorialBoring {
		return false
	}
	if rec.Extension != nil {
		if override, ok := rec.Extension["editorial_override"].(bool); ok && override {
			return false
		}
	}
	return true
}
