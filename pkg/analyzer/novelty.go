package analyzer

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const noveltySystemPrompt = `You are a technology foresight analyst. Assess how novel the development ` +
	`described is relative to prior art. Respond with JSON containing "novelty_level" (one of ` +
	`"Revolutionary", "Significant", "Incremental", "None"), "novelty_confidence" (float 0.0-1.0), and ` +
	`"breakthrough_evidence" (array of concrete claims or evidence supporting the level chosen, may be ` +
	`empty).`

// Novelty assesses how new the subject matter is relative to prior art.
func Novelty(gw Gateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nKeywords: %v", rec.InitialTitle, rec.ProcessedSummary, rec.CandidateKeywords)
		out, err := gw.Call(ctx, "analytical", noveltySystemPrompt, payload,
			[]string{"novelty_level", "novelty_confidence", "breakthrough_evidence"})
		if err != nil {
			return nil, "", err
		}
		block := &article.AssessmentBlock{
			NoveltyLevel:         str(out, "novelty_level"),
			NoveltyConfidence:    floatVal(out, "novelty_confidence"),
			BreakthroughEvidence: strSlice(out, "breakthrough_evidence"),
		}
		return block, article.StatusSuccess, nil
	}
}
