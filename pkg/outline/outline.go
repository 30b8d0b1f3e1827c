package outline

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const outlineSystemPrompt = `You are a technology writer. Given an article's title, summary, and ` +
	`keywords, produce a section outline as a JSON array of heading strings under the key "headings". ` +
	`Produce 3-6 headings covering the story logically.`

const sectionSystemPrompt = `You are a technology writer. Write the body markdown for the section with ` +
	`the given heading, in the context of the overall article. Respond with JSON containing "section_body" ` +
	`(markdown, starting with the heading as a "## " line).`

// GenerateOutline produces the article's section headings and sets
// rec.ArticleOutline.
func GenerateOutline(gw titleGateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		payload := fmt.Sprintf("Title: %s\nSummary: %s\nKeywords: %v", rec.FinalPageH1, rec.ProcessedSummary, rec.FinalKeywords)
		out, err := gw.Call(ctx, "analytical", outlineSystemPrompt, payload, []string{"headings"})
		if err != nil {
			return nil, article.StatusFailedMissingOutline, err
		}
		headings := toStringSlice(out["headings"])
		if len(headings) == 0 {
			return nil, article.StatusSuccessEmptyOutline, nil
		}
		rec.ArticleOutline = headings
		return nil, article.StatusSuccess, nil
	}
}

// WriteSections generates markdown body text for every heading in
// rec.ArticleOutline and stores it in rec.Extension["section_bodies"],
// keyed by heading, for the content assembler to consume. A section that
// fails to generate is simply omitted; the assembler emits a
// failed-to-generate comment in its place.
func WriteSections(gw titleGateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		if len(rec.ArticleOutline) == 0 {
			return nil, article.StatusSuccessEmptyOutline, nil
		}
		bodies := make(map[string]string, len(rec.ArticleOutline))
		failures := 0
		for _, heading := range rec.ArticleOutline {
			payload := fmt.Sprintf("Heading: %s\nArticle summary: %s", heading, rec.ProcessedSummary)
			out, err := gw.Call(ctx, "creative_title", sectionSystemPrompt, payload, []string{"section_body"})
			if err != nil {
				failures++
				continue
			}
			bodies[heading] = strOrEmpty(out["section_body"])
		}
		if rec.Extension == nil {
			rec.Extension = map[string]any{}
		}
		rec.Extension["section_bodies"] = bodies

		switch {
		case failures == len(rec.ArticleOutline):
			return nil, article.StatusWarningAllFailed, nil
		case failures > 0:
			return nil, article.StatusWarningPartial, nil
		default:
			return nil, article.StatusSuccess, nil
		}
	}
}

func toStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
