package outline

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// TitleTagHardMaxLen and SEOH1HardMaxLen are the hard caps from spec §8.
const (
	TitleTagHardMaxLen = 65
	SEOH1HardMaxLen    = 75
)

const titleSystemPrompt = `You are a headline writer for a technology news site. Given a primary ` +
	`keyword and supporting context, write an SEO title tag and a punchier on-page H1. Respond with JSON ` +
	`containing "generated_title_tag" and "generated_seo_h1".`

const (
	defaultBrandSuffix      = " - Dacoola"
	fallbackTitleTagRaw     = "Key Update on %s"
	fallbackH1Raw           = "Breaking News: %s Developments"
)

// Title generates the SEO title tag and final page H1. Per spec §3's
// invariant, final_page_h1 is set exactly once: if it is already
// populated on rec, this stage is a no-op that returns StatusSuccess
// without calling the gateway.
func Title(gw titleGateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		if rec.FinalPageH1 != "" {
			return nil, article.StatusSuccess, nil
		}

		primaryKeyword := rec.CanonicalKeyword()
		payload := fmt.Sprintf("Primary keyword: %s\nSummary: %s", primaryKeyword, rec.ProcessedSummary)
		out, err := gw.Call(ctx, "creative_title", titleSystemPrompt, payload,
			[]string{"generated_title_tag", "generated_seo_h1"})
		if err != nil {
			rec.GeneratedTitleTag = fallbackTitleTag(primaryKeyword)
			rec.FinalPageH1 = fallbackH1(primaryKeyword)
			return nil, article.StatusFailedLLMCall, err
		}

		titleTag := strOrEmpty(out["generated_title_tag"])
		h1 := strOrEmpty(out["generated_seo_h1"])
		if titleTag == "" {
			titleTag = fallbackTitleTag(primaryKeyword)
		}
		if h1 == "" {
			h1 = fallbackH1(primaryKeyword)
		}

		rec.GeneratedTitleTag = TruncateNoMidWord(ToTitleCase(titleTag), TitleTagHardMaxLen, 20)
		rec.FinalPageH1 = TruncateNoMidWord(ToTitleCase(h1), SEOH1HardMaxLen, 20)
		return nil, article.StatusSuccess, nil
	}
}

func fallbackTitleTag(primaryKeyword string) string {
	raw := fmt.Sprintf(fallbackTitleTagRaw, primaryKeyword) + defaultBrandSuffix
	return TruncateNoMidWord(ToTitleCase(raw), TitleTagHardMaxLen, 20)
}

func fallbackH1(primaryKeyword string) string {
	raw := fmt.Sprintf(fallbackH1Raw, primaryKeyword)
	return TruncateNoMidWord(ToTitleCase(raw), SEOH1HardMaxLen, 20)
}

func strOrEmpty(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

type titleGateway interface {
	Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error)
}
