package outline

import (
	"context"
	"fmt"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// MetaDescHardMaxLen is the hard cap from spec §8.
const MetaDescHardMaxLen = 160

const descriptionSystemPrompt = `You are writing a meta description for a technology news article. Given ` +
	`the final headline and primary keyword, write a compelling meta description under 160 characters. ` +
	`Respond with JSON containing "generated_meta_description".`

const fallbackMetaDescriptionRaw = "%s LATEST: Critical facts & must-know insights. What you need to know NOW before it's outdated!"

// Description generates the SEO meta description.
func Description(gw titleGateway) func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
	return func(ctx context.Context, rec *article.Record) (*article.AssessmentBlock, article.StageStatus, error) {
		primaryKeyword := rec.CanonicalKeyword()
		headline := rec.FinalPageH1
		if headline == "" {
			headline = rec.InitialTitle
		}
		payload := fmt.Sprintf("Headline: %s\nPrimary keyword: %s", headline, primaryKeyword)

		out, err := gw.Call(ctx, "creative_meta", descriptionSystemPrompt, payload, []string{"generated_meta_description"})
		if err != nil {
			rec.GeneratedMetaDesc = TruncateMetaDescription(fmt.Sprintf(fallbackMetaDescriptionRaw, primaryKeyword), MetaDescHardMaxLen)
			return nil, article.StatusFailedLLMCall, err
		}

		desc := strOrEmpty(out["generated_meta_description"])
		if desc == "" {
			desc = fmt.Sprintf(fallbackMetaDescriptionRaw, primaryKeyword)
		}
		rec.GeneratedMetaDesc = TruncateMetaDescription(desc, MetaDescHardMaxLen)
		return nil, article.StatusSuccess, nil
	}
}
