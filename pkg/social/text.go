package social

import "fmt"

// Tweet length limits and the reserved space budget for the trailing link,
// pinned from the predecessor's comment math: Twitter counts any URL as
// 23 chars regardless of its real length, plus 18 chars reserved for the
// literal connective text "\n\nCheck it out: " (16 chars as written).
const (
	tweetHardLimit      = 280
	reservedForLinkText = 23 + 18
	maxTitleLen         = tweetHardLimit - reservedForLinkText // 239
)

// ComposeTweetText builds the tweet body for an article announcement,
// truncating the title so the full text (title + connective text + link)
// fits the platform limit, with a harder fallback truncation if the
// composed text still somehow exceeds 280 chars.
func ComposeTweetText(title, articleURL string) string {
	truncatedTitle := title
	if len(title) > maxTitleLen {
		truncatedTitle = title[:maxTitleLen-3] + "..."
	}

	text := fmt.Sprintf("%s\n\nCheck it out: %s", truncatedTitle, articleURL)
	if len(text) <= tweetHardLimit {
		return text
	}

	shortTitle := title
	if len(shortTitle) > 100 {
		shortTitle = shortTitle[:100]
	}
	text = fmt.Sprintf("%s...\n\nCheck it out: %s", shortTitle, articleURL)
	if len(text) > tweetHardLimit {
		text = text[:tweetHardLimit]
	}
	return text
}
