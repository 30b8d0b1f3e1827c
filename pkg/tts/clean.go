// Package tts implements the TTS Task Manager (C11): the
// trigger/poll/download state machine that turns an article body into a
// downloaded audio file via an external text-to-speech provider.
package tts

import "regexp"

// MaxTTSChars is the truncation length applied to cleaned text before
// sending it to the TTS provider, pinned from the predecessor.
const MaxTTSChars = 4500

var (
	headingMarkersRE = regexp.MustCompile(`#{1,6}\s*`)
	emphasisRE       = regexp.MustCompile(`[*_]`)
	markdownLinkRE   = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
)

// CleanForSpeech strips markdown heading/emphasis markers and rewrites
// links to their link text, then truncates to MaxTTSChars, matching the
// predecessor's text-cleaning step before sending text to the TTS API.
func CleanForSpeech(text string) string {
	text = markdownLinkRE.ReplaceAllString(text, "$1")
	text = headingMarkersRE.ReplaceAllString(text, "")
	text = emphasisRE.ReplaceAllString(text, "")
	if len(text) > MaxTTSChars {
		text = text[:MaxTTSChars]
	}
	return text
}
