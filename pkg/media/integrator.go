// Package media implements the Media Placeholder Integrator (C10):
// matching `[IMAGE: description]`-style placeholders in an assembled
// article body against available media candidates, and replacing them
// with markdown image syntax (plus an optional caption).
package media

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

// placeholderRE matches the first "[IMAGE: description]" placeholder on a
// line; only the first match per line is processed, matching the
// predecessor's line-by-line scan.
var placeholderRE = regexp.MustCompile(`(?i)\[image:\s*([^\]]*)\]`)

const maxCaptionLength = 250

var trivialCaptions = map[string]bool{
	"image": true, "photo": true, "picture": true, "graphic": true, "n/a": true, "": true,
}

// Status values for the integration result.
const (
	StatusNoPlaceholdersAndNoCandidates = "NO_PLACEHOLDERS_AND_NO_CANDIDATES"
	StatusNoPHNoIntegrations            = "NO_PH_NO_INTEGRATIONS"
	StatusWarningNoCandidates           = "WARNING_PLACEHOLDERS_NO_CANDIDATES"
	StatusNoMatchesPHExist              = "NO_MATCHES_PH_EXIST"
)

// Options configures integration behavior.
type Options struct {
	CaptionStyle  config.ImageCaptionStyle
	MaxReuseCount int
}

// candidateUsage tracks how many times a candidate has been placed.
type candidateUsage struct {
	cand   article.MediaCandidate
	usedBy []string // normalized placeholder keys already satisfied by this candidate
}

// Integrate replaces the first image placeholder on each line of body with
// a matching candidate's markdown image (plus caption), preferring an
// exact normalized match and falling back to a fuzzy alnum-only match,
// each candidate usable up to opts.MaxReuseCount times. Further
// placeholders on the same line are left unchanged.
func Integrate(body string, candidates []article.MediaCandidate, opts Options) (string, string) {
	if opts.MaxReuseCount <= 0 {
		opts.MaxReuseCount = 2
	}

	placeholderCount := strings.Count(strings.ToLower(body), "[image:")
	if placeholderCount == 0 {
		if len(candidates) == 0 {
			return body, StatusNoPlaceholdersAndNoCandidates
		}
		return body, StatusNoPHNoIntegrations
	}
	if len(candidates) == 0 {
		return body, StatusWarningNoCandidates
	}

	usage := make([]*candidateUsage, len(candidates))
	for i, c := range candidates {
		usage[i] = &candidateUsage{cand: c}
	}

	integrated := 0
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		loc := placeholderRE.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		desc := line[loc[2]:loc[3]]
		cand := pickCandidate(usage, desc, opts.MaxReuseCount)
		if cand == nil {
			continue
		}
		replacement := renderImage(cand.cand, desc, opts.CaptionStyle)
		lines[i] = line[:loc[0]] + replacement + line[loc[1]:]
		integrated++
	}

	body = strings.Join(lines, "\n")
	if integrated == 0 {
		return body, StatusNoMatchesPHExist
	}
	return body, fmt.Sprintf("SUCCESS_INTEGRATED_%d_IMAGES", integrated)
}

func pickCandidate(usage []*candidateUsage, placeholderDesc string, maxReuse int) *candidateUsage {
	target := normalizePlaceholder(placeholderDesc)
	targetAlnum := alnumKey(placeholderDesc)

	// exact normalized match first
	for _, u := range usage {
		if len(u.usedBy) >= maxReuse {
			continue
		}
		if normalizePlaceholder(u.cand.AltText) == target && target != "" {
			u.usedBy = append(u.usedBy, target)
			return u
		}
	}
	// fuzzy alnum-only match
	for _, u := range usage {
		if len(u.usedBy) >= maxReuse {
			continue
		}
		if targetAlnum != "" && alnumKey(u.cand.AltText) == targetAlnum {
			u.usedBy = append(u.usedBy, target)
			return u
		}
	}
	return nil
}

func normalizePlaceholder(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = regexp.MustCompile(`[^a-z0-9 ]+`).ReplaceAllString(s, "")
	s = regexp.MustCompile(`\s+`).ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func alnumKey(s string) string {
	return regexp.MustCompile(`[^a-z0-9]+`).ReplaceAllString(strings.ToLower(s), "")
}

func renderImage(cand article.MediaCandidate, placeholderDesc string, style config.ImageCaptionStyle) string {
	alt := cand.AltText
	if alt == "" {
		alt = placeholderDesc
	}
	img := fmt.Sprintf("![%s](%s)", alt, cand.URL)

	caption := strings.TrimSpace(cand.Caption)
	if !isCaptionWorthRendering(caption, alt) {
		return img
	}
	if len(caption) > maxCaptionLength {
		caption = caption[:maxCaptionLength]
	}
	switch style {
	case config.CaptionHTMLFigcaption:
		return fmt.Sprintf("<figure>%s<figcaption>%s</figcaption></figure>", img, caption)
	case config.CaptionNone:
		return img
	default: // markdown_italic
		return img + "\n*" + caption + "*"
	}
}

// isCaptionWorthRendering applies the triviality exclusion rules: too
// short, a known trivial placeholder word, containing "placeholder" or
// "simulated", or effectively identical to the alt text.
func isCaptionWorthRendering(caption, alt string) bool {
	if len(caption) <= 10 {
		return false
	}
	lower := strings.ToLower(caption)
	if trivialCaptions[lower] {
		return false
	}
	if strings.Contains(lower, "placeholder") || strings.Contains(lower, "simulated") {
		return false
	}
	if alnumKey(caption) == alnumKey(alt) {
		return false
	}
	return true
}
