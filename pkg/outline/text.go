// Package outline implements the Outline + Writer component (C8): title
// generation, meta description generation, and section outline/body
// writing.
package outline

import "strings"

// ToTitleCase title-cases text the way the predecessor does: every word
// capitalized except a short stoplist of minor words, unless that word is
// first or last.
func ToTitleCase(text string) string {
	minor := map[string]bool{
		"a": true, "an": true, "the": true, "and": true, "but": true, "or": true,
		"for": true, "nor": true, "on": true, "at": true, "to": true, "from": true,
		"by": true, "of": true, "in": true, "with": true,
	}
	words := strings.Fields(text)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i != 0 && i != len(words)-1 && minor[lower] {
			words[i] = lower
			continue
		}
		words[i] = capitalizeWord(w)
	}
	return strings.Join(words, " ")
}

func capitalizeWord(w string) string {
	if w == "" {
		return w
	}
	r := []rune(w)
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}

// TruncateNoMidWord truncates text to at most maxLength characters without
// cutting a word in the middle when the cut point falls within
// wordBoundaryWindow characters of a space, matching the predecessor's
// rule that title truncation never breaks mid-word within the last 20
// characters of the hard cap.
func TruncateNoMidWord(text string, maxLength, wordBoundaryWindow int) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength
	lowerBound := maxLength - wordBoundaryWindow
	if lowerBound < 0 {
		lowerBound = 0
	}
	for cut > lowerBound && cut < len(text) && text[cut] != ' ' {
		cut--
	}
	if cut <= lowerBound {
		cut = maxLength // no good boundary found; hard-cut at maxLength
	}
	return strings.TrimRight(text[:cut], " ")
}

// TruncateMetaDescription truncates to maxLength (defaulting to 160),
// preferring a soft cut at 155 on a word boundary, matching spec §8's
// 160/155 boundary rule.
func TruncateMetaDescription(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = 160
	}
	if len(text) <= maxLength {
		return text
	}
	const softTarget = 155
	target := maxLength
	if softTarget < maxLength {
		target = softTarget
	}
	return TruncateNoMidWord(text, target, 20)
}
