// Package assembler implements the Content Assembler (C9): joining
// per-section markdown bodies into one article body, enforcing
// heading-integrity on every section, and choosing a join separator that
// respects block-level markdown constructs at section boundaries.
package assembler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

const (
	sectionSeparator        = "\n\n"
	adjacentBlockSeparator  = "\n"
)

// endsWithBlockRE matches a markdown/HTML block construct that closes at
// the very end of a string: a fenced code block, or a closing </table>,
// </pre>, </ul>, </ol>, </div> tag. A section ending in one of these
// already supplies enough visual separation from the next section, so it
// only needs a single newline rather than a full blank line before the
// next heading.
var endsWithBlockRE = regexp.MustCompile("(?s)(```[^`]*```|</table>|</pre>|</ul>|</ol>|</div>)\\s*$")

// SafeJoinMarkdownSections joins parts with sectionSeparator, except that a
// part ending in a block-level construct is joined to the next part with
// only adjacentBlockSeparator, avoiding a visually empty extra blank line
// after fenced code or block HTML.
func SafeJoinMarkdownSections(parts []string) string {
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			prev := parts[i-1]
			if endsWithBlockRE.MatchString(prev) {
				b.WriteString(adjacentBlockSeparator)
			} else {
				b.WriteString(sectionSeparator)
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

// headingRE recognizes a markdown ATX heading line ("## Heading ...").
var headingRE = regexp.MustCompile(`(?m)^#{1,6}\s+\S`)

// Result is the outcome of assembling an article body.
type Result struct {
	Body   string
	Status article.StageStatus
}

// Assemble builds the article body from outline headings and their
// generated bodies (missing entries represent a failed section). Every
// emitted section is guaranteed to start with its heading: a body whose
// first line is not a markdown heading with that text has it prepended.
func Assemble(outline []string, sectionBodies map[string]string) Result {
	if outline == nil {
		return Result{Status: article.StatusFailedMissingOutline}
	}
	if len(outline) == 0 {
		return Result{Status: article.StatusSuccessEmptyOutline}
	}

	parts := make([]string, 0, len(outline))
	failed := 0
	for _, heading := range outline {
		body, ok := sectionBodies[heading]
		body = strings.TrimSpace(body)
		if !ok || body == "" {
			parts = append(parts, fmt.Sprintf("<!-- Section '%s' failed to generate -->", heading))
			failed++
			continue
		}
		parts = append(parts, ensureHeadingIntegrity(heading, body))
	}

	status := article.StatusSuccess
	switch {
	case failed == len(outline):
		status = article.StatusWarningAllFailed
	case failed > 0:
		status = article.StatusWarningPartial
	}

	return Result{Body: SafeJoinMarkdownSections(parts), Status: status}
}

// ensureHeadingIntegrity prepends "## {heading}" to body unless body's
// first line is already a markdown heading whose text matches heading
// (case-insensitively, ignoring leading "#" markers and surrounding space).
func ensureHeadingIntegrity(heading, body string) string {
	first := firstLine(body)
	if headingRE.MatchString(first) &&
		strings.EqualFold(strings.TrimSpace(strings.TrimLeft(first, "#")), strings.TrimSpace(strings.TrimLeft(heading, "#"))) {
		return body
	}
	return "## " + heading + sectionSeparator + body
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
