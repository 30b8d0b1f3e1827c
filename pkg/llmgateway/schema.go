package llmgateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Gyro1978/Dacoola-sub001/pkg/obs"
)

// ParseAndValidate implements the gateway's response-processing steps:
// strip a surrounding code fence, parse as JSON, and on failure fall back
// to extracting the first balanced {...} substring before giving up.
// Once parsed, every key in expectSchema must be present (extras are
// tolerated).
func ParseAndValidate(text string, expectSchema []string) (map[string]any, error) {
	cleaned := stripFences(text)

	result, err := decodeObject(cleaned)
	if err != nil {
		if extracted, ok := extractBalancedObject(cleaned); ok {
			result, err = decodeObject(extracted)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", obs.ErrBadJSON, err)
	}

	var missing []string
	for _, key := range expectSchema {
		if _, ok := result[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing keys %v", obs.ErrSchemaIncomplete, missing)
	}
	return result, nil
}

func decodeObject(s string) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// extractBalancedObject finds the first top-level {...} span in s by
// brace counting, the gateway's one permitted fallback re-extraction when
// the raw text isn't pure JSON (e.g. the model added prose around it).
func extractBalancedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
