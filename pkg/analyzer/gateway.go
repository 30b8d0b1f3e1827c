// Package analyzer implements the Analyzer Stages (C7): editorial-prime,
// novelty, impact/scope, hype detection, sophistication/style,
// corroboration, adjudication, and keyword intelligence. Every stage is a
// stage.Func (pkg/stage) that calls through a Gateway for its LLM work.
package analyzer

import "context"

// Gateway is the subset of llmgateway.Client every analyzer stage depends
// on; stages are written against this interface so they can be unit
// tested with a fake.
type Gateway interface {
	Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error)
}

func str(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func strSlice(m map[string]any, key string) []string {
	raw, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func intVal(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func floatVal(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func boolVal(m map[string]any, key string) bool {
	v, _ := m[key].(bool)
	return v
}

// floatMap parses an object-valued key into a map[string]float64, the
// shape ImpactScope's target_audience_relevance is returned in.
func floatMap(m map[string]any, key string) map[string]float64 {
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		switch n := v.(type) {
		case float64:
			out[k] = n
		case int:
			out[k] = float64(n)
		}
	}
	return out
}
