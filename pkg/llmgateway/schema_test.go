package llmgateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndValidate_PlainJSON(t *testing.T) {
	out, err := ParseAndValidate(`{"novelty_level":"Incremental","novelty_reasoning":"ok"}`,
		[]string{"novelty_level", "novelty_reasoning"})
	require.NoError(t, err)
	assert.Equal(t, "Incremental", out["novelty_level"])
}

func TestParseAndValidate_StripsMarkdownFence(t *testing.T) {
	text := "```json\n{\"a\": 1}\n```"
	out, err := ParseAndValidate(text, []string{"a"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out["a"])
}

func TestParseAndValidate_FallbackExtractsEmbeddedObject(t *testing.T) {
	text := "Sure, here you go:\n{\"a\": 1, \"b\": {\"c\": 2}}\nHope that helps!"
	out, err := ParseAndValidate(text, []string{"a", "b"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, out["a"])
}

func TestParseAndValidate_MissingKeyIsSchemaIncomplete(t *testing.T) {
	_, err := ParseAndValidate(`{"a": 1}`, []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SCHEMA_INCOMPLETE")
}

func TestParseAndValidate_UnparsableIsBadJSON(t *testing.T) {
	_, err := ParseAndValidate("not json at all", []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BAD_JSON")
}

func TestParseAndValidate_ExtraKeysTolerated(t *testing.T) {
	out, err := ParseAndValidate(`{"a": 1, "extra": true}`, []string{"a"})
	require.NoError(t, err)
	assert.EqualValues(t, true, out["extra"])
}
