package config

import "os"

// ExpandEnv expands ${VAR} and $VAR references in raw YAML bytes before
// parsing, the same pre-parse expansion step the teacher's loader performs
// on its MCP/LLM provider blocks.
func ExpandEnv(raw []byte) []byte {
	return []byte(os.Expand(string(raw), os.Getenv))
}
