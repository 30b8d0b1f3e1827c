package config

import (
	"fmt"
	"log/slog"
	"os"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Initialize loads configuration in the documented order:
//  1. start from built-in Defaults()
//  2. read the YAML file at path, if present (missing file is not an error)
//  3. expand ${VAR} environment references in the raw YAML
//  4. parse the YAML into a Config
//  5. merge the parsed config over the defaults (user values win)
//  6. validate the merged result
//
// It returns the merged, validated Config, or an error wrapping
// ErrValidation if validation fails.
func Initialize(path string) (*Config, error) {
	cfg := Defaults()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw = ExpandEnv(raw)
		var fromFile Config
		if uerr := yaml.Unmarshal(raw, &fromFile); uerr != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, uerr)
		}
		if merr := mergo.Merge(cfg, fromFile, mergo.WithOverride); merr != nil {
			return nil, fmt.Errorf("merging config file %s over defaults: %w", path, merr)
		}
		slog.Info("loaded pipeline configuration", "path", path)
	case os.IsNotExist(err):
		slog.Warn("config file not found, using built-in defaults", "path", path)
	default:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	v := NewValidator(cfg)
	if err := v.ValidateAll(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return cfg, nil
}
