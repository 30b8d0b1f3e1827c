package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Validator runs struct-tag validation plus the handful of cross-field
// invariants struct tags can't express, in a fixed, documented order
// matching the teacher's fail-fast validator idiom.
type Validator struct {
	cfg *Config
	v   *validator.Validate
}

// NewValidator constructs a Validator bound to cfg.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg, v: validator.New()}
}

// ValidateAll runs every validation step in dependency order, stopping at
// the first failure and wrapping it with the step name.
func (val *Validator) ValidateAll() error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"llm", val.validateLLM},
		{"dedup", val.validateDedup},
		{"tts", val.validateTTS},
		{"site", val.validateSite},
		{"pipeline", val.validatePipeline},
		{"media", val.validateMedia},
		{"paths", val.validatePaths},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			return fmt.Errorf("%s validation failed: %w", s.name, err)
		}
	}
	return nil
}

func (val *Validator) validateLLM() error {
	return val.v.Struct(val.cfg.LLM)
}

func (val *Validator) validateDedup() error {
	if err := val.v.Struct(val.cfg.Dedup); err != nil {
		return err
	}
	if val.cfg.Dedup.ThresholdNearDup >= val.cfg.Dedup.ThresholdDuplicate {
		return fmt.Errorf("threshold_near_duplicate (%.2f) must be less than threshold_duplicate (%.2f)",
			val.cfg.Dedup.ThresholdNearDup, val.cfg.Dedup.ThresholdDuplicate)
	}
	return nil
}

func (val *Validator) validateTTS() error {
	if val.cfg.TTS.Endpoint == "" {
		return nil // TTS is optional per spec §4.11
	}
	return val.v.Struct(val.cfg.TTS)
}

func (val *Validator) validateSite() error {
	return val.v.Struct(val.cfg.Site)
}

func (val *Validator) validatePipeline() error {
	return val.v.Struct(val.cfg.Pipeline)
}

func (val *Validator) validateMedia() error {
	if !val.cfg.Media.CaptionStyle.IsValid() {
		return fmt.Errorf("invalid image caption style: %q", val.cfg.Media.CaptionStyle)
	}
	return val.v.Struct(val.cfg.Media)
}

func (val *Validator) validatePaths() error {
	return val.v.Struct(val.cfg.Paths)
}
