// Package config loads, validates, and exposes the pipeline's runtime
// configuration: a YAML file merged with built-in defaults and overridden
// by environment variables, following the same layered-registry shape the
// teacher codebase uses for its own agent/MCP/LLM-provider configuration.
package config

import "time"

// ModelProfile is one named LLM calling profile (temperature/purpose pair)
// referenced by model_profile in LLM Gateway calls.
type ModelProfile struct {
	Model       string  `yaml:"model" validate:"required"`
	Temperature float64 `yaml:"temperature" validate:"min=0,max=1"`
}

// LLMConfig groups everything the LLM Gateway needs.
type LLMConfig struct {
	Endpoint       string                  `yaml:"endpoint" validate:"required,url"`
	APIKeyEnv      string                  `yaml:"api_key_env" validate:"required"`
	Profiles       map[string]ModelProfile `yaml:"profiles"`
	MaxRetries     int                     `yaml:"max_retries" validate:"min=0"`
	BaseRetryDelay time.Duration           `yaml:"base_retry_delay"`
	CallTimeout    time.Duration           `yaml:"call_timeout"`
	RateLimitRPS   float64                 `yaml:"rate_limit_rps" validate:"min=0"`
}

// EmbeddingConfig configures the embedding service.
type EmbeddingConfig struct {
	ModelName string `yaml:"model_name" validate:"required"`
	Endpoint  string `yaml:"endpoint" validate:"required,url"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// DedupConfig holds the duplicate-detection thresholds from spec §6.
type DedupConfig struct {
	ThresholdDuplicate  float64 `yaml:"threshold_duplicate" validate:"gt=0,lte=1"`
	ThresholdNearDup    float64 `yaml:"threshold_near_duplicate" validate:"gt=0,lte=1"`
	MinTextLength       int     `yaml:"min_text_length" validate:"min=1"`
	MaxTextSnippetChars int     `yaml:"max_text_snippet_chars" validate:"min=1"`
}

// TTSConfig holds text-to-speech provider settings.
type TTSConfig struct {
	APIKeyEnv       string        `yaml:"api_key_env"`
	Endpoint        string        `yaml:"endpoint" validate:"required_with=APIKeyEnv"`
	VoiceID         string        `yaml:"voice_id"`
	LanguageID      string        `yaml:"language_id"`
	PollInterval    time.Duration `yaml:"poll_interval"`
	MaxPollAttempts int           `yaml:"max_poll_attempts" validate:"min=1"`
}

// SiteConfig holds site-wide metadata used by the publisher and JSON-LD
// synthesis.
type SiteConfig struct {
	BaseURL            string `yaml:"base_url" validate:"required,url"`
	Name               string `yaml:"name" validate:"required"`
	LogoURL            string `yaml:"logo_url"`
	AuthorNameDefault  string `yaml:"author_name_default"`
	FaviconURL         string `yaml:"favicon_url"`
	MaxHomePageArticles int   `yaml:"max_home_page_articles" validate:"min=1"`
}

// TwitterConfig holds social-poster credentials; all fields empty means
// the social poster is disabled.
type TwitterConfig struct {
	APIKeyEnv       string `yaml:"api_key_env"`
	APISecretEnv    string `yaml:"api_secret_env"`
	AccessTokenEnv  string `yaml:"access_token_env"`
	AccessSecretEnv string `yaml:"access_secret_env"`
}

// Enabled reports whether enough credentials were configured to attempt
// posting.
func (t TwitterConfig) Enabled() bool {
	return t.APIKeyEnv != "" && t.APISecretEnv != "" && t.AccessTokenEnv != "" && t.AccessSecretEnv != ""
}

// PipelineConfig holds orchestrator-level knobs: worker pool size and
// per-record processing budget.
type PipelineConfig struct {
	WorkerCount        int           `yaml:"worker_count" validate:"min=1"`
	PerRecordBudget     time.Duration `yaml:"per_record_budget"`
	PerStageTimeout     time.Duration `yaml:"per_stage_timeout"`
	MaxArticleAgeHours int           `yaml:"max_article_age_hours" validate:"min=1"`
}

// ImageCaptionStyle selects how media-integrator captions render.
type ImageCaptionStyle string

const (
	CaptionMarkdownItalic ImageCaptionStyle = "markdown_italic"
	CaptionHTMLFigcaption ImageCaptionStyle = "html_figcaption"
	CaptionNone           ImageCaptionStyle = "none"
)

// IsValid reports whether s is one of the recognized caption styles.
func (s ImageCaptionStyle) IsValid() bool {
	switch s {
	case CaptionMarkdownItalic, CaptionHTMLFigcaption, CaptionNone:
		return true
	default:
		return false
	}
}

// MediaConfig configures the media placeholder integrator.
type MediaConfig struct {
	CaptionStyle         ImageCaptionStyle `yaml:"caption_style"`
	MaxReuseCountPerCand int               `yaml:"max_reuse_count_per_candidate" validate:"min=1"`
}

// Paths describes the on-disk layout from spec §6.
type Paths struct {
	ProcessedJSONDir      string `yaml:"processed_json_dir" validate:"required"`
	HistoricalEmbeddings  string `yaml:"historical_embeddings_path" validate:"required"`
	RawWebResearchDir     string `yaml:"raw_web_research_dir" validate:"required"`
	PublicDir             string `yaml:"public_dir" validate:"required"`
	MasterIndexPath       string `yaml:"master_index_path" validate:"required"`
	ArticlesDir           string `yaml:"articles_dir" validate:"required"`
	AudioDir              string `yaml:"audio_dir" validate:"required"`
}

// Config is the fully assembled, validated runtime configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Dedup     DedupConfig     `yaml:"dedup"`
	TTS       TTSConfig       `yaml:"tts"`
	Site      SiteConfig      `yaml:"site"`
	Twitter   TwitterConfig   `yaml:"twitter"`
	Pipeline  PipelineConfig  `yaml:"pipeline"`
	Media     MediaConfig     `yaml:"media"`
	Paths     Paths           `yaml:"paths"`
}
