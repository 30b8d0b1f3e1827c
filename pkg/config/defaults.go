package config

import "time"

// Defaults returns the built-in configuration merged underneath whatever a
// user supplies in pipeline.yaml, mirroring the teacher's "built-in
// defaults merged via mergo" loader step.
func Defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKeyEnv: "LLM_API_KEY",
			Profiles: map[string]ModelProfile{
				"deterministic_json": {Temperature: 0.1},
				"analytical":         {Temperature: 0.25},
				"creative_title":     {Temperature: 0.6},
				"creative_meta":      {Temperature: 0.8},
				"query_gen":          {Temperature: 0.6},
			},
			MaxRetries:     3,
			BaseRetryDelay: time.Second,
			CallTimeout:    30 * time.Second,
			RateLimitRPS:   2,
		},
		Dedup: DedupConfig{
			ThresholdDuplicate:  0.92,
			ThresholdNearDup:    0.82,
			MinTextLength:       75,
			MaxTextSnippetChars: 2000,
		},
		TTS: TTSConfig{
			APIKeyEnv:       "TTS_API_KEY",
			PollInterval:    3 * time.Second,
			MaxPollAttempts: 60,
		},
		Site: SiteConfig{
			AuthorNameDefault:   "Dacoola AI Team",
			MaxHomePageArticles: 20,
		},
		Pipeline: PipelineConfig{
			WorkerCount:        4,
			PerRecordBudget:    5 * time.Minute,
			PerStageTimeout:    45 * time.Second,
			MaxArticleAgeHours: 40,
		},
		Media: MediaConfig{
			CaptionStyle:         CaptionMarkdownItalic,
			MaxReuseCountPerCand: 2,
		},
		Paths: Paths{
			ProcessedJSONDir:     "data/processed_json",
			HistoricalEmbeddings: "data/historical_embeddings.json",
			RawWebResearchDir:    "data/raw_web_research",
			PublicDir:            "public",
			MasterIndexPath:      "public/all_articles.json",
			ArticlesDir:          "public/articles",
			AudioDir:             "public/audio",
		},
	}
}
