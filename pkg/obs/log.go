package obs

import (
	"log/slog"
	"os"
)

// NewLogger returns the process-wide structured logger, writing JSON to
// stdout in the teacher's style (one handler, contextual fields added via
// With at each call site rather than per-package loggers).
func NewLogger(level slog.Level) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// ForArticle returns a logger pre-populated with the article ID, the field
// every stage-level log line should carry.
func ForArticle(base *slog.Logger, articleID string) *slog.Logger {
	return base.With("article_id", articleID)
}

// ForStage further narrows a logger to a specific named stage.
func ForStage(base *slog.Logger, stage string) *slog.Logger {
	return base.With("stage", stage)
}
