// Dacoola pipeline runner: ingests manually-submitted candidate articles,
// drives every record through the editorial stage sequence, and serves a
// minimal operational health endpoint.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
	"github.com/Gyro1978/Dacoola-sub001/pkg/dedup"
	"github.com/Gyro1978/Dacoola-sub001/pkg/embedding"
	"github.com/Gyro1978/Dacoola-sub001/pkg/llmgateway"
	"github.com/Gyro1978/Dacoola-sub001/pkg/media"
	"github.com/Gyro1978/Dacoola-sub001/pkg/obs"
	"github.com/Gyro1978/Dacoola-sub001/pkg/pipeline"
	"github.com/Gyro1978/Dacoola-sub001/pkg/publisher"
	"github.com/Gyro1978/Dacoola-sub001/pkg/recordstore"
	"github.com/Gyro1978/Dacoola-sub001/pkg/social"
	"github.com/Gyro1978/Dacoola-sub001/pkg/tts"
	"github.com/Gyro1978/Dacoola-sub001/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config",
		getEnv("PIPELINE_CONFIG", "./deploy/config/pipeline.yaml"),
		"Path to the pipeline configuration file")
	envPath := flag.String("env-file",
		getEnv("PIPELINE_ENV_FILE", "./deploy/config/.env"),
		"Path to a .env file to load before reading configuration")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil {
		log.Printf("Warning: could not load %s: %v", *envPath, err)
		log.Printf("Continuing with existing environment variables...")
	} else {
		log.Printf("Loaded environment from %s", *envPath)
	}

	httpPort := getEnv("HTTP_PORT", "8090")

	cfg, err := config.Initialize(*configPath)
	if err != nil {
		log.Fatalf("Failed to initialize configuration: %v", err)
	}

	logger := obs.NewLogger(slog.LevelInfo)
	logger.Info("starting pipeline", "version", version.Full(), "config_path", *configPath, "http_port", httpPort)

	gateway := llmgateway.New(cfg.LLM, os.Getenv(cfg.LLM.APIKeyEnv))
	embedder := embedding.New(cfg.Embedding, os.Getenv(cfg.Embedding.APIKeyEnv), 10*time.Minute)

	dedupStore, err := dedup.Load(cfg.Paths.HistoricalEmbeddings, embedder, dedup.Thresholds{
		Duplicate:  cfg.Dedup.ThresholdDuplicate,
		NearDup:    cfg.Dedup.ThresholdNearDup,
		MinTextLen: cfg.Dedup.MinTextLength,
		MaxSnippet: cfg.Dedup.MaxTextSnippetChars,
	})
	if err != nil {
		log.Fatalf("Failed to load duplicate store: %v", err)
	}

	store, err := recordstore.New(cfg.Paths.ProcessedJSONDir)
	if err != nil {
		log.Fatalf("Failed to open article record store: %v", err)
	}

	pub := publisher.New(cfg.Site, cfg.Paths)

	var ttsManager *tts.Manager
	if cfg.TTS.Endpoint != "" {
		transport := tts.NewHTTPTransport(cfg.TTS.Endpoint, os.Getenv(cfg.TTS.APIKeyEnv))
		ttsManager = tts.New(transport, tts.Config{
			VoiceID:         cfg.TTS.VoiceID,
			LanguageID:      cfg.TTS.LanguageID,
			PollInterval:    cfg.TTS.PollInterval,
			MaxPollAttempts: cfg.TTS.MaxPollAttempts,
		}, cfg.Paths.AudioDir)
		logger.Info("tts generation enabled", "endpoint", cfg.TTS.Endpoint)
	} else {
		logger.Info("tts generation disabled: no endpoint configured")
	}

	var poster social.Poster
	if cfg.Twitter.Enabled() {
		poster = social.New(social.Credentials{
			APIKey:       os.Getenv(cfg.Twitter.APIKeyEnv),
			APISecret:    os.Getenv(cfg.Twitter.APISecretEnv),
			AccessToken:  os.Getenv(cfg.Twitter.AccessTokenEnv),
			AccessSecret: os.Getenv(cfg.Twitter.AccessSecretEnv),
		})
		logger.Info("social posting enabled")
	} else {
		logger.Info("social posting disabled: credentials incomplete")
	}

	orchestrator := pipeline.New(pipeline.Deps{
		Gateway:   gateway,
		Search:    nil,
		Dedup:     dedupStore,
		Publisher: pub,
		TTS:       ttsManager,
		Social:    poster,
		Store:     store,
		MediaOpts: media.Options{
			CaptionStyle:  cfg.Media.CaptionStyle,
			MaxReuseCount: cfg.Media.MaxReuseCountPerCand,
		},
		Config:      cfg.Pipeline,
		SiteBaseURL: cfg.Site.BaseURL,
		Logger:      logger,
	})

	pool := pipeline.NewWorkerPool(orchestrator, store, cfg.Pipeline.WorkerCount, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		health := pool.Health()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  "healthy",
			"workers": health,
		})
	})

	server := &http.Server{Addr: ":" + httpPort, Handler: mux}
	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("health server failed: %v", err)
		}
	}()

	ctx := context.Background()
	if err := ingestRawWebResearch(ctx, cfg.Paths.RawWebResearchDir, store, logger); err != nil {
		logger.Error("raw ingest scan failed", "error", err)
	}

	ids, err := pendingRecordIDs(store)
	if err != nil {
		log.Fatalf("Failed to enumerate pending records: %v", err)
	}
	logger.Info("starting processing run", "pending_records", len(ids), "worker_count", cfg.Pipeline.WorkerCount)

	if err := pool.Run(ctx, ids); err != nil {
		logger.Error("worker pool run failed", "error", err)
	}
	logger.Info("processing run complete")
}

// rawIngestRecord is the on-disk shape of a manually-submitted candidate
// under data/raw_web_research/{id}.json, written by the "picks" ingest
// tool (external collaborator, not implemented here).
type rawIngestRecord struct {
	ID                  string `json:"id"`
	SourceURL           string `json:"source_url"`
	InitialTitle        string `json:"initial_title"`
	SubmittedImportance string `json:"submitted_importance"`
	IsTrending          bool   `json:"is_trending"`
	ManualImageURL      string `json:"manual_image_url"`
	SubmittedAtUTC      string `json:"submitted_at_utc"`
}

// ingestRawWebResearch scans rawDir for raw ingest files and materializes
// any not yet present in store as a fresh article.Record, so a manually
// submitted candidate enters the stage sequence on the next run.
func ingestRawWebResearch(_ context.Context, rawDir string, store *recordstore.Store, logger *slog.Logger) error {
	entries, err := os.ReadDir(rawDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading raw web research dir: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		raw, err := os.ReadFile(filepath.Join(rawDir, entry.Name()))
		if err != nil {
			logger.Error("failed to read raw ingest file", "file", entry.Name(), "error", err)
			continue
		}

		var parsed rawIngestRecord
		if err := json.Unmarshal(raw, &parsed); err != nil {
			logger.Error("failed to parse raw ingest file", "file", entry.Name(), "error", err)
			continue
		}
		if parsed.ID == "" {
			logger.Error("raw ingest file missing id", "file", entry.Name())
			continue
		}

		if _, err := store.Load(parsed.ID); err == nil {
			continue // already materialized
		}

		rec := &article.Record{
			ID:                parsed.ID,
			OriginalSourceURL: parsed.SourceURL,
			InitialTitle:      parsed.InitialTitle,
			RetrievedAtUTC:    time.Now().UTC(),
			Extension: map[string]any{
				"is_trending":          parsed.IsTrending || strings.EqualFold(parsed.SubmittedImportance, "Breaking"),
				"submitted_importance": parsed.SubmittedImportance,
				"manual_image_url":     parsed.ManualImageURL,
				"submitted_at_utc":     parsed.SubmittedAtUTC,
			},
		}
		if err := store.Save(rec); err != nil {
			logger.Error("failed to save newly ingested record", "article_id", rec.ID, "error", err)
			continue
		}
		logger.Info("ingested manual candidate", "article_id", rec.ID, "source_url", rec.OriginalSourceURL)
	}
	return nil
}

// pendingRecordIDs returns every stored record ID that has not yet
// reached a terminal state, so a re-run of the pipeline only resumes
// unfinished work instead of reprocessing completed or rejected records.
func pendingRecordIDs(store *recordstore.Store) ([]string, error) {
	ids, err := store.ListIDs()
	if err != nil {
		return nil, err
	}

	pending := make([]string, 0, len(ids))
	for _, id := range ids {
		rec, err := store.Load(id)
		if err != nil {
			continue
		}
		if _, done := rec.Extension["terminal_state"]; done {
			continue
		}
		pending = append(pending, id)
	}
	return pending, nil
}
