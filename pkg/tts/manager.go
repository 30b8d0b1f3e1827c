package tts

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/article"
)

// PollStatus is the provider-reported status of a TTS run.
type PollStatus string

const (
	PollQueued     PollStatus = "QUEUED"
	PollPending    PollStatus = "PENDING"
	PollProcessing PollStatus = "PROCESSING"
	PollSuccess    PollStatus = "SUCCESS"
	PollFailed     PollStatus = "FAILED"
	PollRateLimited PollStatus = "RATE_LIMITED" // synthetic: Transport.Poll returns this on HTTP 429
	PollServerError PollStatus = "SERVER_ERROR" // synthetic: on HTTP 5xx/transport error
)

// Transport is the external TTS provider surface: trigger a generation
// run, poll its status, and download the finished audio bytes.
type Transport interface {
	Trigger(ctx context.Context, text, voiceID, languageID string) (runID string, err error)
	Poll(ctx context.Context, runID string) (status PollStatus, resultURL string, err error)
	Download(ctx context.Context, resultURL string) (data []byte, err error)
}

// Config holds the polling knobs from spec §6.
type Config struct {
	VoiceID         string
	LanguageID      string
	PollInterval    time.Duration
	MaxPollAttempts int
}

// Manager runs the trigger/poll/download state machine for one article at
// a time; it is safe for concurrent use across different articles since
// it holds no per-call mutable state of its own.
type Manager struct {
	transport Transport
	cfg       Config
	audioDir  string
}

// New constructs a Manager.
func New(transport Transport, cfg Config, audioDir string) *Manager {
	return &Manager{transport: transport, cfg: cfg, audioDir: audioDir}
}

// Result is the outcome of a Generate call.
type Result struct {
	State        article.TTSTaskState
	AudioRelPath string // e.g. "audio/{id}.wav", relative to the public directory
}

// Generate runs the full trigger -> poll -> download pipeline for
// articleID's body text, writing the resulting audio file under the
// manager's audio directory.
func (m *Manager) Generate(ctx context.Context, articleID, bodyText string) (Result, error) {
	text := CleanForSpeech(bodyText)

	runID, err := m.transport.Trigger(ctx, text, m.cfg.VoiceID, m.cfg.LanguageID)
	if err != nil {
		return Result{State: article.TTSFailed}, fmt.Errorf("trigger failed: %w", err)
	}

	resultURL, err := m.poll(ctx, runID)
	if err != nil {
		state := article.TTSFailed
		if strings.Contains(err.Error(), "timed out") {
			state = article.TTSTimedOut
		}
		return Result{State: state}, fmt.Errorf("polling failed: %w", err)
	}

	data, err := m.transport.Download(ctx, resultURL)
	if err != nil {
		return Result{State: article.TTSFailed}, fmt.Errorf("download failed: %w", err)
	}

	relPath, err := m.save(articleID, resultURL, data)
	if err != nil {
		return Result{State: article.TTSFailed}, fmt.Errorf("download failed: %w", err)
	}
	return Result{State: article.TTSDone, AudioRelPath: relPath}, nil
}

func (m *Manager) poll(ctx context.Context, runID string) (string, error) {
	interval := m.cfg.PollInterval
	if interval <= 0 {
		interval = 3 * time.Second
	}
	maxAttempts := m.cfg.MaxPollAttempts
	if maxAttempts <= 0 {
		maxAttempts = 60
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		status, resultURL, err := m.transport.Poll(ctx, runID)
		if err != nil {
			return "", err
		}

		switch status {
		case PollSuccess:
			return resultURL, nil
		case PollFailed:
			return "", fmt.Errorf("TTS run failed")
		case PollRateLimited:
			if err := sleepCtx(ctx, interval*3); err != nil {
				return "", err
			}
		case PollServerError:
			if err := sleepCtx(ctx, interval*2); err != nil {
				return "", err
			}
		default: // QUEUED, PENDING, PROCESSING, or an unrecognized status
			if err := sleepCtx(ctx, interval); err != nil {
				return "", err
			}
		}
	}
	return "", fmt.Errorf("TTS task polling timed out")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// save writes data to {audioDir}/{articleID}{ext}, inferring ext from
// resultURL's path (stripped of any query string), defaulting to .wav
// when absent or implausible, and returns the path relative to the public
// directory ("audio/{id}{ext}").
func (m *Manager) save(articleID, resultURL string, data []byte) (string, error) {
	ext := inferExtension(resultURL)
	filename := articleID + ext
	if err := writeFile(m.audioDir, filename, data); err != nil {
		return "", err
	}
	return "audio/" + filename, nil
}

func inferExtension(resultURL string) string {
	u, err := url.Parse(resultURL)
	urlPath := resultURL
	if err == nil {
		urlPath = u.Path
	}
	ext := path.Ext(urlPath)
	if ext == "" || len(ext) > 5 {
		return ".wav"
	}
	return ext
}
