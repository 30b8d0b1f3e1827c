// Package embedding wraps the external embedding model behind the single
// operation spec §4.2 names: embed(text) -> vector<float32,d> | None, with
// an optional cache keyed by a hash of the cleaned input text.
package embedding

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

// MinTextLength below which embedding is skipped and Embed returns
// (nil, nil), matching the predecessor's length gate.
const MinTextLength = 75

// Service calls an external embedding model over HTTP and optionally
// caches results by text hash.
type Service struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
	cache      *cache
}

// New constructs a Service. cacheTTL of zero disables caching.
func New(cfg config.EmbeddingConfig, apiKey string, cacheTTL time.Duration) *Service {
	var c *cache
	if cacheTTL > 0 {
		c = newCache(cacheTTL)
	}
	return &Service{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		endpoint:   cfg.Endpoint,
		apiKey:     apiKey,
		model:      cfg.ModelName,
		cache:      c,
	}
}

type embedRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embedResponse struct {
	Vector []float32 `json:"vector"`
}

// Embed returns the embedding vector for text, or nil (no error) if text
// is too short to be meaningfully embedded per MinTextLength.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) < MinTextLength {
		return nil, nil
	}

	key := hashText(text)
	if s.cache != nil {
		if v, ok := s.cache.get(key); ok {
			return v, nil
		}
	}

	body, err := json.Marshal(embedRequest{Model: s.model, Input: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling embed request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling embedding service: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("embedding service returned status %d", resp.StatusCode)
	}

	var parsed embedResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding embed response: %w", err)
	}

	if s.cache != nil {
		s.cache.set(key, parsed.Vector)
	}
	return parsed.Vector, nil
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
