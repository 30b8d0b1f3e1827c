// Package llmgateway implements the LLM Gateway contract: a single
// call(model_profile, system_prompt, user_payload, expect_schema) entry
// point that hides retries, backoff, JSON extraction, and schema checking
// from every analyzer stage that calls through it.
package llmgateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
	"github.com/Gyro1978/Dacoola-sub001/pkg/obs"
)

// Client is the LLM Gateway. It is safe for concurrent use by multiple
// pipeline workers.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	profiles   map[string]config.ModelProfile
	maxRetries int
	baseDelay  time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// New constructs a Client from the loaded pipeline configuration. apiKey is
// resolved by the caller (cmd/pipeline) from cfg.LLM.APIKeyEnv, so this
// package never reads the environment itself.
func New(cfg config.LLMConfig, apiKey string) *Client {
	limit := rate.Limit(cfg.RateLimitRPS)
	if limit <= 0 {
		limit = rate.Inf
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.CallTimeout},
		endpoint:   cfg.Endpoint,
		apiKey:     apiKey,
		profiles:   cfg.Profiles,
		maxRetries: cfg.MaxRetries,
		baseDelay:  cfg.BaseRetryDelay,
		limiter:    rate.NewLimiter(limit, 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "llm-gateway",
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// request/response wire shapes for the gateway's HTTP contract.
type apiRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	System      string  `json:"system_prompt"`
	User        string  `json:"user_payload"`
}

type apiResponse struct {
	Text string `json:"text"`
}

// Call performs the gateway's documented contract: look up the model
// profile, POST the prompt, retry transient failures with jittered
// exponential backoff, extract and validate the JSON result against
// expectSchema (the set of required top-level keys), and return it as a
// generic map. Extra keys beyond expectSchema are tolerated.
func (c *Client) Call(ctx context.Context, modelProfile, systemPrompt, userPayload string, expectSchema []string) (map[string]any, error) {
	profile, ok := c.profiles[modelProfile]
	if !ok {
		return nil, fmt.Errorf("model profile %q: %w", modelProfile, obs.ErrConfigMissing)
	}

	body, err := json.Marshal(apiRequest{
		Model:       profile.Model,
		Temperature: profile.Temperature,
		System:      systemPrompt,
		User:        userPayload,
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling gateway request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(c.baseDelay, attempt)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		text, err := c.doRequest(ctx, body)
		if err != nil {
			lastErr = err
			if !obs.Retryable(err) {
				return nil, err
			}
			continue
		}

		result, err := ParseAndValidate(text, expectSchema)
		if err != nil {
			// BAD_JSON/SCHEMA_INCOMPLETE are not transport failures and are
			// not retried: ParseAndValidate has already made its one
			// fallback extraction attempt.
			return nil, err
		}
		return result, nil
	}
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, body []byte) (string, error) {
	out, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w", obs.ErrTimeout)
			}
			return nil, fmt.Errorf("%w: %v", obs.ErrTransport, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &obs.HTTPStatusError{Code: resp.StatusCode}
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: reading response body: %v", obs.ErrTransport, err)
		}
		var parsed apiResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return nil, fmt.Errorf("%w: %v", obs.ErrBadJSON, err)
		}
		return parsed.Text, nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

// backoffDelay computes base * 2^(attempt-1) (attempt is 1 for the first
// retry, so the first retry waits base) with +/-20% jitter, capped at 30s,
// matching the retry policy in spec §4.1 and the jittered-backoff idiom
// used throughout the teacher's reconnect/recovery code.
func backoffDelay(base time.Duration, attempt int) time.Duration {
	d := float64(base) * math.Pow(2, float64(attempt-1))
	const cap = float64(30 * time.Second)
	if d > cap {
		d = cap
	}
	jitter := 1 + (rand.Float64()*0.4 - 0.2)
	return time.Duration(d * jitter)
}

// stripFences removes a wrapping ```json ... ``` or ``` ... ``` fence, if
// present, per the gateway's response-processing step.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
