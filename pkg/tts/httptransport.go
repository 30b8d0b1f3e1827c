package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPTransport implements Transport against the Camb AI-shaped TTS
// provider API from the predecessor script: POST {endpoint}/tts to
// trigger a run, GET {endpoint}/tts/{task_id} to poll status, then GET
// {endpoint}/tts-result/{run_id} to resolve the final download URL once
// status is SUCCESS.
type HTTPTransport struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewHTTPTransport constructs an HTTPTransport. endpoint is the provider's
// base URL (no trailing slash required).
func NewHTTPTransport(endpoint, apiKey string) *HTTPTransport {
	return &HTTPTransport{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   strings.TrimRight(endpoint, "/"),
		apiKey:     apiKey,
	}
}

type triggerRequest struct {
	Text     string `json:"text"`
	VoiceID  int    `json:"voice_id"`
	Language int    `json:"language"`
	Gender   int    `json:"gender"`
	Age      int    `json:"age"`
}

type triggerResponse struct {
	TaskID string `json:"task_id"`
}

// Trigger starts a TTS run and returns the provider's task_id.
func (t *HTTPTransport) Trigger(ctx context.Context, text, voiceID, languageID string) (string, error) {
	voice := parseIntOrDefault(voiceID, 6104)
	lang := parseIntOrDefault(languageID, 1)

	payload, err := json.Marshal(triggerRequest{Text: text, VoiceID: voice, Language: lang, Gender: 2, Age: 0})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint+"/tts", strings.NewReader(string(payload)))
	if err != nil {
		return "", err
	}
	t.setHeaders(req)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts trigger request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tts trigger returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed triggerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing tts trigger response: %w", err)
	}
	if parsed.TaskID == "" {
		return "", fmt.Errorf("tts trigger response missing task_id")
	}
	return parsed.TaskID, nil
}

type statusResponse struct {
	Status string `json:"status"`
	RunID  string `json:"run_id"`
	Error  string `json:"error"`
}

type resultResponse struct {
	URL       string `json:"url"`
	OutputURL string `json:"output_url"`
	AudioURL  string `json:"audio_url"`
}

// Poll checks the current status of runID (here, the task ID returned by
// Trigger) and, once SUCCESS, resolves the final download URL via the
// provider's separate tts-result endpoint.
func (t *HTTPTransport) Poll(ctx context.Context, taskID string) (PollStatus, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"/tts/"+taskID, nil)
	if err != nil {
		return "", "", err
	}
	t.setHeaders(req)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return PollServerError, "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return PollRateLimited, "", nil
	}
	if resp.StatusCode >= 500 {
		return PollServerError, "", nil
	}

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", "", fmt.Errorf("tts status poll returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed statusResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", "", fmt.Errorf("parsing tts status response: %w", err)
	}

	switch strings.ToUpper(parsed.Status) {
	case "SUCCESS":
		if parsed.RunID == "" {
			return "", "", fmt.Errorf("tts task succeeded but response is missing run_id")
		}
		resultURL, err := t.fetchResultURL(ctx, parsed.RunID)
		if err != nil {
			return "", "", err
		}
		return PollSuccess, resultURL, nil
	case "FAILURE", "FAILED":
		return PollFailed, "", fmt.Errorf("tts task failed: %s", parsed.Error)
	default:
		return PollProcessing, "", nil
	}
}

func (t *HTTPTransport) fetchResultURL(ctx context.Context, runID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.endpoint+"/tts-result/"+runID, nil)
	if err != nil {
		return "", err
	}
	t.setHeaders(req)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching tts result url: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tts result fetch returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var parsed resultResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("parsing tts result response: %w", err)
	}

	for _, candidate := range []string{parsed.URL, parsed.OutputURL, parsed.AudioURL} {
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("tts result response has no url/output_url/audio_url")
}

// Download fetches the finished audio bytes from resultURL.
func (t *HTTPTransport) Download(ctx context.Context, resultURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, resultURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "DacoolaAudioDownloader/1.0")

	downloadClient := &http.Client{Timeout: 180 * time.Second}
	resp, err := downloadClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading tts audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("tts audio download returned HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (t *HTTPTransport) setHeaders(req *http.Request) {
	req.Header.Set("x-api-key", t.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}

func parseIntOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return def
	}
	return n
}
