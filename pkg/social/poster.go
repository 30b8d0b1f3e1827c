// Package social implements the social poster (C13): announcing a
// published article on X/Twitter by uploading its lead image and posting
// a tweet linking back to the article.
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

const (
	mediaUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	createTweetURL = "https://api.twitter.com/2/tweets"

	// duplicateStatusErrorCode is Twitter's own code for "this exact
	// status already exists"; the predecessor treats it as a non-fatal
	// success rather than a posting failure.
	duplicateStatusErrorCode = 187
)

// Poster announces an article on a social platform.
type Poster interface {
	PostArticle(ctx context.Context, title, articleURL, imageURL string) (bool, error)
}

// TwitterPoster posts article announcements to X/Twitter using OAuth 1.0a
// signed requests (v1.1 media upload, v2 tweet creation).
type TwitterPoster struct {
	httpClient     *http.Client
	creds          Credentials
	mediaUploadURL string
	createTweetURL string
}

// New constructs a TwitterPoster. Callers should check creds.Complete()
// (or config.TwitterConfig.Enabled()) before invoking PostArticle; an
// incomplete credential set always fails fast.
func New(creds Credentials) *TwitterPoster {
	return &TwitterPoster{
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		creds:          creds,
		mediaUploadURL: mediaUploadURL,
		createTweetURL: createTweetURL,
	}
}

// PostArticle downloads imageURL, uploads it to Twitter, and posts a tweet
// announcing the article. A duplicate-content rejection from Twitter
// (error code 187) is treated as success: the goal, posting the
// announcement, has already been achieved by an earlier attempt.
func (p *TwitterPoster) PostArticle(ctx context.Context, title, articleURL, imageURL string) (bool, error) {
	if !p.creds.Complete() {
		return false, fmt.Errorf("twitter credentials incomplete")
	}

	imageData, filename, err := p.downloadImage(ctx, imageURL)
	if err != nil {
		return false, fmt.Errorf("downloading image for tweet: %w", err)
	}

	mediaID, err := p.uploadMedia(ctx, imageData, filename)
	if err != nil {
		return false, fmt.Errorf("uploading media: %w", err)
	}

	text := ComposeTweetText(title, articleURL)
	return p.createTweet(ctx, text, mediaID)
}

func (p *TwitterPoster) downloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	if !strings.HasPrefix(imageURL, "http") {
		return nil, "", fmt.Errorf("invalid image URL: %s", imageURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 DacoolaBot/1.0")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", fmt.Errorf("image download returned HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("downloaded image is empty")
	}

	filename := inferImageFilename(imageURL)
	return data, filename, nil
}

func inferImageFilename(imageURL string) string {
	u, err := url.Parse(imageURL)
	p := imageURL
	if err == nil {
		p = u.Path
	}
	name := path.Base(p)
	lower := strings.ToLower(name)
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp"} {
		if strings.HasSuffix(lower, ext) {
			return name
		}
	}
	return "image.jpg"
}

type mediaUploadResponse struct {
	MediaIDString string `json:"media_id_string"`
}

func (p *TwitterPoster) uploadMedia(ctx context.Context, imageData []byte, filename string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("media", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(imageData); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.mediaUploadURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	authHeader, err := authorizationHeader(http.MethodPost, p.mediaUploadURL, map[string]string{}, p.creds)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("media upload returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed mediaUploadResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("parsing media upload response: %w", err)
	}
	if parsed.MediaIDString == "" {
		return "", fmt.Errorf("media upload response missing media_id_string")
	}
	return parsed.MediaIDString, nil
}

type createTweetRequest struct {
	Text  string          `json:"text"`
	Media *tweetMediaRefs `json:"media,omitempty"`
}

type tweetMediaRefs struct {
	MediaIDs []string `json:"media_ids"`
}

type createTweetResponse struct {
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
	Errors []tweetAPIError `json:"errors"`
}

type tweetAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (p *TwitterPoster) createTweet(ctx context.Context, text, mediaID string) (bool, error) {
	payload, err := json.Marshal(createTweetRequest{Text: text, Media: &tweetMediaRefs{MediaIDs: []string{mediaID}}})
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.createTweetURL, bytes.NewReader(payload))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/json")

	authHeader, err := authorizationHeader(http.MethodPost, p.createTweetURL, map[string]string{}, p.creds)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", authHeader)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, err
	}

	var parsed createTweetResponse
	_ = json.Unmarshal(respBody, &parsed)

	for _, apiErr := range parsed.Errors {
		if apiErr.Code == duplicateStatusErrorCode {
			return true, nil
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return false, fmt.Errorf("create tweet returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	if len(parsed.Errors) > 0 {
		return false, fmt.Errorf("twitter API returned errors: %+v", parsed.Errors)
	}
	return true, nil
}
