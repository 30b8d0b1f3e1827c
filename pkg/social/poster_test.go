package social

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCreds() Credentials {
	return Credentials{APIKey: "k", APISecret: "ks", AccessToken: "t", AccessSecret: "ts"}
}

func newTestPoster(t *testing.T, imageServer, mediaServer, tweetServer *httptest.Server) *TwitterPoster {
	t.Cleanup(func() {
		imageServer.Close()
		mediaServer.Close()
		tweetServer.Close()
	})
	p := New(testCreds())
	p.mediaUploadURL = mediaServer.URL
	p.createTweetURL = tweetServer.URL
	return p
}

func TestPostArticle_HappyPath(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("fake-image-bytes"))
	}))
	mediaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"media_id_string":"12345"}`)
	}))
	tweetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"data":{"id":"999"}}`)
	}))
	p := newTestPoster(t, imageServer, mediaServer, tweetServer)

	ok, err := p.PostArticle(context.Background(), "Big Tech News", "https://example.com/articles/x.html", imageServer.URL+"/img.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostArticle_DuplicateStatusIsNonFatalSuccess(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	mediaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"media_id_string":"12345"}`)
	}))
	tweetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"errors":[{"code":187,"message":"Status is a duplicate."}]}`)
	}))
	p := newTestPoster(t, imageServer, mediaServer, tweetServer)

	ok, err := p.PostArticle(context.Background(), "Big Tech News", "https://example.com/articles/x.html", imageServer.URL+"/img.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostArticle_OtherAPIErrorIsFailure(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	mediaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"media_id_string":"12345"}`)
	}))
	tweetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"errors":[{"code":403,"message":"Forbidden."}]}`)
	}))
	p := newTestPoster(t, imageServer, mediaServer, tweetServer)

	ok, err := p.PostArticle(context.Background(), "Big Tech News", "https://example.com/articles/x.html", imageServer.URL+"/img.png")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPostArticle_MediaUploadFailureIsFailure(t *testing.T) {
	imageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	}))
	mediaServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	tweetServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("tweet endpoint should not be called when media upload fails")
	}))
	p := newTestPoster(t, imageServer, mediaServer, tweetServer)

	ok, err := p.PostArticle(context.Background(), "Big Tech News", "https://example.com/articles/x.html", imageServer.URL+"/img.png")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestPostArticle_IncompleteCredentialsFailsFast(t *testing.T) {
	p := New(Credentials{APIKey: "only-one-set"})
	ok, err := p.PostArticle(context.Background(), "t", "u", "https://example.com/i.png")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestComposeTweetText_ShortTitleFitsUntouched(t *testing.T) {
	text := ComposeTweetText("Short Title", "https://example.com/a.html")
	assert.Contains(t, text, "Short Title")
	assert.Contains(t, text, "https://example.com/a.html")
	assert.LessOrEqual(t, len(text), 280)
}

func TestComposeTweetText_LongTitleIsTruncated(t *testing.T) {
	longTitle := strings.Repeat("a", 300)
	text := ComposeTweetText(longTitle, "https://example.com/a.html")
	assert.LessOrEqual(t, len(text), 280)
	assert.Contains(t, text, "...")
}

func TestInferImageFilename(t *testing.T) {
	assert.Equal(t, "photo.png", inferImageFilename("https://cdn.example.com/a/photo.png"))
	assert.Equal(t, "photo.jpg", inferImageFilename("https://cdn.example.com/a/photo.jpg?sig=abc"))
	assert.Equal(t, "image.jpg", inferImageFilename("https://cdn.example.com/a/noext"))
}
