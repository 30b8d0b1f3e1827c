package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gyro1978/Dacoola-sub001/pkg/config"
)

func TestEmbed_TooShortReturnsNil(t *testing.T) {
	s := New(config.EmbeddingConfig{Endpoint: "http://unused.invalid", ModelName: "m"}, "key", 0)
	v, err := s.Embed(context.Background(), "short text")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestEmbed_CallsServiceAndCaches(t *testing.T) {
	var calls int32
	longText := make([]byte, 100)
	for i := range longText {
		longText[i] = 'a'
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		json.NewEncoder(w).Encode(embedResponse{Vector: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	s := New(config.EmbeddingConfig{Endpoint: srv.URL, ModelName: "m"}, "key", time.Minute)
	v, err := s.Embed(context.Background(), string(longText))
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, v)

	// second call with identical text should hit the cache, not the server
	v2, err := s.Embed(context.Background(), string(longText))
	require.NoError(t, err)
	assert.Equal(t, v, v2)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
