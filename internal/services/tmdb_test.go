package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestClient(serverURL string) *TMDBClient {
	return NewTMDBClient(&TMDBClientConfig{
		BaseURL:    serverURL,
		APIKey:     "test-key",
		Timeout:    2 * time.Second,
		RetryDelay: time.Millisecond,
		Logger:     quietLogger(),
	})
}

func TestDetailFetchesCreditsAndVideos(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/movie/603", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, "credits,videos", r.URL.Query().Get("append_to_response"))
		w.Write([]byte(`{
			"id": 603,
			"title": "The Matrix",
			"credits": {"cast": [{"name": "Keanu Reeves", "character": "Neo"}]},
			"videos": {"results": [{"key": "abc", "site": "YouTube", "type": "Trailer"}]}
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	detail, err := client.Detail(context.Background(), "movie", 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", detail.Title)
	require.Len(t, detail.Credits.Cast, 1)
	assert.Equal(t, "Neo", detail.Credits.Cast[0].Character)
	require.Len(t, detail.Videos.Results, 1)
}

func TestDetailNotFoundYieldsBridgeError(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Detail(context.Background(), "movie", 999999)
	assert.ErrorIs(t, err, ErrBridge)
	// 4xx is terminal, no retries
	assert.Equal(t, int32(1), hits.Load())
}

func TestDetailRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"id": 603, "title": "The Matrix"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	detail, err := client.Detail(context.Background(), "movie", 603)
	require.NoError(t, err)
	assert.Equal(t, "The Matrix", detail.Title)
	assert.Equal(t, int32(3), hits.Load())
}

func TestDetailMalformedResponseYieldsBridgeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Detail(context.Background(), "movie", 603)
	assert.ErrorIs(t, err, ErrBridge)
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.Detail(ctx, "movie", int64(i))
		assert.ErrorIs(t, err, ErrBridge)
	}
	tripped := hits.Load()

	// breaker is open now, the next call never reaches the server
	_, err := client.Detail(ctx, "movie", 100)
	assert.ErrorIs(t, err, ErrBridge)
	assert.Equal(t, tripped, hits.Load())
}

func TestPopular(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tv/popular", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("page"))
		w.Write([]byte(`{"page": 1, "results": [{"id": 1399, "name": "Game of Thrones", "first_air_date": "2011-04-17"}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	list, err := client.Popular(context.Background(), "tv", 1)
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.Equal(t, "Game of Thrones", list.Results[0].DisplayTitle())
}
