package infra_tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestPosterPath(t *testing.T) {
	testCases := []struct {
		name      string
		status    int
		body      string
		expected  string
		expectErr bool
	}{
		{
			name:     "first result wins",
			status:   http.StatusOK,
			body:     `{"page":1,"results":[{"poster_path":"/first.jpg"},{"poster_path":"/second.jpg"}]}`,
			expected: "/first.jpg",
		},
		{
			name:     "no results",
			status:   http.StatusOK,
			body:     `{"page":1,"results":[]}`,
			expected: "",
		},
		{
			name:     "result without poster",
			status:   http.StatusOK,
			body:     `{"results":[{"poster_path":null}]}`,
			expected: "",
		},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"status_message":"Invalid API key"}`, expectErr: true},
		{name: "garbage", status: http.StatusOK, body: `<html>`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/3/search/movie", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.Equal(t, "The Matrix", r.URL.Query().Get("query"))
				assert.Equal(t, "1999", r.URL.Query().Get("primary_release_year"))
				assert.Equal(t, "false", r.URL.Query().Get("include_adult"))
				assert.Equal(t, "en-US", r.URL.Query().Get("language"))

				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := New(server.URL+"/3/", "secret", time.Second)
			path, err := client.PosterPath(context.Background(), "The Matrix", 1999)

			if tc.expectErr {
				assert.ErrorIs(t, err, ErrLookup)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, path)
		})
	}
}

func TestPosterPathWithoutYear(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("primary_release_year"))
		_, _ = w.Write([]byte(`{"results":[{"poster_path":"/x.jpg"}]}`))
	}))
	defer server.Close()

	path, err := New(server.URL, "t", time.Second).PosterPath(context.Background(), "Heat", 0)

	require.NoError(t, err)
	assert.Equal(t, "/x.jpg", path)
}

func TestPosterPathOpensBreaker(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(server.URL, "t", time.Second, WithRateLimit(rate.Inf, 1))
	for i := 0; i < breakerFailures; i++ {
		_, err := client.PosterPath(context.Background(), "Heat", 1995)
		require.ErrorIs(t, err, ErrLookup)
	}

	_, err := client.PosterPath(context.Background(), "Heat", 1995)

	assert.ErrorIs(t, err, ErrLookup)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(breakerFailures), hits.Load())
}

func TestPosterPathHonoursCancelledContext(t *testing.T) {
	client := New("http://127.0.0.1:1", "t", time.Second, WithRateLimit(rate.Every(time.Hour), 1))
	_, err := client.PosterPath(context.Background(), "Heat", 1995)
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.PosterPath(ctx, "Heat", 1995)

	assert.ErrorIs(t, err, ErrLookup)
}
