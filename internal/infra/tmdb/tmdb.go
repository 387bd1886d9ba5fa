package infra_tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	// TMDB allows roughly 40 requests per 10 seconds per token.
	defaultRate  = rate.Limit(4)
	defaultBurst = 10

	breakerFailures = 5
	breakerTimeout  = 30 * time.Second
)

var (
	ErrLookup = errors.New("poster lookup failed")
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[string]
	logger     zerolog.Logger
}

type Option func(*Client)

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

func New(baseURL, token string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(defaultRate, defaultBurst),
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	// Posters are optional, so after a run of failures the catalog is left
	// alone for a while instead of delaying every recommendation.
	c.breaker = gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:    "tmdb",
		Timeout: breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return c
}

type searchResponse struct {
	Results []struct {
		PosterPath string `json:"poster_path"`
	} `json:"results"`
}

// PosterPath returns the first search hit's poster path, or "" when the
// catalog has nothing for this title and year.
func (c *Client) PosterPath(ctx context.Context, title string, year int) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookup, err)
	}

	path, err := c.breaker.Execute(func() (string, error) {
		return c.search(ctx, title, year)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %w", ErrLookup, err)
	}
	return path, err
}

func (c *Client) search(ctx context.Context, title string, year int) (string, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("include_adult", "false")
	q.Set("language", "en-US")
	if year > 0 {
		q.Set("primary_release_year", strconv.Itoa(year))
	}
	q.Set("page", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search/movie?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLookup, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: request: %w", ErrLookup, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: catalog returned %d: %s", ErrLookup, resp.StatusCode, string(body))
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return "", fmt.Errorf("%w: decode: %w", ErrLookup, err)
	}

	if len(search.Results) == 0 {
		c.logger.Debug().Str("title", title).Int("year", year).Msg("no catalog match")
		return "", nil
	}
	return search.Results[0].PosterPath, nil
}
