package infra_recommender

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/rs/zerolog"
)

var (
	ErrFetch = errors.New("failed to fetch recommendations")
)

const Name = "remote"

const maxBodySize = 1 << 20

type Client struct {
	url        string
	httpClient *http.Client
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

func New(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return Name
}

// Recommend sends one POST with every participant's answers. Any transport,
// status or decoding problem comes back wrapped in ErrFetch.
func (c *Client) Recommend(ctx context.Context, responses model.CollectedResponses) (model.RecommendationResult, error) {
	body, err := json.Marshal(FromDomain(responses))
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: encode request: %w", ErrFetch, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: request: %w", ErrFetch, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: read body: %w", ErrFetch, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return model.RecommendationResult{}, fmt.Errorf("%w: service returned %d: %s", ErrFetch, resp.StatusCode, truncate(raw))
	}

	result, err := ParseResponse(raw)
	if err != nil {
		c.logger.Debug().Str("body", truncate(raw)).Msg("unparseable recommendation body")
		return model.RecommendationResult{}, err
	}

	c.logger.Debug().
		Str("status", string(result.Status)).
		Int("records", len(result.Records)).
		Msg("recommendations received")
	return result, nil
}

// ParseResponse normalises the service body into a result. The inner content
// may be a JSON string or an object; an explicit no-match flag wins over an
// empty list, and an empty list without it is an error.
func ParseResponse(raw []byte) (model.RecommendationResult, error) {
	var envelope envelopeDTO
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: decode body: %w", ErrFetch, err)
	}
	if envelope.NoMatchFromLLM {
		return model.NoMatch(), nil
	}

	content, err := decodeContent(envelope.Content)
	if err != nil {
		return model.RecommendationResult{}, err
	}
	if content.NoMatchFromLLM {
		return model.NoMatch(), nil
	}

	movies := content.MovieRecommendations
	if len(movies) == 0 && content.Title != "" {
		movies = []movieDTO{{Title: content.Title, ReleaseYear: content.ReleaseYear, Content: content.Content}}
	}

	records := make([]model.RecommendationRecord, 0, len(movies))
	for _, m := range movies {
		if m.Title == "" {
			continue
		}
		records = append(records, m.toDomain())
	}
	if len(records) == 0 {
		return model.RecommendationResult{}, fmt.Errorf("%w: empty recommendation list", ErrFetch)
	}

	return model.Recommendations(records...), nil
}

func decodeContent(raw json.RawMessage) (contentDTO, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return contentDTO{}, fmt.Errorf("%w: missing content", ErrFetch)
	}

	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return contentDTO{}, fmt.Errorf("%w: decode content: %w", ErrFetch, err)
		}
		raw = json.RawMessage(inner)
	}

	var content contentDTO
	if err := json.Unmarshal(raw, &content); err != nil {
		return contentDTO{}, fmt.Errorf("%w: decode content: %w", ErrFetch, err)
	}
	return content, nil
}

func truncate(b []byte) string {
	const limit = 256
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
