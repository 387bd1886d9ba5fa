package infra_embedder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/model"
)

var (
	ErrMissingKey = errors.New("missing OPENAI_API_KEY")
	ErrEmbedding  = errors.New("embedding request failed")
)

// Embedder turns text into vectors through an OpenAI compatible
// /embeddings endpoint.
type Embedder struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func New(apiKey, baseURL, embeddingModel string) *Embedder {
	return &Embedder{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   embeddingModel,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one vector per input, in input order.
func (e *Embedder) Embed(ctx context.Context, inputs ...string) ([]model.Embedding, error) {
	if e.apiKey == "" {
		return nil, ErrMissingKey
	}
	if len(inputs) == 0 {
		return nil, nil
	}

	b, err := json.Marshal(embeddingRequest{Model: e.model, Input: inputs})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbedding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: openai status %d: %s", ErrEmbedding, resp.StatusCode, string(body))
	}

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrEmbedding, err)
	}
	if len(out.Data) != len(inputs) {
		return nil, fmt.Errorf("%w: got %d vectors for %d inputs", ErrEmbedding, len(out.Data), len(inputs))
	}

	sort.Slice(out.Data, func(i, j int) bool { return out.Data[i].Index < out.Data[j].Index })
	embs := make([]model.Embedding, len(out.Data))
	for i, d := range out.Data {
		embs[i] = model.Embedding(d.Embedding)
	}
	return embs, nil
}

func (e *Embedder) BuildAnswerEmbedding(ctx context.Context, a model.ParticipantAnswer) (model.Embedding, error) {
	return e.one(ctx, a.Summary())
}

func (e *Embedder) BuildMovieEmbedding(ctx context.Context, m model.CatalogMovie) (model.Embedding, error) {
	return e.one(ctx, m.Content)
}

func (e *Embedder) one(ctx context.Context, input string) (model.Embedding, error) {
	embs, err := e.Embed(ctx, input)
	if err != nil {
		return nil, err
	}
	return embs[0], nil
}
