package usecase_catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidMovie = errors.New("invalid movie")
	ErrSeed         = errors.New("failed to seed catalog")
)

//go:generate mockery --name=Embedder --output=./mocks/catalog/embedder --filename=embedder.go
type Embedder interface {
	BuildMovieEmbedding(ctx context.Context, m model.CatalogMovie) (model.Embedding, error)
}

//go:generate mockery --name=Store --output=./mocks/catalog/store --filename=store.go
type Store interface {
	Store(ctx context.Context, m model.CatalogMovie, e model.Embedding) error
	Count(ctx context.Context) (int, error)
}

type Usecase struct {
	embedder    Embedder
	store       Store
	parallelism int
	logger      zerolog.Logger
}

type Option func(*Usecase)

func WithLogger(logger zerolog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(embedder Embedder, store Store, parallelism int, opts ...Option) *Usecase {
	if parallelism <= 0 {
		parallelism = 4
	}
	u := &Usecase{
		embedder:    embedder,
		store:       store,
		parallelism: parallelism,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Seed embeds every movie's content and stores it. The first failure cancels
// the remaining work.
func (u *Usecase) Seed(ctx context.Context, movies []model.CatalogMovie) (int, error) {
	for i, m := range movies {
		if err := validate(m); err != nil {
			return 0, fmt.Errorf("%w: movie #%d: %w", ErrSeed, i+1, err)
		}
	}

	var stored atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.parallelism)

	for _, m := range movies {
		g.Go(func() error {
			e, err := u.embedder.BuildMovieEmbedding(gctx, m)
			if err != nil {
				return fmt.Errorf("embed %q: %w", m.Title, err)
			}
			if err := u.store.Store(gctx, m, e); err != nil {
				return fmt.Errorf("store %q: %w", m.Title, err)
			}
			stored.Add(1)
			u.logger.Debug().Str("title", m.Title).Int("year", m.ReleaseYear).Msg("movie stored")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(stored.Load()), fmt.Errorf("%w: %w", ErrSeed, err)
	}
	return int(stored.Load()), nil
}

func (u *Usecase) Count(ctx context.Context) (int, error) {
	return u.store.Count(ctx)
}

type movieFileDTO struct {
	Title       string          `json:"title"`
	ReleaseYear json.RawMessage `json:"releaseYear"`
	Content     string          `json:"content"`
}

// LoadMovies reads a JSON array of {title, releaseYear, content} objects.
func LoadMovies(r io.Reader) ([]model.CatalogMovie, error) {
	var dtos []movieFileDTO
	if err := json.NewDecoder(r).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("failed to decode movies: %w", err)
	}

	movies := make([]model.CatalogMovie, 0, len(dtos))
	for i, d := range dtos {
		year, err := parseYear(d.ReleaseYear)
		if err != nil {
			return nil, fmt.Errorf("%w: movie #%d: %w", ErrInvalidMovie, i+1, err)
		}
		title := strings.TrimSpace(d.Title)
		movies = append(movies, model.CatalogMovie{
			ID:          model.CatalogID(title, year),
			Title:       title,
			ReleaseYear: year,
			Content:     strings.TrimSpace(d.Content),
		})
	}
	return movies, nil
}

func parseYear(raw json.RawMessage) (int, error) {
	s := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if s == "" || s == "null" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func validate(m model.CatalogMovie) error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMovie)
	}
	if m.Content == "" {
		return fmt.Errorf("%w: %q has no content", ErrInvalidMovie, m.Title)
	}
	return nil
}
