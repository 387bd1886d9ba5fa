package infra_postgres_vector

import (
	"context"
	"errors"
	"fmt"

	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/jmoiron/sqlx"
)

var (
	ErrInvalidEmbedding = errors.New("invalid embedding dimensions")
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Store(ctx context.Context, m model.CatalogMovie, e model.Embedding) error {
	if len(e) != model.EmbeddingDimension {
		return fmt.Errorf("%w: got %d", ErrInvalidEmbedding, len(e))
	}

	query := `
		INSERT INTO popchoice (id, title, releaseyear, content, embedding)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (title, releaseyear) DO UPDATE SET
			content = EXCLUDED.content,
			embedding = EXCLUDED.embedding
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.Title, m.ReleaseYear, m.Content, e)
	if err != nil {
		return fmt.Errorf("failed to store movie: %w", err)
	}

	return nil
}

// Match returns up to count movies whose cosine similarity to e is above
// threshold, closest first.
func (r *Repository) Match(ctx context.Context, e model.Embedding, threshold float32, count int) ([]model.CatalogMovie, error) {
	if len(e) != model.EmbeddingDimension {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidEmbedding, len(e))
	}

	query := `
		SELECT id, title, releaseyear, content, 1 - (embedding <=> $1) AS similarity
		FROM popchoice
		WHERE 1 - (embedding <=> $1) > $2
		ORDER BY embedding <=> $1
		LIMIT $3
	`

	var moviesDB []MovieDB
	err := r.db.SelectContext(ctx, &moviesDB, query, e, threshold, count)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	movies := make([]model.CatalogMovie, len(moviesDB))
	for i, movieDB := range moviesDB {
		movies[i] = movieDB.ToDomain()
	}

	return movies, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM popchoice`); err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return n, nil
}
