package infra_qdrant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/config"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/qdrant/go-client/qdrant"
)

var (
	ErrInvalidEmbedding = errors.New("invalid embedding dimensions")
)

const (
	payloadTitle       = "title"
	payloadReleaseYear = "releaseyear"
	payloadContent     = "content"
)

// pointsClient is the part of *qdrant.Client the repository needs.
type pointsClient interface {
	CollectionExists(ctx context.Context, collectionName string) (bool, error)
	CreateCollection(ctx context.Context, request *qdrant.CreateCollection) error
	Upsert(ctx context.Context, request *qdrant.UpsertPoints) (*qdrant.UpdateResult, error)
	Query(ctx context.Context, request *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error)
	Count(ctx context.Context, request *qdrant.CountPoints) (uint64, error)
}

type Repository struct {
	client     pointsClient
	collection string
}

func MustEstablishConn(cfg config.Qdrant) *qdrant.Client {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		panic(err)
	}
	return client
}

func New(client *qdrant.Client, collection string) *Repository {
	return newRepository(client, collection)
}

func newRepository(client pointsClient, collection string) *Repository {
	return &Repository{client: client, collection: collection}
}

// EnsureCollection creates the cosine collection on first use.
func (r *Repository) EnsureCollection(ctx context.Context) error {
	exists, err := r.client.CollectionExists(ctx, r.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}
	if exists {
		return nil
	}

	err = r.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     model.EmbeddingDimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

func (r *Repository) Store(ctx context.Context, m model.CatalogMovie, e model.Embedding) error {
	if len(e) != model.EmbeddingDimension {
		return fmt.Errorf("%w: got %d", ErrInvalidEmbedding, len(e))
	}

	_, err := r.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: r.collection,
		Wait:           qdrant.PtrOf(true),
		Points: []*qdrant.PointStruct{{
			Id:      qdrant.NewIDUUID(m.ID.String()),
			Vectors: qdrant.NewVectors(e...),
			Payload: qdrant.NewValueMap(map[string]any{
				payloadTitle:       m.Title,
				payloadReleaseYear: m.ReleaseYear,
				payloadContent:     m.Content,
			}),
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to store movie: %w", err)
	}
	return nil
}

func (r *Repository) Match(ctx context.Context, e model.Embedding, threshold float32, count int) ([]model.CatalogMovie, error) {
	if len(e) != model.EmbeddingDimension {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidEmbedding, len(e))
	}

	points, err := r.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: r.collection,
		Query:          qdrant.NewQuery(e...),
		ScoreThreshold: qdrant.PtrOf(threshold),
		Limit:          qdrant.PtrOf(uint64(count)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}

	movies := make([]model.CatalogMovie, 0, len(points))
	for _, p := range points {
		movies = append(movies, toDomain(p))
	}
	return movies, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: r.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}
	return int(n), nil
}

func toDomain(p *qdrant.ScoredPoint) model.CatalogMovie {
	id, _ := uuid.Parse(p.GetId().GetUuid())
	payload := p.GetPayload()

	return model.CatalogMovie{
		ID:          id,
		Title:       payload[payloadTitle].GetStringValue(),
		ReleaseYear: int(payload[payloadReleaseYear].GetIntegerValue()),
		Content:     payload[payloadContent].GetStringValue(),
	}
}
