package usecase_match

import (
	"context"
	"errors"
	"fmt"

	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/rs/zerolog"
)

var (
	ErrMatch = errors.New("semantic match failed")
)

const Name = "semantic"

//go:generate mockery --name=Embedder --output=./mocks/match/embedder --filename=embedder.go
type Embedder interface {
	BuildAnswerEmbedding(ctx context.Context, a model.ParticipantAnswer) (model.Embedding, error)
}

//go:generate mockery --name=VectorStore --output=./mocks/match/store --filename=store.go
type VectorStore interface {
	Match(ctx context.Context, e model.Embedding, threshold float32, count int) ([]model.CatalogMovie, error)
}

type EmbeddingReducer interface {
	Reduce(embs []model.Embedding) (model.Embedding, error)
}

// Usecase recommends straight from the seeded catalog: every participant's
// answers are embedded, the vectors are averaged and the closest movie above
// the threshold wins.
type Usecase struct {
	embedder  Embedder
	store     VectorStore
	reducer   EmbeddingReducer
	threshold float32
	count     int
	logger    zerolog.Logger
}

type Option func(*Usecase)

func WithLogger(logger zerolog.Logger) Option {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	embedder Embedder,
	store VectorStore,
	reducer EmbeddingReducer,
	threshold float32,
	count int,
	opts ...Option,
) *Usecase {
	if count <= 0 {
		count = model.DefaultMatchCount
	}
	u := &Usecase{
		embedder:  embedder,
		store:     store,
		reducer:   reducer,
		threshold: threshold,
		count:     count,
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *Usecase) Name() string {
	return Name
}

func (u *Usecase) Recommend(ctx context.Context, responses model.CollectedResponses) (model.RecommendationResult, error) {
	if len(responses.PerPerson) == 0 {
		return model.RecommendationResult{}, fmt.Errorf("%w: no answers", ErrMatch)
	}

	embs := make([]model.Embedding, 0, len(responses.PerPerson))
	for i, a := range responses.PerPerson {
		e, err := u.embedder.BuildAnswerEmbedding(ctx, a)
		if err != nil {
			return model.RecommendationResult{}, fmt.Errorf("%w: embed %s: %w", ErrMatch, model.PersonTag(i+1), err)
		}
		embs = append(embs, e)
	}

	group, err := u.reducer.Reduce(embs)
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: %w", ErrMatch, err)
	}

	movies, err := u.store.Match(ctx, group, u.threshold, u.count)
	if err != nil {
		return model.RecommendationResult{}, fmt.Errorf("%w: %w", ErrMatch, err)
	}
	if len(movies) == 0 {
		u.logger.Debug().Float32("threshold", u.threshold).Msg("no catalog movie above threshold")
		return model.NoMatch(), nil
	}

	records := make([]model.RecommendationRecord, len(movies))
	for i, m := range movies {
		records[i] = m.Record()
	}
	return model.Recommendations(records...), nil
}
