package infra_qdrant

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/qdrant/go-client/qdrant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	exists   bool
	created  *qdrant.CreateCollection
	upserted *qdrant.UpsertPoints
	query    *qdrant.QueryPoints
	points   []*qdrant.ScoredPoint
	err      error
}

func (f *fakeClient) CollectionExists(ctx context.Context, name string) (bool, error) {
	return f.exists, f.err
}

func (f *fakeClient) CreateCollection(ctx context.Context, req *qdrant.CreateCollection) error {
	f.created = req
	return f.err
}

func (f *fakeClient) Upsert(ctx context.Context, req *qdrant.UpsertPoints) (*qdrant.UpdateResult, error) {
	f.upserted = req
	return &qdrant.UpdateResult{}, f.err
}

func (f *fakeClient) Query(ctx context.Context, req *qdrant.QueryPoints) ([]*qdrant.ScoredPoint, error) {
	f.query = req
	return f.points, f.err
}

func (f *fakeClient) Count(ctx context.Context, req *qdrant.CountPoints) (uint64, error) {
	return uint64(len(f.points)), f.err
}

func embedding() model.Embedding {
	return make(model.Embedding, model.EmbeddingDimension)
}

func TestEnsureCollection(t *testing.T) {
	fake := &fakeClient{}
	repo := newRepository(fake, "popchoice")

	require.NoError(t, repo.EnsureCollection(context.Background()))
	require.NotNil(t, fake.created)
	assert.Equal(t, "popchoice", fake.created.GetCollectionName())
	assert.Equal(t, uint64(model.EmbeddingDimension), fake.created.GetVectorsConfig().GetParams().GetSize())

	existing := &fakeClient{exists: true}
	require.NoError(t, newRepository(existing, "popchoice").EnsureCollection(context.Background()))
	assert.Nil(t, existing.created)
}

func TestStore(t *testing.T) {
	fake := &fakeClient{}
	repo := newRepository(fake, "popchoice")
	m := model.CatalogMovie{ID: uuid.New(), Title: "Arrival", ReleaseYear: 2016, Content: "Aliens."}

	require.NoError(t, repo.Store(context.Background(), m, embedding()))

	require.Len(t, fake.upserted.GetPoints(), 1)
	point := fake.upserted.GetPoints()[0]
	assert.Equal(t, m.ID.String(), point.GetId().GetUuid())
	assert.Equal(t, "Arrival", point.GetPayload()[payloadTitle].GetStringValue())
	assert.Equal(t, int64(2016), point.GetPayload()[payloadReleaseYear].GetIntegerValue())

	assert.ErrorIs(t, repo.Store(context.Background(), m, model.Embedding{1}), ErrInvalidEmbedding)
}

func TestMatch(t *testing.T) {
	id := uuid.New()
	fake := &fakeClient{points: []*qdrant.ScoredPoint{{
		Id:    qdrant.NewIDUUID(id.String()),
		Score: 0.9,
		Payload: qdrant.NewValueMap(map[string]any{
			payloadTitle:       "Heat",
			payloadReleaseYear: 1995,
			payloadContent:     "Cops and robbers.",
		}),
	}}}
	repo := newRepository(fake, "popchoice")

	movies, err := repo.Match(context.Background(), embedding(), model.DefaultMatchThreshold, model.DefaultMatchCount)

	require.NoError(t, err)
	assert.Equal(t, []model.CatalogMovie{{ID: id, Title: "Heat", ReleaseYear: 1995, Content: "Cops and robbers."}}, movies)
	assert.Equal(t, model.DefaultMatchThreshold, fake.query.GetScoreThreshold())
	assert.Equal(t, uint64(1), fake.query.GetLimit())

	failing := newRepository(&fakeClient{err: errors.New("unavailable")}, "popchoice")
	_, err = failing.Match(context.Background(), embedding(), 0.1, 1)
	assert.ErrorContains(t, err, "failed to query matches")
}
