package usecase_catalog

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/model"
	embedder_mocks "github.com/humanbelnik/popchoice/internal/usecase/catalog/mocks/catalog/embedder"
	store_mocks "github.com/humanbelnik/popchoice/internal/usecase/catalog/mocks/catalog/store"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseCatalogUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	embedder *embedder_mocks.Embedder
	store    *store_mocks.Store
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	embedder := embedder_mocks.NewEmbedder(t)
	store := store_mocks.NewStore(t)

	return &resources{
		usecase:  New(embedder, store, 2),
		embedder: embedder,
		store:    store,
		ctx:      context.Background(),
	}
}

func movies() []model.CatalogMovie {
	return []model.CatalogMovie{
		{ID: uuid.New(), Title: "Heat", ReleaseYear: 1995, Content: "Cops and robbers."},
		{ID: uuid.New(), Title: "Up", ReleaseYear: 2009, Content: "Balloons."},
		{ID: uuid.New(), Title: "Coco", ReleaseYear: 2017, Content: "Music."},
	}
}

func (s *UsecaseCatalogUnitSuite) TestSeed(t provider.T) {
	t.Parallel()

	t.Run("Should store every movie", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		ms := movies()
		for _, m := range ms {
			r.embedder.On("BuildMovieEmbedding", mock.Anything, m).Return(model.Embedding{float32(m.ReleaseYear)}, nil).Once()
			r.store.On("Store", mock.Anything, m, model.Embedding{float32(m.ReleaseYear)}).Return(nil).Once()
		}

		n, err := r.usecase.Seed(r.ctx, ms)

		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("Should stop on embedding failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		r.embedder.On("BuildMovieEmbedding", mock.Anything, mock.Anything).Return(nil, errors.New("quota")).Maybe()

		n, err := r.usecase.Seed(r.ctx, movies())

		assert.ErrorIs(t, err, ErrSeed)
		assert.Zero(t, n)
	})

	t.Run("Should reject movie without content", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		ms := movies()
		ms[1].Content = ""

		_, err := r.usecase.Seed(r.ctx, ms)

		assert.ErrorIs(t, err, ErrInvalidMovie)
		r.embedder.AssertNotCalled(t, "BuildMovieEmbedding", mock.Anything, mock.Anything)
	})
}

func (s *UsecaseCatalogUnitSuite) TestLoadMovies(t provider.T) {
	t.Parallel()

	movies, err := LoadMovies(strings.NewReader(`[
		{"title": "The Godfather", "releaseYear": "1972", "content": " Mob family saga. "},
		{"title": "Arrival", "releaseYear": 2016, "content": "Linguistics."}
	]`))

	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, 1972, movies[0].ReleaseYear)
	assert.Equal(t, "Mob family saga.", movies[0].Content)
	assert.Equal(t, 2016, movies[1].ReleaseYear)
	assert.NotEqual(t, uuid.Nil, movies[1].ID)
	assert.NotEqual(t, movies[0].ID, movies[1].ID)

	again, err := LoadMovies(strings.NewReader(`[{"title": " Arrival ", "releaseYear": "2016", "content": "Other text."}]`))
	require.NoError(t, err)
	assert.Equal(t, movies[1].ID, again[0].ID)

	_, err = LoadMovies(strings.NewReader(`[{"title":"X","releaseYear":"soon","content":"y"}]`))
	assert.ErrorIs(t, err, ErrInvalidMovie)

	_, err = LoadMovies(strings.NewReader(`{`))
	assert.Error(t, err)
}

func TestUsecaseCatalogUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseCatalogUnitSuite))
}
