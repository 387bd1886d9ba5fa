package usecase_match

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/humanbelnik/popchoice/internal/service/embedding_reducer"
	embedder_mocks "github.com/humanbelnik/popchoice/internal/usecase/match/mocks/match/embedder"
	store_mocks "github.com/humanbelnik/popchoice/internal/usecase/match/mocks/match/store"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type UsecaseMatchUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	embedder *embedder_mocks.Embedder
	store    *store_mocks.VectorStore
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	embedder := embedder_mocks.NewEmbedder(t)
	store := store_mocks.NewVectorStore(t)

	return &resources{
		usecase:  New(embedder, store, embedding_reducer.New(), model.DefaultMatchThreshold, model.DefaultMatchCount),
		embedder: embedder,
		store:    store,
		ctx:      context.Background(),
	}
}

func twoPeople() model.CollectedResponses {
	return model.CollectedResponses{
		Setup: model.SetupPreferences{GroupSize: 2, TimeAvailable: "2 hours"},
		PerPerson: []model.ParticipantAnswer{
			{FavoriteMovie: "Alien", Era: model.EraClassic, Moods: []model.Mood{model.MoodScary}, Companion: "Ridley Scott"},
			{FavoriteMovie: "Up", Era: model.EraNew, Moods: []model.Mood{model.MoodFun}, Companion: "Pixar"},
		},
	}
}

func (s *UsecaseMatchUnitSuite) TestRecommend(t provider.T) {
	t.Parallel()

	movie := model.CatalogMovie{ID: uuid.New(), Title: "Coco", ReleaseYear: 2017, Content: "Land of the dead."}

	testCases := []struct {
		name          string
		setupMocks    func(r *resources, c model.CollectedResponses)
		expected      model.RecommendationResult
		expectedError error
	}{
		{
			name: "Should match averaged group vector",
			setupMocks: func(r *resources, c model.CollectedResponses) {
				r.embedder.On("BuildAnswerEmbedding", r.ctx, c.PerPerson[0]).Return(model.Embedding{1, 0}, nil).Once()
				r.embedder.On("BuildAnswerEmbedding", r.ctx, c.PerPerson[1]).Return(model.Embedding{0, 1}, nil).Once()
				r.store.On("Match", r.ctx, model.Embedding{0.5, 0.5}, model.DefaultMatchThreshold, model.DefaultMatchCount).
					Return([]model.CatalogMovie{movie}, nil).Once()
			},
			expected: model.Recommendations(movie.Record()),
		},
		{
			name: "Should report no match below threshold",
			setupMocks: func(r *resources, c model.CollectedResponses) {
				r.embedder.On("BuildAnswerEmbedding", r.ctx, mock.AnythingOfType("model.ParticipantAnswer")).
					Return(model.Embedding{1, 1}, nil).Twice()
				r.store.On("Match", r.ctx, mock.Anything, model.DefaultMatchThreshold, model.DefaultMatchCount).
					Return([]model.CatalogMovie{}, nil).Once()
			},
			expected: model.NoMatch(),
		},
		{
			name: "Should fail when embedding fails",
			setupMocks: func(r *resources, c model.CollectedResponses) {
				r.embedder.On("BuildAnswerEmbedding", r.ctx, c.PerPerson[0]).
					Return(nil, errors.New("rate limited")).Once()
			},
			expectedError: ErrMatch,
		},
		{
			name: "Should fail when store fails",
			setupMocks: func(r *resources, c model.CollectedResponses) {
				r.embedder.On("BuildAnswerEmbedding", r.ctx, mock.Anything).Return(model.Embedding{1}, nil).Twice()
				r.store.On("Match", r.ctx, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("db down")).Once()
			},
			expectedError: ErrMatch,
		},
		{
			name: "Should fail on mixed dimensions",
			setupMocks: func(r *resources, c model.CollectedResponses) {
				r.embedder.On("BuildAnswerEmbedding", r.ctx, c.PerPerson[0]).Return(model.Embedding{1, 2}, nil).Once()
				r.embedder.On("BuildAnswerEmbedding", r.ctx, c.PerPerson[1]).Return(model.Embedding{1}, nil).Once()
			},
			expectedError: embedding_reducer.ErrDimensionsDiffer,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			c := twoPeople()
			tc.setupMocks(r, c)

			result, err := r.usecase.Recommend(r.ctx, c)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.ErrorIs(t, err, ErrMatch)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func (s *UsecaseMatchUnitSuite) TestRecommendWithoutAnswers(t provider.T) {
	r := initResources(t)

	_, err := r.usecase.Recommend(r.ctx, model.CollectedResponses{})

	assert.ErrorIs(t, err, ErrMatch)
}

func TestUsecaseMatchUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseMatchUnitSuite))
}
