package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	http_flow "github.com/humanbelnik/popchoice/internal/delivery/http/flow"
	ws_flow "github.com/humanbelnik/popchoice/internal/delivery/ws/flow"
	infra_memory "github.com/humanbelnik/popchoice/internal/infra/memory"
	"github.com/humanbelnik/popchoice/internal/model"
	usecase_flow "github.com/humanbelnik/popchoice/internal/usecase/flow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyRecommender struct {
	failures int
	calls    int
	result   model.RecommendationResult
}

func (f *flakyRecommender) Name() string { return "flaky" }

func (f *flakyRecommender) Recommend(ctx context.Context, c model.CollectedResponses) (model.RecommendationResult, error) {
	f.calls++
	if f.calls <= f.failures {
		return model.RecommendationResult{}, errors.New("connection reset")
	}
	return f.result, nil
}

func newAPI(t *testing.T, rec usecase_flow.Recommender) string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	uc := usecase_flow.New(infra_memory.NewFlowStore(time.Hour), rec)

	engine := gin.New()
	group := engine.Group("/api/v1")
	http_flow.New(uc).RegisterRoutes(group)
	ws_flow.New(uc, ws_flow.NewHub()).RegisterRoutes(group)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv.URL + "/api/v1"
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestClientWalksTheWizard(t *testing.T) {
	rec := &flakyRecommender{
		failures: 1,
		result: model.Recommendations(
			model.RecommendationRecord{Title: "Interstellar", ReleaseYear: 2014, Synopsis: "Space."},
			model.RecommendationRecord{Title: "Tenet", ReleaseYear: 2020, Synopsis: "Time."},
		),
	}
	var out bytes.Buffer
	client := NewClient(newAPI(t, rec), script(
		"9", "soon",
		"1", "2 hours",
		"Inception, layered plot", "1", "2, 1", "Christopher Nolan",
		"",
		"",
		"q",
	), &out)

	require.NoError(t, client.Run())
	client.Close()

	output := out.String()
	assert.Contains(t, output, "groupSize: must be between 1 and 8")
	assert.Contains(t, output, "Person 1 of 1")
	assert.Contains(t, output, "could not fetch recommendations")
	assert.Contains(t, output, "1/2  Interstellar (2014)")
	assert.Contains(t, output, "2/2  Tenet (2020)")
	assert.Contains(t, output, "Go Again")
	assert.Equal(t, 2, rec.calls)
}

func TestClientNoMatchAndGoAgain(t *testing.T) {
	rec := &flakyRecommender{result: model.NoMatch()}
	var out bytes.Buffer
	client := NewClient(newAPI(t, rec), script(
		"1", "an hour",
		"Heat", "Classic", "Serious", "Robert De Niro",
		"",
		"1", "an hour",
	), &out)

	err := client.Run()
	client.Close()

	assert.ErrorIs(t, err, errQuit)
	assert.Equal(t, 2, strings.Count(out.String(), "=== PopChoice ==="))
	assert.Contains(t, out.String(), "no movie matched")
}

func TestChoose(t *testing.T) {
	assert.Equal(t, "New", choose("1", model.Eras))
	assert.Equal(t, "Classic", choose("Classic", model.Eras))
	assert.Equal(t, "Scary", choose("4", model.Moods))
	assert.Equal(t, "7", choose("7", model.Moods))
}
