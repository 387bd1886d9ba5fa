package app

import (
	"testing"
	"time"

	"github.com/humanbelnik/popchoice/internal/config"
	infra_memory "github.com/humanbelnik/popchoice/internal/infra/memory"
	infra_recommender "github.com/humanbelnik/popchoice/internal/infra/recommender"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustFlowStoreFallsBackToMemory(t *testing.T) {
	cfg := &config.Config{Flow: config.Flow{TTL: time.Hour}}

	store := MustFlowStore(cfg, zerolog.Nop())

	_, ok := store.(*infra_memory.FlowStore)
	assert.True(t, ok)
}

func TestMustRecommenderRemote(t *testing.T) {
	cfg := &config.Config{Recommender: config.Recommender{
		Mode:    config.RecommenderRemote,
		URL:     "http://localhost:9999/recommend",
		Timeout: time.Second,
	}}

	rec := MustRecommender(cfg, zerolog.Nop())

	client, ok := rec.(*infra_recommender.Client)
	require.True(t, ok)
	assert.Equal(t, infra_recommender.Name, client.Name())
}
