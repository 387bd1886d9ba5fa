package infra_memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/humanbelnik/popchoice/internal/service/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFlowStore(time.Hour)

	f := wizard.NewFlow("abc")
	require.NoError(t, f.SubmitSetup("3", "1 hour"))
	require.NoError(t, store.Save(ctx, f))

	f.Collector.Current = 99

	loaded, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 1, loaded.Collector.Current)
	assert.Equal(t, wizard.StageQuestions, loaded.Stage)

	require.NoError(t, store.Delete(ctx, "abc"))
	missing, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFlowStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewFlowStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, wizard.NewFlow("old")))

	now = now.Add(2 * time.Minute)
	loaded, err := store.Load(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFlowStoreSweepsAbandonedFlows(t *testing.T) {
	ctx := context.Background()
	store := NewFlowStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		require.NoError(t, store.Save(ctx, wizard.NewFlow(fmt.Sprintf("abandoned-%d", i))))
	}
	assert.Equal(t, 100, store.size())

	now = now.Add(30 * time.Second)
	require.NoError(t, store.Save(ctx, wizard.NewFlow("recent")))
	assert.Equal(t, 101, store.size())

	now = now.Add(2 * time.Minute)
	require.NoError(t, store.Save(ctx, wizard.NewFlow("fresh")))

	assert.Equal(t, 1, store.size())
	loaded, err := store.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
}
