package wizard

import (
	"testing"

	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerFor(n int) model.ParticipantAnswer {
	return model.ParticipantAnswer{
		FavoriteMovie: model.PersonTag(n) + " movie",
		Era:           model.EraClassic,
		Moods:         []model.Mood{model.MoodSerious},
		Companion:     "Meryl Streep",
	}
}

func TestResponseCollectorCollectsExactlyGroupSize(t *testing.T) {
	for size := model.MinGroupSize; size <= model.MaxGroupSize; size++ {
		c := NewResponseCollector(model.SetupPreferences{GroupSize: size, TimeAvailable: "2 hours"})

		for n := 1; n <= size; n++ {
			assert.Equal(t, n, c.Current)
			assert.Equal(t, n == size, c.IsFinalTurn())

			done, err := c.Append(answerFor(n))
			require.NoError(t, err)
			assert.Equal(t, n == size, done)
		}

		assert.Len(t, c.Collected().PerPerson, size)
		assert.Equal(t, size, c.Current)

		_, err := c.Append(answerFor(size + 1))
		assert.ErrorIs(t, err, ErrCollectionComplete)
		assert.Len(t, c.Responses, size)
	}
}

func TestResponseCollectorWithdraw(t *testing.T) {
	c := NewResponseCollector(model.SetupPreferences{GroupSize: 2, TimeAvailable: "1 hour"})

	_, ok := c.Withdraw()
	assert.False(t, ok)

	_, _ = c.Append(answerFor(1))
	_, _ = c.Append(answerFor(2))

	last, ok := c.Withdraw()
	require.True(t, ok)
	assert.Equal(t, answerFor(2), last)
	assert.Len(t, c.Responses, 1)
	assert.Equal(t, 2, c.Current)
	assert.False(t, c.Done())
}

func TestResponseCollectorCollectedIsACopy(t *testing.T) {
	c := NewResponseCollector(model.SetupPreferences{GroupSize: 1, TimeAvailable: "1 hour"})
	_, _ = c.Append(answerFor(1))

	collected := c.Collected()
	collected.PerPerson[0].Moods[0] = model.MoodScary

	assert.Equal(t, model.MoodSerious, c.Responses[0].Moods[0])
}
