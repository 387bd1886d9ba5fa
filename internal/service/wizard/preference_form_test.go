package wizard

import (
	"testing"

	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm() PreferenceForm {
	f := NewPreferenceForm()
	f.SetFavoriteMovie("The Matrix because of the action")
	_ = f.SelectEra(model.EraNew)
	_ = f.ToggleMood(model.MoodFun)
	f.SetCompanion("Tom Hanks because he is funny")
	return f
}

func TestToggleMood(t *testing.T) {
	f := NewPreferenceForm()

	require.NoError(t, f.ToggleMood(model.MoodFun))
	require.NoError(t, f.ToggleMood(model.MoodScary))
	assert.Equal(t, []model.Mood{model.MoodFun, model.MoodScary}, f.Moods)

	require.NoError(t, f.ToggleMood(model.MoodFun))
	assert.Equal(t, []model.Mood{model.MoodScary}, f.Moods)
	assert.False(t, f.HasMood(model.MoodFun))

	require.NoError(t, f.ToggleMood(model.MoodScary))
	assert.Empty(t, f.Moods)

	err := f.ToggleMood(model.Mood("Sleepy"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestToggleMoodTwiceRestoresSet(t *testing.T) {
	for _, mood := range model.Moods {
		f := NewPreferenceForm()
		require.NoError(t, f.ToggleMood(model.MoodInspiring))
		before := append([]model.Mood(nil), f.Moods...)

		require.NoError(t, f.ToggleMood(mood))
		require.NoError(t, f.ToggleMood(mood))

		assert.ElementsMatch(t, before, f.Moods, "mood %s", mood)
	}
}

func TestSelectEraIsExclusive(t *testing.T) {
	f := NewPreferenceForm()

	require.NoError(t, f.SelectEra(model.EraNew))
	require.NoError(t, f.SelectEra(model.EraClassic))
	assert.Equal(t, model.EraClassic, f.Era)

	assert.ErrorIs(t, f.SelectEra(model.Era("Modern")), ErrValidation)
	assert.Equal(t, model.EraClassic, f.Era)
}

func TestPreferenceFormValidate(t *testing.T) {
	testCases := []struct {
		name  string
		edit  func(f *PreferenceForm)
		field string
	}{
		{name: "missing favorite movie", edit: func(f *PreferenceForm) { f.SetFavoriteMovie(" ") }, field: FieldFavoriteMovie},
		{name: "missing era", edit: func(f *PreferenceForm) { f.Era = model.EraNone }, field: FieldEra},
		{name: "no moods", edit: func(f *PreferenceForm) { f.Moods = nil }, field: FieldMoods},
		{name: "missing companion", edit: func(f *PreferenceForm) { f.SetCompanion("") }, field: FieldCompanion},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := filledForm()
			tc.edit(&f)

			assert.False(t, f.CanSubmit())
			var vErr *ValidationError
			require.ErrorAs(t, f.Validate(), &vErr)
			assert.Equal(t, tc.field, vErr.Field)
		})
	}
}

func TestPreferenceFormAnswerIsDetached(t *testing.T) {
	f := filledForm()
	f.SetCompanion("  Keanu  ")

	answer, err := f.Answer()
	require.NoError(t, err)
	assert.Equal(t, "Keanu", answer.Companion)

	require.NoError(t, f.ToggleMood(model.MoodSerious))
	assert.Equal(t, []model.Mood{model.MoodFun}, answer.Moods)
}
