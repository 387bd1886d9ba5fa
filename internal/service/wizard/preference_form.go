package wizard

import (
	"fmt"
	"strings"

	"github.com/humanbelnik/popchoice/internal/model"
)

const (
	FieldFavoriteMovie = "favoriteMovie"
	FieldEra           = "preferenceEra"
	FieldMoods         = "moods"
	FieldCompanion     = "companion"
)

// PreferenceForm is the answer sheet of a single participant turn. A fresh
// value is created for every turn.
type PreferenceForm struct {
	FavoriteMovie string       `json:"favoriteMovie"`
	Era           model.Era    `json:"preferenceEra"`
	Moods         []model.Mood `json:"moods"`
	Companion     string       `json:"companion"`
}

func NewPreferenceForm() PreferenceForm {
	return PreferenceForm{Moods: []model.Mood{}}
}

func (f *PreferenceForm) SetFavoriteMovie(text string) {
	f.FavoriteMovie = text
}

func (f *PreferenceForm) SetCompanion(text string) {
	f.Companion = text
}

// SelectEra is exclusive: the new era replaces any previous choice.
func (f *PreferenceForm) SelectEra(era model.Era) error {
	if !era.Valid() {
		return invalid(FieldEra, fmt.Sprintf("unknown option %q", era))
	}
	f.Era = era
	return nil
}

// ToggleMood adds the mood when absent and removes it when present.
func (f *PreferenceForm) ToggleMood(mood model.Mood) error {
	if !mood.Valid() {
		return invalid(FieldMoods, fmt.Sprintf("unknown option %q", mood))
	}
	for i, m := range f.Moods {
		if m == mood {
			f.Moods = append(f.Moods[:i:i], f.Moods[i+1:]...)
			return nil
		}
	}
	f.Moods = append(f.Moods, mood)
	return nil
}

func (f PreferenceForm) HasMood(mood model.Mood) bool {
	for _, m := range f.Moods {
		if m == mood {
			return true
		}
	}
	return false
}

func (f PreferenceForm) IsEmpty() bool {
	return f.FavoriteMovie == "" && f.Era == model.EraNone && len(f.Moods) == 0 && f.Companion == ""
}

func (f PreferenceForm) Validate() error {
	if strings.TrimSpace(f.FavoriteMovie) == "" {
		return invalid(FieldFavoriteMovie, "required")
	}
	if !f.Era.Valid() {
		return invalid(FieldEra, "required")
	}
	if len(f.Moods) == 0 {
		return invalid(FieldMoods, "select at least one")
	}
	if strings.TrimSpace(f.Companion) == "" {
		return invalid(FieldCompanion, "required")
	}
	return nil
}

func (f PreferenceForm) CanSubmit() bool {
	return f.Validate() == nil
}

func (f PreferenceForm) Answer() (model.ParticipantAnswer, error) {
	if err := f.Validate(); err != nil {
		return model.ParticipantAnswer{}, err
	}
	moods := make([]model.Mood, len(f.Moods))
	copy(moods, f.Moods)

	return model.ParticipantAnswer{
		FavoriteMovie: strings.TrimSpace(f.FavoriteMovie),
		Era:           f.Era,
		Moods:         moods,
		Companion:     strings.TrimSpace(f.Companion),
	}, nil
}
