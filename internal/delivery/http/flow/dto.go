package http_flow

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/model"
	"github.com/humanbelnik/popchoice/internal/service/wizard"
)

// rawInput keeps what the user typed. Both 3 and "3" are accepted so the
// setup gate, not the decoder, decides what is a valid group size.
type rawInput string

func (r *rawInput) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = rawInput(s)
		return nil
	}
	*r = rawInput(b)
	return nil
}

type SetupRequestDTO struct {
	GroupSize     rawInput `json:"groupSize"`
	TimeAvailable string   `json:"timeAvailable"`
}

// FormPatchDTO sets the given fields of the current participant's form.
// Moods, when present, replace the whole selection.
type FormPatchDTO struct {
	FavoriteMovie *string   `json:"favoriteMovie"`
	Era           *string   `json:"preferenceEra"`
	Moods         *[]string `json:"moods"`
	Companion     *string   `json:"companion"`
}

func (p FormPatchDTO) apply(form *wizard.PreferenceForm) error {
	if p.FavoriteMovie != nil {
		form.SetFavoriteMovie(*p.FavoriteMovie)
	}
	if p.Era != nil {
		if err := form.SelectEra(model.Era(*p.Era)); err != nil {
			return err
		}
	}
	if p.Moods != nil {
		form.Moods = []model.Mood{}
		for _, m := range *p.Moods {
			if form.HasMood(model.Mood(m)) {
				continue
			}
			if err := form.ToggleMood(model.Mood(m)); err != nil {
				return err
			}
		}
	}
	if p.Companion != nil {
		form.SetCompanion(*p.Companion)
	}
	return nil
}

type EraRequestDTO struct {
	Era string `json:"era" binding:"required"`
}
