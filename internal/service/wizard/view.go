package wizard

import "github.com/humanbelnik/popchoice/internal/model"

// View is the read model clients render: one screen of the wizard.
type View struct {
	ID                 string          `json:"id"`
	Generation         int             `json:"generation"`
	Stage              Stage           `json:"stage"`
	GroupSize          int             `json:"groupSize,omitempty"`
	TimeAvailable      string          `json:"timeAvailable,omitempty"`
	CurrentParticipant int             `json:"currentParticipant"`
	Form               *PreferenceForm `json:"form,omitempty"`
	Recommendation     *RecordView     `json:"recommendation,omitempty"`
	Position           int             `json:"position,omitempty"`
	Total              int             `json:"total,omitempty"`
	Actions            []Action        `json:"actions"`
	LastError          string          `json:"lastError,omitempty"`
}

type RecordView struct {
	Title       string `json:"title"`
	ReleaseYear int    `json:"releaseYear"`
	Synopsis    string `json:"synopsis"`
	PosterURL   string `json:"posterUrl,omitempty"`
}

func (f *Flow) View() View {
	v := View{
		ID:                 f.ID,
		Generation:         f.Generation,
		Stage:              f.Stage,
		GroupSize:          f.Collector.Setup.GroupSize,
		TimeAvailable:      f.Collector.Setup.TimeAvailable,
		CurrentParticipant: f.Collector.Current,
		Actions:            f.Actions(),
		LastError:          f.LastError,
	}
	if v.Actions == nil {
		v.Actions = []Action{}
	}

	switch f.Stage {
	case StageQuestions, StageLoading:
		form := f.Form
		v.Form = &form
	case StageRecommendations:
		if rec, ok := f.Browser.Current(); ok {
			v.Recommendation = recordView(rec)
			v.Position = f.Browser.Index + 1
			v.Total = f.Browser.Len()
		}
	}
	return v
}

func recordView(r model.RecommendationRecord) *RecordView {
	return &RecordView{
		Title:       r.Title,
		ReleaseYear: r.ReleaseYear,
		Synopsis:    r.Synopsis,
		PosterURL:   r.PosterURL(),
	}
}
