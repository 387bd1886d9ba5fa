package wizard

import (
	"time"

	"github.com/humanbelnik/popchoice/internal/model"
)

type Stage string

const (
	StageSetup           Stage = "setup"
	StageQuestions       Stage = "questions"
	StageLoading         Stage = "loading"
	StageRecommendations Stage = "recommendations"
	StageNoMatch         Stage = "no_match"
)

type Action string

const (
	ActionStart      Action = "start"
	ActionNextPerson Action = "next_person"
	ActionGetMovie   Action = "get_movie"
	ActionNextMovie  Action = "next_movie"
	ActionGoAgain    Action = "go_again"
)

// Ticket identifies the flow state a network call was issued for. Results
// carrying an outdated ticket are dropped.
type Ticket struct {
	Generation int `json:"generation"`
	Index      int `json:"index"`
}

type Request struct {
	Ticket  Ticket
	Payload model.CollectedResponses
}

// Flow is one run of the wizard: setup, participant turns, recommendations.
type Flow struct {
	ID         string                `json:"id"`
	Generation int                   `json:"generation"`
	Stage      Stage                 `json:"stage"`
	Gate       SetupGate             `json:"gate"`
	Collector  ResponseCollector     `json:"collector"`
	Form       PreferenceForm        `json:"form"`
	Browser    RecommendationBrowser `json:"browser"`
	LastError  string                `json:"lastError,omitempty"`

	// LoadingSince is set while a recommendation request is pending.
	LoadingSince time.Time `json:"loadingSince"`
}

func NewFlow(id string) *Flow {
	f := &Flow{ID: id}
	f.reset()
	return f
}

func (f *Flow) reset() {
	f.Stage = StageSetup
	f.Gate = SetupGate{}
	f.Collector = ResponseCollector{Current: 1}
	f.Form = NewPreferenceForm()
	f.Browser = RecommendationBrowser{}
	f.LastError = ""
	f.LoadingSince = time.Time{}
}

func (f *Flow) SubmitSetup(rawGroupSize, timeAvailable string) error {
	if f.Stage != StageSetup {
		return ErrInvalidStage
	}

	f.Gate = SetupGate{RawGroupSize: rawGroupSize, TimeAvailable: timeAvailable}
	setup, err := f.Gate.Submit()
	if err != nil {
		return err
	}

	f.Collector = NewResponseCollector(setup)
	f.Form = NewPreferenceForm()
	f.Stage = StageQuestions
	return nil
}

// EditForm runs edit against the current participant's form.
func (f *Flow) EditForm(edit func(form *PreferenceForm) error) error {
	if f.Stage != StageQuestions {
		return ErrInvalidStage
	}
	return edit(&f.Form)
}

// SubmitAnswer closes the current participant turn. For every turn but the
// last it returns a nil request; the last turn moves the flow to loading and
// returns the payload to send.
func (f *Flow) SubmitAnswer(now time.Time) (*Request, error) {
	if f.Stage != StageQuestions {
		return nil, ErrInvalidStage
	}

	answer, err := f.Form.Answer()
	if err != nil {
		return nil, err
	}

	done, err := f.Collector.Append(answer)
	if err != nil {
		return nil, err
	}
	if !done {
		f.Form = NewPreferenceForm()
		return nil, nil
	}

	f.Stage = StageLoading
	f.LastError = ""
	f.LoadingSince = now.UTC()
	return &Request{
		Ticket:  Ticket{Generation: f.Generation},
		Payload: f.Collector.Collected(),
	}, nil
}

func (f *Flow) Resolve(t Ticket, result model.RecommendationResult) error {
	if !f.awaiting(t) {
		return ErrStaleTicket
	}

	f.LoadingSince = time.Time{}
	switch result.Status {
	case model.RecommendationNoMatch:
		f.Browser = RecommendationBrowser{}
		f.Form = NewPreferenceForm()
		f.Stage = StageNoMatch
		return nil
	case model.RecommendationOK:
		browser, err := NewRecommendationBrowser(result.Records)
		if err != nil {
			f.fail(err)
			return err
		}
		f.Browser = browser
		f.Form = NewPreferenceForm()
		f.Stage = StageRecommendations
		return nil
	default:
		f.fail(ErrEmptyRecommendations)
		return ErrEmptyRecommendations
	}
}

// Fail returns a loading flow to the final turn with the form still filled.
func (f *Flow) Fail(t Ticket, cause error) error {
	if !f.awaiting(t) {
		return ErrStaleTicket
	}
	f.fail(cause)
	return nil
}

func (f *Flow) fail(cause error) {
	f.Collector.Withdraw()
	f.Stage = StageQuestions
	f.LastError = cause.Error()
	f.LoadingSince = time.Time{}
}

// ExpireLoading gives up on a request issued before deadline, e.g. one lost
// with a restarted process. The generation moves on so a result that still
// arrives is dropped.
func (f *Flow) ExpireLoading(deadline time.Time) bool {
	if f.Stage != StageLoading || f.LoadingSince.After(deadline) {
		return false
	}
	f.Generation++
	f.fail(ErrRecommendationTimedOut)
	return true
}

func (f *Flow) awaiting(t Ticket) bool {
	return f.Stage == StageLoading && t.Generation == f.Generation
}

func (f *Flow) Next() error {
	if f.Stage != StageRecommendations {
		return ErrInvalidStage
	}
	return f.Browser.Next()
}

// PosterTicket reports the displayed record when it still lacks a poster.
func (f *Flow) PosterTicket() (Ticket, model.RecommendationRecord, bool) {
	if f.Stage != StageRecommendations {
		return Ticket{}, model.RecommendationRecord{}, false
	}
	current, ok := f.Browser.Current()
	if !ok || current.HasPoster() {
		return Ticket{}, model.RecommendationRecord{}, false
	}
	return Ticket{Generation: f.Generation, Index: f.Browser.Index}, current, true
}

func (f *Flow) ApplyPoster(t Ticket, posterPath string) bool {
	if f.Stage != StageRecommendations || t.Generation != f.Generation || posterPath == "" {
		return false
	}
	return f.Browser.SetPoster(t.Index, posterPath)
}

// Restart is the "go again" path: only from the last recommendation or from
// the no-match screen.
func (f *Flow) Restart() error {
	switch f.Stage {
	case StageNoMatch:
	case StageRecommendations:
		if !f.Browser.CanRestart() {
			return ErrRestartUnavailable
		}
	default:
		return ErrInvalidStage
	}

	f.Generation++
	f.reset()
	return nil
}

func (f *Flow) Actions() []Action {
	switch f.Stage {
	case StageSetup:
		if f.Gate.CanSubmit() {
			return []Action{ActionStart}
		}
	case StageQuestions:
		if !f.Form.CanSubmit() {
			return nil
		}
		if f.Collector.IsFinalTurn() {
			return []Action{ActionGetMovie}
		}
		return []Action{ActionNextPerson}
	case StageRecommendations:
		if f.Browser.HasNext() {
			return []Action{ActionNextMovie}
		}
		return []Action{ActionGoAgain}
	case StageNoMatch:
		return []Action{ActionGoAgain}
	}
	return nil
}
