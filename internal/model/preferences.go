package model

const (
	MinGroupSize = 1
	MaxGroupSize = 8
)

type SetupPreferences struct {
	GroupSize     int    `json:"groupSize"`
	TimeAvailable string `json:"timeAvailable"`
}

type Era string

const (
	EraNone    Era = ""
	EraNew     Era = "New"
	EraClassic Era = "Classic"
)

var Eras = []Era{EraNew, EraClassic}

func (e Era) Valid() bool {
	return e == EraNew || e == EraClassic
}

type Mood string

const (
	MoodFun       Mood = "Fun"
	MoodSerious   Mood = "Serious"
	MoodInspiring Mood = "Inspiring"
	MoodScary     Mood = "Scary"
)

var Moods = []Mood{MoodFun, MoodSerious, MoodInspiring, MoodScary}

func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

type ParticipantAnswer struct {
	FavoriteMovie string `json:"favoriteMovie"`
	Era           Era    `json:"preferenceEra"`
	Moods         []Mood `json:"moods"`
	Companion     string `json:"companion"`
}

func (a ParticipantAnswer) clone() ParticipantAnswer {
	moods := make([]Mood, len(a.Moods))
	copy(moods, a.Moods)
	a.Moods = moods
	return a
}

type CollectedResponses struct {
	Setup     SetupPreferences    `json:"setup"`
	PerPerson []ParticipantAnswer `json:"perPerson"`
}

// Clone returns a deep copy; the recommender never sees the collector's slices.
func (c CollectedResponses) Clone() CollectedResponses {
	out := CollectedResponses{
		Setup:     c.Setup,
		PerPerson: make([]ParticipantAnswer, 0, len(c.PerPerson)),
	}
	for _, a := range c.PerPerson {
		out.PerPerson = append(out.PerPerson, a.clone())
	}
	return out
}
