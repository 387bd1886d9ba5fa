package infra_recommender

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/humanbelnik/popchoice/internal/model"
)

type SetupDTO struct {
	NumberOfPeople int    `json:"numberOfPeople"`
	Time           string `json:"time"`
}

type PersonDTO struct {
	UserResponses                string `json:"userResponses"`
	StringifiedQueryAndResponses string `json:"stringifiedQueryAndResponses"`
}

type RequestDTO struct {
	MovieSetUpPreferences SetupDTO    `json:"movieSetUpPreferences"`
	PeopleResponses       []PersonDTO `json:"peopleResponses"`
}

func FromDomain(c model.CollectedResponses) RequestDTO {
	people := make([]PersonDTO, len(c.PerPerson))
	for i, a := range c.PerPerson {
		tag := model.PersonTag(i + 1)
		people[i] = PersonDTO{
			UserResponses:                tag + ": " + a.Summary(),
			StringifiedQueryAndResponses: tag + "\n\n" + a.Transcript(),
		}
	}

	return RequestDTO{
		MovieSetUpPreferences: SetupDTO{
			NumberOfPeople: c.Setup.GroupSize,
			Time:           c.Setup.TimeAvailable,
		},
		PeopleResponses: people,
	}
}

// envelopeDTO is the outer body. Content normally holds a JSON document
// encoded as a string, but an inline object is accepted too.
type envelopeDTO struct {
	Content        json.RawMessage `json:"content"`
	NoMatchFromLLM bool            `json:"noMatchFromLLM"`
}

type contentDTO struct {
	MovieRecommendations []movieDTO `json:"movieRecommendations"`
	NoMatchFromLLM       bool       `json:"noMatchFromLLM"`

	// single-recommendation shape
	Title       string  `json:"title"`
	ReleaseYear yearDTO `json:"releaseYear"`
	Content     string  `json:"content"`
}

type movieDTO struct {
	Title       string  `json:"title"`
	ReleaseYear yearDTO `json:"releaseYear"`
	Content     string  `json:"content"`
}

func (m movieDTO) toDomain() model.RecommendationRecord {
	return model.RecommendationRecord{
		Title:       strings.TrimSpace(m.Title),
		ReleaseYear: int(m.ReleaseYear),
		Synopsis:    strings.TrimSpace(m.Content),
	}
}

// yearDTO decodes 1999, "1999" and null.
type yearDTO int

func (y *yearDTO) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*y = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*y = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*y = yearDTO(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*y = yearDTO(n)
	return nil
}
