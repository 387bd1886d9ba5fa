package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParticipantAnswerText(t *testing.T) {
	a := ParticipantAnswer{
		FavoriteMovie: "Inception",
		Era:           EraNew,
		Moods:         []Mood{MoodFun, MoodScary},
		Companion:     "Nolan",
	}

	assert.Equal(t, "Inception, New, Fun,Scary, Nolan", a.Summary())
	assert.Equal(t,
		"Question 1: "+QuestionFavoriteMovie+"\nAnswer: Inception\n\n"+
			"Question 2: "+QuestionEra+"\nAnswer: New\n\n"+
			"Question 3: "+QuestionMood+"\nAnswer: Fun,Scary\n\n"+
			"Question 4: "+QuestionCompanion+"\nAnswer: Nolan",
		a.Transcript())
	assert.Equal(t, "Person 3", PersonTag(3))
}

func TestEmbeddingValue(t *testing.T) {
	v, err := Embedding{0.5, -1, 0.25}.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[0.5,-1,0.25]", v)
}

func TestRecordPosterURL(t *testing.T) {
	assert.Empty(t, RecommendationRecord{Title: "x"}.PosterURL())
	assert.Equal(t, PosterBaseURL+"/a.jpg", RecommendationRecord{PosterPath: "/a.jpg"}.PosterURL())
}
