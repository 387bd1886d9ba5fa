package model

import (
	"fmt"
	"strings"
)

const (
	QuestionFavoriteMovie = "What's your favorite movie and why?"
	QuestionEra           = "Are you in the mood for something new or a classic?"
	QuestionMood          = "What are you in the mood for?"
	QuestionCompanion     = "Which famous film person would you love to be stranded on an island with and why?"
)

type QuestionAnswer struct {
	Question string
	Answer   string
}

func (a ParticipantAnswer) QuestionsAndAnswers() []QuestionAnswer {
	moods := make([]string, len(a.Moods))
	for i, m := range a.Moods {
		moods[i] = string(m)
	}
	return []QuestionAnswer{
		{Question: QuestionFavoriteMovie, Answer: a.FavoriteMovie},
		{Question: QuestionEra, Answer: string(a.Era)},
		{Question: QuestionMood, Answer: strings.Join(moods, ",")},
		{Question: QuestionCompanion, Answer: a.Companion},
	}
}

// Summary joins the raw answers, e.g. "Inception..., New, Serious, Nolan...".
func (a ParticipantAnswer) Summary() string {
	qa := a.QuestionsAndAnswers()
	values := make([]string, len(qa))
	for i, item := range qa {
		values[i] = item.Answer
	}
	return strings.Join(values, ", ")
}

func (a ParticipantAnswer) Transcript() string {
	qa := a.QuestionsAndAnswers()
	blocks := make([]string, len(qa))
	for i, item := range qa {
		blocks[i] = fmt.Sprintf("Question %d: %s\nAnswer: %s", i+1, item.Question, item.Answer)
	}
	return strings.Join(blocks, "\n\n")
}

func PersonTag(n int) string {
	return fmt.Sprintf("Person %d", n)
}
