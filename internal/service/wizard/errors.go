package wizard

import (
	"errors"
	"fmt"
)

var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidStage         = errors.New("action is not available in the current stage")
	ErrCollectionComplete   = errors.New("every participant has already answered")
	ErrNoNextRecommendation = errors.New("no next recommendation")
	ErrEmptyRecommendations = errors.New("empty recommendation set")
	ErrRestartUnavailable   = errors.New("restart is only available on the last recommendation")
	ErrStaleTicket          = errors.New("request ticket no longer matches the flow")

	ErrRecommendationTimedOut = errors.New("recommendation request did not finish, please try again")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
