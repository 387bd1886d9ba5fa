package wizard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/humanbelnik/popchoice/internal/model"
)

const (
	FieldGroupSize     = "groupSize"
	FieldTimeAvailable = "timeAvailable"
)

// SetupGate holds the two raw inputs collected before the participant phase.
type SetupGate struct {
	RawGroupSize  string `json:"rawGroupSize"`
	TimeAvailable string `json:"timeAvailable"`
}

func (g SetupGate) CanSubmit() bool {
	_, err := g.Submit()
	return err == nil
}

func (g SetupGate) Submit() (model.SetupPreferences, error) {
	size, err := ParseGroupSize(g.RawGroupSize)
	if err != nil {
		return model.SetupPreferences{}, err
	}

	timeAvailable := strings.TrimSpace(g.TimeAvailable)
	if timeAvailable == "" {
		return model.SetupPreferences{}, invalid(FieldTimeAvailable, "required")
	}

	return model.SetupPreferences{
		GroupSize:     size,
		TimeAvailable: timeAvailable,
	}, nil
}

func ParseGroupSize(raw string) (int, error) {
	size, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid(FieldGroupSize, "must be a whole number")
	}
	if size < model.MinGroupSize || size > model.MaxGroupSize {
		return 0, invalid(FieldGroupSize,
			fmt.Sprintf("must be between %d and %d", model.MinGroupSize, model.MaxGroupSize))
	}
	return size, nil
}
