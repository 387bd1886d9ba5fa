package wizard

import "github.com/humanbelnik/popchoice/internal/model"

// ResponseCollector gathers one answer per participant. Current is 1-based and
// stays on the last participant once every answer is in.
type ResponseCollector struct {
	Setup     model.SetupPreferences    `json:"setup"`
	Current   int                       `json:"currentParticipant"`
	Responses []model.ParticipantAnswer `json:"responses"`
}

func NewResponseCollector(setup model.SetupPreferences) ResponseCollector {
	return ResponseCollector{
		Setup:     setup,
		Current:   1,
		Responses: make([]model.ParticipantAnswer, 0, setup.GroupSize),
	}
}

func (c ResponseCollector) IsFinalTurn() bool {
	return c.Current >= c.Setup.GroupSize
}

func (c ResponseCollector) Done() bool {
	return c.Setup.GroupSize > 0 && len(c.Responses) >= c.Setup.GroupSize
}

func (c *ResponseCollector) Append(a model.ParticipantAnswer) (done bool, err error) {
	if c.Done() {
		return true, ErrCollectionComplete
	}

	c.Responses = append(c.Responses, a)
	if c.Done() {
		return true, nil
	}
	c.Current++
	return false, nil
}

// Withdraw takes the final answer back out so the last turn can be submitted
// again after a failed request.
func (c *ResponseCollector) Withdraw() (model.ParticipantAnswer, bool) {
	if !c.Done() {
		return model.ParticipantAnswer{}, false
	}
	last := c.Responses[len(c.Responses)-1]
	c.Responses = c.Responses[:len(c.Responses)-1]
	return last, true
}

func (c ResponseCollector) Collected() model.CollectedResponses {
	return model.CollectedResponses{
		Setup:     c.Setup,
		PerPerson: c.Responses,
	}.Clone()
}
