package environment

import ts "github.com/samuelfneumann/customgym/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) StepLimit {
	return StepLimit{episodeSteps}
}

// Limit returns the episode step limit
func (s StepLimit) Limit() int {
	return s.episodeSteps
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode truncation. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last and its EndType is timestep.Timeout.
//
// TimeSteps which are already the last in their episode are left
// unmodified, and End returns false for them.
func (s StepLimit) End(t *ts.TimeStep) bool {
	if t.Last() {
		return false
	}
	if t.Number >= s.episodeSteps {
		t.StepType = ts.Last
		t.SetEnd(ts.Timeout)
		return true
	}
	return false
}
