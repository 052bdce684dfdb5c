// Package timestep implements timesteps of the agent-environment interaction
package timestep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StepType denotes the type of step that a TimeStep can be, either  first
// environmental step, a middle step, or a last step
type StepType int

const (
	First StepType = iota
	Mid
	Last
)

func (s StepType) String() string {
	switch s {
	case First:
		return "First"
	case Last:
		return "Last"
	default:
		return "Mid"
	}
}

// EndType denotes why an episode ended. Episodes can end because some
// terminal state was reached (termination) or because some external
// limit, such as a step limit, cut the episode off (truncation).
type EndType int

const (
	// Episode has not ended
	Running EndType = iota

	// Episode ended due to a condition intrinsic to the environment
	TerminalStateReached

	// Episode was cut off by some external limit
	Timeout
)

func (e EndType) String() string {
	switch e {
	case TerminalStateReached:
		return "TerminalStateReached"
	case Timeout:
		return "Timeout"
	default:
		return "Running"
	}
}

// TimeStep packages together a single timestep in an environment.
//
// Info holds auxiliary, non-contractual data about the timestep. It is
// never nil for TimeSteps constructed with New.
type TimeStep struct {
	StepType
	Reward      float64
	Discount    float64
	Observation *mat.VecDense
	Number      int
	Info        map[string]string

	endType EndType
}

// New returns a new TimeStep with an empty info mapping
func New(t StepType, r, d float64, o *mat.VecDense, n int) TimeStep {
	return TimeStep{
		StepType:    t,
		Reward:      r,
		Discount:    d,
		Observation: o,
		Number:      n,
		Info:        make(map[string]string),
	}
}

// SetEnd sets the ending type of the TimeStep
func (t *TimeStep) SetEnd(e EndType) {
	t.endType = e
}

// EndType returns the ending type of the TimeStep
func (t *TimeStep) EndType() EndType {
	return t.endType
}

// First returns whether a TimeStep is the first in an environment
func (t *TimeStep) First() bool {
	return t.StepType == First
}

// Mid returns whether a TimeStep is a middle step in an environment
func (t *TimeStep) Mid() bool {
	return t.StepType == Mid
}

// Last returns whether a TimeStep is the last step in an environment
func (t *TimeStep) Last() bool {
	return t.StepType == Last
}

// Terminated returns whether the episode ended on this TimeStep due to
// a terminal state being reached
func (t *TimeStep) Terminated() bool {
	return t.Last() && t.endType == TerminalStateReached
}

// Truncated returns whether the episode was cut off on this TimeStep
// by an external limit
func (t *TimeStep) Truncated() bool {
	return t.Last() && t.endType == Timeout
}

func (t TimeStep) String() string {
	str := "TimeStep | Type: %v  |  Reward:  %.2f  |  Discount: %.2f  |  " +
		"Step Number:  %v  |  End: %v"

	return fmt.Sprintf(str, t.StepType, t.Reward, t.Discount, t.Number,
		t.endType)
}
