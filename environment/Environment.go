// Package environment outlines the interfaces and sturcts needed to implement
// concrete environments
package environment

import (
	ts "github.com/samuelfneumann/customgym/timestep"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Ender determines when an episode should end
type Ender interface {
	// End determines whether the episode should end on the argument
	// TimeStep. If so, End adjusts the TimeStep's StepType to
	// timestep.Last and sets its EndType.
	End(*ts.TimeStep) bool
}

// Environment implements a simualted environment which an agent
// interacts with one timestep at a time.
//
// An Environment is owned by a single caller. Implementations make no
// guarantee of safety for concurrent use.
type Environment interface {
	// Reset begins a new episode and returns its first timestep
	Reset(opts ...ResetOption) (ts.TimeStep, error)

	// Step takes one environmental step given an action, returning the
	// next timestep and whether or not the episode has ended
	// (terminated or truncated)
	Step(action *mat.VecDense) (ts.TimeStep, bool, error)

	// CurrentTimeStep returns the most recent timestep
	CurrentTimeStep() ts.TimeStep

	// Render returns a frame of the environment, or nil if the
	// environment was not configured to render frames
	Render() (*tensor.Dense, error)

	Metadata() Metadata

	RewardSpec() Spec
	DiscountSpec() Spec
	ObservationSpec() Spec
	ActionSpec() Spec
}

// Wrapper wraps an Environment and modifies the timesteps it returns
type Wrapper interface {
	Environment

	// Unwrap returns the wrapped Environment
	Unwrap() Environment
}

// Unwrapped returns the innermost Environment of e by repeatedly
// unwrapping Wrappers
func Unwrapped(e Environment) Environment {
	for {
		w, ok := e.(Wrapper)
		if !ok {
			return e
		}
		e = w.Unwrap()
	}
}
