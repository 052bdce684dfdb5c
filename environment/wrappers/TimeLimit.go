// Package wrappers implements Environment wrappers which alter the
// timesteps returned by the Environments they wrap
package wrappers

import (
	"fmt"

	"github.com/samuelfneumann/customgym/environment"
	ts "github.com/samuelfneumann/customgym/timestep"
	"gonum.org/v1/gonum/mat"
)

// TimeLimit wraps an environment and truncates episodes once they
// reach some number of steps. Steps which are already the last in
// their episode, for example because the wrapped environment reached
// a terminal state, are left unmodified so that termination takes
// precedence over truncation.
//
// TimeLimit itself implements the environment.Environment interface.
type TimeLimit struct {
	environment.Environment
	limit    environment.StepLimit
	lastStep ts.TimeStep
}

// NewTimeLimit returns a new TimeLimit which truncates episodes of
// env after steps steps.
func NewTimeLimit(env environment.Environment, steps int) (*TimeLimit,
	error) {
	if steps < 1 {
		return nil, fmt.Errorf("newTimeLimit: step limit must be positive, "+
			"have(%v)", steps)
	}
	return &TimeLimit{
		Environment: env,
		limit:       environment.NewStepLimit(steps),
		lastStep:    env.CurrentTimeStep(),
	}, nil
}

// Reset resets the wrapped environment and begins a new episode
func (t *TimeLimit) Reset(opts ...environment.ResetOption) (ts.TimeStep,
	error) {
	step, err := t.Environment.Reset(opts...)
	if err != nil {
		return step, fmt.Errorf("reset: %w", err)
	}

	t.lastStep = step
	return step, nil
}

// Step takes one environmental step given action a, truncating the
// episode if the step limit is reached
func (t *TimeLimit) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, _, err := t.Environment.Step(a)
	if err != nil {
		return step, false, fmt.Errorf("step: %w", err)
	}

	t.limit.End(&step)
	t.lastStep = step
	return step, step.Last(), nil
}

// CurrentTimeStep returns the most recent timestep, as truncated by the
// TimeLimit
func (t *TimeLimit) CurrentTimeStep() ts.TimeStep {
	return t.lastStep
}

// Limit returns the number of steps after which episodes are truncated
func (t *TimeLimit) Limit() int {
	return t.limit.Limit()
}

// Unwrap returns the wrapped environment
func (t *TimeLimit) Unwrap() environment.Environment {
	return t.Environment
}

func (t *TimeLimit) String() string {
	return fmt.Sprintf("TimeLimit(%v): %v", t.limit.Limit(), t.Environment)
}
