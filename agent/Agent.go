// Package agent defines an agent interface
package agent

import (
	"github.com/samuelfneumann/customgym/timestep"
	"gonum.org/v1/gonum/mat"
)

// Agent determines the implementation details of an agent or algorithm
//
// An Agent is composed of a Learner, which learns from observed
// timesteps, and a Policy which chooses actions in each state.
type Agent interface {
	Learner
	Policy
}

// Learner implements a learning algorithm that defines how an agent
// learns from experience.
type Learner interface {
	// Step performs a single update to the learner
	Step() error

	// Observe records that an action lead to some timestep
	Observe(action *mat.VecDense, nextObs timestep.TimeStep) error

	// ObserveFirst records the first timestep in an episode
	ObserveFirst(timestep.TimeStep) error

	// EndEpisode performs cleanup at the end of an episode
	EndEpisode()
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions.
type Policy interface {
	SelectAction(t timestep.TimeStep) *mat.VecDense
}
