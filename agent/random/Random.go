// Package random implements an agent which selects actions uniformly
// at random
package random

import (
	"fmt"

	"github.com/samuelfneumann/customgym/environment"
	"github.com/samuelfneumann/customgym/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Random selects discrete actions uniformly at random from an
// environment's action space. Random never learns, its Learner methods
// are no-ops.
type Random struct {
	spec environment.Spec
	rng  distuv.Uniform

	observed int
	episodes int
}

// New returns a new Random agent acting in the argument action space,
// which must be discrete
func New(actionSpec environment.Spec, seed uint64) (*Random, error) {
	if actionSpec.Cardinality != environment.Discrete {
		return nil, fmt.Errorf("new: random agent requires a discrete "+
			"action space, have(%v)", actionSpec.Cardinality)
	}
	if actionSpec.Len() != 1 {
		return nil, fmt.Errorf("new: random agent requires 1-dimensional "+
			"actions, have(%v)", actionSpec.Len())
	}

	low := actionSpec.LowerBound.AtVec(0)
	high := actionSpec.UpperBound.AtVec(0)
	rng := distuv.Uniform{Min: low, Max: high + 1, Src: rand.NewSource(seed)}

	return &Random{spec: actionSpec, rng: rng}, nil
}

// SelectAction selects an action uniformly at random
func (r *Random) SelectAction(timestep.TimeStep) *mat.VecDense {
	action := float64(int(r.rng.Rand()))

	// Rand is in [Min, Max), guard against floating point rounding
	if action > r.spec.UpperBound.AtVec(0) {
		action = r.spec.UpperBound.AtVec(0)
	}
	return mat.NewVecDense(1, []float64{action})
}

// ObserveFirst records the first timestep of an episode
func (r *Random) ObserveFirst(timestep.TimeStep) error {
	return nil
}

// Observe records a transition
func (r *Random) Observe(*mat.VecDense, timestep.TimeStep) error {
	r.observed++
	return nil
}

// Step performs no update
func (r *Random) Step() error {
	return nil
}

// EndEpisode records the end of an episode
func (r *Random) EndEpisode() {
	r.episodes++
}

// Observed returns the number of transitions observed
func (r *Random) Observed() int {
	return r.observed
}

// Episodes returns the number of episodes ended
func (r *Random) Episodes() int {
	return r.episodes
}
