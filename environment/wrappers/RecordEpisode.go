package wrappers

import (
	"fmt"
	"strconv"

	"github.com/samuelfneumann/customgym/environment"
	ts "github.com/samuelfneumann/customgym/timestep"
	"gonum.org/v1/gonum/mat"
)

// Info keys added by RecordEpisode on the last step of each episode
const (
	EpisodeReturnKey = "episode_return"
	EpisodeLengthKey = "episode_length"
)

// RecordEpisode wraps an environment and records the return and length
// of each episode. On the last step of an episode, the episodic return
// and length are added to a copy of the step's info, leaving the
// wrapped environment's timesteps untouched.
//
// RecordEpisode itself implements the environment.Environment
// interface.
type RecordEpisode struct {
	environment.Environment
	lastStep ts.TimeStep

	episodeReturn float64
	episodeLength int

	returns []float64
	lengths []int
}

// NewRecordEpisode returns a new RecordEpisode wrapping env
func NewRecordEpisode(env environment.Environment) *RecordEpisode {
	return &RecordEpisode{Environment: env, lastStep: env.CurrentTimeStep()}
}

// Reset resets the wrapped environment and the statistics of the
// current episode
func (r *RecordEpisode) Reset(opts ...environment.ResetOption) (ts.TimeStep,
	error) {
	step, err := r.Environment.Reset(opts...)
	if err != nil {
		return step, fmt.Errorf("reset: %w", err)
	}

	r.episodeReturn = 0
	r.episodeLength = 0
	r.lastStep = step
	return step, nil
}

// Step takes one environmental step given action a
func (r *RecordEpisode) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, done, err := r.Environment.Step(a)
	if err != nil {
		return step, false, fmt.Errorf("step: %w", err)
	}

	r.episodeReturn += step.Reward
	r.episodeLength++

	if done {
		info := make(map[string]string, len(step.Info)+2)
		for k, v := range step.Info {
			info[k] = v
		}
		step.Info = info

		step.Info[EpisodeReturnKey] = strconv.FormatFloat(r.episodeReturn,
			'g', -1, 64)
		step.Info[EpisodeLengthKey] = strconv.Itoa(r.episodeLength)

		r.returns = append(r.returns, r.episodeReturn)
		r.lengths = append(r.lengths, r.episodeLength)
	}

	r.lastStep = step
	return step, done, nil
}

// CurrentTimeStep returns the most recent timestep, including the
// episode statistics if the episode has ended
func (r *RecordEpisode) CurrentTimeStep() ts.TimeStep {
	return r.lastStep
}

// Returns returns the returns of all episodes that have ended
func (r *RecordEpisode) Returns() []float64 {
	return append([]float64(nil), r.returns...)
}

// Lengths returns the lengths of all episodes that have ended
func (r *RecordEpisode) Lengths() []int {
	return append([]int(nil), r.lengths...)
}

// Unwrap returns the wrapped environment
func (r *RecordEpisode) Unwrap() environment.Environment {
	return r.Environment
}
