// Package experiment implements functionality for running an experiment
package experiment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/customgym/agent"
	env "github.com/samuelfneumann/customgym/environment"
	"github.com/samuelfneumann/customgym/environment/render"
	"github.com/samuelfneumann/customgym/experiment/tracker"
	ts "github.com/samuelfneumann/customgym/timestep"
	"github.com/samuelfneumann/customgym/utils/progressbar"
)

// Online is an experiment that runs an agent online only. No offline
// evaluation is performed.
//
// Episodes are run back to back: the environment is reset, then
// stepped until the episode terminates or is truncated, until the
// step budget is spent or the context is cancelled.
type Online struct {
	env.Environment
	agent.Agent

	maxSteps     uint
	currentSteps uint
	episodes     int

	trackers []tracker.Tracker
	frames   *render.FrameSaver
	progress *progressbar.ProgressBar

	log zerolog.Logger
}

// Option configures an Online experiment
type Option func(*Online)

// WithTrackers registers trackers with the experiment
func WithTrackers(t ...tracker.Tracker) Option {
	return func(o *Online) {
		o.trackers = append(o.trackers, t...)
	}
}

// WithFrames renders the environment after each timestep and saves
// the frames with f
func WithFrames(f *render.FrameSaver) Option {
	return func(o *Online) {
		o.frames = f
	}
}

// WithProgressBar displays experiment progress on p
func WithProgressBar(p *progressbar.ProgressBar) Option {
	return func(o *Online) {
		o.progress = p
	}
}

// WithLogger sets the logger of the experiment
func WithLogger(log zerolog.Logger) Option {
	return func(o *Online) {
		o.log = log
	}
}

// NewOnline creates and returns a new online experiment on a given
// environment with a given agent. The steps parameter determines how
// many timesteps the experiment is run for.
func NewOnline(e env.Environment, a agent.Agent, steps uint,
	opts ...Option) *Online {
	o := &Online{
		Environment: e,
		Agent:       a,
		maxSteps:    steps,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (o *Online) Register(t tracker.Tracker) {
	o.trackers = append(o.trackers, t)
}

// RunEpisode runs a single episode of the experiment. It returns
// whether the step budget has been spent.
func (o *Online) RunEpisode(ctx context.Context) (bool, error) {
	step, err := o.Environment.Reset()
	if err != nil {
		return false, fmt.Errorf("runEpisode: could not reset: %w", err)
	}
	if err := o.Agent.ObserveFirst(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}
	if err := o.record(step); err != nil {
		return false, fmt.Errorf("runEpisode: %w", err)
	}

	episodeReturn := 0.0
	for !step.Last() && o.currentSteps < o.maxSteps {
		if err := ctx.Err(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		o.currentSteps++

		// Select action, step in environment
		action := o.Agent.SelectAction(step)
		step, _, err = o.Environment.Step(action)
		if err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		episodeReturn += step.Reward

		if err := o.record(step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		// Observe the timestep and step the agent
		if err := o.Agent.Observe(action, step); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}
		if err := o.Agent.Step(); err != nil {
			return false, fmt.Errorf("runEpisode: %w", err)
		}

		if o.progress != nil {
			o.progress.Increment()
			o.progress.Display()
		}
	}

	if step.Last() {
		o.Agent.EndEpisode()
		o.episodes++

		o.log.Debug().
			Int("episode", o.episodes).
			Int("length", step.Number).
			Float64("return", episodeReturn).
			Str("end", step.EndType().String()).
			Str("reason", step.Info["reason"]).
			Msg("episode finished")
	}

	return o.currentSteps >= o.maxSteps, nil
}

// Run runs the entire experiment for all timesteps
func (o *Online) Run(ctx context.Context) error {
	o.log.Info().
		Uint("steps", o.maxSteps).
		Int("trackers", len(o.trackers)).
		Bool("frames", o.frames != nil).
		Msg("starting experiment")

	for ended := false; !ended; {
		var err error
		if ended, err = o.RunEpisode(ctx); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}

	if o.progress != nil {
		o.progress.Close()
	}
	o.log.Info().
		Uint("steps", o.currentSteps).
		Int("episodes", o.episodes).
		Msg("experiment finished")
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (o *Online) Save() error {
	for _, t := range o.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}

// Steps returns the number of timesteps run so far
func (o *Online) Steps() uint {
	return o.currentSteps
}

// Episodes returns the number of episodes finished so far
func (o *Online) Episodes() int {
	return o.episodes
}

// record tracks the timestep with each tracker and saves a rendered
// frame if frames are being saved
func (o *Online) record(t ts.TimeStep) error {
	for _, tr := range o.trackers {
		tr.Track(t)
	}

	if o.frames == nil {
		return nil
	}
	frame, err := o.Environment.Render()
	if err != nil {
		return fmt.Errorf("record: could not render: %w", err)
	}
	if frame == nil {
		return nil
	}
	if _, err := o.frames.Save(frame); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	return nil
}
