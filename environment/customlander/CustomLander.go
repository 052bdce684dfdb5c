// Package customlander implements a lunar lander environment with a
// finite fuel tank.
package customlander

import (
	"errors"
	"fmt"
	"math"

	env "github.com/samuelfneumann/customgym/environment"
	ts "github.com/samuelfneumann/customgym/timestep"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// ID is the registered name of the environment
const ID = "CustomLunarLander-v1"

const (
	// State observations
	ObservationDims int = 8

	// Action
	ActionDims        int = 1
	MinDiscreteAction int = int(NoOp)
	MaxDiscreteAction int = int(FireRight)
	NumActions        int = MaxDiscreteAction - MinDiscreteAction + 1

	// Rendered frames
	FrameHeight   int = 400
	FrameWidth    int = 600
	FrameChannels int = 3
	RenderFPS     int = 30

	discount float64 = 1.0
)

// ErrIllegalAction is returned when Step is called with an action
// outside the action space
var ErrIllegalAction = errors.New("illegal action")

// Action is a discrete action in the CustomLander environment
type Action int

const (
	NoOp Action = iota
	FireLeft
	FireMain
	FireRight
)

func (a Action) String() string {
	switch a {
	case NoOp:
		return "NoOp"
	case FireLeft:
		return "FireLeft"
	case FireMain:
		return "FireMain"
	case FireRight:
		return "FireRight"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Vec returns the action as a 1-dimensional vector suitable for Step
func (a Action) Vec() *mat.VecDense {
	return mat.NewVecDense(ActionDims, []float64{float64(a)})
}

// CustomLander implements a lunar lander environment where the lander
// carries a limited amount of fuel.
//
// State observations are vectors consisting of the following features
// in the following order:
//
//	1. The x position of the lander
//	2. The y position of the lander
//	3. The x velocity of the lander
//	4. The y velocity of the lander
//	5. The angle of the lander
//	6. The angular velocity of the lander
//	7. Whether the left leg has contact with the ground
//	8. Whether the right leg has contact with the ground
//
// All features are unbounded. The dynamics are a placeholder: each
// step draws every feature independently from a standard normal
// distribution using the environment's own random source.
//
// Actions are discrete and 1-dimensional, in the set {0, 1, 2, 3}:
//
//	0: Do nothing
//	1: Fire the left orientation engine
//	2: Fire the main engine
//	3: Fire the right orientation engine
//
// Reset fills the fuel tank. Firing any engine burns one unit of fuel
// and is rewarded with +1. Firing an engine with an empty tank is
// rewarded with -1 and doing nothing is rewarded with 0. The episode
// terminates on the step that empties the tank and on every step taken
// afterwards with the tank empty; the environment does not refuse to
// step after termination, callers should Reset instead. Episodes are
// never truncated, use wrappers.TimeLimit to impose a step limit.
//
// CustomLander implements the environment.Environment interface. It is
// not safe for concurrent use.
type CustomLander struct {
	config Config

	fuel     int
	lastStep ts.TimeStep

	src rand.Source
	rng distuv.Normal

	frameShape tensor.Shape
}

// New returns a new CustomLander configured by c, with its random
// source seeded by seed, and the first timestep of the first episode.
func New(c Config, seed uint64) (*CustomLander, ts.TimeStep, error) {
	if err := c.Validate(); err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}

	src := rand.NewSource(seed)
	l := &CustomLander{
		config:     c,
		src:        src,
		rng:        distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		frameShape: tensor.Shape{FrameHeight, FrameWidth, FrameChannels},
	}

	step, err := l.Reset()
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("new: %w", err)
	}
	return l, step, nil
}

// Reset resets the environment, begins a new episode, and returns
// the first timestep of the new episode. The fuel tank is refilled and
// the observation is the zero vector.
//
// If the WithSeed option is given, the environment's random source is
// reseeded so that the episode can be reproduced. Any options given
// with WithOptions are ignored.
func (l *CustomLander) Reset(opts ...env.ResetOption) (ts.TimeStep, error) {
	rc := env.NewResetConfig(opts...)
	if rc.Seed != nil {
		l.src.Seed(*rc.Seed)
	}

	l.fuel = l.config.Fuel
	obs := mat.NewVecDense(ObservationDims, nil)

	l.lastStep = ts.New(ts.First, 0, discount, obs, 0)
	return l.lastStep, nil
}

// Step takes one environmental step given action a and returns the
// next timestep and whether or not the episode has ended. Actions
// outside the action space result in an error wrapping
// ErrIllegalAction, and the environment is left unchanged.
//
// Step panics if the fuel tank holds negative fuel, which can only
// happen through a defect in the fuel usage rule.
func (l *CustomLander) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if l.fuel < 0 {
		panic(fmt.Sprintf("step: fuel should never go below 0, have(%v)",
			l.fuel))
	}

	action, err := l.actionFrom(a)
	if err != nil {
		return ts.TimeStep{}, false, fmt.Errorf("step: %w", err)
	}

	obs := l.nextState()

	var reward float64
	var terminated bool
	l.fuel, reward, terminated = burn(action, l.fuel)

	nextStep := ts.New(ts.Mid, reward, discount, obs,
		l.lastStep.Number+1)
	if terminated {
		nextStep.StepType = ts.Last
		nextStep.SetEnd(ts.TerminalStateReached)
		nextStep.Info["reason"] = ReasonOutOfFuel
	}

	l.lastStep = nextStep
	return nextStep, nextStep.Last(), nil
}

// actionFrom validates the argument action vector and converts it to
// an Action
func (l *CustomLander) actionFrom(a *mat.VecDense) (Action, error) {
	if a == nil {
		return 0, fmt.Errorf("%w: action must not be nil", ErrIllegalAction)
	}
	if a.Len() != ActionDims {
		return 0, fmt.Errorf("%w: actions should be %v-dimensional "+
			"\n\twant(%v) \n\thave(%v)", ErrIllegalAction, ActionDims,
			ActionDims, a.Len())
	}

	value := a.AtVec(0)
	if value != math.Trunc(value) || value < float64(MinDiscreteAction) ||
		value > float64(MaxDiscreteAction) {
		return 0, fmt.Errorf("%w: %v ∉ (0, 1, 2, 3)", ErrIllegalAction,
			value)
	}
	return Action(value), nil
}

// nextState draws the next state observation
func (l *CustomLander) nextState() *mat.VecDense {
	state := make([]float64, ObservationDims)
	for i := range state {
		state[i] = l.rng.Rand()
	}
	return mat.NewVecDense(ObservationDims, state)
}

// Render renders the current frame of the environment. If the render
// mode is environment.RGBArray, a (FrameHeight, FrameWidth,
// FrameChannels) tensor of uint8 zeroes is returned. Otherwise, Render
// returns nil.
func (l *CustomLander) Render() (*tensor.Dense, error) {
	if l.config.RenderMode != env.RGBArray {
		return nil, nil
	}

	return tensor.New(
		tensor.WithShape(l.frameShape.Clone()...),
		tensor.Of(tensor.Uint8),
	), nil
}

// CurrentTimeStep returns the current timestep of the environment
func (l *CustomLander) CurrentTimeStep() ts.TimeStep {
	return l.lastStep
}

// Fuel returns the fuel remaining in the current episode
func (l *CustomLander) Fuel() int {
	return l.fuel
}

// InitialFuel returns the fuel the tank is filled with on each reset
func (l *CustomLander) InitialFuel() int {
	return l.config.Fuel
}

// Config returns the configuration of the environment
func (l *CustomLander) Config() Config {
	return l.config
}

// Metadata returns the rendering metadata of the environment
func (l *CustomLander) Metadata() env.Metadata {
	return env.Metadata{
		RenderModes: []env.RenderMode{env.RGBArray},
		RenderFPS:   RenderFPS,
	}
}

// ObservationSpec returns the observation specification of the
// environment
func (l *CustomLander) ObservationSpec() env.Spec {
	return env.NewBoxSpec(env.Observation, ObservationDims,
		r1.Interval{Min: math.Inf(-1), Max: math.Inf(1)})
}

// ActionSpec returns the action specification of the environment
func (l *CustomLander) ActionSpec() env.Spec {
	return env.NewDiscreteSpec(env.Action, NumActions)
}

// RewardSpec returns the reward specification of the environment
func (l *CustomLander) RewardSpec() env.Spec {
	return env.NewBoxSpec(env.Reward, 1,
		r1.Interval{Min: EmptyThrustReward, Max: ThrustReward})
}

// DiscountSpec returns the discounting specification of the environment
func (l *CustomLander) DiscountSpec() env.Spec {
	return env.NewBoxSpec(env.Discount, 1,
		r1.Interval{Min: discount, Max: discount})
}

// String implements the fmt.Stringer interface
func (l *CustomLander) String() string {
	return fmt.Sprintf("%v  |  Fuel: %v/%v  |  Gravity: %v  |  "+
		"Turbulence: %v", ID, l.fuel, l.config.Fuel, l.config.Gravity,
		l.config.TurbulencePower)
}
