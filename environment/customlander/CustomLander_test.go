package customlander

import (
	"errors"
	"math"
	"testing"

	env "github.com/samuelfneumann/customgym/environment"
	"gonum.org/v1/gonum/mat"
)

func newLander(t *testing.T, fuel int, mode env.RenderMode) *CustomLander {
	t.Helper()

	c := DefaultConfig()
	c.Fuel = fuel
	c.RenderMode = mode

	l, _, err := New(c, 42)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return l
}

func isZero(v *mat.VecDense) bool {
	for i := 0; i < v.Len(); i++ {
		if v.AtVec(i) != 0 {
			return false
		}
	}
	return true
}

func TestNewFirstStep(t *testing.T) {
	l, step, err := New(DefaultConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}

	if !step.First() {
		t.Errorf("first step should have type First, have(%v)", step.StepType)
	}
	if step.Observation.Len() != ObservationDims || !isZero(step.Observation) {
		t.Errorf("first observation should be the zero vector of length "+
			"%v, have(%v)", ObservationDims, mat.Formatted(step.Observation.T()))
	}
	if len(step.Info) != 0 {
		t.Errorf("first step info should be empty, have(%v)", step.Info)
	}
	if l.Fuel() != DefaultFuel {
		t.Errorf("fuel \n\twant(%v) \n\thave(%v)", DefaultFuel, l.Fuel())
	}
}

func TestNewInvalidConfig(t *testing.T) {
	tests := map[string]Config{
		"negative fuel": {Fuel: -1},
		"render mode":   {Fuel: 10, RenderMode: "human"},
	}

	for name, c := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := New(c, 0)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("want ErrInvalidConfig, have(%v)", err)
			}
		})
	}
}

func TestRewardSign(t *testing.T) {
	tests := []struct {
		name   string
		fuel   int
		action Action
		reward float64
		after  int
	}{
		{"thrust with fuel", 5, FireMain, ThrustReward, 4},
		{"left with fuel", 5, FireLeft, ThrustReward, 4},
		{"right with fuel", 5, FireRight, ThrustReward, 4},
		{"thrust empty", 0, FireMain, EmptyThrustReward, 0},
		{"noop with fuel", 5, NoOp, NoOpReward, 5},
		{"noop empty", 0, NoOp, NoOpReward, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l := newLander(t, test.fuel, env.None)

			step, _, err := l.Step(test.action.Vec())
			if err != nil {
				t.Fatal(err)
			}
			if step.Reward != test.reward {
				t.Errorf("reward \n\twant(%v) \n\thave(%v)", test.reward,
					step.Reward)
			}
			if l.Fuel() != test.after {
				t.Errorf("fuel \n\twant(%v) \n\thave(%v)", test.after, l.Fuel())
			}
		})
	}
}

func TestFuelMonotonic(t *testing.T) {
	l := newLander(t, 10, env.None)

	for i := 0; i < 25; i++ {
		before := l.Fuel()
		action := Action(i%(NumActions-1) + 1)
		if _, _, err := l.Step(action.Vec()); err != nil {
			t.Fatal(err)
		}

		if l.Fuel() > before {
			t.Errorf("step %v: fuel increased from %v to %v", i, before,
				l.Fuel())
		}
		if l.Fuel() < 0 {
			t.Errorf("step %v: fuel negative (%v)", i, l.Fuel())
		}
	}
}

func TestTermination(t *testing.T) {
	l := newLander(t, 3, env.None)
	actions := []Action{NoOp, FireMain, NoOp, FireLeft, FireRight, NoOp,
		FireMain}

	for i, a := range actions {
		step, done, err := l.Step(a.Vec())
		if err != nil {
			t.Fatal(err)
		}

		wantTerminated := l.Fuel() <= 0
		if step.Terminated() != wantTerminated || done != wantTerminated {
			t.Errorf("step %v: terminated \n\twant(%v) \n\thave(%v, %v)", i,
				wantTerminated, step.Terminated(), done)
		}
		if step.Truncated() {
			t.Errorf("step %v: should never be truncated", i)
		}

		reason, ok := step.Info["reason"]
		if wantTerminated && reason != ReasonOutOfFuel {
			t.Errorf("step %v: reason \n\twant(%v) \n\thave(%v)", i,
				ReasonOutOfFuel, reason)
		} else if !wantTerminated && ok {
			t.Errorf("step %v: info should be empty, have(%v)", i, step.Info)
		}
	}
}

func TestScenario(t *testing.T) {
	l := newLander(t, 2, env.None)
	if _, err := l.Reset(); err != nil {
		t.Fatal(err)
	}

	wantRewards := []float64{1.0, 1.0, -1.0}
	wantFuel := []int{1, 0, 0}
	wantTerminated := []bool{false, true, true}

	for i := range wantRewards {
		step, _, err := l.Step(FireLeft.Vec())
		if err != nil {
			t.Fatal(err)
		}

		if step.Reward != wantRewards[i] {
			t.Errorf("step %v: reward \n\twant(%v) \n\thave(%v)", i,
				wantRewards[i], step.Reward)
		}
		if l.Fuel() != wantFuel[i] {
			t.Errorf("step %v: fuel \n\twant(%v) \n\thave(%v)", i,
				wantFuel[i], l.Fuel())
		}
		if step.Terminated() != wantTerminated[i] {
			t.Errorf("step %v: terminated \n\twant(%v) \n\thave(%v)", i,
				wantTerminated[i], step.Terminated())
		}
		if step.Number != i+1 {
			t.Errorf("step %v: number \n\twant(%v) \n\thave(%v)", i, i+1,
				step.Number)
		}
	}
}

func TestResetRestores(t *testing.T) {
	l := newLander(t, 4, env.None)

	for episode := 0; episode < 3; episode++ {
		for i := 0; i < episode+2; i++ {
			if _, _, err := l.Step(FireMain.Vec()); err != nil {
				t.Fatal(err)
			}
		}

		step, err := l.Reset()
		if err != nil {
			t.Fatal(err)
		}
		if l.Fuel() != l.InitialFuel() {
			t.Errorf("episode %v: fuel \n\twant(%v) \n\thave(%v)", episode,
				l.InitialFuel(), l.Fuel())
		}
		if step.Observation.Len() != ObservationDims || !isZero(step.Observation) {
			t.Errorf("episode %v: reset observation should be zero", episode)
		}
		if step.Number != 0 || !step.First() {
			t.Errorf("episode %v: reset should start a new episode", episode)
		}
	}
}

func TestObservationShape(t *testing.T) {
	l := newLander(t, 5, env.None)
	spec := l.ObservationSpec()

	for i := 0; i < 10; i++ {
		step, _, err := l.Step(Action(i % NumActions).Vec())
		if err != nil {
			t.Fatal(err)
		}
		if step.Observation.Len() != ObservationDims {
			t.Errorf("observation length \n\twant(%v) \n\thave(%v)",
				ObservationDims, step.Observation.Len())
		}
		if !spec.Contains(step.Observation) {
			t.Errorf("observation should lie in the observation space")
		}
	}
}

func TestSeededReset(t *testing.T) {
	l := newLander(t, 5, env.None)

	rollout := func() []float64 {
		if _, err := l.Reset(env.WithSeed(7)); err != nil {
			t.Fatal(err)
		}
		var obs []float64
		for i := 0; i < 3; i++ {
			step, _, err := l.Step(NoOp.Vec())
			if err != nil {
				t.Fatal(err)
			}
			obs = append(obs, step.Observation.RawVector().Data...)
		}
		return obs
	}

	first, second := rollout(), rollout()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seeded episodes differ at feature %v: %v != %v", i,
				first[i], second[i])
		}
	}
}

func TestIllegalAction(t *testing.T) {
	l := newLander(t, 5, env.None)

	tests := map[string]*mat.VecDense{
		"nil":        nil,
		"too large":  mat.NewVecDense(1, []float64{4}),
		"negative":   mat.NewVecDense(1, []float64{-1}),
		"fractional": mat.NewVecDense(1, []float64{1.5}),
		"nan":        mat.NewVecDense(1, []float64{math.NaN()}),
		"dimensions": mat.NewVecDense(2, []float64{1, 1}),
	}

	for name, a := range tests {
		t.Run(name, func(t *testing.T) {
			before := l.CurrentTimeStep()
			_, _, err := l.Step(a)
			if !errors.Is(err, ErrIllegalAction) {
				t.Errorf("want ErrIllegalAction, have(%v)", err)
			}
			if l.Fuel() != 5 {
				t.Errorf("illegal action should not burn fuel, have(%v)",
					l.Fuel())
			}
			if after := l.CurrentTimeStep(); after.Number != before.Number {
				t.Errorf("illegal action should not advance the episode")
			}
		})
	}
}

func TestNegativeFuelPanics(t *testing.T) {
	l := newLander(t, 5, env.None)
	l.fuel = -1

	defer func() {
		if recover() == nil {
			t.Error("step with negative fuel should panic")
		}
	}()
	l.Step(NoOp.Vec())
}

func TestRender(t *testing.T) {
	l := newLander(t, 1, env.RGBArray)

	for i := 0; i < 3; i++ {
		frame, err := l.Render()
		if err != nil {
			t.Fatal(err)
		}
		shape := frame.Shape()
		if len(shape) != 3 || shape[0] != FrameHeight ||
			shape[1] != FrameWidth || shape[2] != FrameChannels {
			t.Errorf("frame shape \n\twant(%v, %v, %v) \n\thave(%v)",
				FrameHeight, FrameWidth, FrameChannels, shape)
		}
		for _, px := range frame.Data().([]uint8) {
			if px != 0 {
				t.Fatal("frame should be blank")
			}
		}
		l.Step(FireMain.Vec())
	}

	l = newLander(t, 1, env.None)
	frame, err := l.Render()
	if err != nil || frame != nil {
		t.Errorf("render with no render mode should return nil, have(%v, %v)",
			frame, err)
	}
}

func TestSpecs(t *testing.T) {
	l := newLander(t, 1, env.None)

	obs := l.ObservationSpec()
	if obs.Len() != ObservationDims || obs.Cardinality != env.Continuous {
		t.Errorf("observation spec should be an %v-dimensional box, have(%v)",
			ObservationDims, obs)
	}
	for i := 0; i < obs.Len(); i++ {
		if !math.IsInf(obs.LowerBound.AtVec(i), -1) ||
			!math.IsInf(obs.UpperBound.AtVec(i), 1) {
			t.Errorf("observation dimension %v should be unbounded", i)
		}
	}

	action := l.ActionSpec()
	if action.Cardinality != env.Discrete || action.N() != 4 {
		t.Errorf("action spec should be Discrete(4), have(%v)", action)
	}

	meta := l.Metadata()
	if meta.RenderFPS != 30 || !meta.Supports(env.RGBArray) {
		t.Errorf("unexpected metadata %+v", meta)
	}
}

func TestBurn(t *testing.T) {
	for fuel := 0; fuel < 3; fuel++ {
		for a := NoOp; a <= FireRight; a++ {
			remaining, _, terminated := burn(a, fuel)
			if remaining < 0 || remaining > fuel {
				t.Errorf("burn(%v, %v): remaining fuel %v", a, fuel, remaining)
			}
			if terminated != (remaining <= 0) {
				t.Errorf("burn(%v, %v): terminated %v with %v fuel", a, fuel,
					terminated, remaining)
			}
		}
	}
}

func BenchmarkStep(b *testing.B) {
	l, _, err := New(DefaultConfig(), 1)
	if err != nil {
		b.Fatal(err)
	}
	action := FireMain.Vec()

	for i := 0; i < b.N; i++ {
		if _, done, _ := l.Step(action); done {
			l.Reset()
		}
	}
}

var _ env.Environment = &CustomLander{}
