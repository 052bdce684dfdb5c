package environment

import (
	"math"
	"testing"

	ts "github.com/samuelfneumann/customgym/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestDiscreteSpec(t *testing.T) {
	s := NewDiscreteSpec(Action, 4)

	if s.N() != 4 || s.Len() != 1 {
		t.Errorf("want Discrete(4), have(%v)", s)
	}

	tests := []struct {
		value float64
		in    bool
	}{
		{0, true},
		{3, true},
		{4, false},
		{-1, false},
		{2.5, false},
		{math.NaN(), false},
	}
	for _, test := range tests {
		v := mat.NewVecDense(1, []float64{test.value})
		if s.Contains(v) != test.in {
			t.Errorf("contains(%v) \n\twant(%v) \n\thave(%v)", test.value,
				test.in, !test.in)
		}
	}

	if s.Contains(mat.NewVecDense(2, nil)) {
		t.Error("spec should not contain vectors of the wrong length")
	}
}

func TestBoxSpec(t *testing.T) {
	s := NewBoxSpec(Observation, 3, r1.Interval{Min: math.Inf(-1),
		Max: math.Inf(1)})

	if s.Cardinality != Continuous || s.Len() != 3 {
		t.Errorf("want 3-dimensional box, have(%v)", s)
	}
	if !s.Contains(mat.NewVecDense(3, []float64{-1e300, 0, 1e300})) {
		t.Error("unbounded box should contain all finite vectors")
	}
	if s.String() != "Observation Box(-Inf, +Inf, (3,))" {
		t.Errorf("unexpected string %q", s.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("n should panic for continuous specs")
		}
	}()
	s.N()
}

func TestStepLimit(t *testing.T) {
	limit := NewStepLimit(3)

	mid := ts.New(ts.Mid, 0, 1, nil, 2)
	if limit.End(&mid) || mid.Last() {
		t.Error("step before the limit should not end")
	}

	mid = ts.New(ts.Mid, 0, 1, nil, 3)
	if !limit.End(&mid) || !mid.Truncated() {
		t.Error("step at the limit should be truncated")
	}

	last := ts.New(ts.Last, 0, 1, nil, 5)
	last.SetEnd(ts.TerminalStateReached)
	if limit.End(&last) || !last.Terminated() {
		t.Error("terminated steps should be left unmodified")
	}
}

func TestResetOptions(t *testing.T) {
	c := NewResetConfig()
	if c.Seed != nil || c.Options != nil {
		t.Errorf("empty reset config should be zero, have(%+v)", c)
	}

	opts := map[string]interface{}{"a": 1}
	c = NewResetConfig(WithSeed(5), WithOptions(opts))
	if c.Seed == nil || *c.Seed != 5 || c.Options["a"] != 1 {
		t.Errorf("unexpected reset config %+v", c)
	}
}

func TestRenderMode(t *testing.T) {
	for _, s := range []string{"", "none"} {
		if m, err := ParseRenderMode(s); err != nil || m != None {
			t.Errorf("parse(%q) \n\twant(None) \n\thave(%v, %v)", s, m, err)
		}
	}
	if m, err := ParseRenderMode("rgb_array"); err != nil || m != RGBArray {
		t.Errorf("parse(rgb_array) \n\twant(RGBArray) \n\thave(%v, %v)", m, err)
	}
	if _, err := ParseRenderMode("human"); err == nil {
		t.Error("unknown render modes should be rejected")
	}

	meta := Metadata{RenderModes: []RenderMode{RGBArray}, RenderFPS: 30}
	if !meta.Supports(None) || !meta.Supports(RGBArray) ||
		meta.Supports("human") {
		t.Errorf("unexpected support for metadata %+v", meta)
	}
}
