package environment

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// SpecType determines what kind of specification a Spec is. A Spec can
// specify the layout of an acion, an observation, a discount, or a reward
type SpecType int

const (
	Action SpecType = iota
	Observation
	Discount
	Reward
)

func (s SpecType) String() string {
	switch s {
	case Action:
		return "Action"
	case Observation:
		return "Observation"
	case Discount:
		return "Discount"
	default:
		return "Reward"
	}
}

// Cardinality determines the cardinality of a number (discrete or continuous)
type Cardinality string

const (
	Continuous Cardinality = "Continuous"
	Discrete   Cardinality = "Discrete"
)

// Spec implements an environment specification, which tells the type,
// shape, and bounds of an action, observation, discount, or reward in
// an environment
type Spec struct {
	Shape      *mat.VecDense
	Type       SpecType
	LowerBound *mat.VecDense
	UpperBound *mat.VecDense
	Cardinality
}

// NewSpec constructs a new environment specification
// The shape argument outlines the shape of the data described by the
// specification. The argument t outlines what the specification is
// describing (e.g. actions, observations, etc.). The cardinality
// arguments describes whether the values that the spec describes are
// continuous or discrete.
func NewSpec(shape *mat.VecDense, t SpecType, lowerBound,
	upperBound *mat.VecDense, cardinality Cardinality) Spec {
	if shape.Len() != lowerBound.Len() {
		panic(fmt.Sprintf("shape length %v must match lower bounds length %v",
			shape.Len(), lowerBound.Len()))
	}
	if shape.Len() != upperBound.Len() {
		panic(fmt.Sprintf("shape length %v must match uuper bounds length %v",
			shape.Len(), upperBound.Len()))
	}
	return Spec{shape, t, lowerBound, upperBound, cardinality}
}

// NewBoxSpec returns a continuous Spec of dims dimensions, each
// dimension bounded by the argument interval. Use math.Inf for
// unbounded dimensions.
func NewBoxSpec(t SpecType, dims int, bounds r1.Interval) Spec {
	lower := make([]float64, dims)
	upper := make([]float64, dims)
	for i := 0; i < dims; i++ {
		lower[i] = bounds.Min
		upper[i] = bounds.Max
	}

	return NewSpec(mat.NewVecDense(dims, nil), t,
		mat.NewVecDense(dims, lower), mat.NewVecDense(dims, upper), Continuous)
}

// NewDiscreteSpec returns a 1-dimensional discrete Spec with n choices
// in {0, 1, ..., n-1}
func NewDiscreteSpec(t SpecType, n int) Spec {
	if n < 1 {
		panic(fmt.Sprintf("newDiscreteSpec: need at least one choice, "+
			"have(%v)", n))
	}

	return NewSpec(mat.NewVecDense(1, nil), t, mat.NewVecDense(1, nil),
		mat.NewVecDense(1, []float64{float64(n - 1)}), Discrete)
}

// Len returns the number of dimensions described by the Spec
func (s Spec) Len() int {
	return s.Shape.Len()
}

// N returns the number of choices of a discrete Spec. N panics if the
// Spec is not discrete.
func (s Spec) N() int {
	if s.Cardinality != Discrete {
		panic("n: spec is not discrete")
	}
	return int(s.UpperBound.AtVec(0)-s.LowerBound.AtVec(0)) + 1
}

// Contains returns whether v lies within the Spec. For discrete Specs
// each element must also be integral.
func (s Spec) Contains(v mat.Vector) bool {
	if v == nil || v.Len() != s.Len() {
		return false
	}

	for i := 0; i < v.Len(); i++ {
		x := v.AtVec(i)
		if math.IsNaN(x) {
			return false
		}
		if x < s.LowerBound.AtVec(i) || x > s.UpperBound.AtVec(i) {
			return false
		}
		if s.Cardinality == Discrete && x != math.Trunc(x) {
			return false
		}
	}
	return true
}

func (s Spec) String() string {
	if s.Cardinality == Discrete {
		return fmt.Sprintf("%v Discrete(%v)", s.Type, s.N())
	}
	return fmt.Sprintf("%v Box(%v, %v, (%v,))", s.Type,
		s.LowerBound.AtVec(0), s.UpperBound.AtVec(0), s.Len())
}
