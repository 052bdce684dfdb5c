package environment

import "fmt"

// RenderMode determines what an Environment produces when rendered
type RenderMode string

const (
	// None results in no frames being rendered
	None RenderMode = ""

	// RGBArray results in frames rendered as (height, width, 3) uint8
	// tensors
	RGBArray RenderMode = "rgb_array"
)

// ParseRenderMode converts a string into a RenderMode. Both the empty
// string and "none" parse to None.
func ParseRenderMode(s string) (RenderMode, error) {
	switch s {
	case "", "none":
		return None, nil
	case string(RGBArray):
		return RGBArray, nil
	}
	return None, fmt.Errorf("parseRenderMode: no such render mode %q", s)
}

func (r RenderMode) String() string {
	if r == None {
		return "none"
	}
	return string(r)
}

// Metadata describes advisory properties of an Environment. Nothing in
// Metadata is enforced by the Environment that declares it.
type Metadata struct {
	RenderModes []RenderMode
	RenderFPS   int
}

// Supports returns whether the argument render mode is declared. None
// is always supported.
func (m Metadata) Supports(mode RenderMode) bool {
	if mode == None {
		return true
	}
	for _, supported := range m.RenderModes {
		if supported == mode {
			return true
		}
	}
	return false
}
