package environment

// ResetConfig holds the optional arguments of a call to Reset
type ResetConfig struct {
	// Seed reseeds the Environment's random source if non-nil
	Seed *uint64

	// Options holds environment-specific reset options
	Options map[string]interface{}
}

// ResetOption sets an optional argument of a call to Reset
type ResetOption func(*ResetConfig)

// WithSeed reseeds the Environment's random source before the new
// episode starts, so that episodes can be reproduced
func WithSeed(seed uint64) ResetOption {
	return func(c *ResetConfig) {
		c.Seed = &seed
	}
}

// WithOptions passes environment-specific options to Reset
func WithOptions(options map[string]interface{}) ResetOption {
	return func(c *ResetConfig) {
		c.Options = options
	}
}

// NewResetConfig applies opts in order and returns the result
func NewResetConfig(opts ...ResetOption) ResetConfig {
	var c ResetConfig
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
