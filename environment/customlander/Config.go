package customlander

import (
	"errors"
	"fmt"

	env "github.com/samuelfneumann/customgym/environment"
)

// ErrInvalidConfig is returned when an environment is constructed
// from an illegal Config
var ErrInvalidConfig = errors.New("invalid config")

// Default construction parameters
const (
	DefaultGravity         float64 = -5.0
	DefaultFuel            int     = 100
	DefaultTurbulencePower float64 = 1.0
)

// Config configures a CustomLander. A Config is fixed for the lifetime
// of the environment constructed from it.
//
// Gravity and TurbulencePower are carried as part of the configuration
// but do not influence the placeholder dynamics.
type Config struct {
	Gravity         float64        `json:"gravity" mapstructure:"gravity"`
	Fuel            int            `json:"fuel" mapstructure:"fuel"`
	TurbulencePower float64        `json:"turbulencePower" mapstructure:"turbulencePower"`
	RenderMode      env.RenderMode `json:"renderMode" mapstructure:"renderMode"`
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		Gravity:         DefaultGravity,
		Fuel:            DefaultFuel,
		TurbulencePower: DefaultTurbulencePower,
		RenderMode:      env.None,
	}
}

// Validate returns an error if the Config cannot be used to construct
// an environment
func (c Config) Validate() error {
	if c.Fuel < 0 {
		return fmt.Errorf("validate: %w: fuel must be non-negative, "+
			"have(%v)", ErrInvalidConfig, c.Fuel)
	}
	if c.RenderMode != env.None && c.RenderMode != env.RGBArray {
		return fmt.Errorf("validate: %w: no such render mode %q",
			ErrInvalidConfig, string(c.RenderMode))
	}
	return nil
}
