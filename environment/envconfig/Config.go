// Package envconfig provides configuration structs for configuring
// environments by name. Environment configurations in this package are
// JSON serializable.
package envconfig

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	env "github.com/samuelfneumann/customgym/environment"
	"github.com/samuelfneumann/customgym/environment/customlander"
	"github.com/samuelfneumann/customgym/environment/wrappers"
	ts "github.com/samuelfneumann/customgym/timestep"
)

// ErrNoSuchEnvironment is returned when an unregistered environment is
// requested
var ErrNoSuchEnvironment = errors.New("no such environment")

// Config implements a specific configuration of a registered
// environment.
type Config struct {
	// Environment is the registered name of the environment
	Environment string `json:"environment" mapstructure:"environment"`

	// Lander configures the CustomLunarLander environments
	Lander customlander.Config `json:"lander" mapstructure:"lander"`

	// EpisodeCutoff truncates episodes after this many steps. A cutoff
	// of 0 disables truncation.
	EpisodeCutoff uint `json:"episodeCutoff" mapstructure:"episodeCutoff"`

	// RecordEpisodes wraps the environment in a wrappers.RecordEpisode,
	// outside of any time limit
	RecordEpisodes bool `json:"recordEpisodes" mapstructure:"recordEpisodes"`
}

// NewConfig returns a new Config for the CustomLunarLander-v1
// environment with default parameters
func NewConfig() Config {
	return Config{
		Environment: customlander.ID,
		Lander:      customlander.DefaultConfig(),
	}
}

// Factory constructs an environment from a Config and returns its
// first timestep
type Factory func(c Config, seed uint64) (env.Environment, ts.TimeStep, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func init() {
	Register(customlander.ID, func(c Config, seed uint64) (env.Environment,
		ts.TimeStep, error) {
		return customlander.New(c.Lander, seed)
	})
}

// Register registers a Factory under the argument environment name,
// replacing any Factory already registered under that name
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = f
}

// Registered returns the sorted names of all registered environments
func Registered() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create returns the environment described by the Config as well as
// the first timestep of the environment. If the Config has a non-zero
// EpisodeCutoff, the environment is wrapped in a wrappers.TimeLimit. If
// RecordEpisodes is set, the result is then wrapped in a
// wrappers.RecordEpisode.
func (c Config) Create(seed uint64) (env.Environment, ts.TimeStep, error) {
	registryMu.RLock()
	f, ok := registry[c.Environment]
	registryMu.RUnlock()
	if !ok {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w %q",
			ErrNoSuchEnvironment, c.Environment)
	}

	e, step, err := f(c, seed)
	if err != nil {
		return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
	}

	if c.EpisodeCutoff > 0 {
		e, err = wrappers.NewTimeLimit(e, int(c.EpisodeCutoff))
		if err != nil {
			return nil, ts.TimeStep{}, fmt.Errorf("create: %w", err)
		}
	}
	if c.RecordEpisodes {
		e = wrappers.NewRecordEpisode(e)
	}
	return e, step, nil
}
