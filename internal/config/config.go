// Package config loads the configuration of command line runs
package config

import (
	"fmt"
	"strings"

	"github.com/samuelfneumann/customgym/environment"
	"github.com/samuelfneumann/customgym/environment/customlander"
	"github.com/samuelfneumann/customgym/environment/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables which override
// configuration values, e.g. CUSTOMGYM_ENV_LANDER_FUEL
const EnvPrefix = "CUSTOMGYM"

// Run holds the configuration of a single run of episodes
type Run struct {
	LogLevel   string           `mapstructure:"logLevel"`
	LogConsole bool             `mapstructure:"logConsole"`
	Seed       uint64           `mapstructure:"seed"`
	Steps      uint             `mapstructure:"steps"`
	OutputDir  string           `mapstructure:"outputDir"`
	SaveFrames bool             `mapstructure:"saveFrames"`
	Progress   bool             `mapstructure:"progress"`
	Env        envconfig.Config `mapstructure:"env"`
}

// New returns a viper instance holding the default configuration
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("logLevel", "info")
	v.SetDefault("logConsole", true)
	v.SetDefault("seed", 0)
	v.SetDefault("steps", 1000)
	v.SetDefault("outputDir", "./runs")
	v.SetDefault("saveFrames", false)
	v.SetDefault("progress", false)

	v.SetDefault("env.environment", customlander.ID)
	v.SetDefault("env.episodeCutoff", 0)
	v.SetDefault("env.recordEpisodes", true)
	v.SetDefault("env.lander.gravity", customlander.DefaultGravity)
	v.SetDefault("env.lander.fuel", customlander.DefaultFuel)
	v.SetDefault("env.lander.turbulencePower",
		customlander.DefaultTurbulencePower)
	v.SetDefault("env.lander.renderMode", environment.None.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the configuration file at path into v, if path is not
// empty, and decodes the resulting configuration
func Load(v *viper.Viper, path string) (Run, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Run{}, fmt.Errorf("load: error reading config file: %w",
				err)
		}
	}

	var r Run
	if err := v.Unmarshal(&r); err != nil {
		return Run{}, fmt.Errorf("load: could not decode config: %w", err)
	}

	mode, err := environment.ParseRenderMode(v.GetString("env.lander.renderMode"))
	if err != nil {
		return Run{}, fmt.Errorf("load: %w", err)
	}
	r.Env.Lander.RenderMode = mode

	if r.SaveFrames && mode != environment.RGBArray {
		return Run{}, fmt.Errorf("load: saving frames requires render "+
			"mode %q", environment.RGBArray)
	}
	return r, nil
}
