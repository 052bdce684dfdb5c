package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samuelfneumann/customgym/agent/random"
	"github.com/samuelfneumann/customgym/environment"
	"github.com/samuelfneumann/customgym/environment/render"
	"github.com/samuelfneumann/customgym/environment/wrappers"
	"github.com/samuelfneumann/customgym/experiment"
	"github.com/samuelfneumann/customgym/experiment/tracker"
	"github.com/samuelfneumann/customgym/internal/config"
	"github.com/samuelfneumann/customgym/internal/logging"
	"github.com/samuelfneumann/customgym/utils/progressbar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runFlags maps command line flags onto configuration keys
var runFlags = map[string]string{
	"steps":      "steps",
	"seed":       "seed",
	"output":     "outputDir",
	"frames":     "saveFrames",
	"progress":   "progress",
	"log-level":  "logLevel",
	"cutoff":     "env.episodeCutoff",
	"record":     "env.recordEpisodes",
	"fuel":       "env.lander.fuel",
	"gravity":    "env.lander.gravity",
	"turbulence": "env.lander.turbulencePower",
	"render":     "env.lander.renderMode",
}

func newRunCmd() *cobra.Command {
	v := config.New()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a random agent and save episode returns, lengths, and end reasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiment(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Uint("steps", 1000, "number of timesteps to run")
	flags.Uint64("seed", 0, "seed for the environment and agent")
	flags.String("output", "./runs", "directory to save run data in")
	flags.Bool("frames", false, "save rendered frames as PNG images")
	flags.Bool("progress", false, "display a progress bar")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	flags.Uint("cutoff", 0, "truncate episodes after this many steps, 0 disables")
	flags.Bool("record", true, "record episode returns and lengths in the step info")
	flags.Int("fuel", 100, "fuel the tank is filled with on reset")
	flags.Float64("gravity", -5.0, "gravity of the environment")
	flags.Float64("turbulence", 1.0, "turbulence power of the environment")
	flags.String("render", "none", "render mode (none, rgb_array)")

	for flag, key := range runFlags {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("newRunCmd: could not bind flag %v: %v", flag,
				err))
		}
	}
	return cmd
}

func runExperiment(cmd *cobra.Command, v *viper.Viper) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	conf, err := config.Load(v, path)
	if err != nil {
		return err
	}

	log := logging.New(cmd.ErrOrStderr(), conf.LogLevel, conf.LogConsole)

	runID := uuid.New().String()
	dir := filepath.Join(conf.OutputDir, runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("run: could not create output directory: %w", err)
	}
	log = log.With().Str("run", runID).Logger()

	e, _, err := conf.Env.Create(conf.Seed)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	a, err := random.New(e.ActionSpec(), conf.Seed)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	returns := tracker.NewReturn(filepath.Join(dir, "return.bin"))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir, "length.bin"))
	reasons := tracker.NewEndReason(filepath.Join(dir, "reason.bin"))

	// Terminations of the environment itself, regardless of wrappers
	terminals := tracker.Register(
		tracker.NewEndReason(filepath.Join(dir, "terminal.bin")),
		environment.Unwrapped(e),
	)

	opts := []experiment.Option{
		experiment.WithLogger(log),
		experiment.WithTrackers(returns, lengths, reasons, terminals),
	}
	if conf.SaveFrames {
		framesDir := filepath.Join(dir, "frames")
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return fmt.Errorf("run: could not create frames directory: %w",
				err)
		}
		opts = append(opts, experiment.WithFrames(
			render.NewFrameSaver(framesDir, "frame")))
	}
	if conf.Progress {
		opts = append(opts, experiment.WithProgressBar(
			progressbar.New(cmd.OutOrStdout(), 40, int(conf.Steps))))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exp := experiment.NewOnline(e, a, conf.Steps, opts...)
	log.Info().
		Str("env", conf.Env.Environment).
		Int("fuel", conf.Env.Lander.Fuel).
		Uint64("seed", conf.Seed).
		Str("dir", dir).
		Msg("run configured")

	if err := exp.Run(ctx); err != nil {
		return err
	}
	if err := exp.Save(); err != nil {
		return err
	}

	if rec, ok := e.(*wrappers.RecordEpisode); ok {
		logEpisodes(log, rec)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %v: %v episodes in %v steps, "+
		"saved to %v\n", runID, exp.Episodes(), exp.Steps(), dir)
	return nil
}

// logEpisodes logs the mean return and length of the episodes recorded
// by rec
func logEpisodes(log zerolog.Logger, rec *wrappers.RecordEpisode) {
	returns, lengths := rec.Returns(), rec.Lengths()
	if len(returns) == 0 {
		log.Warn().Msg("no episodes finished")
		return
	}

	var totalReturn float64
	var totalLength int
	for i := range returns {
		totalReturn += returns[i]
		totalLength += lengths[i]
	}
	n := float64(len(returns))
	log.Info().
		Int("episodes", len(returns)).
		Float64("meanReturn", totalReturn/n).
		Float64("meanLength", float64(totalLength)/n).
		Msg("episodes recorded")
}
