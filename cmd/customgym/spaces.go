package main

import (
	"fmt"

	"github.com/samuelfneumann/customgym/environment/envconfig"
	"github.com/samuelfneumann/customgym/internal/config"
	"github.com/spf13/cobra"
)

func newSpacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spaces",
		Short: "Print the spaces and metadata of the configured environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			conf, err := config.Load(config.New(), path)
			if err != nil {
				return err
			}

			e, _, err := conf.Env.Create(conf.Seed)
			if err != nil {
				return fmt.Errorf("spaces: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "environment:  %v\n", conf.Env.Environment)
			fmt.Fprintf(out, "registered:   %v\n", envconfig.Registered())
			fmt.Fprintf(out, "observation:  %v\n", e.ObservationSpec())
			fmt.Fprintf(out, "action:       %v\n", e.ActionSpec())
			fmt.Fprintf(out, "reward:       %v\n", e.RewardSpec())

			meta := e.Metadata()
			fmt.Fprintf(out, "render modes: %v\n", meta.RenderModes)
			fmt.Fprintf(out, "render fps:   %v\n", meta.RenderFPS)
			return nil
		},
	}
}
