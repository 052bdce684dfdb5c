// Command customgym runs agents in the CustomLunarLander environment
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	for _, envFile := range []string{
		".env",
		"../../.env",
	} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "customgym",
		Short:         "customgym runs agents in the CustomLunarLander-v1 environment.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "",
		"path to a JSON or YAML configuration file")

	rootCmd.AddCommand(newRunCmd(), newSpacesCmd())
	return rootCmd
}
