package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/starboard-re/comps-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "comps",
	Short: "Find comparable industrial properties",
	Long:  "Describes an industrial property to a remote scoring service and renders a ranked list of comparables with per-property compatibility scores.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	// The bare command is the landing screen: value proposition and a
	// handoff to the search form.
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Starboard - comparable industrial properties with precision scoring")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "How it works:")
		fmt.Fprintln(out, "  1. Enter your property's location, size, year built and zoning")
		fmt.Fprintln(out, "  2. The scoring service analyzes candidate properties")
		fmt.Fprintln(out, "  3. Review compatibility scores and detailed comparisons")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'comps search --help' to start a property search.")
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
