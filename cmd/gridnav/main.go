// Command gridnav finds paths on navigation grids: one-off routes from the
// command line, graph snapshots, and an HTTP route service.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/benedrone/gridnav/internal/config"
	"github.com/benedrone/gridnav/internal/logging"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs after flags are parsed.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "gridnav",
		Short:         "Path finding on 2D navigation grids",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if a.logLevel != "" {
				cfg.Log.Level = a.logLevel
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Log.Format, cfg.Log.Level, cmd.ErrOrStderr())
			slog.SetDefault(a.logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml or .toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override the configured log level")

	rootCmd.AddCommand(
		newRouteCmd(a),
		newBuildCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
