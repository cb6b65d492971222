package main

import (
	"fmt"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/spf13/cobra"
)

func newBuildCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the configured grid and save it as a graph snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Server.GraphFile
			}

			rings, err := loadObstacles(a.cfg.Obstacles, a.logger)
			if err != nil {
				return err
			}
			g, err := buildGraph(a.cfg.Grid, rings)
			if err != nil {
				return err
			}
			if err := graph.Save(g, out); err != nil {
				return fmt.Errorf("save graph: %w", err)
			}

			a.logger.Info("✅ graph saved", "file", out)
			fmt.Fprintf(cmd.OutOrStdout(), "%d nodes, %d connections written to %s\n",
				g.Len(), g.ConnectionCount(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "snapshot file (default from config)")
	return cmd
}
