package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/server"
	"github.com/benedrone/gridnav/internal/telemetry"
	"github.com/spf13/cobra"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr  string
		build bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP route service",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			provider, err := telemetry.Init(ctx, telemetry.Config{
				ServiceName:    a.cfg.Telemetry.ServiceName,
				MetricExporter: a.cfg.Telemetry.MetricExporter,
			})
			if err != nil {
				return err
			}
			defer provider.Shutdown(context.Background())

			rings, err := loadObstacles(a.cfg.Obstacles, a.logger)
			if err != nil {
				return err
			}

			srv, err := server.New(server.Config{
				Grid:      a.cfg.Grid,
				Obstacles: rings,
				Algorithm: a.cfg.Search.Algorithm,
				Heuristic: a.cfg.Search.Heuristic,
				Smooth:    a.cfg.Smoothing.Enabled,
				Radius:    a.cfg.Smoothing.Radius,
				GraphFile: a.cfg.Server.GraphFile,
				Logger:    a.logger,
				Metrics:   provider.Handler(),
			})
			if err != nil {
				return err
			}

			if err := prepareGraph(a, srv, build); err != nil {
				return err
			}

			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&build, "build", false, "build the configured grid on startup instead of loading the snapshot")
	return cmd
}

// prepareGraph installs the startup graph: built from config and saved when
// build is set, otherwise loaded from the snapshot file if there is one.
func prepareGraph(a *app, srv *server.Server, build bool) error {
	file := a.cfg.Server.GraphFile

	if build {
		g, err := srv.Build(a.cfg.Grid, true)
		if err != nil {
			return err
		}
		a.logger.Info("✅ graph built from config", "nodes", g.Len())
		if err := graph.Save(g, file); err != nil {
			a.logger.Warn("⚠️  failed to save graph", "file", file, "error", err)
			return nil
		}
		a.logger.Info("💾 graph saved", "file", file)
		return nil
	}

	// Try to load an existing graph snapshot on startup
	g, err := graph.Load(file)
	if err != nil {
		a.logger.Info("ℹ️  no existing graph found; call /graph/build to create one", "file", file)
		return nil
	}
	if err := srv.SetGraph(g, a.cfg.Grid.BlockedCells()); err != nil {
		return err
	}
	a.logger.Info("✅ loaded existing graph", "file", file, "nodes", g.Len())
	return nil
}
