package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/benedrone/gridnav/internal/config"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/obstacle"
	"github.com/paulmach/orb"
)

// loadObstacles reads the configured GeoJSON sources and applies the
// configured cleanup passes.
func loadObstacles(cfg config.ObstacleConfig, logger *slog.Logger) ([]orb.Ring, error) {
	if len(cfg.Files) == 0 {
		return nil, nil
	}

	rings, err := obstacle.LoadFiles(cfg.Files, logger)
	if err != nil {
		return nil, fmt.Errorf("load obstacles: %w", err)
	}

	if cfg.SimplifyEps > 0 {
		before := obstacle.VertexCount(rings)
		rings = obstacle.SimplifyRings(rings, cfg.SimplifyEps)
		logger.Info("simplified obstacles",
			"epsilon", cfg.SimplifyEps,
			"vertices_before", before,
			"vertices_after", obstacle.VertexCount(rings))
	}
	if cfg.PruneContained {
		before := len(rings)
		rings = obstacle.RemoveContained(rings)
		logger.Info("pruned contained obstacles", "removed", before-len(rings))
	}
	return rings, nil
}

// buildGraph builds the configured grid around the obstacles.
func buildGraph(grid config.GridConfig, rings []orb.Ring) (*graph.Graph, error) {
	var blocker graph.Blocker
	if len(rings) > 0 {
		blocker = obstacle.NewSet(rings)
	}
	return graph.BuildGrid(grid.GridSpec(blocker))
}

// lineOfSight returns the smoothing test for a graph: the obstacles plus the
// blocked cells of a grid.
func lineOfSight(g *graph.Graph, grid config.GridConfig, rings []orb.Ring, radius float64) (*obstacle.LineOfSight, error) {
	all := append([]orb.Ring(nil), rings...)
	if layout, ok := g.Layout(); ok {
		all = append(all, obstacle.CellRings(layout, grid.BlockedCells())...)
	}
	return obstacle.NewLineOfSight(obstacle.NewSet(all), radius)
}

// parsePoint reads an "x,y" pair.
func parsePoint(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return orb.Point{x, y}, nil
}
