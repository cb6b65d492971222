package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/nav"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/benedrone/gridnav/internal/smooth"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"
)

// errNoPath is returned when the search comes back empty.
var errNoPath = errors.New("no path found")

type routeOptions struct {
	from, to   string
	algorithm  string
	heuristic  string
	graphFile  string
	smooth     bool
	noSmooth   bool
	geojsonOut bool
}

func newRouteCmd(a *app) *cobra.Command {
	opts := &routeOptions{}

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Find a path between two positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.from, "from", "", "start position as x,y")
	cmd.Flags().StringVar(&opts.to, "to", "", "target position as x,y")
	cmd.Flags().StringVar(&opts.algorithm, "algorithm", "", "bfs, dfs, dijkstra or astar (default from config)")
	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "", "euclidean, manhattan, squared, octile or zero (default from config)")
	cmd.Flags().StringVar(&opts.graphFile, "graph", "", "graph snapshot to search instead of building the configured grid")
	cmd.Flags().BoolVar(&opts.smooth, "smooth", false, "smooth the path even if disabled in config")
	cmd.Flags().BoolVar(&opts.noSmooth, "no-smooth", false, "never smooth the path")
	cmd.Flags().BoolVar(&opts.geojsonOut, "geojson", false, "print the path as a GeoJSON feature collection")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runRoute(cmd *cobra.Command, a *app, opts *routeOptions) error {
	from, err := parsePoint(opts.from)
	if err != nil {
		return err
	}
	to, err := parsePoint(opts.to)
	if err != nil {
		return err
	}

	algorithm := a.cfg.Search.Algorithm
	if opts.algorithm != "" {
		algorithm = opts.algorithm
	}
	strategy, err := search.ParseStrategy(algorithm)
	if err != nil {
		return err
	}
	heuristicName := a.cfg.Search.Heuristic
	if opts.heuristic != "" {
		heuristicName = opts.heuristic
	}
	heuristic, err := search.HeuristicByName(heuristicName)
	if err != nil {
		return err
	}

	rings, err := loadObstacles(a.cfg.Obstacles, a.logger)
	if err != nil {
		return err
	}

	var g *graph.Graph
	if opts.graphFile != "" {
		g, err = graph.Load(opts.graphFile)
	} else {
		g, err = buildGraph(a.cfg.Grid, rings)
	}
	if err != nil {
		return err
	}

	finder, err := search.New(g, strategy,
		search.WithHeuristic(heuristic),
		search.WithLogger(a.logger))
	if err != nil {
		return err
	}

	var pf search.PathFinder = finder
	if (a.cfg.Smoothing.Enabled || opts.smooth) && !opts.noSmooth {
		los, err := lineOfSight(g, a.cfg.Grid, rings, a.cfg.Smoothing.Radius)
		if err != nil {
			return err
		}
		pf = smooth.NewFinder(finder, los, a.logger)
	}

	navigator := nav.New(pf, from)
	p, ok := navigator.FindPath(to)
	if !ok {
		return fmt.Errorf("%v -> %v: %w", from, to, errNoPath)
	}

	out := cmd.OutOrStdout()
	if opts.geojsonOut {
		fc := geojson.NewFeatureCollection()
		fc.Append(p.Feature(from))
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(fc)
	}

	fmt.Fprintf(out, "%s path with %d waypoints, length %.3f\n", strategy, p.Len(), p.LengthFrom(from))
	for i, pt := range p.Points() {
		fmt.Fprintf(out, "%3d: (%g, %g)\n", i, pt[0], pt[1])
	}
	return nil
}
