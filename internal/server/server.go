// Package server exposes path finding as a JSON HTTP service.
//
// The active graph and its line-of-sight test are swapped together under a
// lock and never mutated in place. Every route request creates its own
// finder, so requests run concurrently against the shared graph.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/benedrone/gridnav/internal/config"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/obstacle"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/paulmach/orb"
)

// Config configures a Server.
type Config struct {
	// Grid is used by build requests that carry no grid of their own.
	Grid config.GridConfig
	// Obstacles are applied to every grid the server builds.
	Obstacles []orb.Ring

	Algorithm string
	Heuristic string
	Smooth    bool
	Radius    float64

	// GraphFile is where build requests with save set write the graph.
	GraphFile string

	Logger *slog.Logger
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// state is the graph in use and the obstacles derived for it.
type state struct {
	graph *graph.Graph
	los   *obstacle.LineOfSight
}

// Server handles route, build and inspection requests.
type Server struct {
	cfg      Config
	strategy search.Strategy
	logger   *slog.Logger

	mu      sync.RWMutex
	current *state
}

// New validates cfg and creates a server without a graph.
func New(cfg Config) (*Server, error) {
	strategy, err := search.ParseStrategy(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if _, err := search.HeuristicByName(cfg.Heuristic); err != nil {
		return nil, err
	}
	if cfg.Radius < 0 {
		return nil, fmt.Errorf("%w: %g", obstacle.ErrInvalidRadius, cfg.Radius)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Server{
		cfg:      cfg,
		strategy: strategy,
		logger:   cfg.Logger,
	}, nil
}

// SetGraph installs g. blocked lists grid cells missing from g that the
// smoother must treat as obstacles.
func (s *Server) SetGraph(g *graph.Graph, blocked []graph.Cell) error {
	st, err := s.newState(g, blocked)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = st
	s.mu.Unlock()
	return nil
}

// Graph returns the active graph, nil before the first build or load.
func (s *Server) Graph() *graph.Graph {
	st := s.snapshot()
	if st == nil {
		return nil
	}
	return st.graph
}

func (s *Server) snapshot() *state {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Server) newState(g *graph.Graph, blocked []graph.Cell) (*state, error) {
	rings := append([]orb.Ring(nil), s.cfg.Obstacles...)
	if layout, ok := g.Layout(); ok {
		rings = append(rings, obstacle.CellRings(layout, blocked)...)
	}
	los, err := obstacle.NewLineOfSight(obstacle.NewSet(rings), s.cfg.Radius)
	if err != nil {
		return nil, err
	}
	return &state{graph: g, los: los}, nil
}

// Build creates a grid graph and installs it. An existing graph is only
// replaced when force is set.
func (s *Server) Build(grid config.GridConfig, force bool) (*graph.Graph, error) {
	if s.Graph() != nil && !force {
		return nil, ErrGraphExists
	}

	var blocker graph.Blocker
	if len(s.cfg.Obstacles) > 0 {
		blocker = obstacle.NewSet(s.cfg.Obstacles)
	}
	g, err := graph.BuildGrid(grid.GridSpec(blocker))
	if err != nil {
		return nil, err
	}
	st, err := s.newState(g, grid.BlockedCells())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// another build may have finished while this one ran
	if s.current != nil && !force {
		return nil, ErrGraphExists
	}
	s.current = st
	return g, nil
}

// Handler returns the HTTP handler with every endpoint registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/route", corsMiddleware(s.routeHandler))
	mux.HandleFunc("/graph/build", corsMiddleware(s.buildHandler))
	mux.HandleFunc("/graph/lines", corsMiddleware(s.linesHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	if s.cfg.Metrics != nil {
		mux.Handle("/metrics", s.cfg.Metrics)
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("🚀 server starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
