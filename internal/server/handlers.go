package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/benedrone/gridnav/internal/config"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/path"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/benedrone/gridnav/internal/smooth"
	"github.com/paulmach/orb"
)

// Point is a position on the wire.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) toOrb() orb.Point { return orb.Point{p.X, p.Y} }

func fromOrb(p orb.Point) Point { return Point{X: p[0], Y: p[1]} }

type RouteRequest struct {
	Start     Point  `json:"start"`
	End       Point  `json:"end"`
	Algorithm string `json:"algorithm,omitempty"`
	Heuristic string `json:"heuristic,omitempty"`
	Smooth    *bool  `json:"smooth,omitempty"` // nil uses the server default
	Snap      bool   `json:"snap,omitempty"`   // snap start and end to the nearest nodes
}

type RouteResponse struct {
	Path      []Point `json:"path"`
	Success   bool    `json:"success"`
	Message   string  `json:"message,omitempty"`
	Algorithm string  `json:"algorithm"`
	Distance  float64 `json:"distance,omitempty"`
	Cost      float64 `json:"cost,omitempty"`
	Expanded  int     `json:"expanded"`
}

type BuildRequest struct {
	Grid  *config.GridConfig `json:"grid,omitempty"`
	Force bool               `json:"force,omitempty"` // Set to true to force rebuild
	Save  bool               `json:"save,omitempty"`  // Whether to save to disk
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// POST /route - Compute a route between start and end
func (s *Server) routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.logger.Warn("❌ method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("❌ invalid request body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	st := s.snapshot()
	if st == nil {
		s.logger.Warn("❌ graph not available")
		http.Error(w, "Graph not built. Call /graph/build first", http.StatusBadRequest)
		return
	}

	strategy := s.strategy
	if req.Algorithm != "" {
		var err error
		if strategy, err = search.ParseStrategy(req.Algorithm); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}
	heuristicName := s.cfg.Heuristic
	if req.Heuristic != "" {
		heuristicName = req.Heuristic
	}
	heuristic, err := search.HeuristicByName(heuristicName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	smoothing := s.cfg.Smooth
	if req.Smooth != nil {
		smoothing = *req.Smooth
	}

	start, end := req.Start.toOrb(), req.End.toOrb()
	if req.Snap {
		if n, ok := st.graph.NearestNode(start); ok {
			start = n.Position
		}
		if n, ok := st.graph.NearestNode(end); ok {
			end = n.Position
		}
	}

	s.logger.Info("📍 route request",
		"start", start,
		"end", end,
		"algorithm", strategy.String(),
		"smooth", smoothing)

	finder, err := search.New(st.graph, strategy,
		search.WithHeuristic(heuristic),
		search.WithLogger(s.logger))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	res := finder.Search(start, end)

	resp := RouteResponse{
		Path:      []Point{},
		Success:   res.Found(),
		Algorithm: strategy.String(),
		Expanded:  res.Expanded,
	}

	switch {
	case res.Err != nil:
		s.logger.Error("❌ graph integrity fault", "error", res.Err)
		resp.Message = res.Err.Error()
		recordRoute(strategy, "error")
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	case !res.Found():
		s.logger.Info("❌ no path found", "expanded", res.Expanded)
		resp.Message = "No path found"
		recordRoute(strategy, "not_found")
		writeJSON(w, http.StatusOK, resp)
		return
	}

	p := res.Path
	if smoothing {
		points := append([]orb.Point{start}, p.Points()...)
		points = smooth.Positions(points, st.los)
		p = path.New(points[1:], false)
	}

	resp.Path = make([]Point, 0, p.Len())
	for _, pt := range p.Points() {
		resp.Path = append(resp.Path, fromOrb(pt))
	}
	resp.Distance = p.LengthFrom(start)
	resp.Cost = res.Cost

	s.logger.Info("✅ path found",
		"waypoints", p.Len(),
		"raw_waypoints", res.Path.Len(),
		"distance", resp.Distance,
		"expanded", res.Expanded)
	recordRoute(strategy, "found")

	writeJSON(w, http.StatusOK, resp)
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	g := s.Graph()

	status := "ready"
	numNodes := 0
	var generation uint64
	if g == nil {
		status = "waiting for graph"
	} else {
		numNodes = g.Len()
		generation = g.Generation()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":     status,
		"hasGraph":   g != nil,
		"numNodes":   numNodes,
		"generation": generation,
	})
}

// POST /graph/build - Build a grid graph
func (s *Server) buildHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.logger.Warn("❌ method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req BuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("❌ invalid request body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	grid := s.cfg.Grid
	if req.Grid != nil {
		grid = *req.Grid
	}

	g, err := s.Build(grid, req.Force)
	switch {
	case errors.Is(err, ErrGraphExists):
		s.logger.Warn("⚠️  graph already exists; set force to rebuild")
		writeJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"error":   "graph already exists",
			"message": "Graph is already built. Set 'force: true' to rebuild, or restart the server.",
		})
		return
	case err != nil:
		s.logger.Warn("❌ graph build failed", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Optionally save to file
	if req.Save && s.cfg.GraphFile != "" {
		if err := graph.Save(g, s.cfg.GraphFile); err != nil {
			s.logger.Warn("⚠️  failed to save graph", "file", s.cfg.GraphFile, "error", err)
		}
	}

	s.logger.Info("✅ graph built",
		"nodes", g.Len(),
		"connections", g.ConnectionCount(),
		"generation", g.Generation())

	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"numNodes":       g.Len(),
		"numConnections": g.ConnectionCount(),
		"generation":     g.Generation(),
	})
}

// GET /graph/lines - Get graph edges as line strings for visualization
func (s *Server) linesHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Warn("❌ method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	g := s.Graph()
	if g == nil {
		http.Error(w, "Graph not built. Call /graph/build first", http.StatusBadRequest)
		return
	}

	lines := g.Lines()
	s.logger.Debug("returning graph lines", "lines", len(lines))

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"lines":    lines,
		"numNodes": g.Len(),
		"numEdges": len(lines),
	})
}
