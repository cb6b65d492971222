package search

import "errors"

// Sentinel errors for the search layer.
var (
	// ErrNilGraph is returned when a finder is created without a graph.
	ErrNilGraph = errors.New("nil graph")

	// ErrUnknownStrategy is returned for strategy values or names outside
	// BreadthFirst, DepthFirst, Dijkstra and AStar.
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrUnknownHeuristic is returned by HeuristicByName for unknown names.
	ErrUnknownHeuristic = errors.New("unknown heuristic")

	// ErrBrokenChain is returned when the inbound connections recorded for
	// the target do not lead back to the start.
	ErrBrokenChain = errors.New("broken connection chain")
)
