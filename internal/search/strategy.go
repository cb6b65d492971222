package search

import (
	"fmt"
	"strings"
)

// Strategy selects the expansion order and relaxation rule of a Finder.
type Strategy int

const (
	// BreadthFirst expands in discovery order and counts every connection as
	// one step, whatever its cost. It finds the path with the fewest nodes.
	BreadthFirst Strategy = iota
	// DepthFirst expands the most recently discovered node first, counting
	// steps like BreadthFirst. It finds some path, not a short one.
	DepthFirst
	// Dijkstra expands by accumulated cost and finds the cheapest path.
	Dijkstra
	// AStar expands by accumulated cost plus a heuristic estimate and may
	// reopen closed nodes when a cheaper path to them turns up.
	AStar
)

var strategyNames = [...]string{
	BreadthFirst: "bfs",
	DepthFirst:   "dfs",
	Dijkstra:     "dijkstra",
	AStar:        "astar",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

func (s Strategy) valid() bool {
	return s >= BreadthFirst && s <= AStar
}

// uninformed reports whether the strategy ignores connection costs.
func (s Strategy) uninformed() bool {
	return s == BreadthFirst || s == DepthFirst
}

// ParseStrategy accepts the short names used in configuration and requests.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bfs", "breadth_first", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth_first", "depth-first":
		return DepthFirst, nil
	case "dijkstra":
		return Dijkstra, nil
	case "astar", "a*", "a_star":
		return AStar, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// State is the phase a search is in.
type State int

const (
	Initializing State = iota
	Exploring
	TargetFound
	Exhausted
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Exploring:
		return "exploring"
	case TargetFound:
		return "target_found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
