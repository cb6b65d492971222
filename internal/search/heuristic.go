package search

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Heuristic estimates the remaining cost from a position to the target.
// Whether it is admissible is up to the caller; the search does not check.
type Heuristic func(from, to orb.Point) float64

// Euclidean is the straight-line distance. Admissible whenever connection
// costs are at least the distance they span.
func Euclidean(from, to orb.Point) float64 {
	return planar.Distance(from, to)
}

// Manhattan is the axis-aligned distance. Admissible on 4-neighbor grids.
func Manhattan(from, to orb.Point) float64 {
	return math.Abs(from[0]-to[0]) + math.Abs(from[1]-to[1])
}

// SquaredEuclidean is the squared straight-line distance. It overestimates
// and trades optimality for fewer expansions.
func SquaredEuclidean(from, to orb.Point) float64 {
	return planar.DistanceSquared(from, to)
}

// Octile is the exact distance on an 8-neighbor grid without obstacles.
func Octile(from, to orb.Point) float64 {
	dx := math.Abs(from[0] - to[0])
	dy := math.Abs(from[1] - to[1])
	return dx + dy + (math.Sqrt2-2)*math.Min(dx, dy)
}

// Zero makes AStar behave like Dijkstra.
func Zero(_, _ orb.Point) float64 {
	return 0
}

// HeuristicByName looks up a heuristic by its configuration name.
func HeuristicByName(name string) (Heuristic, error) {
	switch strings.ToLower(name) {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	case "squared", "squared_euclidean":
		return SquaredEuclidean, nil
	case "octile":
		return Octile, nil
	case "zero", "none":
		return Zero, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
	}
}
