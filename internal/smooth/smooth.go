// Package smooth removes redundant waypoints from a found path. A waypoint is
// redundant when the agent can travel straight past it without losing line of
// sight.
package smooth

import (
	"log/slog"

	"github.com/benedrone/gridnav/internal/path"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/paulmach/orb"
)

// LineOfSight reports whether an agent can travel straight from a to b.
type LineOfSight interface {
	IsClear(a, b orb.Point) bool
}

// LineOfSightFunc adapts a function to LineOfSight.
type LineOfSightFunc func(a, b orb.Point) bool

// IsClear calls f(a, b).
func (f LineOfSightFunc) IsClear(a, b orb.Point) bool {
	return f(a, b)
}

// Positions runs a greedy forward scan over points: from the last kept
// waypoint it looks as far ahead as the line of sight allows and keeps the
// furthest visible point. The first and last points are always kept and the
// result never has more points than the input. Inputs of two points or fewer
// are returned as a copy.
func Positions(points []orb.Point, los LineOfSight) []orb.Point {
	if len(points) <= 2 {
		return append([]orb.Point(nil), points...)
	}

	kept := make([]orb.Point, 0, len(points))
	kept = append(kept, points[0])

	start := 0
	end := start + 2
	for end < len(points) {
		if los.IsClear(points[start], points[end]) {
			end++
			continue
		}
		start = end - 1
		kept = append(kept, points[start])
		end = start + 2
	}

	return append(kept, points[len(points)-1])
}

// Finder wraps a PathFinder and smooths every path it returns.
type Finder struct {
	inner  search.PathFinder
	los    LineOfSight
	logger *slog.Logger
}

var _ search.PathFinder = (*Finder)(nil)

// NewFinder creates a smoothing wrapper around inner.
func NewFinder(inner search.PathFinder, los LineOfSight, logger *slog.Logger) *Finder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Finder{inner: inner, los: los, logger: logger}
}

// FindPath finds a path with the wrapped finder and smooths it. The start
// position takes part in the scan, so the first waypoint may be skipped, but
// it is not part of the returned path.
func (f *Finder) FindPath(start, target orb.Point) (*path.Data, bool) {
	raw, ok := f.inner.FindPath(start, target)
	if !ok {
		return nil, false
	}

	points := make([]orb.Point, 0, raw.Len()+1)
	points = append(points, start)
	points = append(points, raw.Points()...)

	smoothed := Positions(points, f.los)

	f.logger.Debug("path smoothed",
		"raw", raw.Len(),
		"kept", len(smoothed)-1)

	return path.New(smoothed[1:], raw.Loop()), true
}
