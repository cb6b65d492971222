// Package nav is the per-agent entry point to path finding. A Navigator
// remembers where its agent is, so callers only name the target.
package nav

import (
	"github.com/benedrone/gridnav/internal/path"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Navigator holds one agent's position and active path. Like the finder it
// wraps, it is not safe for concurrent use.
type Navigator struct {
	finder   search.PathFinder
	position orb.Point
	path     *path.Data
}

// New creates a navigator for an agent standing at position.
func New(finder search.PathFinder, position orb.Point) *Navigator {
	return &Navigator{finder: finder, position: position}
}

// Position returns the agent position.
func (n *Navigator) Position() orb.Point {
	return n.position
}

// SetPosition moves the agent.
func (n *Navigator) SetPosition(p orb.Point) {
	n.position = p
}

// Path returns the active path, nil when there is none.
func (n *Navigator) Path() *path.Data {
	return n.path
}

// FindPath searches from the agent position to target. A found path becomes
// the active path; a failed search clears it.
func (n *Navigator) FindPath(target orb.Point) (*path.Data, bool) {
	p, ok := n.finder.FindPath(n.position, target)
	if !ok {
		n.path = nil
		return nil, false
	}
	n.path = p
	return p, true
}

// Waypoint returns the waypoint the agent should head for. Waypoints within
// tolerance of the agent position count as reached and are skipped. It
// returns false when there is no active path or the path is finished.
func (n *Navigator) Waypoint(tolerance float64) (orb.Point, bool) {
	if n.path == nil {
		return orb.Point{}, false
	}
	for skipped := 0; skipped <= n.path.Len(); skipped++ {
		wp, ok := n.path.Current()
		if !ok {
			return orb.Point{}, false
		}
		if planar.Distance(wp, n.position) > tolerance {
			return wp, true
		}
		if !n.path.Advance() {
			return orb.Point{}, false
		}
	}
	// looping path with every waypoint within tolerance
	return n.path.Current()
}
