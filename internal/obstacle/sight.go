package obstacle

import (
	"fmt"

	"github.com/paulmach/orb"
)

// LineOfSight answers clearance-aware visibility queries against a Set. The
// agent is modelled as a disc, so a path segment is clear only when the
// capsule it sweeps stays off every obstacle.
type LineOfSight struct {
	set    *Set
	radius float64
}

// NewLineOfSight creates a line-of-sight test for an agent of the given
// clearance radius.
func NewLineOfSight(set *Set, radius float64) (*LineOfSight, error) {
	if radius < 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidRadius, radius)
	}
	if set == nil {
		set = NewSet(nil)
	}
	return &LineOfSight{set: set, radius: radius}, nil
}

// Radius returns the clearance radius.
func (l *LineOfSight) Radius() float64 {
	return l.radius
}

// IsClear reports whether an agent can move straight from a to b.
func (l *LineOfSight) IsClear(a, b orb.Point) bool {
	return l.set.Clear(a, b, l.radius)
}
