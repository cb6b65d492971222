// Package obstacle holds the blocked regions of the plane: a set of rings
// indexed in an R-tree, the clearance-aware line-of-sight test built on it,
// and the loaders and cleanup passes that produce the rings.
package obstacle

import (
	"math"

	"github.com/benedrone/gridnav/internal/geom"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// minExtent keeps degenerate boxes valid for rtreego, which rejects
// zero-length sides.
const minExtent = 1e-9

// zoneEntry wraps a ring for R-tree storage
type zoneEntry struct {
	ring orb.Ring
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (z *zoneEntry) Bounds() rtreego.Rect {
	return z.bbox
}

// Set is an immutable collection of obstacle rings. It is safe for
// concurrent use once built.
type Set struct {
	rings []orb.Ring
	tree  *rtreego.Rtree
}

var _ graph.Blocker = (*Set)(nil)

// NewSet indexes rings. Rings with fewer than three points enclose nothing
// and are dropped.
func NewSet(rings []orb.Ring) *Set {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	kept := make([]orb.Ring, 0, len(rings))

	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		bbox, err := boundRect(ring.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&zoneEntry{ring: ring, bbox: bbox})
		kept = append(kept, ring)
	}

	return &Set{rings: kept, tree: tree}
}

// Len returns the number of indexed rings.
func (s *Set) Len() int {
	return len(s.rings)
}

// Rings returns the indexed rings. The slice must not be modified.
func (s *Set) Rings() []orb.Ring {
	return s.rings
}

// Query returns the rings whose bounding boxes intersect b.
func (s *Set) Query(b orb.Bound) []orb.Ring {
	if len(s.rings) == 0 {
		return nil
	}
	bbox, err := boundRect(b)
	if err != nil {
		return nil
	}

	results := s.tree.SearchIntersect(bbox)
	rings := make([]orb.Ring, 0, len(results))
	for _, item := range results {
		rings = append(rings, item.(*zoneEntry).ring)
	}
	return rings
}

// Contains reports whether p lies inside any ring.
func (s *Set) Contains(p orb.Point) bool {
	for _, ring := range s.Query(orb.Bound{Min: p, Max: p}) {
		if planar.RingContains(ring, p) {
			return true
		}
	}
	return false
}

// SegmentClear reports whether the segment a-b neither enters nor touches
// any ring.
func (s *Set) SegmentClear(a, b orb.Point) bool {
	return s.Clear(a, b, 0)
}

// Clear reports whether a disc of the given radius swept from a to b stays
// off every ring. A zero radius also rejects segments that only touch a ring.
func (s *Set) Clear(a, b orb.Point, radius float64) bool {
	seg := geom.Segment{P1: a, P2: b}
	// rtreego skips boxes that only touch, so the query box always grows a little
	for _, ring := range s.Query(seg.Bound().Pad(math.Max(radius, minExtent))) {
		d := geom.SegmentRingDistance(seg, ring)
		if d == 0 || d < radius {
			return false
		}
	}
	return true
}

// boundRect converts an orb bound to an rtreego rectangle.
func boundRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min[0], b.Min[1]},
		[]float64{
			math.Max(b.Max[0]-b.Min[0], minExtent),
			math.Max(b.Max[1]-b.Min[1], minExtent),
		},
	)
}

// CellRings turns blocked grid cells into square rings covering each cell.
func CellRings(layout graph.Layout, cells []graph.Cell) []orb.Ring {
	rings := make([]orb.Ring, 0, len(cells))
	for _, c := range cells {
		rings = append(rings, geom.SquareRing(layout.Center(c), layout.CellSize))
	}
	return rings
}
