// Package geom holds the planar predicates shared by the graph builder and the
// obstacle line-of-sight tests. Positions are orb.Point values in world units.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Segment is a straight line between two positions.
type Segment struct {
	P1, P2 orb.Point
}

// Bound returns the axis-aligned box around the segment.
func (s Segment) Bound() orb.Bound {
	return orb.Bound{Min: s.P1, Max: s.P1}.Extend(s.P2)
}

// SegmentsIntersect checks if two segments touch or cross.
func SegmentsIntersect(seg1, seg2 Segment) bool {
	p1, p2 := seg1.P1, seg1.P2
	p3, p4 := seg2.P1, seg2.P2

	d1 := direction(p3, p4, p1)
	d2 := direction(p3, p4, p2)
	d3 := direction(p1, p2, p3)
	d4 := direction(p1, p2, p4)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	// Collinear cases
	if d1 == 0 && onSegment(p3, p4, p1) {
		return true
	}
	if d2 == 0 && onSegment(p3, p4, p2) {
		return true
	}
	if d3 == 0 && onSegment(p1, p2, p3) {
		return true
	}
	if d4 == 0 && onSegment(p1, p2, p4) {
		return true
	}

	return false
}

// direction calculates the cross product to determine orientation
func direction(p1, p2, p3 orb.Point) float64 {
	return (p3[0]-p1[0])*(p2[1]-p1[1]) - (p2[0]-p1[0])*(p3[1]-p1[1])
}

// onSegment checks if point q lies within the box spanned by p and r
func onSegment(p, r, q orb.Point) bool {
	return q[0] <= math.Max(p[0], r[0]) && q[0] >= math.Min(p[0], r[0]) &&
		q[1] <= math.Max(p[1], r[1]) && q[1] >= math.Min(p[1], r[1])
}

// SegmentDistance returns the shortest distance between two segments.
// Intersecting segments are at distance zero.
func SegmentDistance(seg1, seg2 Segment) float64 {
	if SegmentsIntersect(seg1, seg2) {
		return 0
	}
	d := planar.DistanceFromSegment(seg1.P1, seg1.P2, seg2.P1)
	d = math.Min(d, planar.DistanceFromSegment(seg1.P1, seg1.P2, seg2.P2))
	d = math.Min(d, planar.DistanceFromSegment(seg2.P1, seg2.P2, seg1.P1))
	d = math.Min(d, planar.DistanceFromSegment(seg2.P1, seg2.P2, seg1.P2))
	return d
}

// RingEdges returns the edges of a ring. The closing edge is included whether or
// not the ring repeats its first point.
func RingEdges(ring orb.Ring) []Segment {
	n := len(ring)
	if n < 2 {
		return nil
	}
	if ring.Closed() {
		n--
	}
	edges := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Segment{P1: ring[i], P2: ring[(i+1)%n]})
	}
	return edges
}

// SegmentIntersectsRing checks if a segment crosses any edge of a ring.
func SegmentIntersectsRing(seg Segment, ring orb.Ring) bool {
	for _, edge := range RingEdges(ring) {
		if SegmentsIntersect(seg, edge) {
			return true
		}
	}
	return false
}

// SegmentRingDistance returns the distance between a segment and the area
// enclosed by a ring: zero when the segment enters or crosses the ring.
func SegmentRingDistance(seg Segment, ring orb.Ring) float64 {
	if len(ring) < 3 {
		return math.Inf(1)
	}
	if planar.RingContains(ring, seg.P1) || planar.RingContains(ring, seg.P2) {
		return 0
	}
	if SegmentIntersectsRing(seg, ring) {
		return 0
	}
	best := math.Inf(1)
	for _, edge := range RingEdges(ring) {
		d := SegmentDistance(seg, edge)
		if d < best {
			best = d
		}
		if best == 0 {
			return 0
		}
	}
	return best
}

// SquareRing returns a closed axis-aligned square ring centred on c.
func SquareRing(c orb.Point, size float64) orb.Ring {
	h := size / 2
	return orb.Ring{
		{c[0] - h, c[1] - h},
		{c[0] + h, c[1] - h},
		{c[0] + h, c[1] + h},
		{c[0] - h, c[1] + h},
		{c[0] - h, c[1] - h},
	}
}
