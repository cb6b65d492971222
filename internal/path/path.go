// Package path holds the route produced by a search: an ordered list of
// positions plus the cursor a path follower advances along it.
package path

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Data is an ordered sequence of waypoints. The start position of the search
// is not part of it; the last point is the target.
//
// Data is read-only after construction except for the follow cursor.
type Data struct {
	points []orb.Point
	loop   bool
	cursor int
}

// New creates path data from a copy of points.
func New(points []orb.Point, loop bool) *Data {
	return &Data{
		points: append([]orb.Point(nil), points...),
		loop:   loop,
	}
}

// Points returns the waypoints. The slice must not be modified.
func (d *Data) Points() []orb.Point {
	return d.points
}

// Len returns the number of waypoints.
func (d *Data) Len() int {
	return len(d.points)
}

// Loop reports whether the follower wraps around to the first waypoint.
func (d *Data) Loop() bool {
	return d.loop
}

// Start returns the first waypoint.
func (d *Data) Start() (orb.Point, bool) {
	if len(d.points) == 0 {
		return orb.Point{}, false
	}
	return d.points[0], true
}

// End returns the last waypoint.
func (d *Data) End() (orb.Point, bool) {
	if len(d.points) == 0 {
		return orb.Point{}, false
	}
	return d.points[len(d.points)-1], true
}

// Length returns the Euclidean length through the waypoints, including the
// closing segment for looping paths.
func (d *Data) Length() float64 {
	length := planar.Length(d.LineString())
	if d.loop && len(d.points) > 2 {
		length += planar.Distance(d.points[len(d.points)-1], d.points[0])
	}
	return length
}

// LengthFrom returns the length of the path travelled from start.
func (d *Data) LengthFrom(start orb.Point) float64 {
	if len(d.points) == 0 {
		return 0
	}
	return planar.Distance(start, d.points[0]) + d.Length()
}

// LineString returns the waypoints as a line string.
func (d *Data) LineString() orb.LineString {
	return orb.LineString(append([]orb.Point(nil), d.points...))
}

// Current returns the waypoint the follower is heading to.
func (d *Data) Current() (orb.Point, bool) {
	if d.cursor >= len(d.points) {
		return orb.Point{}, false
	}
	return d.points[d.cursor], true
}

// Index returns the cursor position.
func (d *Data) Index() int {
	return d.cursor
}

// Advance moves the cursor to the next waypoint. Looping paths wrap to the
// first waypoint; other paths stop past the end. It reports whether a
// waypoint remains.
func (d *Data) Advance() bool {
	if len(d.points) == 0 {
		return false
	}
	d.cursor++
	if d.cursor >= len(d.points) {
		if d.loop {
			d.cursor = 0
			return true
		}
		d.cursor = len(d.points)
		return false
	}
	return true
}

// Finished reports whether the follower has passed the last waypoint.
func (d *Data) Finished() bool {
	return !d.loop && d.cursor >= len(d.points)
}

// Reset moves the cursor back to the first waypoint.
func (d *Data) Reset() {
	d.cursor = 0
}
