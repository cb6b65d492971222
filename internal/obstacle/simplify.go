package obstacle

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
)

// SimplifyRing reduces ring complexity with Douglas-Peucker. The result is
// closed; when fewer than four points would survive the original ring is
// returned, since a collapsed ring no longer blocks anything.
func SimplifyRing(ring orb.Ring, epsilon float64) orb.Ring {
	if epsilon <= 0 || len(ring) <= 4 {
		return ring
	}

	closed := ring.Clone()
	if !closed.Closed() {
		closed = append(closed, closed[0])
	}

	simplified := simplify.DouglasPeucker(epsilon).Ring(closed)
	if len(simplified) < 4 {
		return ring
	}
	if !simplified.Closed() {
		simplified = append(simplified, simplified[0])
	}
	return simplified
}

// SimplifyRings simplifies multiple rings
func SimplifyRings(rings []orb.Ring, epsilon float64) []orb.Ring {
	simplified := make([]orb.Ring, len(rings))
	for i, ring := range rings {
		simplified[i] = SimplifyRing(ring, epsilon)
	}
	return simplified
}

// VertexCount sums the points of all rings.
func VertexCount(rings []orb.Ring) int {
	n := 0
	for _, r := range rings {
		n += len(r)
	}
	return n
}
