package obstacle

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// RemoveContained drops rings that lie fully inside another ring. Of two
// identical rings the first is kept.
func RemoveContained(rings []orb.Ring) []orb.Ring {
	if len(rings) <= 1 {
		return rings
	}

	contained := make([]bool, len(rings))

	// Check each ring against all others
	for i := range rings {
		if contained[i] {
			continue
		}
		for j := range rings {
			if i == j || contained[j] {
				continue
			}
			if ringContainedIn(rings[i], rings[j]) && !(j > i && ringContainedIn(rings[j], rings[i])) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]orb.Ring, 0, len(rings))
	for i, ring := range rings {
		if !contained[i] {
			result = append(result, ring)
		}
	}
	return result
}

// ringContainedIn checks if ring a is fully contained within ring b
func ringContainedIn(a, b orb.Ring) bool {
	if len(a) == 0 || len(b) < 3 {
		return false
	}

	// Quick bounding box check first
	ba, bb := a.Bound(), b.Bound()
	if !bb.Contains(ba.Min) || !bb.Contains(ba.Max) {
		return false
	}

	// planar.RingContains counts boundary points as inside
	for _, p := range a {
		if !planar.RingContains(b, p) {
			return false
		}
	}
	return true
}
