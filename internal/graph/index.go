package graph

import (
	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// pointTolerance is the half side of the box each node occupies in the index.
const pointTolerance = 1e-9

// nodeEntry wraps a node for R-tree storage
type nodeEntry struct {
	id   NodeID
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *nodeEntry) Bounds() rtreego.Rect {
	return e.bbox
}

func (g *Graph) buildIndex() {
	g.index = rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node
	for _, n := range g.nodes {
		g.index.Insert(&nodeEntry{
			id:   n.ID,
			bbox: rtreego.Point{n.Position[0], n.Position[1]}.ToRect(pointTolerance),
		})
	}
}

// NearestNode returns the node closest to p. Unlike NodeAt it never fails on a
// non-empty graph; callers use it to snap free positions onto the graph.
func (g *Graph) NearestNode(p orb.Point) (Node, bool) {
	if len(g.nodes) == 0 {
		return Node{}, false
	}
	g.indexOnce.Do(g.buildIndex)

	item := g.index.NearestNeighbor(rtreego.Point{p[0], p[1]})
	if item == nil {
		return Node{}, false
	}
	return g.nodes[item.(*nodeEntry).id], true
}
