package search

import (
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/paulmach/orb"
)

// NodeRecord is the per-search bookkeeping attached to one graph node.
// Records are created fresh by every search and never outlive it.
type NodeRecord struct {
	Node     graph.NodeID
	Position orb.Point

	// Connection is the inbound connection of the best known path to Node,
	// nil for the start node.
	Connection *graph.Connection

	// CostSoFar is the accumulated path cost from the start.
	CostSoFar float64

	// EstimatedTotal is CostSoFar plus the heuristic estimate to the target.
	// Only the AStar strategy maintains it.
	EstimatedTotal float64
}

// reroute points the record at a cheaper inbound connection. The heuristic
// term of EstimatedTotal is kept as is: it depends only on the node position
// and the target, and the target does not change during a search.
func (r *NodeRecord) reroute(conn graph.Connection, cost float64) {
	r.EstimatedTotal = r.EstimatedTotal - r.CostSoFar + cost
	r.CostSoFar = cost
	r.Connection = &conn
}
