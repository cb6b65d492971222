package search

import (
	"fmt"
	"slices"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/path"
	"github.com/paulmach/orb"
)

// reconstruct walks inbound connections back from the target record to the
// start and returns the end positions of those connections in travel order.
func (f *Finder) reconstruct(target graph.NodeID) (*path.Data, error) {
	rec, ok := f.closed[target]
	if !ok {
		return nil, fmt.Errorf("target %d not closed: %w", target, ErrBrokenChain)
	}

	// A reopened node may sit in the frontier while nodes behind it on the
	// chain are closed, so both sets are consulted.
	limit := len(f.closed) + f.frontier.Len()
	var connections []graph.Connection
	for rec.Connection != nil {
		if len(connections) >= limit {
			return nil, fmt.Errorf("cycle through node %d: %w", rec.Node, ErrBrokenChain)
		}
		connections = append(connections, *rec.Connection)

		from := rec.Connection.From
		if rec, ok = f.closed[from]; !ok {
			if rec, ok = f.frontier.Get(from); !ok {
				return nil, fmt.Errorf("no record for node %d: %w", from, ErrBrokenChain)
			}
		}
	}

	slices.Reverse(connections)

	points := make([]orb.Point, 0, len(connections))
	for _, c := range connections {
		end, ok := f.graph.NodeByID(c.To)
		if !ok {
			return nil, fmt.Errorf("connection %d->%d: %w", c.From, c.To, graph.ErrDanglingConnection)
		}
		points = append(points, end.Position)
	}
	return path.New(points, false), nil
}
