package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
)

// snapshot is the on-disk form of a graph. Connections refer to node ids as
// written in the file; ids are reassigned densely on load.
type snapshot struct {
	Layout *Layout        `json:"layout,omitempty"`
	Nodes  []snapshotNode `json:"nodes"`
}

type snapshotNode struct {
	ID          int                  `json:"id"`
	Point       orb.Point            `json:"point"`
	Cell        *Cell                `json:"cell,omitempty"`
	Connections []snapshotConnection `json:"connections"`
}

type snapshotConnection struct {
	To   int     `json:"to"`
	Cost float64 `json:"cost"`
	Slot int     `json:"slot"`
}

// Encode writes the graph as JSON.
func Encode(w io.Writer, g *Graph) error {
	snap := snapshot{
		Layout: g.layout,
		Nodes:  make([]snapshotNode, 0, len(g.nodes)),
	}
	for _, n := range g.nodes {
		sn := snapshotNode{
			ID:          int(n.ID),
			Point:       n.Position,
			Connections: make([]snapshotConnection, 0, len(n.connections)),
		}
		if g.layout != nil {
			c := n.Cell
			sn.Cell = &c
		}
		for _, c := range n.connections {
			sn.Connections = append(sn.Connections, snapshotConnection{
				To:   int(c.To),
				Cost: c.Cost,
				Slot: c.Slot,
			})
		}
		snap.Nodes = append(snap.Nodes, sn)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}
	return nil
}

// Decode reads a graph written by Encode. The result is validated: a
// connection to an id missing from the file is reported as
// ErrDanglingConnection.
func Decode(r io.Reader) (*Graph, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
	}

	var b *Builder
	if snap.Layout != nil {
		if snap.Layout.CellSize <= 0 {
			return nil, fmt.Errorf("layout cell size %v: %w", snap.Layout.CellSize, ErrInvalidGrid)
		}
		b = NewGridBuilder(*snap.Layout)
	} else {
		b = NewBuilder()
	}

	var errs []error
	ids := make(map[int]NodeID, len(snap.Nodes))
	for _, sn := range snap.Nodes {
		if _, dup := ids[sn.ID]; dup {
			errs = append(errs, fmt.Errorf("node %d: %w", sn.ID, ErrDuplicateNode))
			continue
		}
		var c Cell
		if sn.Cell != nil {
			c = *sn.Cell
		}
		ids[sn.ID] = b.add(sn.Point, c)
	}

	for _, sn := range snap.Nodes {
		from := ids[sn.ID]
		node := &b.nodes[from]
		for _, sc := range sn.Connections {
			to, ok := ids[sc.To]
			if !ok {
				errs = append(errs, fmt.Errorf("connection %d->%d: %w", sn.ID, sc.To, ErrDanglingConnection))
				continue
			}
			b.connect(node, to, sc.Cost, sc.Slot)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return b.Build()
}

// Save serializes the graph to a JSON file.
func Save(g *Graph, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := Encode(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load deserializes a graph from a JSON file. The loaded graph is a new
// generation.
func Load(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
