// Package graph provides the navigation graph consumed by the search layer.
//
// Nodes live in an arena indexed by NodeID and connections refer to their
// endpoints by id, never by pointer, so a graph can be saved, loaded and
// shared between searches without ownership cycles.
//
// A Graph is immutable once built. Regenerating a graph produces a new Graph
// value with a new generation; searches hold on to the Graph they started with.
// A Graph is safe for concurrent reads.
package graph

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// NodeID identifies a node within one graph generation.
type NodeID int

// Cell is an integer grid coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Node is a position-bearing vertex.
type Node struct {
	ID       NodeID
	Position orb.Point
	Cell     Cell // only meaningful for grid graphs

	connections []Connection
}

// Connections returns the outgoing connections of the node. The slice is
// shared with the graph and must not be modified.
func (n Node) Connections() []Connection {
	return n.connections
}

// Connection is a directed, costed edge. Slot distinguishes connections of the
// same node (a grid direction, or the insertion order for free-form graphs).
type Connection struct {
	From NodeID
	To   NodeID
	Cost float64
	Slot int
}

// Layout maps world positions onto grid cells.
type Layout struct {
	Origin   orb.Point `json:"origin"`
	CellSize float64   `json:"cellSize"`
}

// CellOf returns the cell whose center is nearest to p.
func (l Layout) CellOf(p orb.Point) Cell {
	return Cell{
		X: int(math.Round((p[0] - l.Origin[0]) / l.CellSize)),
		Y: int(math.Round((p[1] - l.Origin[1]) / l.CellSize)),
	}
}

// Center returns the world position of a cell.
func (l Layout) Center(c Cell) orb.Point {
	return orb.Point{
		l.Origin[0] + float64(c.X)*l.CellSize,
		l.Origin[1] + float64(c.Y)*l.CellSize,
	}
}

var generations atomic.Uint64

// Graph is an immutable snapshot of nodes and connections.
type Graph struct {
	nodes      []Node
	byPosition map[orb.Point]NodeID
	byCell     map[Cell]NodeID
	layout     *Layout
	generation uint64

	indexOnce sync.Once
	index     *rtreego.Rtree
}

func newGraph(nodes []Node, layout *Layout) *Graph {
	g := &Graph{
		nodes:      nodes,
		byPosition: make(map[orb.Point]NodeID, len(nodes)),
		layout:     layout,
		generation: generations.Add(1),
	}
	for _, n := range nodes {
		g.byPosition[n.Position] = n.ID
	}
	if layout != nil {
		g.byCell = make(map[Cell]NodeID, len(nodes))
		for _, n := range nodes {
			g.byCell[n.Cell] = n.ID
		}
	}
	return g
}

// Generation identifies this graph snapshot. Every build or load yields a new
// generation.
func (g *Graph) Generation() uint64 {
	return g.generation
}

// Layout returns the grid layout, if the graph was built as a grid.
func (g *Graph) Layout() (Layout, bool) {
	if g.layout == nil {
		return Layout{}, false
	}
	return *g.layout, true
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// ConnectionCount returns the number of directed connections.
func (g *Graph) ConnectionCount() int {
	count := 0
	for _, n := range g.nodes {
		count += len(n.connections)
	}
	return count
}

// Nodes returns all nodes ordered by id. The slice must not be modified.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(g.nodes) {
		return Node{}, false
	}
	return g.nodes[id], true
}

// NodeAt resolves a world position to a node. Grid graphs quantize the
// position to the nearest cell; other graphs require an exact match. A
// position over a removed cell resolves to nothing.
func (g *Graph) NodeAt(p orb.Point) (Node, bool) {
	var (
		id NodeID
		ok bool
	)
	if g.layout != nil {
		id, ok = g.byCell[g.layout.CellOf(p)]
	} else {
		id, ok = g.byPosition[p]
	}
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// NodeAtCell returns the node of a grid cell.
func (g *Graph) NodeAtCell(c Cell) (Node, bool) {
	id, ok := g.byCell[c]
	if !ok {
		return Node{}, false
	}
	return g.nodes[id], true
}

// ConnectionsOf returns the outgoing connections of a node.
func (g *Graph) ConnectionsOf(id NodeID) []Connection {
	if id < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id].connections
}

// Validate checks that every connection starts at its owning node, ends at a
// node of this graph and has a non-negative cost.
func (g *Graph) Validate() error {
	return validate(g.nodes)
}

// Lines returns every connected pair once, as line strings for visualization.
func (g *Graph) Lines() orb.MultiLineString {
	lines := make(orb.MultiLineString, 0)
	seen := make(map[[2]NodeID]bool)

	for _, node := range g.nodes {
		for _, conn := range node.connections {
			key := [2]NodeID{conn.From, conn.To}
			if conn.To < conn.From {
				key = [2]NodeID{conn.To, conn.From}
			}
			if seen[key] {
				continue
			}
			seen[key] = true

			neighbor, ok := g.NodeByID(conn.To)
			if !ok {
				continue
			}
			lines = append(lines, orb.LineString{node.Position, neighbor.Position})
		}
	}

	return lines
}

func validate(nodes []Node) error {
	var errs []error
	for i, n := range nodes {
		if n.ID != NodeID(i) {
			errs = append(errs, fmt.Errorf("node at index %d has id %d: %w", i, n.ID, ErrNodeNotFound))
		}
		for _, c := range n.connections {
			if c.From != n.ID {
				errs = append(errs, fmt.Errorf("connection %d->%d stored on node %d: %w", c.From, c.To, n.ID, ErrNodeNotFound))
			}
			if c.To < 0 || int(c.To) >= len(nodes) {
				errs = append(errs, fmt.Errorf("connection %d->%d: %w", c.From, c.To, ErrDanglingConnection))
			}
			if c.Cost < 0 || math.IsNaN(c.Cost) {
				errs = append(errs, fmt.Errorf("connection %d->%d cost %v: %w", c.From, c.To, c.Cost, ErrNegativeCost))
			}
		}
	}
	return errors.Join(errs...)
}
