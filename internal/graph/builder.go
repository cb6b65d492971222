package graph

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
)

// Builder collects nodes and connections and produces a validated Graph.
// A Builder is single use and not safe for concurrent use.
type Builder struct {
	nodes      []Node
	byPosition map[orb.Point]NodeID
	layout     *Layout
	errs       []error
}

// NewBuilder creates a builder for a free-form graph. Nodes are resolved by
// exact position.
func NewBuilder() *Builder {
	return &Builder{byPosition: make(map[orb.Point]NodeID)}
}

// NewGridBuilder creates a builder whose graph resolves positions to cells.
func NewGridBuilder(layout Layout) *Builder {
	b := NewBuilder()
	b.layout = &layout
	return b
}

// AddNode adds a node at p and returns its id.
func (b *Builder) AddNode(p orb.Point) NodeID {
	return b.add(p, Cell{})
}

// AddCell adds the node for a grid cell, positioned at the cell center.
func (b *Builder) AddCell(c Cell) NodeID {
	if b.layout == nil {
		b.errs = append(b.errs, fmt.Errorf("cell %v added to a free-form builder: %w", c, ErrInvalidGrid))
		return b.add(orb.Point{float64(c.X), float64(c.Y)}, c)
	}
	return b.add(b.layout.Center(c), c)
}

func (b *Builder) add(p orb.Point, c Cell) NodeID {
	if existing, ok := b.byPosition[p]; ok {
		b.errs = append(b.errs, fmt.Errorf("node at %v already added as %d: %w", p, existing, ErrDuplicatePosition))
	}
	id := NodeID(len(b.nodes))
	b.nodes = append(b.nodes, Node{ID: id, Position: p, Cell: c})
	b.byPosition[p] = id
	return id
}

// Connect adds a directed connection. Endpoints and cost are checked by Build.
func (b *Builder) Connect(from, to NodeID, cost float64) {
	if from < 0 || int(from) >= len(b.nodes) {
		b.errs = append(b.errs, fmt.Errorf("connection %d->%d: %w", from, to, ErrNodeNotFound))
		return
	}
	node := &b.nodes[from]
	b.connect(node, to, cost, len(node.connections))
}

// ConnectBoth adds a connection in each direction with the same cost.
func (b *Builder) ConnectBoth(a, c NodeID, cost float64) {
	b.Connect(a, c, cost)
	b.Connect(c, a, cost)
}

func (b *Builder) connect(node *Node, to NodeID, cost float64, slot int) {
	node.connections = append(node.connections, Connection{
		From: node.ID,
		To:   to,
		Cost: cost,
		Slot: slot,
	})
}

// Build validates the collected nodes and returns the graph.
func (b *Builder) Build() (*Graph, error) {
	errs := append([]error(nil), b.errs...)
	if err := validate(b.nodes); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return newGraph(b.nodes, b.layout), nil
}
