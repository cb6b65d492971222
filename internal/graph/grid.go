package graph

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Blocker reports obstacle occupancy to the grid builder.
type Blocker interface {
	// Contains reports whether p lies inside an obstacle.
	Contains(p orb.Point) bool
	// SegmentClear reports whether the straight segment a-b avoids every obstacle.
	SegmentClear(a, b orb.Point) bool
}

// GridSpec describes a rectangular grid of cells.
type GridSpec struct {
	Width    int
	Height   int
	CellSize float64
	Origin   orb.Point

	// Diagonal adds the four diagonal neighbors. A diagonal move is only
	// emitted when both orthogonal cells it cuts past are present.
	Diagonal bool

	// Blocked cells are left out of the graph together with their connections.
	Blocked []Cell

	// Obstacles, when set, removes every cell whose center lies inside an
	// obstacle and every connection whose segment crosses one.
	Obstacles Blocker
}

// Direction slots used for grid connections.
const (
	SlotEast = iota
	SlotNorth
	SlotWest
	SlotSouth
	SlotNorthEast
	SlotNorthWest
	SlotSouthWest
	SlotSouthEast
)

var gridOffsets = [...]Cell{
	SlotEast:      {1, 0},
	SlotNorth:     {0, 1},
	SlotWest:      {-1, 0},
	SlotSouth:     {0, -1},
	SlotNorthEast: {1, 1},
	SlotNorthWest: {-1, 1},
	SlotSouthWest: {-1, -1},
	SlotSouthEast: {1, -1},
}

// BuildGrid creates a grid graph. Cells are added in row-major order, so node
// ids grow with x first and then y. Every neighbor pair is joined by two
// directed connections; orthogonal moves cost CellSize and diagonal moves
// CellSize times sqrt(2).
func BuildGrid(spec GridSpec) (*Graph, error) {
	if spec.Width <= 0 || spec.Height <= 0 || spec.CellSize <= 0 || math.IsNaN(spec.CellSize) {
		return nil, fmt.Errorf("%dx%d cells of size %v: %w", spec.Width, spec.Height, spec.CellSize, ErrInvalidGrid)
	}

	layout := Layout{Origin: spec.Origin, CellSize: spec.CellSize}
	b := NewGridBuilder(layout)

	blocked := make(map[Cell]bool, len(spec.Blocked))
	for _, c := range spec.Blocked {
		blocked[c] = true
	}

	// Step 1: add every free cell
	cells := make(map[Cell]NodeID, spec.Width*spec.Height)
	for y := 0; y < spec.Height; y++ {
		for x := 0; x < spec.Width; x++ {
			c := Cell{X: x, Y: y}
			if blocked[c] {
				continue
			}
			if spec.Obstacles != nil && spec.Obstacles.Contains(layout.Center(c)) {
				continue
			}
			cells[c] = b.AddCell(c)
		}
	}

	// Step 2: connect neighbors (only if the move does not cross an obstacle)
	slots := 4
	if spec.Diagonal {
		slots = len(gridOffsets)
	}
	for y := 0; y < spec.Height; y++ {
		for x := 0; x < spec.Width; x++ {
			from, ok := cells[Cell{X: x, Y: y}]
			if !ok {
				continue
			}
			node := &b.nodes[from]

			for slot := 0; slot < slots; slot++ {
				off := gridOffsets[slot]
				to, ok := cells[Cell{X: x + off.X, Y: y + off.Y}]
				if !ok {
					continue
				}

				cost := spec.CellSize
				if off.X != 0 && off.Y != 0 {
					_, horizontal := cells[Cell{X: x + off.X, Y: y}]
					_, vertical := cells[Cell{X: x, Y: y + off.Y}]
					if !horizontal || !vertical {
						continue
					}
					cost = spec.CellSize * math.Sqrt2
				}

				if spec.Obstacles != nil &&
					!spec.Obstacles.SegmentClear(node.Position, b.nodes[to].Position) {
					continue
				}

				b.connect(node, to, cost, slot)
			}
		}
	}

	return b.Build()
}
