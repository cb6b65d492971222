package search

import (
	"testing"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(id int, cost float64) *NodeRecord {
	return &NodeRecord{Node: graph.NodeID(id), CostSoFar: cost, EstimatedTotal: cost}
}

func drain(f Frontier) []graph.NodeID {
	var ids []graph.NodeID
	for {
		r, ok := f.Next()
		if !ok {
			return ids
		}
		ids = append(ids, r.Node)
	}
}

func TestQueueFrontier(t *testing.T) {
	t.Run("insertion order", func(t *testing.T) {
		f := NewFrontier(BreadthFirst)
		f.Add(rec(3, 0))
		f.Add(rec(1, 0))
		f.Add(rec(2, 0))
		assert.Equal(t, 3, f.Len())
		assert.Equal(t, []graph.NodeID{3, 1, 2}, drain(f))
		assert.Zero(t, f.Len())
	})

	t.Run("removed records are skipped", func(t *testing.T) {
		f := NewFrontier(BreadthFirst)
		a, b := rec(1, 0), rec(2, 0)
		f.Add(a)
		f.Add(b)
		f.Remove(a)

		assert.Equal(t, 1, f.Len())
		assert.False(t, f.Contains(1))
		assert.Equal(t, []graph.NodeID{2}, drain(f))
	})

	t.Run("replace keeps one record", func(t *testing.T) {
		f := NewFrontier(BreadthFirst)
		f.Add(rec(1, 5))
		f.Add(rec(2, 0))
		replacement := rec(1, 3)
		f.Add(replacement)

		assert.Equal(t, 2, f.Len())
		got, ok := f.Get(1)
		require.True(t, ok)
		assert.Same(t, replacement, got)
		assert.Equal(t, []graph.NodeID{2, 1}, drain(f))
	})

	t.Run("reset", func(t *testing.T) {
		f := NewFrontier(BreadthFirst)
		f.Add(rec(1, 0))
		f.Reset()
		_, ok := f.Next()
		assert.False(t, ok)
		f.Add(rec(1, 0))
		assert.Equal(t, []graph.NodeID{1}, drain(f))
	})
}

func TestStackFrontier(t *testing.T) {
	t.Run("last in first out", func(t *testing.T) {
		f := NewFrontier(DepthFirst)
		f.Add(rec(1, 0))
		f.Add(rec(2, 0))
		f.Add(rec(3, 0))
		assert.Equal(t, []graph.NodeID{3, 2, 1}, drain(f))
	})

	t.Run("seen nodes are never re-added", func(t *testing.T) {
		f := NewFrontier(DepthFirst)
		f.Add(rec(1, 0))
		r, _ := f.Next()
		assert.Equal(t, graph.NodeID(1), r.Node)

		f.Add(rec(1, 0))
		assert.Zero(t, f.Len())
		assert.False(t, f.Contains(1))

		f.Add(rec(2, 0))
		f.Add(rec(2, 7))
		got, _ := f.Get(2)
		assert.Equal(t, 0.0, got.CostSoFar, "first discovery wins")
	})

	t.Run("removed records are skipped", func(t *testing.T) {
		f := NewFrontier(DepthFirst)
		a := rec(1, 0)
		f.Add(a)
		f.Add(rec(2, 0))
		f.Remove(a)
		assert.Equal(t, []graph.NodeID{2}, drain(f))
	})

	t.Run("reset forgets seen nodes", func(t *testing.T) {
		f := NewFrontier(DepthFirst)
		f.Add(rec(1, 0))
		drain(f)
		f.Reset()
		f.Add(rec(1, 0))
		assert.Equal(t, 1, f.Len())
	})
}

func TestPriorityFrontier(t *testing.T) {
	t.Run("cost order", func(t *testing.T) {
		f := NewFrontier(Dijkstra)
		f.Add(rec(1, 3))
		f.Add(rec(2, 1))
		f.Add(rec(3, 2))
		assert.Equal(t, []graph.NodeID{2, 3, 1}, drain(f))
	})

	t.Run("ties break by node id", func(t *testing.T) {
		f := NewFrontier(Dijkstra)
		f.Add(rec(7, 1))
		f.Add(rec(2, 1))
		f.Add(rec(5, 1))
		assert.Equal(t, 3, f.Len(), "equal costs must not collapse")
		assert.Equal(t, []graph.NodeID{2, 5, 7}, drain(f))
	})

	t.Run("replace re-sorts", func(t *testing.T) {
		f := NewFrontier(Dijkstra)
		f.Add(rec(1, 1))
		f.Add(rec(2, 5))
		f.Add(rec(2, 0))
		assert.Equal(t, 2, f.Len())
		assert.Equal(t, []graph.NodeID{2, 1}, drain(f))
	})

	t.Run("remove", func(t *testing.T) {
		f := NewFrontier(Dijkstra)
		a := rec(1, 1)
		f.Add(a)
		f.Add(rec(2, 2))
		f.Remove(a)
		f.Remove(rec(9, 0))
		assert.Equal(t, []graph.NodeID{2}, drain(f))
	})

	t.Run("estimate order", func(t *testing.T) {
		f := NewFrontier(AStar)
		f.Add(&NodeRecord{Node: 1, CostSoFar: 0, EstimatedTotal: 9})
		f.Add(&NodeRecord{Node: 2, CostSoFar: 5, EstimatedTotal: 6})
		assert.Equal(t, []graph.NodeID{2, 1}, drain(f))
	})
}

func TestNewFrontierUnknown(t *testing.T) {
	assert.Nil(t, NewFrontier(Strategy(42)))
}

func TestReroute(t *testing.T) {
	r := &NodeRecord{Node: 4, CostSoFar: 10, EstimatedTotal: 13}
	r.reroute(graph.Connection{From: 2, To: 4, Cost: 1}, 6)

	assert.Equal(t, 6.0, r.CostSoFar)
	assert.Equal(t, 9.0, r.EstimatedTotal, "heuristic term of 3 is kept")
	require.NotNil(t, r.Connection)
	assert.Equal(t, graph.NodeID(2), r.Connection.From)
}

func TestHeuristics(t *testing.T) {
	a, b := orb.Point{0, 0}, orb.Point{3, 4}
	assert.Equal(t, 5.0, Euclidean(a, b))
	assert.Equal(t, 7.0, Manhattan(a, b))
	assert.Equal(t, 25.0, SquaredEuclidean(a, b))
	assert.InDelta(t, 4+3*(1.4142135623730951-1), Octile(a, b), 1e-12)
	assert.Zero(t, Zero(a, b))

	for _, name := range []string{"", "euclidean", "Manhattan", "squared", "octile", "zero"} {
		h, err := HeuristicByName(name)
		require.NoError(t, err, name)
		assert.NotNil(t, h)
	}
	_, err := HeuristicByName("chebyshev")
	assert.ErrorIs(t, err, ErrUnknownHeuristic)
}

func TestParseStrategy(t *testing.T) {
	tests := map[string]Strategy{
		"bfs":           BreadthFirst,
		"depth-first":   DepthFirst,
		" Dijkstra ":    Dijkstra,
		"astar":         AStar,
		"a*":            AStar,
		"breadth_first": BreadthFirst,
	}
	for name, want := range tests {
		got, err := ParseStrategy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got)
		back, err := ParseStrategy(got.String())
		require.NoError(t, err)
		assert.Equal(t, got, back)
	}

	_, err := ParseStrategy("greedy")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
	assert.Equal(t, "target_found", TargetFound.String())
}
