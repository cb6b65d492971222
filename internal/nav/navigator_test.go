package nav

import (
	"testing"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/path"
	"github.com/benedrone/gridnav/internal/search"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator(t *testing.T, at orb.Point) *Navigator {
	t.Helper()
	g, err := graph.BuildGrid(graph.GridSpec{Width: 5, Height: 5, CellSize: 1, Blocked: []graph.Cell{{X: 2, Y: 2}}})
	require.NoError(t, err)
	f, err := search.New(g, search.AStar)
	require.NoError(t, err)
	return New(f, at)
}

func TestFindPathUsesPosition(t *testing.T) {
	n := newNavigator(t, orb.Point{0, 0})

	p, ok := n.FindPath(orb.Point{4, 4})
	require.True(t, ok)
	assert.Equal(t, 8, p.Len())
	assert.Same(t, p, n.Path())

	n.SetPosition(orb.Point{4, 3})
	assert.Equal(t, orb.Point{4, 3}, n.Position())
	p, ok = n.FindPath(orb.Point{4, 4})
	require.True(t, ok)
	assert.Equal(t, []orb.Point{{4, 4}}, p.Points())
}

func TestFindPathFailureClearsPath(t *testing.T) {
	n := newNavigator(t, orb.Point{0, 0})
	_, ok := n.FindPath(orb.Point{4, 4})
	require.True(t, ok)

	p, ok := n.FindPath(orb.Point{2, 2})
	assert.False(t, ok)
	assert.Nil(t, p)
	assert.Nil(t, n.Path())

	_, ok = n.Waypoint(0.1)
	assert.False(t, ok)
}

type fixed struct{ p *path.Data }

func (f fixed) FindPath(_, _ orb.Point) (*path.Data, bool) { return f.p, true }

func TestWaypoint(t *testing.T) {
	n := New(fixed{path.New([]orb.Point{{1, 0}, {2, 0}, {3, 0}}, false)}, orb.Point{0, 0})
	_, ok := n.FindPath(orb.Point{3, 0})
	require.True(t, ok)

	wp, ok := n.Waypoint(0.1)
	require.True(t, ok)
	assert.Equal(t, orb.Point{1, 0}, wp)

	n.SetPosition(orb.Point{1, 0.05})
	wp, ok = n.Waypoint(0.1)
	require.True(t, ok)
	assert.Equal(t, orb.Point{2, 0}, wp, "reached waypoint is skipped")
	assert.Equal(t, 1, n.Path().Index())

	n.SetPosition(orb.Point{2.05, 0})
	wp, ok = n.Waypoint(0.1)
	require.True(t, ok)
	assert.Equal(t, orb.Point{3, 0}, wp)

	n.SetPosition(orb.Point{3, 0})
	_, ok = n.Waypoint(0.1)
	assert.False(t, ok)
	assert.True(t, n.Path().Finished())
}

func TestWaypointLoop(t *testing.T) {
	n := New(fixed{path.New([]orb.Point{{1, 0}, {2, 0}}, true)}, orb.Point{2, 0})
	_, ok := n.FindPath(orb.Point{2, 0})
	require.True(t, ok)

	n.Path().Advance()
	wp, ok := n.Waypoint(0.1)
	require.True(t, ok)
	assert.Equal(t, orb.Point{1, 0}, wp, "loop wraps past the reached last waypoint")
}
