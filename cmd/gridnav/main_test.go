package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benedrone/gridnav/internal/config"
	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/server"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gridConfig = `
grid:
  width: 5
  height: 5
  cell_size: 1
  diagonal: false
  blocked:
    - [2, 2]
smoothing:
  enabled: false
telemetry:
  metric_exporter: none
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "gridnav.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParsePoint(t *testing.T) {
	tests := []struct {
		in      string
		want    orb.Point
		wantErr bool
	}{
		{"1,2", orb.Point{1, 2}, false},
		{" -3.5 , 4 ", orb.Point{-3.5, 4}, false},
		{"1", orb.Point{}, true},
		{"1,2,3", orb.Point{}, true},
		{"a,2", orb.Point{}, true},
		{"1,b", orb.Point{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePoint(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRouteCommand(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), gridConfig)

	out, err := execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "4,4", "--algorithm", "bfs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "bfs path with 8 waypoints, length 8.000"), out)
	assert.Contains(t, out, "(4, 4)")

	out, err = execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "4,4", "--smooth")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "astar path with"), out)
	assert.NotContains(t, out, "8 waypoints")
}

func TestRouteCommandErrors(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), gridConfig)

	_, err := execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "2,2")
	assert.ErrorIs(t, err, errNoPath)

	_, err = execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "4,4", "--algorithm", "greedy")
	assert.Error(t, err)

	_, err = execute(t, "--config", cfg, "route", "--from", "0;0", "--to", "4,4")
	assert.Error(t, err)

	_, err = execute(t, "--config", cfg, "route", "--to", "4,4")
	assert.Error(t, err, "--from is required")
}

func TestRouteGeoJSON(t *testing.T) {
	cfg := writeConfig(t, t.TempDir(), gridConfig)

	out, err := execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "4,0", "--algorithm", "dijkstra", "--geojson")
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection([]byte(out))
	require.NoError(t, err)
	require.Len(t, fc.Features, 1)
	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.LineString{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {4, 0}}, line)
	assert.Equal(t, 4.0, fc.Features[0].Properties["length"])
}

func TestBuildCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, gridConfig)
	snapshot := filepath.Join(dir, "graph.json")

	out, err := execute(t, "--config", cfg, "build", "--out", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "24 nodes, 72 connections")

	g, err := graph.Load(snapshot)
	require.NoError(t, err)
	assert.Equal(t, 24, g.Len())

	out, err = execute(t, "--config", cfg, "route", "--graph", snapshot, "--from", "0,0", "--to", "4,4", "--algorithm", "dijkstra")
	require.NoError(t, err)
	assert.Contains(t, out, "8 waypoints")
}

func TestObstaclesFromGeoJSON(t *testing.T) {
	dir := t.TempDir()
	zones := `{"type": "FeatureCollection", "features": [{
		"type": "Feature", "properties": {},
		"geometry": {"type": "Polygon", "coordinates": [[[1.6, 1.6], [2.4, 1.6], [2.4, 2.4], [1.6, 2.4], [1.6, 1.6]]]}
	}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zones.geojson"), []byte(zones), 0o644))

	cfg := writeConfig(t, dir, `
grid:
  width: 5
  height: 5
  cell_size: 1
obstacles:
  files: ["`+dir+`"]
  simplify_epsilon: 0.01
  prune_contained: true
`)

	snapshot := filepath.Join(dir, "graph.json")
	out, err := execute(t, "--config", cfg, "build", "--out", snapshot)
	require.NoError(t, err)
	assert.Contains(t, out, "24 nodes")

	out, err = execute(t, "--config", cfg, "route", "--from", "0,0", "--to", "4,4", "--geojson")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "FeatureCollection", doc["type"])
}

func TestPrepareGraph(t *testing.T) {
	cfg := config.Default()
	cfg.Grid = config.GridConfig{Width: 5, Height: 5, CellSize: 1, Blocked: [][2]int{{2, 2}}}
	cfg.Server.GraphFile = filepath.Join(t.TempDir(), "graph.json")
	a := &app{cfg: cfg, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	newServer := func() *server.Server {
		srv, err := server.New(server.Config{
			Grid:      cfg.Grid,
			Algorithm: cfg.Search.Algorithm,
			Heuristic: cfg.Search.Heuristic,
			Radius:    cfg.Smoothing.Radius,
			GraphFile: cfg.Server.GraphFile,
			Logger:    a.logger,
		})
		require.NoError(t, err)
		return srv
	}

	empty := newServer()
	require.NoError(t, prepareGraph(a, empty, false))
	assert.Nil(t, empty.Graph(), "no snapshot yet")

	built := newServer()
	require.NoError(t, prepareGraph(a, built, true))
	require.NotNil(t, built.Graph())

	saved, err := graph.Load(cfg.Server.GraphFile)
	require.NoError(t, err)
	assert.Equal(t, built.Graph().Len(), saved.Len())

	loaded := newServer()
	require.NoError(t, prepareGraph(a, loaded, false))
	require.NotNil(t, loaded.Graph())
	assert.Equal(t, 24, loaded.Graph().Len())
}
