package obstacle

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zonesDoc = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "depot"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [
          [[0, 0], [4, 0], [4, 4], [0, 4], [0, 0]],
          [[1, 1], [2, 1], [2, 2], [1, 1]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[10, 10], [11, 10], [11, 11], [10, 10]]],
          [[[20, 20], [21, 20], [21, 21], [20, 20]]]
        ]
      }
    },
    {
      "type": "Feature",
      "properties": {},
      "geometry": {"type": "Point", "coordinates": [7, 7]}
    }
  ]
}`

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseGeoJSON(t *testing.T) {
	rings, err := ParseGeoJSON([]byte(zonesDoc))
	require.NoError(t, err)
	require.Len(t, rings, 3)
	assert.Len(t, rings[0], 5, "holes are dropped")
	assert.Equal(t, 10.0, rings[1][0][0])
	assert.Equal(t, 20.0, rings[2][0][0])

	_, err = ParseGeoJSON([]byte(`{"type": "FeatureCollection", "features": []}`))
	assert.ErrorIs(t, err, ErrNoPolygons)

	_, err = ParseGeoJSON([]byte(`not json`))
	assert.Error(t, err)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zones.geojson"), []byte(zonesDoc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.geojson"), []byte(`{`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(zonesDoc), 0o644))

	rings, err := LoadFiles([]string{dir}, discard())
	require.NoError(t, err)
	assert.Len(t, rings, 3, "broken file is skipped and .txt is not globbed")

	rings, err = LoadFiles([]string{filepath.Join(dir, "notes.txt")}, nil)
	require.NoError(t, err)
	assert.Len(t, rings, 3, "explicit files are read whatever their extension")

	_, err = LoadFiles([]string{filepath.Join(dir, "missing")}, discard())
	assert.Error(t, err)

	_, err = LoadFile(filepath.Join(dir, "broken.geojson"))
	assert.Error(t, err)
}
