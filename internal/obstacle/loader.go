package obstacle

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// ParseGeoJSON extracts the outer rings of every Polygon and MultiPolygon
// feature in a FeatureCollection. Holes are ignored; a hole never makes
// space inside an obstacle passable.
func ParseGeoJSON(data []byte) ([]orb.Ring, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	var rings []orb.Ring
	for _, feature := range fc.Features {
		rings = append(rings, outerRings(feature.Geometry)...)
	}
	if len(rings) == 0 {
		return nil, ErrNoPolygons
	}
	return rings, nil
}

// outerRings converts a geometry to obstacle rings
func outerRings(g orb.Geometry) []orb.Ring {
	switch geo := g.(type) {
	case orb.Polygon:
		if len(geo) > 0 {
			return []orb.Ring{geo[0]}
		}
	case orb.MultiPolygon:
		rings := make([]orb.Ring, 0, len(geo))
		for _, poly := range geo {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return rings
	}
	return nil
}

// LoadFile reads one GeoJSON file.
func LoadFile(filename string) ([]orb.Ring, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	rings, err := ParseGeoJSON(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rings, nil
}

// LoadFiles reads every listed file and every *.geojson file inside listed
// directories. Files that fail to load are logged and skipped.
func LoadFiles(paths []string, logger *slog.Logger) ([]orb.Ring, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(p, "*.geojson"))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}

	logger.Info("loading obstacles", "files", len(files))

	var all []orb.Ring
	for _, file := range files {
		rings, err := LoadFile(file)
		if err != nil {
			logger.Warn("⚠️  skipping obstacle file", "file", file, "error", err)
			continue
		}
		all = append(all, rings...)
		logger.Debug("✅ loaded obstacle file", "file", filepath.Base(file), "rings", len(rings))
	}

	logger.Info("obstacles loaded", "rings", len(all))
	return all, nil
}
