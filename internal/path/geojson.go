package path

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature returns the path travelled from start as a GeoJSON LineString
// feature with its waypoint count and length as properties.
func (d *Data) Feature(start orb.Point) *geojson.Feature {
	line := make(orb.LineString, 0, len(d.points)+1)
	line = append(line, start)
	line = append(line, d.points...)

	f := geojson.NewFeature(line)
	f.Properties["waypoints"] = len(d.points)
	f.Properties["length"] = d.LengthFrom(start)
	f.Properties["loop"] = d.loop
	return f
}
