package obstacle

import "errors"

var (
	// ErrNoPolygons is returned when a GeoJSON document holds no polygon
	// geometry.
	ErrNoPolygons = errors.New("no polygons in document")

	// ErrInvalidRadius is returned for negative clearance radii.
	ErrInvalidRadius = errors.New("invalid clearance radius")
)
