package server

import "errors"

var (
	// ErrNoGraph is returned when a route is requested before a graph exists.
	ErrNoGraph = errors.New("graph not built")

	// ErrGraphExists is returned by Build when a graph exists and force is
	// not set.
	ErrGraphExists = errors.New("graph already exists")
)
