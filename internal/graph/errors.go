package graph

import "errors"

// Sentinel errors for graph building and validation.
var (
	// ErrDanglingConnection is returned when a connection points at a node that
	// is not part of the same graph. This is a builder fault and is reported
	// before any search runs.
	ErrDanglingConnection = errors.New("dangling connection")

	// ErrNegativeCost is returned for connections with a negative or NaN cost.
	// Zero is legal.
	ErrNegativeCost = errors.New("negative connection cost")

	// ErrDuplicatePosition is returned when two nodes share a position.
	ErrDuplicatePosition = errors.New("duplicate node position")

	// ErrDuplicateNode is returned when a snapshot lists the same node id twice.
	ErrDuplicateNode = errors.New("duplicate node id")

	// ErrNodeNotFound is returned when a connection starts at an unknown node.
	ErrNodeNotFound = errors.New("node not found")

	// ErrInvalidGrid is returned for grid specs with non-positive dimensions.
	ErrInvalidGrid = errors.New("invalid grid spec")
)
