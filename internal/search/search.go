// Package search finds paths on a navigation graph.
//
// One search skeleton serves every strategy: the start record seeds a
// frontier, records are extracted in strategy order and their connections
// relaxed, and expanded records move into a closed set until the target is
// extracted or the frontier runs dry. Strategies differ only in frontier
// ordering and in the relaxation rule applied to each connection.
//
// # Thread Safety
//
// A Finder owns its frontier and closed set and reuses them across calls. It
// is NOT safe for concurrent use; create one Finder per querying agent. The
// graph must not be replaced while a search on it is running.
package search

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/benedrone/gridnav/internal/graph"
	"github.com/benedrone/gridnav/internal/path"
	"github.com/paulmach/orb"
)

// PathFinder is anything that can produce a path between two positions.
type PathFinder interface {
	FindPath(start, target orb.Point) (*path.Data, bool)
}

// Result is the outcome of one search.
type Result struct {
	State State
	// Path is set when State is TargetFound.
	Path *path.Data
	// Cost is the accumulated cost of the path: the step count for
	// BreadthFirst and DepthFirst, the connection cost sum otherwise.
	Cost float64
	// Expanded counts records extracted from the frontier.
	Expanded int
	// Err is set when the search hit a graph integrity fault.
	Err error
}

// Found reports whether a path was produced.
func (r Result) Found() bool {
	return r.State == TargetFound && r.Path != nil
}

// Option configures a Finder.
type Option func(*Finder)

// WithHeuristic sets the estimator used by AStar. Defaults to Euclidean.
func WithHeuristic(h Heuristic) Option {
	return func(f *Finder) { f.heuristic = h }
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Finder) { f.logger = l }
}

// Finder runs searches of one strategy over one graph.
type Finder struct {
	graph     *graph.Graph
	strategy  Strategy
	heuristic Heuristic
	logger    *slog.Logger

	frontier Frontier
	closed   map[graph.NodeID]*NodeRecord
	target   orb.Point
}

// New creates a finder.
func New(g *graph.Graph, strategy Strategy, opts ...Option) (*Finder, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	if !strategy.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(strategy))
	}

	f := &Finder{
		graph:     g,
		strategy:  strategy,
		heuristic: Euclidean,
		frontier:  NewFrontier(strategy),
		closed:    make(map[graph.NodeID]*NodeRecord),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.heuristic == nil {
		f.heuristic = Euclidean
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f, nil
}

// Strategy returns the strategy of the finder.
func (f *Finder) Strategy() Strategy {
	return f.strategy
}

// Graph returns the graph the finder searches.
func (f *Finder) Graph() *graph.Graph {
	return f.graph
}

// FindPath searches from start to target and returns the path when one exists.
// An unreachable target and positions off the graph both yield false.
func (f *Finder) FindPath(start, target orb.Point) (*path.Data, bool) {
	res := f.Search(start, target)
	return res.Path, res.Found()
}

// Search runs the search to completion and reports the outcome.
func (f *Finder) Search(start, target orb.Point) Result {
	began := time.Now()
	res := f.run(start, target)
	elapsed := time.Since(began)

	if res.Err != nil {
		f.logger.Error("search aborted",
			"strategy", f.strategy.String(),
			"expanded", res.Expanded,
			"error", res.Err)
	} else {
		f.logger.Debug("search finished",
			"strategy", f.strategy.String(),
			"state", res.State.String(),
			"expanded", res.Expanded,
			"cost", res.Cost,
			"duration", elapsed)
	}
	recordSearchMetrics(f.strategy, res, elapsed)

	return res
}

func (f *Finder) run(start, target orb.Point) Result {
	f.frontier.Reset()
	clear(f.closed)

	res := Result{State: Initializing}

	startNode, ok := f.graph.NodeAt(start)
	if !ok {
		res.State = Exhausted
		return res
	}
	targetNode, ok := f.graph.NodeAt(target)
	if !ok {
		res.State = Exhausted
		return res
	}
	f.target = targetNode.Position

	seed := &NodeRecord{
		Node:     startNode.ID,
		Position: startNode.Position,
	}
	if f.strategy == AStar {
		seed.EstimatedTotal = f.heuristic(startNode.Position, f.target)
	}
	f.frontier.Add(seed)
	res.State = Exploring

	for {
		current, ok := f.frontier.Next()
		if !ok {
			break
		}
		res.Expanded++

		if current.Node == targetNode.ID {
			f.closed[current.Node] = current
			p, err := f.reconstruct(targetNode.ID)
			if err != nil {
				res.State = Exhausted
				res.Err = err
				return res
			}
			res.State = TargetFound
			res.Path = p
			res.Cost = current.CostSoFar
			return res
		}

		for _, conn := range f.graph.ConnectionsOf(current.Node) {
			if err := f.relax(current, conn); err != nil {
				res.State = Exhausted
				res.Err = err
				return res
			}
		}

		f.closed[current.Node] = current
	}

	res.State = Exhausted
	return res
}

// relax applies the strategy's update rule to one outgoing connection.
func (f *Finder) relax(current *NodeRecord, conn graph.Connection) error {
	// a self-loop never improves the node being expanded
	if conn.To == current.Node {
		return nil
	}
	switch {
	case f.strategy.uninformed():
		return f.relaxSteps(current, conn)
	case f.strategy == Dijkstra:
		return f.relaxCost(current, conn)
	default:
		return f.relaxEstimate(current, conn)
	}
}

// relaxSteps: first discovery wins and every connection counts as one step.
func (f *Finder) relaxSteps(current *NodeRecord, conn graph.Connection) error {
	if _, closed := f.closed[conn.To]; closed {
		return nil
	}
	if f.frontier.Contains(conn.To) {
		return nil
	}
	rec, err := f.newRecord(conn, current.CostSoFar+1)
	if err != nil {
		return err
	}
	f.frontier.Add(rec)
	return nil
}

// relaxCost: closed nodes are final; open nodes are replaced on a cheaper path.
func (f *Finder) relaxCost(current *NodeRecord, conn graph.Connection) error {
	cost := current.CostSoFar + conn.Cost

	if _, closed := f.closed[conn.To]; closed {
		return nil
	}
	if open, ok := f.frontier.Get(conn.To); ok && open.CostSoFar <= cost {
		return nil
	}
	rec, err := f.newRecord(conn, cost)
	if err != nil {
		return err
	}
	f.frontier.Add(rec)
	return nil
}

// relaxEstimate: like relaxCost, but a closed node reached more cheaply is
// moved back into the frontier.
func (f *Finder) relaxEstimate(current *NodeRecord, conn graph.Connection) error {
	cost := current.CostSoFar + conn.Cost

	if closed, ok := f.closed[conn.To]; ok {
		if closed.CostSoFar <= cost {
			return nil
		}
		delete(f.closed, conn.To)
		closed.reroute(conn, cost)
		f.frontier.Add(closed)
		return nil
	}

	if open, ok := f.frontier.Get(conn.To); ok {
		if open.CostSoFar <= cost {
			return nil
		}
		f.frontier.Remove(open)
		open.reroute(conn, cost)
		f.frontier.Add(open)
		return nil
	}

	rec, err := f.newRecord(conn, cost)
	if err != nil {
		return err
	}
	rec.EstimatedTotal = cost + f.heuristic(rec.Position, f.target)
	f.frontier.Add(rec)
	return nil
}

func (f *Finder) newRecord(conn graph.Connection, cost float64) (*NodeRecord, error) {
	end, ok := f.graph.NodeByID(conn.To)
	if !ok {
		return nil, fmt.Errorf("connection %d->%d: %w", conn.From, conn.To, graph.ErrDanglingConnection)
	}
	return &NodeRecord{
		Node:       end.ID,
		Position:   end.Position,
		Connection: &conn,
		CostSoFar:  cost,
	}, nil
}
