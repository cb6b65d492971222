package search

import (
	"container/heap"

	"github.com/benedrone/gridnav/internal/graph"
)

// Frontier is the open set: records discovered but not yet expanded. It holds
// at most one record per node.
type Frontier interface {
	// Add inserts r, replacing any record already held for the same node.
	Add(r *NodeRecord)
	// Remove drops the record held for r's node.
	Remove(r *NodeRecord)
	// Next removes and returns the record to expand next.
	Next() (*NodeRecord, bool)
	// Get returns the record held for a node.
	Get(id graph.NodeID) (*NodeRecord, bool)
	// Contains reports whether a record is held for a node.
	Contains(id graph.NodeID) bool
	// Len returns the number of records held.
	Len() int
	// Reset empties the frontier for reuse.
	Reset()
}

// NewFrontier returns the frontier ordering used by a strategy.
func NewFrontier(s Strategy) Frontier {
	switch s {
	case BreadthFirst:
		return newQueueFrontier()
	case DepthFirst:
		return newStackFrontier()
	case Dijkstra:
		return newPriorityFrontier(func(r *NodeRecord) float64 { return r.CostSoFar })
	case AStar:
		return newPriorityFrontier(func(r *NodeRecord) float64 { return r.EstimatedTotal })
	default:
		return nil
	}
}

// queueFrontier extracts records in insertion order. Replaced or removed
// records stay in the queue and are skipped on extraction.
type queueFrontier struct {
	queue   []*NodeRecord
	head    int
	records map[graph.NodeID]*NodeRecord
}

func newQueueFrontier() *queueFrontier {
	return &queueFrontier{records: make(map[graph.NodeID]*NodeRecord)}
}

func (q *queueFrontier) Add(r *NodeRecord) {
	q.records[r.Node] = r
	q.queue = append(q.queue, r)
}

func (q *queueFrontier) Remove(r *NodeRecord) {
	delete(q.records, r.Node)
}

func (q *queueFrontier) Next() (*NodeRecord, bool) {
	for q.head < len(q.queue) {
		r := q.queue[q.head]
		q.queue[q.head] = nil
		q.head++
		if q.records[r.Node] == r {
			delete(q.records, r.Node)
			return r, true
		}
	}
	q.queue = q.queue[:0]
	q.head = 0
	return nil, false
}

func (q *queueFrontier) Get(id graph.NodeID) (*NodeRecord, bool) {
	r, ok := q.records[id]
	return r, ok
}

func (q *queueFrontier) Contains(id graph.NodeID) bool {
	_, ok := q.records[id]
	return ok
}

func (q *queueFrontier) Len() int { return len(q.records) }

func (q *queueFrontier) Reset() {
	clear(q.queue)
	q.queue = q.queue[:0]
	q.head = 0
	clear(q.records)
}

// stackFrontier extracts the most recently discovered record first. A node
// is accepted once per search: adding a node that was ever seen is a no-op,
// which keeps depth-first search from cycling through explored nodes.
type stackFrontier struct {
	stack   []*NodeRecord
	records map[graph.NodeID]*NodeRecord
	seen    map[graph.NodeID]bool
}

func newStackFrontier() *stackFrontier {
	return &stackFrontier{
		records: make(map[graph.NodeID]*NodeRecord),
		seen:    make(map[graph.NodeID]bool),
	}
}

func (s *stackFrontier) Add(r *NodeRecord) {
	if s.seen[r.Node] {
		return
	}
	s.seen[r.Node] = true
	s.records[r.Node] = r
	s.stack = append(s.stack, r)
}

func (s *stackFrontier) Remove(r *NodeRecord) {
	delete(s.records, r.Node)
}

func (s *stackFrontier) Next() (*NodeRecord, bool) {
	for len(s.stack) > 0 {
		last := len(s.stack) - 1
		r := s.stack[last]
		s.stack[last] = nil
		s.stack = s.stack[:last]
		if s.records[r.Node] == r {
			delete(s.records, r.Node)
			return r, true
		}
	}
	return nil, false
}

func (s *stackFrontier) Get(id graph.NodeID) (*NodeRecord, bool) {
	r, ok := s.records[id]
	return r, ok
}

func (s *stackFrontier) Contains(id graph.NodeID) bool {
	_, ok := s.records[id]
	return ok
}

func (s *stackFrontier) Len() int { return len(s.records) }

func (s *stackFrontier) Reset() {
	clear(s.stack)
	s.stack = s.stack[:0]
	clear(s.records)
	clear(s.seen)
}

// priorityItem is a record in the priority heap
type priorityItem struct {
	record *NodeRecord
	index  int // index in the heap
}

// priorityQueue implements heap.Interface. Equal priorities are ordered by
// node id so distinct nodes never compare as the same entry.
type priorityQueue struct {
	items    []*priorityItem
	priority func(*NodeRecord) float64
}

func (pq *priorityQueue) Len() int { return len(pq.items) }

func (pq *priorityQueue) Less(i, j int) bool {
	pi, pj := pq.priority(pq.items[i].record), pq.priority(pq.items[j].record)
	if pi != pj {
		return pi < pj
	}
	return pq.items[i].record.Node < pq.items[j].record.Node
}

func (pq *priorityQueue) Swap(i, j int) {
	pq.items[i], pq.items[j] = pq.items[j], pq.items[i]
	pq.items[i].index = i
	pq.items[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	item := x.(*priorityItem)
	item.index = len(pq.items)
	pq.items = append(pq.items, item)
}

func (pq *priorityQueue) Pop() any {
	old := pq.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	pq.items = old[:n-1]
	return item
}

// priorityFrontier extracts the record with the lowest priority value.
type priorityFrontier struct {
	queue priorityQueue
	items map[graph.NodeID]*priorityItem
}

func newPriorityFrontier(priority func(*NodeRecord) float64) *priorityFrontier {
	return &priorityFrontier{
		queue: priorityQueue{priority: priority},
		items: make(map[graph.NodeID]*priorityItem),
	}
}

// Add removes any held record for the node before pushing r, so a record
// whose cost changed is re-sorted rather than left at its old position.
func (p *priorityFrontier) Add(r *NodeRecord) {
	if existing, ok := p.items[r.Node]; ok {
		heap.Remove(&p.queue, existing.index)
	}
	item := &priorityItem{record: r}
	heap.Push(&p.queue, item)
	p.items[r.Node] = item
}

func (p *priorityFrontier) Remove(r *NodeRecord) {
	item, ok := p.items[r.Node]
	if !ok {
		return
	}
	heap.Remove(&p.queue, item.index)
	delete(p.items, r.Node)
}

func (p *priorityFrontier) Next() (*NodeRecord, bool) {
	if p.queue.Len() == 0 {
		return nil, false
	}
	item := heap.Pop(&p.queue).(*priorityItem)
	delete(p.items, item.record.Node)
	return item.record, true
}

func (p *priorityFrontier) Get(id graph.NodeID) (*NodeRecord, bool) {
	item, ok := p.items[id]
	if !ok {
		return nil, false
	}
	return item.record, true
}

func (p *priorityFrontier) Contains(id graph.NodeID) bool {
	_, ok := p.items[id]
	return ok
}

func (p *priorityFrontier) Len() int { return p.queue.Len() }

func (p *priorityFrontier) Reset() {
	clear(p.queue.items)
	p.queue.items = p.queue.items[:0]
	clear(p.items)
}
