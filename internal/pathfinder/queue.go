package pathfinder

import (
	"container/heap"
	"errors"

	"flight-route-service/internal/domain"
)

// ErrEmptyQueue is returned by Pop on an empty queue.
var ErrEmptyQueue = errors.New("pathfinder: priority queue is empty")

// Node is an open-set entry: airport reached at Arrival on Day via Flight,
// with cumulative cost G and heuristic H. Flight is -1 for the start node.
type Node struct {
	Airport int
	Flight  int
	G       float64
	H       float64
	Arrival int
	Day     domain.Weekday
}

// F is the estimated total cost the queue orders by.
func (n Node) F() float64 { return n.G + n.H }

// Queue is a binary min-heap of Nodes keyed by F.
//
// Nodes are stored by value in an append-only arena and the heap holds arena
// indexes, so growing the queue never moves a node. Ties on F are broken by
// lower G, then by insertion order.
type Queue struct {
	arena []Node
	order nodeHeap
}

// NewQueue returns an empty queue with room for capacity nodes.
func NewQueue(capacity int) *Queue {
	q := &Queue{
		arena: make([]Node, 0, capacity),
	}
	q.order = nodeHeap{arena: &q.arena, idx: make([]int, 0, capacity)}
	return q
}

func (q *Queue) Len() int { return q.order.Len() }

// Push adds a node in O(log n).
func (q *Queue) Push(n Node) {
	q.arena = append(q.arena, n)
	heap.Push(&q.order, len(q.arena)-1)
}

// Pop removes and returns the node with the lowest F.
func (q *Queue) Pop() (Node, error) {
	if q.order.Len() == 0 {
		return Node{}, ErrEmptyQueue
	}
	i := heap.Pop(&q.order).(int)
	return q.arena[i], nil
}

// nodeHeap implements heap.Interface over arena indexes.
type nodeHeap struct {
	arena *[]Node
	idx   []int
}

func (h nodeHeap) Len() int { return len(h.idx) }

func (h nodeHeap) Less(i, j int) bool {
	a, b := (*h.arena)[h.idx[i]], (*h.arena)[h.idx[j]]
	if fa, fb := a.F(), b.F(); fa != fb {
		return fa < fb
	}
	if a.G != b.G {
		return a.G < b.G
	}
	// arena index doubles as insertion sequence
	return h.idx[i] < h.idx[j]
}

func (h nodeHeap) Swap(i, j int) { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }

func (h *nodeHeap) Push(x any) { h.idx = append(h.idx, x.(int)) }

func (h *nodeHeap) Pop() any {
	old := h.idx
	n := len(old)
	item := old[n-1]
	h.idx = old[:n-1]
	return item
}
