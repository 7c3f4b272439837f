package search

import "container/heap"

// frontierItem is one open-set entry: a reachable node, its current frontier
// priority (path cost plus estimate), and the sequence number assigned when
// it first entered the frontier. The sequence number breaks priority ties
// deterministically and survives later priority updates.
type frontierItem[N comparable] struct {
	node  N
	total float64
	seq   int
	index int
}

// frontier is the open set: a min-heap over total cost with a lookup map for
// decrease-key updates. Unlike the lazy-duplicate approach, each node has at
// most one live entry, so membership doubles as the open-set test.
type frontier[N comparable] struct {
	heap  frontierHeap[N]
	index map[N]*frontierItem[N]
	seq   int
}

func newFrontier[N comparable]() *frontier[N] {
	return &frontier[N]{index: make(map[N]*frontierItem[N])}
}

func (f *frontier[N]) len() int { return len(f.heap) }

// upsert inserts node with the given total cost, or lowers the cost of its
// existing entry. The original sequence number is kept on update so the
// tie-break stays pinned to first insertion.
func (f *frontier[N]) upsert(node N, total float64) {
	if item, ok := f.index[node]; ok {
		item.total = total
		heap.Fix(&f.heap, item.index)
		return
	}
	item := &frontierItem[N]{node: node, total: total, seq: f.seq}
	f.seq++
	f.index[node] = item
	heap.Push(&f.heap, item)
}

// pop removes and returns the node with the smallest total cost, breaking
// ties toward the earliest-inserted entry.
func (f *frontier[N]) pop() N {
	item := heap.Pop(&f.heap).(*frontierItem[N])
	delete(f.index, item.node)
	return item.node
}

// frontierHeap implements heap.Interface ordered by (total, seq) ascending.
type frontierHeap[N comparable] []*frontierItem[N]

func (h frontierHeap[N]) Len() int { return len(h) }

func (h frontierHeap[N]) Less(i, j int) bool {
	if h[i].total != h[j].total {
		return h[i].total < h[j].total
	}
	return h[i].seq < h[j].seq
}

func (h frontierHeap[N]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *frontierHeap[N]) Push(x any) {
	item := x.(*frontierItem[N])
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *frontierHeap[N]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
