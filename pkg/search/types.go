package search

import "context"

// Link is a directed, weighted connection between two nodes. The engine
// treats node identifiers as opaque: any comparable type works, and no
// structure beyond equality is assumed.
//
// Cost must be non-negative; [Finder.FindPath] rejects negative costs with
// [ErrNegativeCost].
type Link[N comparable] struct {
	From N       `json:"from" bson:"from"`
	To   N       `json:"to" bson:"to"`
	Cost float64 `json:"cost" bson:"cost"`
}

// Expander produces the outgoing links of a node. It is the engine's only
// view of the graph, which is what allows the graph to live anywhere: in
// memory, in Redis, behind an HTTP API.
//
// Implementations must return only links whose From equals the queried node,
// may return an empty slice for a dead end, and must not retain or mutate
// engine state. The engine awaits each call before issuing the next, so an
// implementation backed by network I/O needs no internal synchronization for
// a single search.
type Expander[N comparable] interface {
	Expand(ctx context.Context, node N) ([]Link[N], error)
}

// ExpanderFunc adapts a function to the [Expander] interface.
type ExpanderFunc[N comparable] func(ctx context.Context, node N) ([]Link[N], error)

// Expand calls f.
func (f ExpanderFunc[N]) Expand(ctx context.Context, node N) ([]Link[N], error) {
	return f(ctx, node)
}

// Estimator biases frontier selection by estimating remaining cost. The
// engine calls Estimate(ctx, start, to) whenever a node's cost improves and
// adds the estimate to the node's frontier priority; the stored path cost is
// never affected.
//
// Goal-directed estimators close over the goal at construction time (see
// pkg/heuristic). Estimates should be non-negative; for the shortest-path
// guarantee to hold they must also never overestimate and must satisfy the
// triangle inequality. Neither property is enforced.
type Estimator[N comparable] interface {
	Estimate(ctx context.Context, start, to N) (float64, error)
}

// EstimatorFunc adapts a function to the [Estimator] interface.
type EstimatorFunc[N comparable] func(ctx context.Context, start, to N) (float64, error)

// Estimate calls f.
func (f EstimatorFunc[N]) Estimate(ctx context.Context, start, to N) (float64, error) {
	return f(ctx, start, to)
}

// Zero returns the constant-zero estimator. A Finder built without
// [WithEstimator] uses it implicitly, turning the search into plain
// uniform-cost (Dijkstra) search.
func Zero[N comparable]() Estimator[N] {
	return EstimatorFunc[N](func(context.Context, N, N) (float64, error) {
		return 0, nil
	})
}

// Result is the outcome of a single search.
//
// Iterations counts frontier selections: it starts at 1 and increases by one
// for every node expansion, so a search that pops the goal immediately
// reports 1. Cost and Path are meaningful only when Found is true. Path is
// the ordered link sequence from start to goal and is empty when start
// equals goal.
type Result[N comparable] struct {
	Found      bool      `json:"found"`
	Iterations int       `json:"iterations"`
	Cost       float64   `json:"cost"`
	Path       []Link[N] `json:"path"`
}
