// Package search implements a lazily-expanding best-first path search over
// graphs that are discovered incrementally rather than materialized up front.
//
// # Overview
//
// Wayfinder targets graphs too large to hold in memory: road networks in a
// database, link feeds behind an HTTP API, adjacency stored in Redis. The
// engine never sees the whole graph. Instead it asks an [Expander] for the
// outgoing links of one node at a time and relaxes costs as the frontier
// grows, so only the explored region is ever resident.
//
// With an [Estimator] supplied, the engine runs heuristic-guided best-first
// search (A* when the estimate is admissible and consistent). Without one it
// degrades to uniform-cost search (Dijkstra), which is the default.
//
// # Basic Usage
//
// Create a [Finder] with [New], then run searches with [Finder.FindPath]:
//
//	finder, err := search.New[string](source)
//	if err != nil {
//	    return err
//	}
//	result, err := finder.FindPath(ctx, "a", "z")
//	if err != nil {
//	    return err
//	}
//	if result.Found {
//	    fmt.Println(result.Cost, result.Path)
//	}
//
// Heuristics are wired through [WithEstimator]:
//
//	finder, err := search.New(source, search.WithEstimator[string](est))
//
// # Determinism
//
// Frontier selection uses a min-heap keyed by total cost (accumulated link
// cost plus heuristic estimate). Ties resolve to the node that entered the
// frontier first, so repeated searches over the same inputs produce
// identical results, including the iteration count.
//
// # Guarantees and Limits
//
// The returned path is minimal when all link costs are non-negative and the
// estimator never overestimates and satisfies the triangle inequality. Once
// a node is finalized it is never re-relaxed, so an inconsistent estimator
// can yield a suboptimal path; the engine does not detect this. Negative
// link costs are rejected with [ErrNegativeCost] as soon as one is seen.
//
// A search runs on a single goroutine and holds no shared state, so any
// number of searches may run concurrently against the same Finder as long
// as the collaborators tolerate concurrent calls. Cancellation is delegated
// to the collaborators: the context passed to FindPath reaches every Expand
// and Estimate call, and an error from either aborts the search.
package search
