// Package heuristic provides ready-made estimators for the search engine.
//
// All estimators here are goal-directed: they are constructed with the goal
// node and a coordinate lookup, and estimate the remaining straight-line or
// grid distance from a frontier node to that goal. Both are admissible and
// consistent on graphs whose link costs are at least the corresponding
// geometric distance, which is what makes the engine's closed-set design
// return minimal paths under them.
package heuristic

import (
	"context"
	"fmt"
	"math"

	"github.com/matzehuels/wayfinder/pkg/search"
)

// Coords looks up a node's position. The second return value reports
// whether the node is known; estimators fail the search on unknown nodes
// rather than guessing.
type Coords func(id string) (x, y float64, ok bool)

// FromMap adapts a position map (e.g. [graphio.Graph.Coords]) to a Coords
// lookup.
func FromMap(m map[string][2]float64) Coords {
	return func(id string) (float64, float64, bool) {
		p, ok := m[id]
		return p[0], p[1], ok
	}
}

// EuclideanTo estimates straight-line distance from each node to goal.
func EuclideanTo(goal string, coords Coords) search.Estimator[string] {
	return distanceTo(goal, coords, func(dx, dy float64) float64 {
		return math.Hypot(dx, dy)
	})
}

// ManhattanTo estimates grid (L1) distance from each node to goal. Use it
// for 4-connected grids, where it dominates the Euclidean estimate while
// staying admissible.
func ManhattanTo(goal string, coords Coords) search.Estimator[string] {
	return distanceTo(goal, coords, func(dx, dy float64) float64 {
		return math.Abs(dx) + math.Abs(dy)
	})
}

// Scale multiplies an estimator by weight. Weights above 1 trade optimality
// for fewer expansions (weighted A*); the result is generally inadmissible.
func Scale[N comparable](est search.Estimator[N], weight float64) search.Estimator[N] {
	return search.EstimatorFunc[N](func(ctx context.Context, start, to N) (float64, error) {
		v, err := est.Estimate(ctx, start, to)
		if err != nil {
			return 0, err
		}
		return v * weight, nil
	})
}

func distanceTo(goal string, coords Coords, norm func(dx, dy float64) float64) search.Estimator[string] {
	return search.EstimatorFunc[string](func(_ context.Context, _, to string) (float64, error) {
		gx, gy, ok := coords(goal)
		if !ok {
			return 0, fmt.Errorf("no coordinates for goal %q", goal)
		}
		tx, ty, ok := coords(to)
		if !ok {
			return 0, fmt.Errorf("no coordinates for node %q", to)
		}
		return norm(gx-tx, gy-ty), nil
	})
}
