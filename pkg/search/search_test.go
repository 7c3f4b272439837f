package search

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

// adjacency is a deterministic in-memory expander for tests: links are
// returned in declaration order.
type adjacency map[string][]Link[string]

func (a adjacency) Expand(_ context.Context, node string) ([]Link[string], error) {
	return a[node], nil
}

func link(from, to string, cost float64) Link[string] {
	return Link[string]{From: from, To: to, Cost: cost}
}

// competing is the canonical two-route graph: the direct-looking route via b
// costs 6, the cheaper route via c costs 3.
var competing = adjacency{
	"a": {link("a", "b", 3), link("a", "c", 1)},
	"b": {link("b", "d", 3)},
	"c": {link("c", "d", 2)},
}

func TestFindPath(t *testing.T) {
	tests := []struct {
		name           string
		graph          adjacency
		start, goal    string
		wantFound      bool
		wantCost       float64
		wantIterations int
		wantPath       []Link[string]
	}{
		{
			name:           "StartEqualsGoal",
			graph:          adjacency{},
			start:          "a",
			goal:           "a",
			wantFound:      true,
			wantCost:       0,
			wantIterations: 1,
			wantPath:       nil,
		},
		{
			name:           "UnreachableGoal",
			graph:          adjacency{},
			start:          "a",
			goal:           "z",
			wantFound:      false,
			wantIterations: 2,
		},
		{
			name:           "DirectLink",
			graph:          adjacency{"a": {link("a", "b", 1)}},
			start:          "a",
			goal:           "b",
			wantFound:      true,
			wantCost:       1,
			wantIterations: 2,
			wantPath:       []Link[string]{link("a", "b", 1)},
		},
		{
			name:           "CompetingPaths",
			graph:          competing,
			start:          "a",
			goal:           "d",
			wantFound:      true,
			wantCost:       3,
			wantIterations: 4,
			wantPath:       []Link[string]{link("a", "c", 1), link("c", "d", 2)},
		},
		{
			name: "RelaxationReplacesPredecessor",
			graph: adjacency{
				"a": {link("a", "b", 10), link("a", "c", 1)},
				"c": {link("c", "b", 2)},
			},
			start:          "a",
			goal:           "b",
			wantFound:      true,
			wantCost:       3,
			wantIterations: 3,
			wantPath:       []Link[string]{link("a", "c", 1), link("c", "b", 2)},
		},
		{
			name: "CycleTerminates",
			graph: adjacency{
				"a": {link("a", "b", 1)},
				"b": {link("b", "a", 1), link("b", "c", 1)},
				"c": {link("c", "b", 0)},
			},
			start:          "a",
			goal:           "z",
			wantFound:      false,
			wantIterations: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			finder, err := New[string](tt.graph)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			got, err := finder.FindPath(context.Background(), tt.start, tt.goal)
			if err != nil {
				t.Fatalf("FindPath: %v", err)
			}
			if got.Found != tt.wantFound {
				t.Errorf("Found = %v, want %v", got.Found, tt.wantFound)
			}
			if got.Iterations != tt.wantIterations {
				t.Errorf("Iterations = %d, want %d", got.Iterations, tt.wantIterations)
			}
			if tt.wantFound && got.Cost != tt.wantCost {
				t.Errorf("Cost = %g, want %g", got.Cost, tt.wantCost)
			}
			if !reflect.DeepEqual(got.Path, tt.wantPath) {
				t.Errorf("Path = %v, want %v", got.Path, tt.wantPath)
			}
		})
	}
}

func TestFindPathCostMatchesPathSum(t *testing.T) {
	finder, _ := New[string](competing)
	got, err := finder.FindPath(context.Background(), "a", "d")
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, l := range got.Path {
		sum += l.Cost
	}
	if sum != got.Cost {
		t.Errorf("path cost sum = %g, reported cost = %g", sum, got.Cost)
	}
}

// TestHeuristicGuidance verifies that an admissible estimator finds the same
// cost in no more iterations than uniform-cost search. The graph is a line
// 0→1→…→5 where every hop also opens a cheap decoy branch pointing away from
// the goal; the distance-to-goal estimate keeps decoys on the frontier floor.
func TestHeuristicGuidance(t *testing.T) {
	const goal = 5
	pos := map[int]float64{}
	graph := map[int][]Link[int]{}
	for i := 0; i < goal; i++ {
		decoy := -(i + 1) // decoys sit behind the start
		graph[i] = []Link[int]{
			{From: i, To: i + 1, Cost: 1},
			{From: i, To: decoy, Cost: 0.5},
		}
		pos[i] = float64(i)
		pos[decoy] = float64(decoy)
	}
	pos[goal] = float64(goal)

	expander := ExpanderFunc[int](func(_ context.Context, n int) ([]Link[int], error) {
		return graph[n], nil
	})
	toGoal := EstimatorFunc[int](func(_ context.Context, _, to int) (float64, error) {
		return math.Abs(pos[goal] - pos[to]), nil
	})

	plain, err := New[int](expander)
	if err != nil {
		t.Fatal(err)
	}
	guided, err := New[int](expander, WithEstimator[int](toGoal))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	blind, err := plain.FindPath(ctx, 0, goal)
	if err != nil {
		t.Fatal(err)
	}
	informed, err := guided.FindPath(ctx, 0, goal)
	if err != nil {
		t.Fatal(err)
	}

	if !blind.Found || !informed.Found {
		t.Fatalf("both searches should succeed: blind=%v informed=%v", blind.Found, informed.Found)
	}
	if blind.Cost != informed.Cost {
		t.Errorf("costs differ: blind=%g informed=%g", blind.Cost, informed.Cost)
	}
	if informed.Iterations > blind.Iterations {
		t.Errorf("guided search took %d iterations, uniform-cost took %d", informed.Iterations, blind.Iterations)
	}
}

func TestFindPathIdempotent(t *testing.T) {
	// Every route from a to d costs exactly 2, making the frontier tie-heavy.
	graph := adjacency{
		"a": {link("a", "b", 1), link("a", "c", 1)},
		"b": {link("b", "d", 1)},
		"c": {link("c", "d", 1)},
	}
	finder, _ := New[string](graph)

	first, err := finder.FindPath(context.Background(), "a", "d")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := finder.FindPath(context.Background(), "a", "d")
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, first, again)
		}
	}
	// First-inserted wins the tie, so the route goes through b.
	if len(first.Path) == 0 || first.Path[0].To != "b" {
		t.Errorf("tie-break should favor b (inserted first), got path %v", first.Path)
	}
}

func TestNewNilExpander(t *testing.T) {
	if _, err := New[string](nil); !errors.Is(err, ErrNilExpander) {
		t.Errorf("New(nil) error = %v, want ErrNilExpander", err)
	}
}

func TestFindPathNegativeCost(t *testing.T) {
	graph := adjacency{"a": {link("a", "b", -1)}}
	finder, _ := New[string](graph)
	_, err := finder.FindPath(context.Background(), "a", "b")
	if !errors.Is(err, ErrNegativeCost) {
		t.Errorf("error = %v, want ErrNegativeCost", err)
	}
}

func TestFindPathExpanderError(t *testing.T) {
	boom := errors.New("backend unavailable")
	expander := ExpanderFunc[string](func(context.Context, string) ([]Link[string], error) {
		return nil, boom
	})
	finder, _ := New[string](expander)
	_, err := finder.FindPath(context.Background(), "a", "b")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestFindPathEstimatorError(t *testing.T) {
	boom := errors.New("no coordinates")
	graph := adjacency{"a": {link("a", "b", 1)}}
	failing := EstimatorFunc[string](func(context.Context, string, string) (float64, error) {
		return 0, boom
	})
	finder, _ := New[string](graph, WithEstimator[string](failing))
	_, err := finder.FindPath(context.Background(), "a", "b")
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
}

func TestFindPathMaxIterations(t *testing.T) {
	// Unbounded chain: without the cap this search never terminates.
	expander := ExpanderFunc[int](func(_ context.Context, n int) ([]Link[int], error) {
		return []Link[int]{{From: n, To: n + 1, Cost: 1}}, nil
	})
	finder, _ := New[int](expander, WithMaxIterations[int](25))
	_, err := finder.FindPath(context.Background(), 0, -1)
	if !errors.Is(err, ErrIterationLimit) {
		t.Errorf("error = %v, want ErrIterationLimit", err)
	}
}

func TestFindPathMaxCost(t *testing.T) {
	finder, _ := New[string](competing, WithMaxCost[string](2))
	got, err := finder.FindPath(context.Background(), "a", "d")
	if err != nil {
		t.Fatal(err)
	}
	if got.Found {
		t.Errorf("goal costs 3, bound is 2; should not be found, got %+v", got)
	}
}

func TestFrontierOrdering(t *testing.T) {
	f := newFrontier[string]()
	f.upsert("b", 5)
	f.upsert("a", 3)
	f.upsert("c", 3) // ties with a, but a entered first
	f.upsert("b", 1) // decrease-key

	want := []string{"b", "a", "c"}
	for _, w := range want {
		if got := f.pop(); got != w {
			t.Fatalf("pop = %q, want %q", got, w)
		}
	}
	if f.len() != 0 {
		t.Errorf("frontier should be empty, has %d", f.len())
	}
}
