package search

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilExpander is returned by [New] when no expander is supplied.
	// A Finder cannot discover any part of the graph without one.
	ErrNilExpander = errors.New("search: expander must not be nil")

	// ErrNegativeCost is returned by [Finder.FindPath] when an expander
	// yields a link with negative cost. Best-first relaxation with a closed
	// set is only correct for non-negative costs, so the search fails fast
	// instead of silently returning a wrong path.
	ErrNegativeCost = errors.New("search: negative link cost")

	// ErrIterationLimit is returned by [Finder.FindPath] when the expansion
	// budget set with [WithMaxIterations] is exhausted before the frontier
	// empties or the goal is reached.
	ErrIterationLimit = errors.New("search: iteration limit exceeded")
)

// Finder runs best-first path searches against an [Expander], optionally
// guided by an [Estimator]. A Finder holds only its collaborators; every
// search builds fresh bookkeeping, so one Finder can serve concurrent
// searches.
type Finder[N comparable] struct {
	expander  Expander[N]
	estimator Estimator[N]
	maxCost   float64
	maxIter   int
}

// Option configures a [Finder].
type Option[N comparable] func(*Finder[N])

// WithEstimator sets the heuristic estimator. Without this option the
// Finder uses [Zero] and behaves as uniform-cost search.
func WithEstimator[N comparable](est Estimator[N]) Option[N] {
	return func(f *Finder[N]) {
		if est != nil {
			f.estimator = est
		}
	}
}

// WithMaxCost bounds exploration: nodes whose accumulated path cost would
// exceed limit are never added to the frontier. Searches past the bound
// report not-found rather than an error. The default is no bound.
func WithMaxCost[N comparable](limit float64) Option[N] {
	return func(f *Finder[N]) { f.maxCost = limit }
}

// WithMaxIterations caps the number of node expansions per search. Remote
// graphs can be effectively unbounded, and a mistyped goal would otherwise
// expand forever. Exceeding the cap aborts the search with
// [ErrIterationLimit]. Zero (the default) means no cap.
func WithMaxIterations[N comparable](n int) Option[N] {
	return func(f *Finder[N]) { f.maxIter = n }
}

// New creates a Finder over the given expander.
func New[N comparable](expander Expander[N], opts ...Option[N]) (*Finder[N], error) {
	if expander == nil {
		return nil, ErrNilExpander
	}
	f := &Finder[N]{
		expander:  expander,
		estimator: Zero[N](),
		maxCost:   math.Inf(1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// FindPath searches for a minimum-cost path from start to goal.
//
// An unreachable goal is not an error: the result reports Found=false along
// with the iterations consumed before the frontier emptied. Errors from the
// expander or estimator abort the search immediately and are returned
// wrapped; no partial result accompanies them.
func (f *Finder[N]) FindPath(ctx context.Context, start, goal N) (Result[N], error) {
	s := f.newState(start, goal)
	for !s.done {
		if err := s.step(ctx); err != nil {
			return Result[N]{}, err
		}
	}
	return s.result(), nil
}

// state is the per-invocation bookkeeping: frontier and closed set, best
// known path costs, and the predecessor link that produced each cost. It is
// created fresh by every FindPath call and discarded on return.
type state[N comparable] struct {
	finder *Finder[N]
	start  N
	goal   N

	frontier *frontier[N]
	closed   map[N]bool
	costs    map[N]float64 // best known path cost from start, heuristics excluded
	pred     map[N]Link[N] // link that produced costs[n]; no entry for start

	current    N
	iterations int
	done       bool
	found      bool
}

func (f *Finder[N]) newState(start, goal N) *state[N] {
	s := &state[N]{
		finder:     f,
		start:      start,
		goal:       goal,
		frontier:   newFrontier[N](),
		closed:     make(map[N]bool),
		costs:      map[N]float64{start: 0},
		pred:       make(map[N]Link[N]),
		iterations: 1,
	}
	s.frontier.upsert(start, 0)
	return s
}

// step performs one frontier selection: pop the cheapest open node, stop if
// it is the goal or the frontier is empty, otherwise expand and relax its
// outgoing links and finalize it.
func (s *state[N]) step(ctx context.Context) error {
	if s.done {
		return nil
	}
	if s.frontier.len() == 0 {
		s.done = true
		return nil
	}

	best := s.frontier.pop()
	s.current = best
	if best == s.goal {
		s.done = true
		s.found = true
		return nil
	}

	links, err := s.finder.expander.Expand(ctx, best)
	if err != nil {
		return fmt.Errorf("expand %v: %w", best, err)
	}
	for _, link := range links {
		if err := s.relax(ctx, best, link); err != nil {
			return err
		}
	}

	s.closed[best] = true
	s.iterations++
	if s.finder.maxIter > 0 && s.iterations > s.finder.maxIter {
		return fmt.Errorf("%w: %d expansions", ErrIterationLimit, s.finder.maxIter)
	}
	return nil
}

// relax considers one outgoing link of the node just popped. Finalized
// targets are skipped outright; otherwise the target joins the frontier, and
// if the route through the popped node is strictly cheaper than anything
// recorded so far, its cost, priority, and predecessor update together.
func (s *state[N]) relax(ctx context.Context, from N, link Link[N]) error {
	if s.closed[link.To] {
		return nil
	}
	if link.Cost < 0 {
		return fmt.Errorf("%w: %v→%v cost=%g", ErrNegativeCost, link.From, link.To, link.Cost)
	}

	candidate := s.costs[from] + link.Cost
	if candidate > s.finder.maxCost {
		return nil
	}
	if prev, seen := s.costs[link.To]; seen && candidate >= prev {
		return nil
	}

	est, err := s.finder.estimator.Estimate(ctx, s.start, link.To)
	if err != nil {
		return fmt.Errorf("estimate %v→%v: %w", s.start, link.To, err)
	}

	s.costs[link.To] = candidate
	s.pred[link.To] = link
	s.frontier.upsert(link.To, candidate+est)
	return nil
}

// result assembles the search outcome. Must only be called once done.
func (s *state[N]) result() Result[N] {
	if !s.found {
		return Result[N]{Iterations: s.iterations}
	}
	return Result[N]{
		Found:      true,
		Iterations: s.iterations,
		Cost:       s.costs[s.goal],
		Path:       s.rebuild(),
	}
}

// rebuild walks predecessor links backward from the goal and reverses the
// sequence. The start node has no predecessor entry, which terminates the
// walk; start == goal therefore yields an empty path.
func (s *state[N]) rebuild() []Link[N] {
	var path []Link[N]
	node := s.goal
	for {
		link, ok := s.pred[node]
		if !ok {
			break
		}
		path = append(path, link)
		node = link.From
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
