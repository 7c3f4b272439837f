package search

import "context"

// Snapshot is the observable state of a search after one expansion. Maps are
// copies; callers may retain them across steps.
type Snapshot[N comparable] struct {
	// Current is the most recently selected node. It is the zero value
	// until the first selection happens.
	Current N
	// Open maps frontier nodes to their best known path cost.
	Open map[N]float64
	// Closed holds the finalized nodes.
	Closed map[N]bool
	// Iterations mirrors Result.Iterations at this point of the search.
	Iterations int

	Done  bool
	Found bool
	// Result is populated once Done is true.
	Result *Result[N]
}

// Stepper advances a search one expansion at a time, exposing intermediate
// state after every step. It exists to drive interactive tools (the watch
// TUI, debuggers); [Finder.FindPath] is the way to just get an answer.
type Stepper[N comparable] struct {
	state *state[N]
}

// Stepper starts a search from start toward goal that the caller advances
// manually with [Stepper.Step].
func (f *Finder[N]) Stepper(start, goal N) *Stepper[N] {
	return &Stepper[N]{state: f.newState(start, goal)}
}

// Step performs one frontier selection and reports the resulting state.
// Calling Step after the search finished returns the terminal snapshot
// again. Collaborator errors end the search; the snapshot returned alongside
// the error reflects the state at the point of failure.
func (st *Stepper[N]) Step(ctx context.Context) (Snapshot[N], error) {
	s := st.state
	if s.done {
		return st.snapshot(), nil
	}
	if err := s.step(ctx); err != nil {
		s.done = true
		return st.snapshot(), err
	}
	return st.snapshot(), nil
}

// Done reports whether the search has terminated.
func (st *Stepper[N]) Done() bool { return st.state.done }

func (st *Stepper[N]) snapshot() Snapshot[N] {
	s := st.state

	open := make(map[N]float64, len(s.frontier.index))
	for node := range s.frontier.index {
		open[node] = s.costs[node]
	}
	closed := make(map[N]bool, len(s.closed))
	for node := range s.closed {
		closed[node] = true
	}

	snap := Snapshot[N]{
		Current:    s.current,
		Open:       open,
		Closed:     closed,
		Iterations: s.iterations,
		Done:       s.done,
		Found:      s.found,
	}
	if s.done {
		r := s.result()
		snap.Result = &r
	}
	return snap
}
