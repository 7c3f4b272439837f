package source

import (
	"context"

	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// Memory is an in-memory graph source. Links are returned in the order they
// were declared in the originating graph. Unknown nodes are dead ends, not
// errors, mirroring how a remote store answers an empty query.
type Memory struct {
	links  map[string][]search.Link[string]
	coords map[string][2]float64
}

// NewMemory builds a source from a graph. The graph should already be
// validated (graphio readers validate on load).
func NewMemory(g graphio.Graph) *Memory {
	m := &Memory{
		links:  make(map[string][]search.Link[string], len(g.Nodes)),
		coords: g.Coords(),
	}
	for _, l := range g.Links {
		m.links[l.From] = append(m.links[l.From], l)
	}
	return m
}

// Expand returns the outgoing links of node.
func (m *Memory) Expand(_ context.Context, node string) ([]search.Link[string], error) {
	return m.links[node], nil
}

// Coord looks up a node's position, satisfying [heuristic.Coords].
func (m *Memory) Coord(id string) (x, y float64, ok bool) {
	p, ok := m.coords[id]
	return p[0], p[1], ok
}

var _ search.Expander[string] = (*Memory)(nil)
