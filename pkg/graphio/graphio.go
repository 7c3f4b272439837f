// Package graphio provides the canonical serialization format for weighted
// graphs used by the wayfinder tooling.
//
// This is the wire format for graph files, the serve command's link feed,
// and the documents seeded into Redis and MongoDB. The engine itself never
// sees it; pkg/source adapts it into expanders.
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "a", "x": 0, "y": 0}, {"id": "b", "x": 1, "y": 0}],
//	  "links": [{"from": "a", "to": "b", "cost": 1}]
//	}
//
// Node coordinates are optional; they exist so geometric heuristics
// (pkg/heuristic) have something to measure. Output is deterministic: nodes
// and links are sorted on write.
package graphio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/matzehuels/wayfinder/pkg/search"
)

var (
	// ErrEmptyNodeID is returned by [Graph.Validate] when a node has no ID.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes
	// share an ID. Node IDs must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownEndpoint is returned by [Graph.Validate] when a link
	// references a node that is not declared in the node list.
	ErrUnknownEndpoint = errors.New("link references unknown node")

	// ErrNegativeCost is returned by [Graph.Validate] when a link carries a
	// negative cost. The engine would reject it anyway; validation surfaces
	// the problem at load time instead of mid-search.
	ErrNegativeCost = errors.New("link cost must be non-negative")
)

// Node is a graph vertex with an optional position for heuristics.
type Node struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y  float64 `json:"y,omitempty" bson:"y,omitempty"`
}

// Graph is the serialization format for a weighted directed graph.
type Graph struct {
	Nodes []Node                `json:"nodes" bson:"nodes"`
	Links []search.Link[string] `json:"links" bson:"links"`
}

// Validate checks structural integrity: non-empty unique node IDs, link
// endpoints that exist, and non-negative costs.
func (g Graph) Validate() error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return ErrEmptyNodeID
		}
		if ids[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		ids[n.ID] = true
	}
	for _, l := range g.Links {
		if !ids[l.From] {
			return fmt.Errorf("%w: %s", ErrUnknownEndpoint, l.From)
		}
		if !ids[l.To] {
			return fmt.Errorf("%w: %s", ErrUnknownEndpoint, l.To)
		}
		if l.Cost < 0 {
			return fmt.Errorf("%w: %s→%s cost=%g", ErrNegativeCost, l.From, l.To, l.Cost)
		}
	}
	return nil
}

// Coords returns a position lookup over the graph's nodes, suitable for
// pkg/heuristic estimators.
func (g Graph) Coords() map[string][2]float64 {
	coords := make(map[string][2]float64, len(g.Nodes))
	for _, n := range g.Nodes {
		coords[n.ID] = [2]float64{n.X, n.Y}
	}
	return coords
}

// sorted returns a copy with nodes ordered by ID and links by (from, to).
func (g Graph) sorted() Graph {
	out := Graph{
		Nodes: slices.Clone(g.Nodes),
		Links: slices.Clone(g.Links),
	}
	slices.SortFunc(out.Nodes, func(a, b Node) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	slices.SortFunc(out.Links, func(a, b search.Link[string]) int {
		switch {
		case a.From < b.From:
			return -1
		case a.From > b.From:
			return 1
		case a.To < b.To:
			return -1
		case a.To > b.To:
			return 1
		}
		return 0
	})
	return out
}

// Marshal serializes a graph to indented JSON with deterministic ordering.
func Marshal(g Graph) ([]byte, error) {
	data, err := json.MarshalIndent(g.sorted(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return append(data, '\n'), nil
}

// Unmarshal deserializes and validates JSON bytes.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// Read decodes and validates a JSON graph from r.
func Read(r io.Reader) (Graph, error) {
	var g Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	return g, nil
}

// ReadFile reads and validates a graph file.
func ReadFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes a graph as JSON to w with deterministic ordering.
func Write(g Graph, w io.Writer) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile writes a graph to a JSON file with 0644 permissions.
func WriteFile(g Graph, path string) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
