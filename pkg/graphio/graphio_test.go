package graphio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wayfinder/pkg/search"
)

func sample() Graph {
	return Graph{
		Nodes: []Node{
			{ID: "b", X: 1},
			{ID: "a"},
			{ID: "c", X: 2, Y: 1},
		},
		Links: []search.Link[string]{
			{From: "b", To: "c", Cost: 2},
			{From: "a", To: "b", Cost: 1},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		graph   Graph
		wantErr error
	}{
		{
			name:  "Valid",
			graph: sample(),
		},
		{
			name:  "Empty",
			graph: Graph{},
		},
		{
			name:    "EmptyNodeID",
			graph:   Graph{Nodes: []Node{{ID: ""}}},
			wantErr: ErrEmptyNodeID,
		},
		{
			name:    "DuplicateNodeID",
			graph:   Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "UnknownEndpoint",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Links: []search.Link[string]{{From: "a", To: "ghost", Cost: 1}},
			},
			wantErr: ErrUnknownEndpoint,
		},
		{
			name: "NegativeCost",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Links: []search.Link[string]{{From: "a", To: "b", Cost: -1}},
			},
			wantErr: ErrNegativeCost,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	data, err := Marshal(sample())
	if err != nil {
		t.Fatal(err)
	}
	g, err := Unmarshal(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 2 {
		t.Fatalf("round trip lost data: %+v", g)
	}
	// Deterministic ordering after marshal.
	if g.Nodes[0].ID != "a" || g.Links[0].From != "a" {
		t.Errorf("output not sorted: nodes[0]=%s links[0].from=%s", g.Nodes[0].ID, g.Links[0].From)
	}

	again, err := Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, again) {
		t.Error("marshal is not stable across round trips")
	}
}

func TestUnmarshalRejectsInvalid(t *testing.T) {
	_, err := Unmarshal([]byte(`{"nodes":[{"id":"a"}],"links":[{"from":"a","to":"x","cost":1}]}`))
	if !errors.Is(err, ErrUnknownEndpoint) {
		t.Errorf("error = %v, want ErrUnknownEndpoint", err)
	}
	if _, err := Unmarshal([]byte(`{not json`)); err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("malformed JSON should fail with decode error, got %v", err)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := WriteFile(sample(), path); err != nil {
		t.Fatal(err)
	}
	g, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 3 || len(g.Links) != 2 {
		t.Fatalf("file round trip lost data: %+v", g)
	}
}

func TestCoords(t *testing.T) {
	coords := sample().Coords()
	if got := coords["c"]; got != [2]float64{2, 1} {
		t.Errorf("coords[c] = %v, want [2 1]", got)
	}
	if _, ok := coords["ghost"]; ok {
		t.Error("unknown node should be absent")
	}
}
