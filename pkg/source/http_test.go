package source

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/matzehuels/wayfinder/pkg/search"
)

func TestHTTPExpand(t *testing.T) {
	mem := NewMemory(testGraph())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/nodes/a/links" {
			http.NotFound(w, r)
			return
		}
		links, _ := mem.Expand(r.Context(), "a")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(links)
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, nil)
	links, err := src.Expand(context.Background(), "a")
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	want := []search.Link[string]{
		{From: "a", To: "b", Cost: 3},
		{From: "a", To: "c", Cost: 4},
	}
	if !reflect.DeepEqual(links, want) {
		t.Errorf("Expand(a) = %v, want %v", links, want)
	}
}

func TestHTTPExpandEscapesNodeID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL+"/", nil)
	if _, err := src.Expand(context.Background(), "a/b"); err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if want := "/nodes/a%2Fb/links"; gotPath != want {
		t.Errorf("request path = %q, want %q", gotPath, want)
	}
}

func TestHTTPExpandServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, nil)
	if _, err := src.Expand(context.Background(), "a"); err == nil {
		t.Error("Expand() error = nil, want status error")
	}
}
