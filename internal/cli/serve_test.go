package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
	"github.com/matzehuels/wayfinder/pkg/source"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	g := graphio.Graph{
		Nodes: []graphio.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Links: []search.Link[string]{
			{From: "a", To: "b", Cost: 3},
			{From: "a", To: "c", Cost: 1},
			{From: "b", To: "d", Cost: 3},
			{From: "c", To: "d", Cost: 2},
		},
	}
	s := &graphServer{mem: source.NewMemory(g), logger: newLogger(io.Discard, LogInfo)}
	return s.routes()
}

func TestServeHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("GET /healthz status = %d, want 200", rec.Code)
	}
}

func TestServeLinks(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/a/links", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /nodes/a/links status = %d, want 200", rec.Code)
	}
	var links []search.Link[string]
	if err := json.NewDecoder(rec.Body).Decode(&links); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("links = %v, want 2 links", links)
	}
}

func TestServeLinksUnknownNodeIsEmpty(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nodes/nowhere/links", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Errorf("body = %q, want []", got)
	}
}

func TestServeSearch(t *testing.T) {
	body := strings.NewReader(`{"start": "a", "goal": "d"}`)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("POST /search status = %d, body = %s", rec.Code, rec.Body)
	}
	var res search.Result[string]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !res.Found || res.Cost != 3 || res.Iterations != 4 {
		t.Errorf("result = %+v, want found with cost 3 in 4 iterations", res)
	}
}

func TestServeSearchRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "MalformedJSON", body: "{"},
		{name: "MissingGoal", body: `{"start": "a"}`},
		{name: "UnknownHeuristic", body: `{"start": "a", "goal": "d", "heuristic": "psychic"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(tt.body)))
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestServeSearchStartEqualsGoal(t *testing.T) {
	body := strings.NewReader(`{"start": "a", "goal": "a"}`)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&raw); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	// A found result always carries cost and path, even when both are zero.
	if string(raw["cost"]) != "0" {
		t.Errorf("cost = %s, want 0", raw["cost"])
	}
	if string(raw["path"]) != "[]" {
		t.Errorf("path = %s, want []", raw["path"])
	}
}

func TestServeSearchNoPathStillOK(t *testing.T) {
	body := strings.NewReader(`{"start": "d", "goal": "a"}`)
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var res search.Result[string]
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if res.Found {
		t.Errorf("result = %+v, want not found", res)
	}
}
