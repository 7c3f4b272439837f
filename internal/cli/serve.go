package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	wferrors "github.com/matzehuels/wayfinder/pkg/errors"
	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
	"github.com/matzehuels/wayfinder/pkg/source"
)

// serveCommand creates the serve command, exposing a graph file as the link
// feed that the --url source consumes, plus a server-side search endpoint.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		graphPath string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a graph file over HTTP",
		Long: `Serve exposes a JSON graph file as an HTTP graph service:

  GET  /healthz           liveness check
  GET  /nodes/{id}/links  outgoing links of a node (the --url source format)
  POST /search            run a search server-side`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), graphPath, addr)
		},
	}

	cmd.Flags().StringVarP(&graphPath, "graph", "g", "", "JSON graph file to serve (required)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, graphPath, addr string) error {
	g, err := graphio.ReadFile(graphPath)
	if err != nil {
		return err
	}

	h := &graphServer{mem: source.NewMemory(g), logger: c.Logger}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("serving graph", "addr", addr, "nodes", len(g.Nodes), "links", len(g.Links))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// graphServer serves an in-memory graph over HTTP.
type graphServer struct {
	mem    *source.Memory
	logger *log.Logger
}

func (s *graphServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/nodes/{id}/links", s.handleLinks)
	r.Post("/search", s.handleSearch)
	return r
}

// requestLogger assigns each request a UUID and logs its outcome.
func (s *graphServer) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		logger := s.logger.With("request", reqID)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))
		logger.Debug("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start).Round(time.Microsecond))
	})
}

func (s *graphServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLinks returns the outgoing links of a node. Unknown nodes are dead
// ends and answer with an empty list, matching the expander contract.
func (s *graphServer) handleLinks(w http.ResponseWriter, r *http.Request) {
	node := chi.URLParam(r, "id")
	links, err := s.mem.Expand(r.Context(), node)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if links == nil {
		links = []search.Link[string]{}
	}
	writeJSON(w, http.StatusOK, links)
}

// searchRequest is the POST /search body.
type searchRequest struct {
	Start         string  `json:"start"`
	Goal          string  `json:"goal"`
	Heuristic     string  `json:"heuristic,omitempty"`
	Weight        float64 `json:"weight,omitempty"`
	MaxCost       float64 `json:"max_cost,omitempty"`
	MaxIterations int     `json:"max_iterations,omitempty"`
}

func (s *graphServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, wferrors.Wrap(wferrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	if req.Start == "" || req.Goal == "" {
		writeError(w, r, http.StatusBadRequest, wferrors.New(wferrors.ErrCodeInvalidInput, "start and goal are required"))
		return
	}

	est, err := buildEstimator(req.Heuristic, req.Weight, req.Goal, s.mem.Coord)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var opts []search.Option[string]
	if est != nil {
		opts = append(opts, search.WithEstimator(est))
	}
	if req.MaxCost > 0 {
		opts = append(opts, search.WithMaxCost[string](req.MaxCost))
	}
	if req.MaxIterations > 0 {
		opts = append(opts, search.WithMaxIterations[string](req.MaxIterations))
	}

	finder, err := search.New[string](s.mem, opts...)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	res, err := finder.FindPath(r.Context(), req.Start, req.Goal)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if res.Path == nil {
		res.Path = []search.Link[string]{}
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	loggerFromContext(r.Context()).Error("request failed", "path", r.URL.Path, "err", err)
	writeJSON(w, status, map[string]string{"error": wferrors.UserMessage(err)})
}
