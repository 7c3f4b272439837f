package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wayfinder/pkg/observability"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// searchOpts holds the command-line flags for the search command.
type searchOpts struct {
	sourceOpts
	heuristic     string  // estimator: "euclidean", "manhattan", or "none"
	weight        float64 // estimator scale factor
	maxCost       float64 // abandon routes costing more than this
	maxIterations int     // abort after this many expansions
}

// searchCommand creates the search command, the main entry point of the CLI.
func (c *CLI) searchCommand() *cobra.Command {
	var opts searchOpts

	cmd := &cobra.Command{
		Use:   "search <start> <goal>",
		Short: "Find the cheapest path between two nodes",
		Long: `Search runs a best-first path search from start to goal against the
selected graph source. With --heuristic the search is goal-directed
(requires node positions, so a --graph file source); without one it
explores by cost alone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), opts, args[0], args[1])
		},
	}

	opts.sourceOpts.register(cmd)
	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "none", "goal estimator: euclidean, manhattan, none")
	cmd.Flags().Float64Var(&opts.weight, "weight", 1, "estimator scale factor (>1 trades optimality for speed)")
	cmd.Flags().Float64Var(&opts.maxCost, "max-cost", 0, "abandon routes above this cost (0 = unlimited)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", 0, "abort after this many expansions (0 = unlimited)")

	return cmd
}

func (c *CLI) runSearch(ctx context.Context, opts searchOpts, start, goal string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	observability.SetSearchHooks(searchLogHooks{logger: c.Logger})

	src, err := c.openSource(ctx, cfg, opts.sourceOpts)
	if err != nil {
		return err
	}
	defer src.close()

	finder, err := c.newFinder(cfg, opts, goal, src)
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	hooks := observability.Search()
	hooks.OnSearchStart(ctx, runID, start, goal)

	spinner := newSpinner(ctx, "Searching "+start+" "+iconArrow+" "+goal)
	spinner.Start()
	began := time.Now()
	res, err := finder.FindPath(ctx, start, goal)
	spinner.Stop()
	hooks.OnSearchComplete(ctx, runID, res.Found, res.Iterations, time.Since(began), err)
	if err != nil {
		return err
	}

	if !res.Found {
		printWarning("No path from %s to %s (%d iterations)", start, goal, res.Iterations)
		return nil
	}
	printPath(res, start)
	return nil
}

// newFinder assembles a search engine from the flags of a command, falling
// back to the config file's search defaults for unset limits.
func (c *CLI) newFinder(cfg Config, opts searchOpts, goal string, src *openedSource) (*search.Finder[string], error) {
	est, err := buildEstimator(opts.heuristic, opts.weight, goal, src.coords)
	if err != nil {
		return nil, err
	}

	var fopts []search.Option[string]
	if est != nil {
		fopts = append(fopts, search.WithEstimator(est))
	}
	if limit := firstNonZero(opts.maxCost, cfg.Search.MaxCost); limit > 0 {
		fopts = append(fopts, search.WithMaxCost[string](limit))
	}
	if n := firstNonZeroInt(opts.maxIterations, cfg.Search.MaxIterations); n > 0 {
		fopts = append(fopts, search.WithMaxIterations[string](n))
	}
	return search.New[string](src.expander, fopts...)
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func firstNonZeroInt(vals ...int) int {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

// searchLogHooks logs search lifecycle events at debug level.
type searchLogHooks struct {
	logger *log.Logger
}

func (h searchLogHooks) OnSearchStart(_ context.Context, runID, start, goal string) {
	h.logger.Debug("search started", "run", runID, "start", start, "goal", goal)
}

func (h searchLogHooks) OnSearchComplete(_ context.Context, runID string, found bool, iterations int, elapsed time.Duration, err error) {
	if err != nil {
		h.logger.Debug("search failed", "run", runID, "iterations", iterations, "elapsed", elapsed, "err", err)
		return
	}
	h.logger.Debug("search complete", "run", runID, "found", found, "iterations", iterations, "elapsed", elapsed)
}
