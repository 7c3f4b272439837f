package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wayfinder/pkg/errors"
	"github.com/matzehuels/wayfinder/pkg/export"
	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
	"github.com/matzehuels/wayfinder/pkg/source"
)

// Output formats for the export command.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	graph     string // JSON graph file (rendering needs the full graph)
	output    string // output path, extension replaced per format
	formats   string // comma-separated output formats
	heuristic string
	weight    float64
	costs     bool // label links with costs
	positions bool // pin nodes to their coordinates
}

// exportCommand creates the export command for rendering searches as diagrams.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{weight: 1}

	cmd := &cobra.Command{
		Use:   "export <start> <goal>",
		Short: "Render a search as a node-link diagram",
		Long: `Export runs a search over a graph file and renders the graph with the
found path highlighted. Output formats: dot, svg, png (comma-separated).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), opts, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", "", "JSON graph file to search (required)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <graph>.<format>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", formatSVG, "output format(s): dot, svg, png")
	cmd.Flags().StringVar(&opts.heuristic, "heuristic", "none", "goal estimator: euclidean, manhattan, none")
	cmd.Flags().Float64Var(&opts.weight, "weight", 1, "estimator scale factor")
	cmd.Flags().BoolVar(&opts.costs, "costs", true, "label links with their costs")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "pin nodes to their graph coordinates")
	_ = cmd.MarkFlagRequired("graph")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, opts exportOpts, start, goal string) error {
	formats := strings.Split(opts.formats, ",")
	for _, f := range formats {
		switch f {
		case formatDOT, formatSVG, formatPNG:
		default:
			return errors.New(errors.ErrCodeUnsupported, "unknown format %q (dot, svg, png)", f)
		}
	}

	g, err := graphio.ReadFile(opts.graph)
	if err != nil {
		return err
	}
	mem := source.NewMemory(g)

	est, err := buildEstimator(opts.heuristic, opts.weight, goal, mem.Coord)
	if err != nil {
		return err
	}
	var fopts []search.Option[string]
	if est != nil {
		fopts = append(fopts, search.WithEstimator(est))
	}
	finder, err := search.New[string](mem, fopts...)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	res, err := finder.FindPath(ctx, start, goal)
	if err != nil {
		return err
	}
	if !res.Found {
		printWarning("No path from %s to %s; rendering the bare graph", start, goal)
	}
	prog.done(fmt.Sprintf("Searched %s %s %s", start, iconArrow, goal))

	dot := export.ToDOT(g, &res, export.Options{Costs: opts.costs, Positions: opts.positions})

	base := opts.output
	if base == "" {
		base = strings.TrimSuffix(opts.graph, filepath.Ext(opts.graph))
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}

	for _, f := range formats {
		data, err := renderFormat(dot, f)
		if err != nil {
			return err
		}
		path := base + "." + f
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

func renderFormat(dot, format string) ([]byte, error) {
	switch format {
	case formatDOT:
		return []byte(dot), nil
	case formatSVG:
		return export.RenderSVG(dot)
	default:
		return export.RenderPNG(dot)
	}
}
