package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/wayfinder/pkg/graphio"
	"github.com/matzehuels/wayfinder/pkg/search"
)

// Options configures diagram generation.
type Options struct {
	// Costs labels every link with its cost.
	Costs bool
	// Positions pins nodes to their graph coordinates instead of letting
	// Graphviz lay them out. Requires rendering with the neato engine.
	Positions bool
}

// ToDOT converts a graph to Graphviz DOT format. When res is a successful
// search result, links on the found path are drawn bold and red, and the
// path's endpoints are filled. The resulting DOT string can be rendered
// using [RenderSVG] or [RenderPNG].
func ToDOT(g graphio.Graph, res *search.Result[string], opts Options) string {
	onPath := make(map[[2]string]bool)
	endpoints := make(map[string]bool)
	if res != nil && res.Found && len(res.Path) > 0 {
		for _, l := range res.Path {
			onPath[[2]string{l.From, l.To}] = true
		}
		endpoints[res.Path[0].From] = true
		endpoints[res.Path[len(res.Path)-1].To] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", n.ID)}
		if endpoints[n.ID] {
			attrs = append(attrs, "fillcolor=lightblue", "penwidth=2")
		}
		if opts.Positions {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"",
				strconv.FormatFloat(n.X, 'g', -1, 64),
				strconv.FormatFloat(n.Y, 'g', -1, 64)))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		var attrs []string
		if opts.Costs {
			attrs = append(attrs, fmt.Sprintf("label=%q", strconv.FormatFloat(l.Cost, 'g', -1, 64)))
		}
		if onPath[[2]string{l.From, l.To}] {
			attrs = append(attrs, "color=red", "penwidth=2.5")
		} else {
			attrs = append(attrs, "color=grey")
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", l.From, l.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
