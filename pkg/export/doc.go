// Package export renders graphs and search results as node-link diagrams.
//
// # Overview
//
// This package produces directed graph visualizations using Graphviz, where
// nodes appear as circles connected by arrows. When a search result is
// supplied, the links on the found path are drawn bold and the start and
// goal nodes are filled, so the route stands out against the full graph.
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG or PNG:
//
//	dot := export.ToDOT(g, &res, export.Options{Costs: true})
//	svg, err := export.RenderSVG(dot)
//	png, err := export.RenderPNG(dot)
//
// The generated DOT can also be saved and processed with external Graphviz
// tools, or customized before rendering.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
package export
