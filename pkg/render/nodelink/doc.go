// Package nodelink renders path bundles as node-link diagrams.
//
// # Overview
//
// Waypoints are drawn as dots pinned to their stored coordinates and linked
// waypoints are joined by a line, one line per linked pair. Each path gets
// its color from [render.Color] by its position in the bundle.
//
// # Usage
//
// Convert a bundle to DOT format, then render to SVG:
//
//	dot, err := nodelink.ToDOT(b, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces an undirected Graphviz graph for the neato
// engine with pinned positions (pos="x,y!"). Screen coordinates grow
// downward, so y is negated. The output can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools (neato -n2)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering, so no Graphviz installation is required.
package nodelink
