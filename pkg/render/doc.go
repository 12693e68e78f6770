// Package render provides drawing helpers shared by the map renderers.
//
// # Overview
//
// Each path of a bundle is drawn in its own color. [Color] maps a path's
// position in the bundle to one of seven fully saturated colors, cycling
// for larger bundles:
//
//	0 blue, 1 green, 2 cyan, 3 red, 4 magenta, 5 yellow, 6 white
//
// # Node-Link Diagrams
//
// The [nodelink] subpackage renders a bundle with Graphviz, keeping every
// waypoint at its stored position:
//
//	dot, err := nodelink.ToDOT(b, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/pathmaker/pkg/render/nodelink
package render
