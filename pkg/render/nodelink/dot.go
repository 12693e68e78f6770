package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pathmaker/pkg/errors"
	"github.com/matzehuels/pathmaker/pkg/pathgraph"
	"github.com/matzehuels/pathmaker/pkg/render"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws each waypoint as a circle labeled with its id.
	// When false, waypoints are plain dots.
	Labels bool

	// Scale multiplies every coordinate. Zero means 1.
	Scale float64

	// Background is the canvas color. Empty means transparent.
	Background string
}

// ToDOT converts a bundle to Graphviz DOT format.
//
// Every path is walked from its root with [pathgraph.Path.Traverse], so
// waypoints that are not reachable from their root are left out, as they
// would be on screen. Each linked pair is emitted once. An edge that does
// not resolve fails the conversion.
func ToDOT(b *pathgraph.Bundle, opts Options) (string, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}
	bg := opts.Background
	if bg == "" {
		bg = "transparent"
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=false;\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fontcolor=black, fontsize=8, width=0.25, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.12];\n")
	}
	buf.WriteString("  edge [penwidth=2];\n")

	for i, p := range b.Paths() {
		color := render.Hex(render.Color(i))
		fmt.Fprintf(&buf, "\n  // path %d\n", i)

		var edges [][2]int
		seen := make(map[[2]int]bool)
		err := p.Traverse(pathgraph.VisitFuncs{
			Waypoint: func(w *pathgraph.Waypoint) {
				attrs := fmt.Sprintf("pos=\"%s,%s!\", color=%q, fillcolor=%q",
					fmtCoord(float64(w.X)*scale), fmtCoord(-float64(w.Y)*scale), color, color)
				if opts.Labels {
					attrs += fmt.Sprintf(", label=\"%d\"", w.ID)
				}
				fmt.Fprintf(&buf, "  %s [%s];\n", nodeName(i, w.ID), attrs)
			},
			Edge: func(from, to *pathgraph.Waypoint) {
				key := [2]int{min(from.ID, to.ID), max(from.ID, to.ID)}
				if key[0] == key[1] || seen[key] {
					return
				}
				seen[key] = true
				edges = append(edges, key)
			},
		})
		if err != nil {
			return "", errors.Wrap(errors.GetCode(err), err, "path %d", i)
		}
		for _, e := range edges {
			fmt.Fprintf(&buf, "  %s -- %s [color=%q];\n", nodeName(i, e[0]), nodeName(i, e[1]), color)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func nodeName(path, id int) string {
	return "p" + strconv.Itoa(path) + "_w" + strconv.Itoa(id)
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine,
// which honors the pinned positions produced by [ToDOT].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render converts b to SVG in one step.
func Render(ctx context.Context, b *pathgraph.Bundle, opts Options) ([]byte, error) {
	dot, err := ToDOT(b, opts)
	if err != nil {
		return nil, err
	}
	return RenderSVG(ctx, dot)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's fixed-size svg tag with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
