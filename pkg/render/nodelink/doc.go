// Package nodelink draws a positioned family diagram with Graphviz.
//
// # Overview
//
// [ToDOT] emits DOT source in which every member box is pinned at the
// coordinate chosen by the layout engine (neato with pin=true), so Graphviz
// only routes edges. Edge colour, width and dash pattern come from the graph
// builder's styles.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// or, for any supported format:
//
//	out, err := nodelink.Render(ctx, d, render.FormatPNG, nodelink.Options{Detailed: true})
//
// # Coordinates
//
// Layout coordinates are the top-left corner of a box with y growing down.
// DOT positions are box centres in points with y growing up, so y is
// negated and half the box size added.
package nodelink
