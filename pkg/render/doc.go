// Package render turns a positioned family diagram into output files.
//
// # Overview
//
// A [Diagram] is the result of the layout stage: member boxes with fixed
// coordinates plus the styled edges of the graph builder. Renderers never
// move a node; they only draw what layout decided.
//
//   - JSON: the diagram itself, for web clients ([JSON])
//   - DOT, SVG, PNG, JPG: Graphviz output (in [nodelink] subpackage)
//
// # Usage
//
//	d := render.NewDiagram(positioned, g.Edges, engine.Options())
//	svg, err := nodelink.Render(ctx, d, render.FormatSVG, nodelink.Options{})
//
// [nodelink]: github.com/matzehuels/familytower/pkg/render/nodelink
package render
