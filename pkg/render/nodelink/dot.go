package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/render"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds the bio line to member labels.
	Detailed bool
	// CurrentYear, when set, adds ages to labels.
	CurrentYear int
}

// Box fills by gender.
const (
	fillMale      = "#dbeafe"
	fillFemale    = "#fce7f3"
	fillOther     = "#ede9fe"
	fillHighlight = "#ddd6fe"
)

// ToDOT converts a diagram to Graphviz DOT with pinned node positions.
func ToDOT(d render.Diagram, opts Options) string {
	w, h := d.NodeWidth, d.NodeHeight
	if w <= 0 || h <= 0 {
		w, h = 200, 100
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  splines=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fixedsize=true, width=%s, height=%s, fontsize=14, fontname=\"Helvetica\", pin=true];\n",
		inches(w), inches(h))
	buf.WriteString("  edge [fontsize=11, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes {
		attrs := []string{
			fmt.Sprintf("label=%q", label(n.Data, opts)),
			fmt.Sprintf("pos=\"%s,%s!\"", num(n.Position.X+w/2), num(-(n.Position.Y + h/2))),
			fmt.Sprintf("fillcolor=%q", fill(n.Data.Gender, n.Highlighted)),
		}
		if n.Highlighted {
			attrs = append(attrs, fmt.Sprintf("color=%q", graph.ColorHighlight), "penwidth=3")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %q -- %q [%s];\n", e.Source, e.Target, strings.Join(edgeAttrs(e), ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func label(m family.Member, opts Options) string {
	lines := []string{m.DisplayName()}
	if years := lifespan(m); years != "" {
		if age, ok := m.Age(opts.CurrentYear); ok && opts.CurrentYear > 0 {
			years += fmt.Sprintf(" (%d)", age)
		}
		lines = append(lines, years)
	}
	if opts.Detailed && m.Bio != "" {
		lines = append(lines, truncate(m.Bio, 40))
	}
	return strings.Join(lines, "\n")
}

func lifespan(m family.Member) string {
	switch {
	case m.BirthYear == "":
		return ""
	case m.DeathYear != "":
		return m.BirthYear + " - " + m.DeathYear
	default:
		return "b. " + m.BirthYear
	}
}

func edgeAttrs(e graph.Edge) []string {
	attrs := []string{
		fmt.Sprintf("id=%q", e.ID),
		fmt.Sprintf("color=%q", withOpacity(e.Style.Stroke, e.Style.Opacity)),
		fmt.Sprintf("penwidth=%s", num(e.Style.StrokeWidth)),
	}
	if e.Style.Dasharray != "" {
		attrs = append(attrs, "style=dashed")
	}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	return attrs
}

func fill(g family.Gender, highlighted bool) string {
	switch {
	case highlighted:
		return fillHighlight
	case g == family.Male:
		return fillMale
	case g == family.Female:
		return fillFemale
	default:
		return fillOther
	}
}

// withOpacity appends an alpha channel to a #rrggbb colour.
func withOpacity(color string, opacity float64) string {
	if len(color) != 7 || color[0] != '#' || opacity <= 0 || opacity >= 1 {
		return color
	}
	return fmt.Sprintf("%s%02x", color, int(opacity*255+0.5))
}

func inches(px float64) string { return num(px / 72) }

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}

// Render draws d in the given format. JSON and DOT need no Graphviz run.
func Render(ctx context.Context, d render.Diagram, f render.Format, opts Options) ([]byte, error) {
	switch f {
	case render.FormatJSON:
		return render.JSON(d)
	case render.FormatDOT:
		return []byte(ToDOT(d, opts)), nil
	case render.FormatSVG:
		return RenderSVG(ctx, ToDOT(d, opts))
	case render.FormatPNG:
		return renderDOT(ctx, ToDOT(d, opts), graphviz.PNG)
	case render.FormatJPG:
		return renderDOT(ctx, ToDOT(d, opts), graphviz.JPG)
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// RenderSVG renders DOT source to SVG with a normalized viewBox.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
