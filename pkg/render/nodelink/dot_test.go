package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/render"
)

func diagram() render.Diagram {
	nodes := []layout.Positioned{
		{Node: graph.Node{ID: "m1", Data: family.Member{ID: "m1", FullName: "You Doe", BirthYear: "1990", Gender: family.Male}}, Position: layout.Point{X: 200, Y: 270}},
		{Node: graph.Node{ID: "m2", Data: family.Member{ID: "m2", FullName: "John Doe", BirthYear: "1930", DeathYear: "2001", Gender: family.Male, Bio: "Carpenter"}, Highlighted: true}, Position: layout.Point{X: 50, Y: 50}},
	}
	edges := []graph.Edge{{
		ID: "e-m2-m1", Source: "m2", Target: "m1", Kind: graph.KindParent, Label: "Father",
		Style: graph.Style{Stroke: graph.ColorFather, StrokeWidth: 2.5, Opacity: 0.3},
	}, {
		ID: "e-sibling-m1-m3", Source: "m1", Target: "m3", Kind: graph.KindSibling,
		Style: graph.Style{Stroke: graph.ColorSiblings, StrokeWidth: 1.5, Opacity: 1, Dasharray: "3,3"},
	}}
	return render.NewDiagram(nodes, edges, layout.DefaultOptions())
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(diagram(), Options{CurrentYear: 2024})

	for _, want := range []string{
		"layout=neato;",
		"inputscale=72;",
		`"m1" [label="You Doe\nb. 1990 (34)", pos="300,-320!"`,
		`"m2" [label="John Doe\n1930 - 2001 (71)", pos="150,-100!"`,
		`color="#7c3aed", penwidth=3`,
		`"m2" -- "m1" [id="e-m2-m1", color="#3b82f64d", penwidth=2.5, label="Father"]`,
		`"m1" -- "m3" [id="e-sibling-m1-m3", color="#a78bfa", penwidth=1.5, style=dashed]`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "Carpenter") {
		t.Error("bio should only appear in detailed mode")
	}
	if !strings.Contains(ToDOT(diagram(), Options{Detailed: true}), "Carpenter") {
		t.Error("detailed mode should include the bio")
	}
}

func TestWithOpacity(t *testing.T) {
	tests := []struct {
		color   string
		opacity float64
		want    string
	}{
		{"#3b82f6", 1, "#3b82f6"},
		{"#3b82f6", 0.5, "#3b82f680"},
		{"#3b82f6", 0, "#3b82f6"},
		{"red", 0.5, "red"},
	}
	for _, tt := range tests {
		if got := withOpacity(tt.color, tt.opacity); got != tt.want {
			t.Errorf("withOpacity(%q, %v) = %q, want %q", tt.color, tt.opacity, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("got %q", got)
	}
	if got := truncate("abcdefghijkl", 5); got != "abcd…" {
		t.Errorf("got %q", got)
	}
}

func TestRenderFormatsWithoutGraphviz(t *testing.T) {
	ctx := context.Background()
	dot, err := Render(ctx, diagram(), render.FormatDOT, Options{})
	if err != nil || !bytes.HasPrefix(dot, []byte("graph G {")) {
		t.Errorf("dot = %.20s, %v", dot, err)
	}
	js, err := Render(ctx, diagram(), render.FormatJSON, Options{})
	if err != nil || !bytes.Contains(js, []byte(`"e-m2-m1"`)) {
		t.Errorf("json = %.40s, %v", js, err)
	}
	if _, err := Render(ctx, diagram(), render.Format("pdf"), Options{}); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering skipped in short mode")
	}
	svg, err := Render(context.Background(), diagram(), render.FormatSVG, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("You Doe")) {
		t.Errorf("unexpected SVG: %.200s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 300.50 200.25" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300.50 200.25" width="300" height="200"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox = %s", out)
	}
}
