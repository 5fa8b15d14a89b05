package render

import (
	"encoding/json"
	"strings"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/layout"
)

// Format is an output format.
type Format string

const (
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPG  Format = "jpg"
)

// Formats lists every supported format.
var Formats = []Format{FormatSVG, FormatPNG, FormatJPG, FormatDOT, FormatJSON}

// ParseFormat parses a format name, accepting "jpeg" for JPG.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatDOT, FormatSVG, FormatPNG, FormatJPG:
		return f, nil
	case "jpeg":
		return FormatJPG, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (want svg, png, jpg, dot or json)", s)
	}
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPG:
		return "image/jpeg"
	default:
		return "text/vnd.graphviz"
	}
}

// Diagram is a positioned diagram ready to draw.
type Diagram struct {
	Nodes      []layout.Positioned `json:"nodes"`
	Edges      []graph.Edge        `json:"edges"`
	NodeWidth  float64             `json:"nodeWidth"`
	NodeHeight float64             `json:"nodeHeight"`
}

// NewDiagram bundles layout output with the edges it was computed for.
func NewDiagram(nodes []layout.Positioned, edges []graph.Edge, opts layout.Options) Diagram {
	return Diagram{Nodes: nodes, Edges: edges, NodeWidth: opts.NodeWidth, NodeHeight: opts.NodeHeight}
}

// JSON encodes the diagram.
func JSON(d Diagram) ([]byte, error) {
	if d.Nodes == nil {
		d.Nodes = []layout.Positioned{}
	}
	if d.Edges == nil {
		d.Edges = []graph.Edge{}
	}
	return json.MarshalIndent(d, "", "  ")
}
