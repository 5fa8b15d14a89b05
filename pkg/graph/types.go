package graph

import "github.com/matzehuels/familytower/pkg/family"

// EdgeKind classifies an edge.
type EdgeKind string

const (
	KindParent  EdgeKind = "parent"
	KindSibling EdgeKind = "sibling"
	KindSpouse  EdgeKind = "spouse"
)

// Edge colours and widths.
const (
	ColorFather    = "#3b82f6"
	ColorMother    = "#ec4899"
	ColorBrothers  = "#60a5fa"
	ColorSisters   = "#f9a8d4"
	ColorSiblings  = "#a78bfa"
	ColorCouple    = "#f472b6"
	ColorPartners  = "#a855f7"
	ColorHighlight = "#7c3aed"

	WidthFather    = 2.5
	WidthMother    = 2.0
	WidthSpouse    = 3.0
	WidthHighlight = 3.0
)

// Labels attached to edges.
const (
	LabelFather  = "Father"
	LabelMother  = "Mother"
	LabelMarried = "Married"
)

// Graph is a derived diagram. It is recomputed from the registry on every
// change and never edited in place.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is one member in the diagram.
type Node struct {
	ID          string        `json:"id" bson:"id"`
	Data        family.Member `json:"data" bson:"data"`
	Highlighted bool          `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// Style holds the stroke attributes of an edge.
type Style struct {
	Stroke      string  `json:"stroke" bson:"stroke"`
	StrokeWidth float64 `json:"strokeWidth" bson:"strokeWidth"`
	Opacity     float64 `json:"opacity" bson:"opacity"`
	Dasharray   string  `json:"strokeDasharray,omitempty" bson:"strokeDasharray,omitempty"`
}

// Edge connects two members.
type Edge struct {
	ID          string   `json:"id" bson:"id"`
	Source      string   `json:"source" bson:"source"`
	Target      string   `json:"target" bson:"target"`
	Kind        EdgeKind `json:"kind" bson:"kind"`
	Label       string   `json:"label,omitempty" bson:"label,omitempty"`
	Style       Style    `json:"style" bson:"style"`
	Animated    bool     `json:"animated,omitempty" bson:"animated,omitempty"`
	Highlighted bool     `json:"highlighted,omitempty" bson:"highlighted,omitempty"`
}

// Node returns the node with the given ID.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// EdgesOfKind returns the edges of kind k in emission order.
func (g Graph) EdgesOfKind(k EdgeKind) []Edge {
	var out []Edge
	for _, e := range g.Edges {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

// Edge returns the edge with the given ID.
func (g Graph) Edge(id string) (Edge, bool) {
	for _, e := range g.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return Edge{}, false
}
