package layout

import (
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
)

// Point is a position in pixels.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Positioned is a diagram node with its coordinates (top-left of its box).
type Positioned struct {
	graph.Node `bson:",inline"`
	Position   Point `json:"position" bson:"position"`
}

// Placement describes how the newest node relates to an existing one.
type Placement struct {
	RelatedID string          `json:"relatedId"`
	Relation  family.Relation `json:"relation"`
}

// Engine computes positions. It holds no state between calls, so one Engine
// may be shared.
type Engine struct {
	opts Options
}

// New creates an Engine. Zero option fields take the defaults.
func New(opts Options) *Engine {
	return &Engine{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (e *Engine) Options() Options { return e.opts }

// Layout positions every node of g. Nodes present in previous keep their
// position exactly. New nodes are placed relative to placement.RelatedID when
// that node has a previous position, otherwise at their layered coordinate.
// The result follows the order of g.Nodes.
func (e *Engine) Layout(g graph.Graph, previous []Positioned, placement *Placement) []Positioned {
	prev := make(map[string]Point, len(previous))
	for _, p := range previous {
		prev[p.ID] = p.Position
	}

	var slots map[string]Slot
	layered := func() map[string]Slot {
		if slots == nil {
			slots = e.Layered(g)
		}
		return slots
	}

	out := make([]Positioned, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		if p, ok := prev[n.ID]; ok {
			out = append(out, Positioned{Node: n, Position: p})
			continue
		}
		if placement != nil {
			if rp, ok := prev[placement.RelatedID]; ok {
				out = append(out, Positioned{Node: n, Position: e.place(g, n.ID, rp, placement, prev, layered)})
				continue
			}
		}
		out = append(out, Positioned{Node: n, Position: layered()[n.ID].At})
	}
	return out
}

func (e *Engine) place(g graph.Graph, id string, rp Point, pl *Placement, prev map[string]Point, layered func() map[string]Slot) Point {
	o := e.opts
	switch pl.Relation {
	case family.RelationParent:
		return Point{X: rp.X, Y: rp.Y - o.rankStep()}
	case family.RelationSpouse:
		return Point{X: rp.X + o.colStep(), Y: rp.Y - o.SpouseLift}
	case family.RelationChild:
		placed := 0
		if related, ok := g.Node(pl.RelatedID); ok {
			for _, c := range related.Data.Children {
				if _, ok := prev[c]; ok {
					placed++
				}
			}
		}
		return Point{X: rp.X + float64(placed)*o.colStep(), Y: rp.Y + o.rankStep()}
	default:
		s := layered()
		self, related := s[id].At, s[pl.RelatedID].At
		return Point{X: rp.X + self.X - related.X, Y: rp.Y + self.Y - related.Y}
	}
}

// Find returns the centre of the node with the given ID, for focusing a view
// on a search result.
func (e *Engine) Find(nodes []Positioned, id string) (Point, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return Point{X: n.Position.X + e.opts.NodeWidth/2, Y: n.Position.Y + e.opts.NodeHeight/2}, true
		}
	}
	return Point{}, false
}

// Bounds returns the smallest rectangle containing every node box.
func (e *Engine) Bounds(nodes []Positioned) (min, max Point) {
	for i, n := range nodes {
		x0, y0 := n.Position.X, n.Position.Y
		x1, y1 := x0+e.opts.NodeWidth, y0+e.opts.NodeHeight
		if i == 0 {
			min, max = Point{x0, y0}, Point{x1, y1}
			continue
		}
		min.X, min.Y = minf(min.X, x0), minf(min.Y, y0)
		max.X, max.Y = maxf(max.X, x1), maxf(max.Y, y1)
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
