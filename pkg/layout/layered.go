package layout

import (
	"slices"

	"github.com/matzehuels/familytower/pkg/dag"
	"github.com/matzehuels/familytower/pkg/dag/transform"
	"github.com/matzehuels/familytower/pkg/graph"
)

// Slot is a node's place in the layered drawing.
type Slot struct {
	Rank int   `json:"rank"`
	Col  int   `json:"col"`
	At   Point `json:"at"`
}

// Layered runs the layered pass and returns a slot for every member node.
// Synthetic waypoints are used for spacing but not returned.
func (e *Engine) Layered(g graph.Graph) map[string]Slot {
	d := dag.New()
	known := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if known[n.ID] {
			continue
		}
		known[n.ID] = true
		_ = d.AddNode(dag.Node{ID: n.ID})
	}
	spouses := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, c := range n.Data.Children {
			if known[c] {
				_ = d.AddEdge(dag.Edge{From: n.ID, To: c})
			}
		}
		for _, s := range n.Data.Spouses {
			if known[s] && s != n.ID {
				spouses[n.ID] = append(spouses[n.ID], s)
			}
		}
	}

	transform.Rank(d, spouseGroups(g, spouses))
	orders := e.opts.Orderer.OrderRows(d)

	widest := 0
	for r, ids := range orders {
		orders[r] = pullSpousesTogether(ids, spouses)
		widest = max(widest, len(orders[r]))
	}

	slots := make(map[string]Slot, len(g.Nodes))
	for r, ids := range orders {
		offset := float64(widest-len(ids)) * e.opts.colStep() / 2
		for col, id := range ids {
			if !known[id] {
				continue
			}
			slots[id] = Slot{
				Rank: r,
				Col:  col,
				At: Point{
					X: e.opts.MarginX + offset + float64(col)*e.opts.colStep(),
					Y: e.opts.MarginY + float64(r)*e.opts.rankStep(),
				},
			}
		}
	}
	return slots
}

// spouseGroups returns connected components of the spouse relation, in order
// of first appearance. Singletons are omitted.
func spouseGroups(g graph.Graph, spouses map[string][]string) [][]string {
	seen := make(map[string]bool)
	var groups [][]string
	for _, n := range g.Nodes {
		if seen[n.ID] || len(spouses[n.ID]) == 0 {
			continue
		}
		var group []string
		stack := []string{n.ID}
		seen[n.ID] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			group = append(group, id)
			for _, s := range spouses[id] {
				if !seen[s] {
					seen[s] = true
					stack = append(stack, s)
				}
			}
		}
		groups = append(groups, group)
	}
	return groups
}

// pullSpousesTogether moves each member's spouses in the same row to directly
// after it, keeping the first-seen partner in place.
func pullSpousesTogether(row []string, spouses map[string][]string) []string {
	inRow := make(map[string]bool, len(row))
	for _, id := range row {
		inRow[id] = true
	}
	placed := make(map[string]bool, len(row))
	out := make([]string, 0, len(row))

	var place func(id string)
	place = func(id string) {
		placed[id] = true
		out = append(out, id)
		for _, s := range spouses[id] {
			if inRow[s] && !placed[s] {
				place(s)
			}
		}
	}
	for _, id := range row {
		if !placed[id] {
			place(id)
		}
	}
	if slices.Equal(out, row) {
		return row
	}
	return out
}
