package graph

import (
	"github.com/matzehuels/familytower/pkg/family"
)

// Build derives the diagram for reg. rootID is the member the highlight path
// searches for; highlightID, when non-empty, is where the search starts.
// Unknown IDs in relation sets are skipped.
func Build(reg *family.Registry, rootID, highlightID string) Graph {
	members := reg.All()
	byID := make(map[string]family.Member, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}

	path := highlightPath(byID, highlightID, rootID)
	highlighting := highlightID != ""

	g := Graph{
		Nodes: make([]Node, 0, len(members)),
		Edges: []Edge{},
	}
	for _, m := range members {
		g.Nodes = append(g.Nodes, Node{ID: m.ID, Data: m, Highlighted: path[m.ID]})
	}

	seen := make(map[string]bool)
	emit := func(e Edge) {
		if seen[e.ID] {
			return
		}
		seen[e.ID] = true
		g.Edges = append(g.Edges, e)
	}

	for _, m := range members {
		children := known(byID, m.Children)
		switch {
		case len(children) == 1:
			emit(parentEdge(m, children[0], path, false))
		case len(children) > 1:
			for i := 0; i+1 < len(children); i++ {
				emit(siblingEdge(byID[children[i]], byID[children[i+1]]))
			}
			emit(parentEdge(m, children[len(children)/2], path, true))
		}

		for _, sid := range m.Spouses {
			spouse, ok := byID[sid]
			if !ok || m.ID >= sid {
				continue
			}
			emit(spouseEdge(m, spouse, highlighting))
		}
	}
	return g
}

func known(byID map[string]family.Member, ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := byID[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

func parentEdge(parent family.Member, childID string, path map[string]bool, anchor bool) Edge {
	color, width, label := ColorMother, WidthMother, LabelMother
	if parent.Gender == family.Male {
		color, width, label = ColorFather, WidthFather, LabelFather
	}
	e := Edge{
		ID:     "e-" + parent.ID + "-" + childID,
		Source: parent.ID,
		Target: childID,
		Kind:   KindParent,
		Style:  Style{Stroke: color, StrokeWidth: width, Opacity: 0.3},
	}
	if path[parent.ID] && path[childID] {
		e.Highlighted = true
		e.Animated = true
		e.Style = Style{Stroke: ColorHighlight, StrokeWidth: WidthHighlight, Opacity: 1}
	} else if anchor {
		e.Label = label
	}
	return e
}

func siblingEdge(a, b family.Member) Edge {
	color := ColorSiblings
	switch {
	case a.Gender == family.Male && b.Gender == family.Male:
		color = ColorBrothers
	case a.Gender == family.Female && b.Gender == family.Female:
		color = ColorSisters
	}
	width, dash := 1.5, "3,3"
	if len(a.Spouses) > 0 || len(b.Spouses) > 0 {
		width, dash = 1, "5,5"
	}
	return Edge{
		ID:     "e-sibling-" + a.ID + "-" + b.ID,
		Source: a.ID,
		Target: b.ID,
		Kind:   KindSibling,
		Style:  Style{Stroke: color, StrokeWidth: width, Opacity: 0.25, Dasharray: dash},
	}
}

func spouseEdge(a, b family.Member, highlighting bool) Edge {
	color := ColorPartners
	if a.Gender == family.Male && b.Gender == family.Female {
		color = ColorCouple
	}
	opacity := 0.5
	if highlighting {
		opacity = 0.25
	}
	return Edge{
		ID:     "e-spouse-" + a.ID + "-" + b.ID,
		Source: a.ID,
		Target: b.ID,
		Kind:   KindSpouse,
		Label:  LabelMarried,
		Style:  Style{Stroke: color, StrokeWidth: WidthSpouse, Opacity: opacity},
	}
}

// highlightPath runs a depth-first search from start through children links
// looking for rootID and returns the members on the path found. The visited
// set is shared across branches, so each member is expanded at most once.
func highlightPath(byID map[string]family.Member, start, rootID string) map[string]bool {
	path := make(map[string]bool)
	if start == "" || rootID == "" {
		return path
	}
	visited := make(map[string]bool)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		if id == rootID {
			path[id] = true
			return true
		}
		if visited[id] {
			return false
		}
		visited[id] = true
		m, ok := byID[id]
		if !ok {
			return false
		}
		for _, c := range m.Children {
			if dfs(c) {
				path[id] = true
				path[c] = true
				return true
			}
		}
		return false
	}
	dfs(start)
	return path
}
