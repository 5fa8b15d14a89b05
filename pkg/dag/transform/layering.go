package transform

import "github.com/matzehuels/familytower/pkg/dag"

// AssignLayers assigns each node to one row below its deepest parent.
//
// It runs Kahn's algorithm: sources start at row 0 and every child is pushed
// to max(parent.Row+1). Existing rows are overwritten. Nodes on a cycle never
// reach in-degree zero and stay at row 0, so run [BreakCycles] first.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) {
	rows := make(map[string]int, g.NodeCount())
	for _, id := range topoOrder(g) {
		for _, child := range g.Children(id) {
			if row := rows[id] + 1; row > rows[child] {
				rows[child] = row
			}
		}
	}
	g.SetRows(rows)
}

// PullSources moves each node without parents down to one row above its
// highest child. Nodes without children stay where they are.
func PullSources(g *dag.DAG) {
	rows := g.Rows()
	for _, n := range g.Sources() {
		children := g.Children(n.ID)
		if len(children) == 0 {
			continue
		}
		highest := rows[children[0]]
		for _, c := range children[1:] {
			highest = min(highest, rows[c])
		}
		if target := highest - 1; target > rows[n.ID] {
			rows[n.ID] = target
		}
	}
	g.SetRows(rows)
}

// AlignRows forces the members of each group onto a common row, the deepest
// row any of them occupies, and pushes descendants down to keep every child
// below its parents. It repeats until stable, bounded by the node count so
// inconsistent input (a member grouped with its own descendant) terminates.
// Rows are finally shifted so the top row is 0.
func AlignRows(g *dag.DAG, groups [][]string) {
	rows := g.Rows()
	order := topoOrder(g)

	for range g.NodeCount() + 1 {
		changed := false
		for _, group := range groups {
			deepest := -1
			for _, id := range group {
				if r, ok := rows[id]; ok && r > deepest {
					deepest = r
				}
			}
			for _, id := range group {
				if r, ok := rows[id]; ok && r < deepest {
					rows[id] = deepest
					changed = true
				}
			}
		}
		for _, id := range order {
			for _, c := range g.Children(id) {
				if rows[c] < rows[id]+1 {
					rows[c] = rows[id] + 1
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	if len(rows) > 0 {
		top := -1
		for _, r := range rows {
			if top < 0 || r < top {
				top = r
			}
		}
		for id := range rows {
			rows[id] -= top
		}
	}
	g.SetRows(rows)
}

// topoOrder returns node IDs in Kahn order, seeded in insertion order.
// Nodes on a cycle are omitted.
func topoOrder(g *dag.DAG) []string {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		d := g.InDegree(n.ID)
		inDegree[n.ID] = d
		if d == 0 {
			queue = append(queue, n.ID)
		}
	}

	order := make([]string, 0, len(nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)
		for _, child := range g.Children(curr) {
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}
	return order
}
