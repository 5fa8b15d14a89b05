package transform

import "github.com/matzehuels/familytower/pkg/dag"

// BreakCycles drops the edges that close a parent/child loop, which only a
// hand-edited snapshot can contain. The walk starts from the sources, then
// from any node left over, in insertion order, and uses an explicit stack
// so deep lineages cannot exhaust the goroutine stack. It returns the
// number of edges removed.
func BreakCycles(g *dag.DAG) int {
	type frame struct {
		id       string
		children []string
	}

	onPath := make(map[string]bool)
	done := make(map[string]bool)
	var loops []dag.Edge

	walk := func(start string) {
		if done[start] {
			return
		}
		stack := []frame{{start, g.Children(start)}}
		onPath[start] = true
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if len(top.children) == 0 {
				onPath[top.id] = false
				done[top.id] = true
				stack = stack[:len(stack)-1]
				continue
			}
			next := top.children[0]
			top.children = top.children[1:]
			switch {
			case onPath[next]:
				loops = append(loops, dag.Edge{From: top.id, To: next})
			case !done[next]:
				onPath[next] = true
				stack = append(stack, frame{next, g.Children(next)})
			}
		}
	}

	for _, n := range g.Sources() {
		walk(n.ID)
	}
	for _, n := range g.Nodes() {
		walk(n.ID)
	}

	for _, e := range loops {
		g.RemoveEdge(e.From, e.To)
	}
	return len(loops)
}
