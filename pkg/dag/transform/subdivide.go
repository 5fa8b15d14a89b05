package transform

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/dag"
)

// Subdivide replaces every edge spanning more than one row with a chain of
// [dag.NodeKindSubdivider] nodes, one per intermediate row. Afterwards every
// edge joins consecutive rows and [dag.DAG.Validate] passes for acyclic input.
//
// Subdivider IDs have the form "master_sub_row" (e.g. "grandpa_sub_1"), with
// a numeric suffix appended on collision.
func Subdivide(g *dag.DAG) {
	gen := newIDGen(g.Nodes())

	var long []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Row <= src.Row+1 {
			continue
		}
		long = append(long, e)

		prev := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			id := gen.next(src.ID, row)
			mustAdd(g.AddNode(dag.Node{ID: id, Row: row, Kind: dag.NodeKindSubdivider, MasterID: src.ID}))
			mustAdd(g.AddEdge(dag.Edge{From: prev, To: id}))
			prev = id
		}
		mustAdd(g.AddEdge(dag.Edge{From: prev, To: dst.ID}))
	}

	for _, e := range long {
		g.RemoveEdge(e.From, e.To)
	}
}

// mustAdd panics on an error that fresh, generated IDs cannot produce.
func mustAdd(err error) {
	if err != nil {
		panic(err)
	}
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, row int) string {
	prefix := fmt.Sprintf("%s_sub_%d", base, row)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
