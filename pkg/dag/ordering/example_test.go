package ordering_test

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/dag"
	"github.com/matzehuels/familytower/pkg/dag/ordering"
)

func ExampleBarycentric() {
	// Two brothers whose children were inserted in the "wrong" order.
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "dad", Row: 0})
	_ = g.AddNode(dag.Node{ID: "uncle", Row: 0})
	_ = g.AddNode(dag.Node{ID: "cousin", Row: 1})
	_ = g.AddNode(dag.Node{ID: "you", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "dad", To: "you"})
	_ = g.AddEdge(dag.Edge{From: "uncle", To: "cousin"})

	fmt.Println("Before:", dag.CountLayerCrossings(g, []string{"dad", "uncle"}, []string{"cousin", "you"}))

	orders := ordering.Barycentric{}.OrderRows(g)
	fmt.Println("After:", dag.CountCrossings(g, orders))
	// Output:
	// Before: 1
	// After: 0
}
