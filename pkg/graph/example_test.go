package graph_test

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
)

func ExampleBuild() {
	m := family.NewMutator(nil, func() func() string {
		n := 0
		return func() string { n++; return fmt.Sprintf("m%d", n) }
	}())
	reg, root, lineage, _ := m.AddRoot(family.NewRegistry(), family.Draft{Surname: "Doe", BirthYear: "1990", Gender: family.Male})
	reg, dad, _ := m.Add(reg, family.Draft{FirstName: "John", BirthYear: "1960", Gender: family.Male}, family.RelationParent, root.ID)
	reg, _, _ = m.Add(reg, family.Draft{FirstName: "Mary", BirthYear: "1962"}, family.RelationSpouse, dad.ID)

	g := graph.Build(reg, lineage.RootID, dad.ID)
	for _, e := range g.Edges {
		fmt.Println(e.ID, e.Kind, e.Highlighted)
	}
	// Output:
	// e-m2-m1 parent true
	// e-spouse-m2-m3 spouse false
	// e-m3-m1 parent false
}
