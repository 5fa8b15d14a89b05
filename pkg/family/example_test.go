package family_test

import (
	"fmt"

	"github.com/matzehuels/familytower/pkg/family"
)

func seqIDs() family.IDFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("user_%d", n)
	}
}

func ExampleMutator_Add() {
	m := family.NewMutator(nil, seqIDs())

	reg, root, lineage, _ := m.AddRoot(family.NewRegistry(), family.Draft{
		FirstName: "Alex", Surname: "Doe", BirthYear: "1990", Gender: family.Male,
	})
	reg, dad, _ := m.Add(reg, family.Draft{
		FirstName: "John", Surname: "Smith", BirthYear: "1960", Gender: family.Male,
	}, family.RelationParent, root.ID)

	root, _ = reg.Get(root.ID)
	fmt.Println("Root:", root.FullName)
	fmt.Println("Lineage surname:", lineage.Surname)
	fmt.Println("Father:", dad.FullName)
	fmt.Println("Root parents:", root.Parents)
	// Output:
	// Root: You Doe
	// Lineage surname: Doe
	// Father: John Doe
	// Root parents: [user_2]
}

func ExampleMember_Age() {
	m := family.Member{BirthYear: "1920", DeathYear: "1999"}
	age, _ := m.Age(2024)
	fmt.Println(age, m.IsLiving())
	// Output: 79 false
}
