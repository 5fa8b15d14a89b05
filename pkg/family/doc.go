// Package family holds the genealogical data model: members, the id-keyed
// registry that owns them, and the mutator that attaches new relatives.
//
// # Registry
//
// [Registry] is an arena of [Member] values keyed by ID. Relations are ID sets
// on each member (Parents, Spouses, Children), so the naturally cyclic family
// structure never needs back-pointers. Reads return deep copies.
//
// # Mutator
//
// [Mutator] is the only way members are created. [Mutator.AddRoot] starts a
// tree and returns its [Lineage]; [Mutator.Add] attaches a relative and wires
// both ends of every relation:
//
//   - parent: the new member becomes a parent of the target and takes its surname
//   - child: the new member takes the target's surname and both the target and
//     its first spouse as parents
//   - spouse: the new member takes the opposite gender and adopts the target's
//     children, keeping its own surname
//
// Every operation works on a clone, so a rejected call leaves the input
// registry as it was. Validation is plugged in through [CheckFunc]; see
// package rules.
//
//	m := family.NewMutator(nil, nil)
//	reg, root, lineage, _ := m.AddRoot(family.NewRegistry(), family.Draft{Surname: "Doe", BirthYear: "1990"})
//	reg, dad, _ := m.Add(reg, family.Draft{FirstName: "John", BirthYear: "1960", Gender: family.Male}, family.RelationParent, root.ID)
package family
