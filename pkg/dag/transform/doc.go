// Package transform ranks a generation graph and prepares it for ordering.
//
// # Layer Assignment
//
// [AssignLayers] places every node one row below its deepest parent using a
// longest-path topological traversal. [PullSources] then moves members with
// no recorded parents (typically people who married into the family) down to
// sit directly above their highest child, instead of floating at the top.
//
// # Row Alignment
//
// Spouses are not connected by parent/child edges, yet they belong on the
// same generation row. [AlignRows] takes groups of nodes that must share a
// row and pushes each group to its deepest member, re-propagating the
// parent-above-child constraint until nothing moves.
//
// # Edge Subdivision
//
// [Subdivide] breaks parent/child edges spanning several rows into chains of
// single-row hops through synthetic subdivider nodes:
//
//	Before: grandpa (row 0) → you (row 2)
//	After:  grandpa → grandpa_sub_1 → you
//
// # Cycle Breaking
//
// [BreakCycles] removes back edges so a malformed snapshot cannot stall the
// layering.
//
// # Usage
//
// [Rank] applies the whole sequence:
//
//	transform.Rank(g, spouseGroups)
package transform

import "github.com/matzehuels/familytower/pkg/dag"

// Rank breaks cycles, assigns rows, aligns groups and subdivides long edges.
// It modifies g in place and returns it.
func Rank(g *dag.DAG, groups [][]string) *dag.DAG {
	BreakCycles(g)
	AssignLayers(g)
	PullSources(g)
	AlignRows(g, groups)
	Subdivide(g)
	return g
}
