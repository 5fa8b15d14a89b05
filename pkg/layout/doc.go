// Package layout assigns 2D coordinates to a family diagram and keeps them
// stable across incremental edits.
//
// # Layered Pass
//
// [Engine.Layered] runs a Sugiyama-style pass over the generation graph:
//
//  1. Parent→child relations become edges of a [dag.DAG]; spouses form
//     groups that must share a row.
//  2. [transform.Rank] assigns generations, aligns spouses and subdivides
//     edges that skip generations.
//  3. An [ordering.Orderer] (barycentric with transpose by default) orders
//     each row to reduce crossings, then spouses are pulled next to each
//     other.
//  4. Columns and ranks map to pixels: rows are centred on the widest row,
//     separated by NodeSep horizontally and RankSep vertically.
//
// Coordinates are the top-left corner of a NodeWidth×NodeHeight box.
//
// # Sticky Positions
//
// [Engine.Layout] reuses the position of every node present in the previous
// layout verbatim, so the diagram does not reshuffle after each add. A new
// node is placed next to its relative when a [Placement] is given and the
// relative already has a position:
//
//   - parent: one rank above
//   - spouse: one column to the right, lifted slightly
//   - child: one rank below, shifted right past siblings already placed
//
// Without a placement, or when the relative is new too, the layered
// coordinate is used.
//
// [dag.DAG]: github.com/matzehuels/familytower/pkg/dag
// [transform.Rank]: github.com/matzehuels/familytower/pkg/dag/transform
// [ordering.Orderer]: github.com/matzehuels/familytower/pkg/dag/ordering
package layout
