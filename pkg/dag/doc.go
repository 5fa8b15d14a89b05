// Package dag provides the row-based directed acyclic graph the layout engine
// ranks and orders.
//
// # Overview
//
// A family diagram is drawn in generations: parents sit one row above their
// children. This package holds that structure as a DAG whose nodes carry a
// row (layer) and whose edges point from parent to child. It is the working
// representation for the Sugiyama-style pass in package layout.
//
// # Basic Usage
//
// Create a graph with [New], add nodes with [DAG.AddNode] and edges with
// [DAG.AddEdge]:
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "grandpa", Row: 0})
//	g.AddNode(dag.Node{ID: "dad", Row: 1})
//	g.AddEdge(dag.Edge{From: "grandpa", To: "dad"})
//
// Unlike a plain adjacency map, the DAG remembers insertion order. Every
// listing ([DAG.Nodes], [DAG.NodesInRow], [DAG.Sources]) follows it, so a
// layout computed from the same registry is always the same layout.
//
// # Node Types
//
//   - [NodeKindRegular]: a family member
//   - [NodeKindSubdivider]: a synthetic waypoint that splits a parent/child
//     edge spanning several generations into single-row hops
//
// Subdividers keep a [Node.MasterID] pointing at the parent they descend from.
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] count inversions with a Fenwick
// tree in O(E log V), cheap enough to evaluate after every ordering sweep.
// [CountPairCrossingsWithPos] scores a single adjacent swap for the
// transpose heuristic.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
//
// The [transform] subpackage ranks and subdivides the graph; [ordering]
// arranges each row.
//
// [transform]: github.com/matzehuels/familytower/pkg/dag/transform
// [ordering]: github.com/matzehuels/familytower/pkg/dag/ordering
package dag
