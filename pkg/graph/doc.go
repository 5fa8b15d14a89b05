// Package graph derives a renderable node/edge diagram from a member registry.
//
// # Overview
//
// [Build] produces one [Node] per member, carrying the full member record,
// and a compact edge set:
//
//   - A parent with one child gets a direct parent edge.
//   - A parent with several children gets a chain of low-emphasis sibling
//     edges between consecutive children plus a single anchor edge to the
//     median child (index n/2). All children stay visually grouped without a
//     fan of parent lines.
//   - Each married couple gets exactly one spouse edge, emitted from the
//     member with the lower ID.
//
// Edge colours encode gender: fathers blue, mothers pink, and sibling edges
// by pairing (brothers, sisters, mixed).
//
// # Highlight Path
//
// When a highlight target is given, Build searches depth-first from it along
// children links for the root member. Nodes on the path found and parent
// edges joining two path nodes are flagged. The search only descends, so it
// succeeds only when the target is an ancestor of the root; selecting a
// descendant highlights nothing.
//
// # Descriptions
//
// [Describe] explains an edge for a detail view: "Married", "Siblings", or
// "Father - Children"/"Mother - Children" with the parent's children sorted
// by birth year.
//
// The types carry json and bson tags so the API and stores can emit them
// unchanged.
package graph
