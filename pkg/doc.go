// Package pkg provides the libraries behind familytower, a family tree
// keeper that lays the tree out incrementally so members keep their place
// as it grows.
//
// # Overview
//
// The pkg directory is organized into three areas:
//
//  1. Domain: [family] (members, relations, mutations), [family/rules]
//     (birth year consistency), [graph] (diagram nodes and edges) and
//     [layout] (layered, position-preserving placement)
//  2. Infrastructure: [store] (snapshot persistence), [cache] (positions and
//     rendered artifacts), [config], [io] (family files) and [observability]
//  3. Orchestration: [tree] (the locked facade over one tree), [pipeline]
//     (mutate, lay out, persist, render) and [api] (HTTP)
//
// # Architecture
//
// Every change follows the same cycle:
//
//	Draft + Relation
//	       ↓
//	  [family/rules] check against the current registry
//	       ↓
//	  [family] Mutator returns a new registry (or an error, leaving state untouched)
//	       ↓
//	  [graph] Build derives nodes and edges
//	       ↓
//	  [layout] Engine places new nodes, keeping old positions
//	       ↓
//	  [store] Save + [cache] positions
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/familytower/pkg/family"
//	    "github.com/matzehuels/familytower/pkg/pipeline"
//	    "github.com/matzehuels/familytower/pkg/store"
//	)
//
//	r, _ := pipeline.Open(ctx, store.NewMemoryStore(), nil, pipeline.Options{})
//	root, _ := r.AddRoot(ctx, family.Draft{Surname: "Doe", BirthYear: "1990"})
//	dad, _ := r.Add(ctx, family.Draft{FirstName: "John", BirthYear: "1960"},
//	    family.RelationParent, root.Member.ID)
//	svg, _, _ := r.Render(ctx, dad.Member.ID, render.FormatSVG, nodelink.Options{})
//
// # Error Handling
//
// Errors carry a code from [errors]: validation failures are
// [errors.ValidationError] values naming the offending field, everything
// else is an [errors.Error]. Use [errors.Is] to match codes through wrapping.
//
// [family]: github.com/matzehuels/familytower/pkg/family
// [family/rules]: github.com/matzehuels/familytower/pkg/family/rules
// [graph]: github.com/matzehuels/familytower/pkg/graph
// [layout]: github.com/matzehuels/familytower/pkg/layout
// [store]: github.com/matzehuels/familytower/pkg/store
// [cache]: github.com/matzehuels/familytower/pkg/cache
// [config]: github.com/matzehuels/familytower/pkg/config
// [io]: github.com/matzehuels/familytower/pkg/io
// [observability]: github.com/matzehuels/familytower/pkg/observability
// [tree]: github.com/matzehuels/familytower/pkg/tree
// [pipeline]: github.com/matzehuels/familytower/pkg/pipeline
// [api]: github.com/matzehuels/familytower/pkg/api
// [errors]: github.com/matzehuels/familytower/pkg/errors
// [errors.ValidationError]: github.com/matzehuels/familytower/pkg/errors.ValidationError
// [errors.Error]: github.com/matzehuels/familytower/pkg/errors.Error
// [errors.Is]: github.com/matzehuels/familytower/pkg/errors.Is
package pkg
