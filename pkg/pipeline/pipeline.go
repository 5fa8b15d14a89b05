// Package pipeline runs the recompute cycle that follows every change to a
// family tree.
//
// # Architecture
//
// A successful mutation triggers, in order:
//
//  1. Build: derive the diagram graph from the registry
//  2. Layout: position it, keeping every previously placed node where it was
//     and placing the new member next to its relative
//  3. Persist: save the snapshot to the store and the positions to the cache
//
// Persistence failures are logged and reported in [Result.Persisted]; they
// never roll back the in-memory tree. A rejected mutation stops the cycle
// before step 1 and leaves everything untouched.
//
// Rendering is separate and cached by the hash of the positioned diagram, so
// repeated renders of an unchanged tree are free.
//
// # Usage
//
//	r, err := pipeline.Open(ctx, st, c, pipeline.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	res, err := r.Add(ctx, draft, family.RelationChild, parentID)
//	svg, _, err := r.Render(ctx, "", render.FormatSVG, nodelink.Options{})
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/layout"
)

// Default cache lifetimes.
const (
	// TTLPositions is zero: positions are kept until the tree is reset.
	TTLPositions time.Duration = 0

	// TTLRender bounds how long rendered artifacts are kept.
	TTLRender = 7 * 24 * time.Hour
)

// Options configures a Runner.
type Options struct {
	// TreeKey names the tree in the cache key space; defaults to the store key.
	TreeKey string
	Layout  layout.Options
	Clock   clock.Clock
	IDFunc  family.IDFunc
	Logger  *log.Logger
	// RenderTTL overrides TTLRender.
	RenderTTL time.Duration
}

func (o *Options) setDefaults() {
	if o.TreeKey == "" {
		o.TreeKey = "family-canvas-data"
	}
	if o.Clock == nil {
		o.Clock = clock.System{}
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	if o.RenderTTL <= 0 {
		o.RenderTTL = TTLRender
	}
}

// Result is the outcome of a mutation cycle.
type Result struct {
	Member    family.Member       `json:"member"`
	Graph     graph.Graph         `json:"graph"`
	Positions []layout.Positioned `json:"positions"`
	// Persisted is false when saving the snapshot failed.
	Persisted bool  `json:"persisted"`
	Stats     Stats `json:"stats"`
}

// Stats records stage timings.
type Stats struct {
	BuildTime  time.Duration `json:"buildTime"`
	LayoutTime time.Duration `json:"layoutTime"`
	SaveTime   time.Duration `json:"saveTime"`
}
