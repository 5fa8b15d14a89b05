package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/cache"
	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/observability"
	"github.com/matzehuels/familytower/pkg/render"
	"github.com/matzehuels/familytower/pkg/render/nodelink"
	"github.com/matzehuels/familytower/pkg/store"
	"github.com/matzehuels/familytower/pkg/tree"
)

// Runner owns a tree together with its store, cache and last layout.
// It is safe for concurrent use; mutation cycles are serialized.
type Runner struct {
	Tree   *tree.Tree
	Store  store.Store
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	opts Options

	mu        sync.Mutex
	positions []layout.Positioned
}

// NewRunner wraps an existing tree. A nil cache disables caching; a nil
// store keeps everything in memory.
func NewRunner(t *tree.Tree, s store.Store, c cache.Cache, opts Options) *Runner {
	opts.setDefaults()
	if s == nil {
		s = store.NewMemoryStore()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Runner{
		Tree:   t,
		Store:  s,
		Cache:  c,
		Keyer:  cache.NewScopedKeyer(nil, opts.TreeKey+":"),
		Logger: opts.Logger,
		opts:   opts,
	}
}

// Open loads the snapshot from s (an unusable snapshot yields an empty
// tree) and the last positions from c, then lays the tree out.
func Open(ctx context.Context, s store.Store, c cache.Cache, opts Options) (*Runner, error) {
	opts.setDefaults()
	reg := store.LoadOrEmpty(ctx, s, opts.Logger)

	topts := []tree.Option{tree.WithClock(opts.Clock), tree.WithLayout(opts.Layout), tree.WithLogger(opts.Logger)}
	if opts.IDFunc != nil {
		topts = append(topts, tree.WithIDFunc(opts.IDFunc))
	}
	r := NewRunner(tree.New(reg, topts...), s, c, opts)

	var cached []layout.Positioned
	err := cache.GetJSON(ctx, r.Cache, r.Keyer.PositionsKey(opts.TreeKey), &cached)
	switch {
	case err == nil:
		r.Logger.Debug("restored positions", "nodes", len(cached))
	case stderrors.Is(err, cache.ErrCacheMiss):
	default:
		r.Logger.Warn("could not restore positions", "err", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.positions = cached
	r.relayout(ctx, "", nil)
	return r, nil
}

// AddRoot creates the root member and runs the cycle.
func (r *Runner) AddRoot(ctx context.Context, d family.Draft) (*Result, error) {
	return r.apply(ctx, nil, func() (family.Member, error) {
		return r.Tree.AddRoot(ctx, d)
	})
}

// Add attaches a new member to targetID and runs the cycle. The new member
// is placed next to targetID.
func (r *Runner) Add(ctx context.Context, d family.Draft, rel family.Relation, targetID string) (*Result, error) {
	placement := &layout.Placement{RelatedID: targetID, Relation: rel}
	if rel == family.RelationRoot {
		placement = nil
	}
	return r.apply(ctx, placement, func() (family.Member, error) {
		return r.Tree.AddRelated(ctx, d, rel, targetID)
	})
}

// Edit patches a member and runs the cycle. Positions do not move.
func (r *Runner) Edit(ctx context.Context, id string, p family.Patch) (*Result, error) {
	return r.apply(ctx, nil, func() (family.Member, error) {
		return r.Tree.EditFields(ctx, id, p)
	})
}

// Import replaces the whole tree with reg, lays it out from scratch and
// persists it. Result.Member is the new root.
func (r *Runner) Import(ctx context.Context, reg *family.Registry) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Tree.Replace(reg); err != nil {
		return nil, err
	}
	res := &Result{}
	if root, err := r.Tree.Member(r.Tree.Lineage().RootID); err == nil {
		res.Member = root
	}
	r.positions = nil
	res.Graph, res.Stats.BuildTime, res.Stats.LayoutTime = r.relayout(ctx, "", nil)
	res.Positions = r.positions

	saveStart := time.Now()
	res.Persisted = r.persist(ctx)
	res.Stats.SaveTime = time.Since(saveStart)

	r.Logger.Info("tree imported", "members", len(res.Graph.Nodes), "edges", len(res.Graph.Edges))
	return res, nil
}

func (r *Runner) apply(ctx context.Context, placement *layout.Placement, mutate func() (family.Member, error)) (*Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := mutate()
	if err != nil {
		return nil, err
	}

	res := &Result{Member: m}
	res.Graph, res.Stats.BuildTime, res.Stats.LayoutTime = r.relayout(ctx, "", placement)
	res.Positions = r.positions

	saveStart := time.Now()
	res.Persisted = r.persist(ctx)
	res.Stats.SaveTime = time.Since(saveStart)

	r.Logger.Info("tree updated",
		"member", m.ID,
		"members", len(res.Graph.Nodes),
		"edges", len(res.Graph.Edges),
		"layout", res.Stats.LayoutTime)
	return res, nil
}

// relayout rebuilds the graph and recomputes positions from the current
// ones. Callers hold r.mu.
func (r *Runner) relayout(ctx context.Context, highlightID string, placement *layout.Placement) (graph.Graph, time.Duration, time.Duration) {
	buildStart := time.Now()
	g := r.Tree.BuildGraph(highlightID)
	buildTime := time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, len(g.Nodes), len(g.Edges), buildTime)

	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, len(g.Nodes))
	r.positions = r.Tree.Engine().Layout(g, r.positions, placement)
	layoutTime := time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, len(g.Nodes), layoutTime, nil)
	return g, buildTime, layoutTime
}

// persist saves the snapshot and positions, logging failures. It reports
// whether the snapshot was saved.
func (r *Runner) persist(ctx context.Context) bool {
	ok := true
	if err := store.Save(ctx, r.Store, r.Tree.Snapshot()); err != nil {
		r.Logger.Error("could not save snapshot", "backend", r.Store.Backend(), "err", err)
		ok = false
	}
	if err := cache.SetJSON(ctx, r.Cache, r.Keyer.PositionsKey(r.opts.TreeKey), r.positions, TTLPositions); err != nil {
		r.Logger.Warn("could not cache positions", "err", err)
	}
	return ok
}

// Diagram returns the current graph and positions. highlightID only changes
// edge and node styling, never positions.
func (r *Runner) Diagram(ctx context.Context, highlightID string) (graph.Graph, []layout.Positioned) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g := r.Tree.BuildGraph(highlightID)
	byID := make(map[string]graph.Node, len(g.Nodes))
	for _, n := range g.Nodes {
		byID[n.ID] = n
	}
	out := make([]layout.Positioned, 0, len(r.positions))
	for _, p := range r.positions {
		if n, ok := byID[p.ID]; ok {
			p.Node = n
			out = append(out, p)
		}
	}
	return g, out
}

// Reset discards remembered positions and lays the tree out from scratch.
func (r *Runner) Reset(ctx context.Context) []layout.Positioned {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.positions = nil
	if err := r.Cache.Delete(ctx, r.Keyer.PositionsKey(r.opts.TreeKey)); err != nil {
		r.Logger.Warn("could not clear cached positions", "err", err)
	}
	r.relayout(ctx, "", nil)
	if err := cache.SetJSON(ctx, r.Cache, r.Keyer.PositionsKey(r.opts.TreeKey), r.positions, TTLPositions); err != nil {
		r.Logger.Warn("could not cache positions", "err", err)
	}
	return r.positions
}

// Render draws the current diagram, reusing a cached artifact when the
// positioned diagram is unchanged. The bool reports a cache hit.
func (r *Runner) Render(ctx context.Context, highlightID string, f render.Format, opts nodelink.Options) ([]byte, bool, error) {
	g, nodes := r.Diagram(ctx, highlightID)
	if opts.CurrentYear == 0 {
		opts.CurrentYear = r.CurrentYear()
	}
	d := render.NewDiagram(nodes, g.Edges, r.Tree.Engine().Options())

	hash, err := cache.HashJSON(struct {
		Diagram render.Diagram
		Opts    nodelink.Options
	}{d, opts})
	if err != nil {
		return nil, false, fmt.Errorf("hash diagram: %w", err)
	}
	key := r.Keyer.RenderKey(hash, cache.RenderKeyOpts{Format: string(f), Highlight: highlightID})
	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		return data, true, nil
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, string(f))
	out, err := nodelink.Render(ctx, d, f, opts)
	observability.Pipeline().OnRenderComplete(ctx, string(f), time.Since(start), err)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "render %s", f)
	}
	if err := r.Cache.Set(ctx, key, out, r.opts.RenderTTL); err != nil {
		r.Logger.Warn("could not cache render", "format", f, "err", err)
	}
	r.Logger.Debug("rendered diagram", "format", f, "bytes", len(out), "duration", time.Since(start))
	return out, false, nil
}

// Focus returns the centre of a member's box, for scrolling a view to a
// search hit.
func (r *Runner) Focus(id string) (layout.Point, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.Tree.Engine().Find(r.positions, id)
	if !ok {
		return layout.Point{}, errors.NotFound(id)
	}
	return p, nil
}

// CurrentYear returns the year used for ages and validation.
func (r *Runner) CurrentYear() int { return clock.CurrentYear(r.opts.Clock) }

// Close releases the store and the cache.
func (r *Runner) Close() error {
	return stderrors.Join(r.Store.Close(), r.Cache.Close())
}
