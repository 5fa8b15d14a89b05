// Package tree is the stateful facade over a single family tree.
//
// A [Tree] owns the current registry and its [family.Lineage] and serializes
// every operation behind a mutex, so HTTP handlers and CLI commands can share
// one instance. Mutations go through [family.Mutator] with the age and
// consistency rules of package rules; a rejected mutation leaves the tree
// exactly as it was.
//
//	t := tree.New(nil, tree.WithClock(clock.System{}))
//	root, err := t.AddRoot(ctx, family.Draft{Surname: "Doe", BirthYear: "1990"})
//	dad, err := t.AddRelated(ctx, family.Draft{FirstName: "John", BirthYear: "1960"},
//	    family.RelationParent, root.ID)
//	g := t.BuildGraph(dad.ID)
package tree

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/family/rules"
	"github.com/matzehuels/familytower/pkg/graph"
	"github.com/matzehuels/familytower/pkg/layout"
	"github.com/matzehuels/familytower/pkg/observability"
)

// Mutation ops reported to observability hooks.
const (
	OpAddRoot = "add_root"
	OpAdd     = "add"
	OpEdit    = "edit"
)

// Tree is safe for concurrent use.
type Tree struct {
	mu      sync.Mutex
	reg     *family.Registry
	lineage family.Lineage

	mutator *family.Mutator
	engine  *layout.Engine
	clock   clock.Clock
	logger  *log.Logger
}

// Option configures a Tree.
type Option func(*Tree)

// WithClock sets the clock used for "current year" rules.
func WithClock(c clock.Clock) Option {
	return func(t *Tree) { t.clock = c }
}

// WithIDFunc overrides member ID generation.
func WithIDFunc(f family.IDFunc) Option {
	return func(t *Tree) { t.mutator.NewID = f }
}

// WithLayout sets the layout geometry.
func WithLayout(opts layout.Options) Option {
	return func(t *Tree) { t.engine = layout.New(opts) }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(t *Tree) { t.logger = l }
}

// New creates a Tree over reg. A nil reg starts empty. The lineage of a
// restored registry is recovered with [family.LineageOf].
func New(reg *family.Registry, opts ...Option) *Tree {
	if reg == nil {
		reg = family.NewRegistry()
	}
	t := &Tree{
		reg:     reg.Clone(),
		lineage: family.LineageOf(reg),
		mutator: family.NewMutator(nil, nil),
		engine:  layout.New(layout.DefaultOptions()),
		clock:   clock.System{},
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.mutator.Check = rules.Checker(t.clock)
	return t
}

// Snapshot returns every member in insertion order.
func (t *Tree) Snapshot() []family.Member {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.All()
}

// Registry returns a deep copy of the current registry.
func (t *Tree) Registry() *family.Registry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Clone()
}

// Lineage returns the root member and family surname.
func (t *Tree) Lineage() family.Lineage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lineage
}

// Len returns the number of members.
func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reg.Len()
}

// Member returns the member with the given ID.
func (t *Tree) Member(id string) (family.Member, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.reg.Get(id)
	if !ok {
		return family.Member{}, errors.NotFound(id)
	}
	return m, nil
}

// AddRoot creates the "self" member of an empty tree.
func (t *Tree) AddRoot(ctx context.Context, d family.Draft) (family.Member, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, m, lineage, err := t.mutator.AddRoot(t.reg, d)
	t.report(ctx, OpAddRoot, family.RelationRoot, m.ID, err)
	if err != nil {
		return family.Member{}, err
	}
	t.reg, t.lineage = next, lineage
	return m, nil
}

// AddRelated attaches a new member to targetID. RelationRoot is accepted for
// an empty tree with an empty targetID.
func (t *Tree) AddRelated(ctx context.Context, d family.Draft, rel family.Relation, targetID string) (family.Member, error) {
	if rel == family.RelationRoot && targetID == "" {
		return t.AddRoot(ctx, d)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	next, m, err := t.mutator.Add(t.reg, d, rel, targetID)
	t.report(ctx, OpAdd, rel, m.ID, err)
	if err != nil {
		return family.Member{}, err
	}
	t.reg = next
	return m, nil
}

// EditFields patches the non-relation fields of id. An empty patch returns
// the member unchanged.
func (t *Tree) EditFields(ctx context.Context, id string, p family.Patch) (family.Member, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if p.IsEmpty() {
		m, ok := t.reg.Get(id)
		if !ok {
			return family.Member{}, errors.NotFound(id)
		}
		return m, nil
	}
	next, m, err := t.mutator.Edit(t.reg, id, p)
	t.report(ctx, OpEdit, "", id, err)
	if err != nil {
		return family.Member{}, err
	}
	t.reg = next
	if id == t.lineage.RootID {
		t.lineage.Surname = m.Surname
	}
	return m, nil
}

func (t *Tree) report(ctx context.Context, op string, rel family.Relation, id string, err error) {
	observability.Tree().OnMutation(ctx, op, string(rel), id, err)
	if err != nil {
		t.logger.Debug("mutation rejected", "op", op, "relation", rel, "code", errors.GetCode(err), "err", errors.UserMessage(err))
		return
	}
	t.logger.Debug("mutation applied", "op", op, "relation", rel, "id", id)
}

// BuildGraph derives the diagram for the current state. highlightID may be
// empty.
func (t *Tree) BuildGraph(highlightID string) graph.Graph {
	t.mu.Lock()
	defer t.mu.Unlock()
	return graph.Build(t.reg, t.lineage.RootID, highlightID)
}

// Layout builds the diagram and positions it, keeping the positions in
// previous.
func (t *Tree) Layout(highlightID string, previous []layout.Positioned, placement *layout.Placement) []layout.Positioned {
	g := t.BuildGraph(highlightID)
	return t.engine.Layout(g, previous, placement)
}

// Engine returns the layout engine.
func (t *Tree) Engine() *layout.Engine { return t.engine }

// Describe explains the relationship an edge of the current diagram stands for.
func (t *Tree) Describe(edgeID string) (graph.Relationship, error) {
	g := t.BuildGraph("")
	e, ok := g.Edge(edgeID)
	if !ok {
		return graph.Relationship{}, errors.New(errors.ErrCodeNotFound, "edge %q not found", edgeID)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return graph.Describe(t.reg, e)
}

// CanAddParent reports whether a father may still be added to id, that is,
// id has no male parent yet.
func (t *Tree) CanAddParent(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canAddParent(id)
}

func (t *Tree) canAddParent(id string) (bool, error) {
	m, ok := t.reg.Get(id)
	if !ok {
		return false, errors.NotFound(id)
	}
	for _, pid := range m.Parents {
		if p, ok := t.reg.Get(pid); ok && p.Gender == family.Male {
			return false, nil
		}
	}
	return true, nil
}

// AllowedRelations lists the relations offered when adding next to id:
// parent while no father is known, child of male members, and spouse once
// the tree has more than one member. An empty tree only allows root.
func (t *Tree) AllowedRelations(id string) ([]family.Relation, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.reg.Len() == 0 {
		return []family.Relation{family.RelationRoot}, nil
	}
	m, ok := t.reg.Get(id)
	if !ok {
		return nil, errors.NotFound(id)
	}
	var out []family.Relation
	if ok, _ := t.canAddParent(id); ok {
		out = append(out, family.RelationParent)
	}
	if m.Gender == family.Male {
		out = append(out, family.RelationChild)
	}
	if t.reg.Len() > 1 {
		out = append(out, family.RelationSpouse)
	}
	return out, nil
}

// Search returns members whose full name contains query, ignoring case, in
// insertion order. A blank query matches nothing.
func (t *Tree) Search(query string) []family.Member {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var out []family.Member
	for _, m := range t.reg.All() {
		if strings.Contains(strings.ToLower(m.FullName), q) {
			out = append(out, m)
		}
	}
	return out
}

// Replace swaps in a whole registry, for example after loading a snapshot.
// The snapshot must satisfy the relation invariants.
func (t *Tree) Replace(reg *family.Registry) error {
	if err := family.CheckSymmetry(reg); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "inconsistent snapshot")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.reg = reg.Clone()
	t.lineage = family.LineageOf(reg)
	return nil
}

// Children returns the children of id sorted by birth year, unknown
// years last.
func (t *Tree) Children(id string) ([]family.Member, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	m, ok := t.reg.Get(id)
	if !ok {
		return nil, errors.NotFound(id)
	}
	var out []family.Member
	for _, c := range m.Children {
		if cm, ok := t.reg.Get(c); ok {
			out = append(out, cm)
		}
	}
	slices.SortStableFunc(out, func(a, b family.Member) int {
		ay, aok := a.Birth()
		by, bok := b.Birth()
		switch {
		case aok && bok:
			return ay - by
		case aok:
			return -1
		case bok:
			return 1
		}
		return 0
	})
	return out, nil
}
