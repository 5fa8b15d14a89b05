package family

import (
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/familytower/pkg/errors"
)

// Relation is the kind of link used when attaching a new member.
type Relation string

const (
	RelationRoot   Relation = "root"
	RelationParent Relation = "parent"
	RelationChild  Relation = "child"
	RelationSpouse Relation = "spouse"
)

// ParseRelation parses a relation name.
func ParseRelation(s string) (Relation, error) {
	switch r := Relation(strings.ToLower(strings.TrimSpace(s))); r {
	case RelationRoot, RelationParent, RelationChild, RelationSpouse:
		return r, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidRelation, "relation must be parent, child, spouse or root, got %q", s)
	}
}

// IDFunc generates collision-free member IDs.
type IDFunc func() string

// NewID returns "user_" followed by eight characters of a random UUID.
func NewID() string {
	return "user_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// CheckFunc validates a proposed draft before the Mutator applies it.
// target is nil for root creation. editingID is set for edits.
type CheckFunc func(d Draft, rel Relation, target *Member, reg *Registry, editingID string) error

// Mutator applies add and edit operations. Every operation works on a clone
// of the input registry and returns the new state, so a failed call leaves
// the caller's registry untouched.
type Mutator struct {
	// NewID generates member IDs. Defaults to [NewID].
	NewID IDFunc
	// Check, when set, runs before any change is made.
	Check CheckFunc
}

// NewMutator creates a Mutator with the given validator and ID generator.
// A nil newID uses [NewID].
func NewMutator(check CheckFunc, newID IDFunc) *Mutator {
	if newID == nil {
		newID = NewID
	}
	return &Mutator{NewID: newID, Check: check}
}

const maxIDAttempts = 8

func (m *Mutator) nextID(reg *Registry) (string, error) {
	gen := m.NewID
	if gen == nil {
		gen = NewID
	}
	for range maxIDAttempts {
		if id := gen(); id != "" && !reg.Has(id) {
			return id, nil
		}
	}
	return "", errors.New(errors.ErrCodeInternal, "could not generate a unique member ID")
}

func (m *Mutator) check(d Draft, rel Relation, target *Member, reg *Registry, editingID string) error {
	if m.Check == nil {
		return nil
	}
	return m.Check(d, rel, target, reg, editingID)
}

// AddRoot creates the first member ("self"). The registry must be empty.
// The returned Lineage records the root and the family surname.
func (m *Mutator) AddRoot(reg *Registry, d Draft) (*Registry, Member, Lineage, error) {
	if reg.Len() > 0 {
		return nil, Member{}, Lineage{}, errors.New(errors.ErrCodeRootExists, "tree already has a root member")
	}
	d.FirstName = SelfLabel
	if err := m.check(d, RelationRoot, nil, reg, ""); err != nil {
		return nil, Member{}, Lineage{}, err
	}
	id, err := m.nextID(reg)
	if err != nil {
		return nil, Member{}, Lineage{}, err
	}
	next := reg.Clone()
	member := newMember(id, d)
	if err := next.Insert(member); err != nil {
		return nil, Member{}, Lineage{}, err
	}
	stored, _ := next.Get(id)
	return next, stored, Lineage{RootID: id, Surname: stored.Surname}, nil
}

// Add attaches a new member to targetID with the given relation and keeps
// every relation set symmetric. RelationRoot delegates to [Mutator.AddRoot]
// and requires an empty targetID.
func (m *Mutator) Add(reg *Registry, d Draft, rel Relation, targetID string) (*Registry, Member, error) {
	if rel == RelationRoot {
		if targetID != "" {
			return nil, Member{}, errors.New(errors.ErrCodeInvalidRelation, "root member cannot have a target")
		}
		next, member, _, err := m.AddRoot(reg, d)
		return next, member, err
	}
	if _, err := ParseRelation(string(rel)); err != nil {
		return nil, Member{}, err
	}

	target, ok := reg.Get(targetID)
	if !ok {
		return nil, Member{}, errors.NotFound(targetID)
	}

	switch rel {
	case RelationParent, RelationChild:
		d.Surname = target.Surname
	case RelationSpouse:
		d.Gender = target.Gender.Opposite()
	}
	if err := m.check(d, rel, &target, reg, ""); err != nil {
		return nil, Member{}, err
	}

	id, err := m.nextID(reg)
	if err != nil {
		return nil, Member{}, err
	}
	member := newMember(id, d)
	next := reg.Clone()

	switch rel {
	case RelationParent:
		member.Children = []string{target.ID}
		err = next.update(target.ID, func(t *Member) {
			t.Parents = appendUnique(t.Parents, id)
		})

	case RelationChild:
		member.Parents = []string{target.ID}
		var coParent string
		if len(target.Spouses) > 0 {
			coParent = target.Spouses[0]
			member.Parents = appendUnique(member.Parents, coParent)
		}
		err = next.update(target.ID, func(t *Member) {
			t.Children = appendUnique(t.Children, id)
		})
		if err == nil && coParent != "" {
			err = next.update(coParent, func(s *Member) {
				s.Children = appendUnique(s.Children, id)
			})
		}

	case RelationSpouse:
		member.Spouses = []string{target.ID}
		member.Children = appendUnique(nil, target.Children...)
		for _, c := range target.Children {
			if err = next.update(c, func(child *Member) {
				child.Parents = appendUnique(child.Parents, id)
			}); err != nil {
				break
			}
		}
		if err == nil {
			err = next.update(target.ID, func(t *Member) {
				t.Spouses = appendUnique(t.Spouses, id)
			})
		}
	}
	if err != nil {
		return nil, Member{}, err
	}
	if err := next.Insert(member); err != nil {
		return nil, Member{}, err
	}
	stored, _ := next.Get(id)
	return next, stored, nil
}

// Edit patches non-relation fields of id and recomputes FullName.
// Relations cannot be changed through Edit.
func (m *Mutator) Edit(reg *Registry, id string, p Patch) (*Registry, Member, error) {
	current, ok := reg.Get(id)
	if !ok {
		return nil, Member{}, errors.NotFound(id)
	}
	if p.Gender != nil {
		g, err := ParseGender(string(*p.Gender))
		if err != nil {
			return nil, Member{}, err
		}
		p.Gender = &g
	}
	edited := p.Apply(current)
	if err := m.check(DraftOf(edited), "", nil, reg, id); err != nil {
		return nil, Member{}, err
	}
	next := reg.Clone()
	if err := next.Replace(id, edited); err != nil {
		return nil, Member{}, err
	}
	stored, _ := next.Get(id)
	return next, stored, nil
}

func newMember(id string, d Draft) Member {
	g, err := ParseGender(string(d.Gender))
	if err != nil {
		g = Other
	}
	m := Member{
		ID:        id,
		FirstName: strings.TrimSpace(d.FirstName),
		Surname:   strings.TrimSpace(d.Surname),
		BirthYear: strings.TrimSpace(d.BirthYear),
		DeathYear: strings.TrimSpace(d.DeathYear),
		Gender:    g,
		Bio:       d.Bio,
		PhotoURL:  strings.TrimSpace(d.PhotoURL),
	}
	m.normalize()
	return m
}
