package family

import (
	"fmt"
	"slices"

	"github.com/matzehuels/familytower/pkg/errors"
)

// Registry is the authoritative, id-addressed table of members.
// Relations are stored as id sets on each member and never as pointers, so
// the cyclic parent/child/spouse structure cannot alias or dangle.
//
// Members go in and come out by value: callers never hold a reference into
// the registry. The zero value is not usable - use [NewRegistry].
// Registry is not safe for concurrent use without external synchronization.
type Registry struct {
	members map[string]*Member
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{members: make(map[string]*Member)}
}

// FromMembers builds a registry from an ordered snapshot.
// Returns an error if any ID is empty or duplicated.
func FromMembers(members []Member) (*Registry, error) {
	r := NewRegistry()
	for _, m := range members {
		if err := r.Insert(m); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// All returns copies of every member in insertion order.
func (r *Registry) All() []Member {
	out := make([]Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id].Clone())
	}
	return out
}

// IDs returns member IDs in insertion order.
func (r *Registry) IDs() []string { return slices.Clone(r.order) }

// Get returns a copy of the member with the given ID.
func (r *Registry) Get(id string) (Member, bool) {
	m, ok := r.members[id]
	if !ok {
		return Member{}, false
	}
	return m.Clone(), true
}

// Has reports whether id is present.
func (r *Registry) Has(id string) bool {
	_, ok := r.members[id]
	return ok
}

// Len returns the number of members.
func (r *Registry) Len() int { return len(r.order) }

// Insert appends a new member. Returns an error for an empty or duplicate ID.
func (r *Registry) Insert(m Member) error {
	if m.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "member ID must not be empty")
	}
	if _, exists := r.members[m.ID]; exists {
		return errors.New(errors.ErrCodeDuplicateID, "duplicate member ID %q", m.ID)
	}
	c := m.Clone()
	c.normalize()
	r.members[c.ID] = &c
	r.order = append(r.order, c.ID)
	return nil
}

// Replace overwrites the member stored under id, keeping its position.
// The replacement must carry the same ID.
func (r *Registry) Replace(id string, m Member) error {
	if _, ok := r.members[id]; !ok {
		return errors.NotFound(id)
	}
	if m.ID != id {
		return errors.New(errors.ErrCodeInvalidInput, "member ID is immutable: %q != %q", m.ID, id)
	}
	c := m.Clone()
	c.normalize()
	r.members[id] = &c
	return nil
}

// Clone returns a deep copy of the registry.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		members: make(map[string]*Member, len(r.members)),
		order:   slices.Clone(r.order),
	}
	for id, m := range r.members {
		mc := m.Clone()
		c.members[id] = &mc
	}
	return c
}

// update applies fn to the stored member in place. Only the Mutator uses
// it, always on a cloned registry.
func (r *Registry) update(id string, fn func(*Member)) error {
	m, ok := r.members[id]
	if !ok {
		return errors.NotFound(id)
	}
	fn(m)
	return nil
}

// Lineage is the per-tree context established when the root is created:
// who "self" is and the family surname. It is explicit state, so several
// trees can coexist in one process.
type Lineage struct {
	RootID  string `json:"rootId"`
	Surname string `json:"surname"`
}

// LineageOf recovers the lineage of a restored registry. The root is the
// first member ever inserted.
func LineageOf(r *Registry) Lineage {
	if r.Len() == 0 {
		return Lineage{}
	}
	root := r.members[r.order[0]]
	return Lineage{RootID: root.ID, Surname: root.Surname}
}

// CheckSymmetry verifies the bidirectional relation invariants and that no
// member relates to itself or to an unknown ID.
func CheckSymmetry(r *Registry) error {
	for _, id := range r.order {
		m := r.members[id]
		for _, set := range [][]string{m.Parents, m.Spouses, m.Children} {
			for _, other := range set {
				if other == id {
					return fmt.Errorf("member %s relates to itself", id)
				}
				if !r.Has(other) {
					return fmt.Errorf("member %s references unknown member %s", id, other)
				}
			}
		}
		for _, p := range m.Parents {
			if !slices.Contains(r.members[p].Children, id) {
				return fmt.Errorf("%s lists parent %s, which does not list it as child", id, p)
			}
		}
		for _, c := range m.Children {
			if !slices.Contains(r.members[c].Parents, id) {
				return fmt.Errorf("%s lists child %s, which does not list it as parent", id, c)
			}
		}
		for _, s := range m.Spouses {
			if !slices.Contains(r.members[s].Spouses, id) {
				return fmt.Errorf("%s lists spouse %s, which does not list it back", id, s)
			}
		}
	}
	return nil
}

func appendUnique(set []string, ids ...string) []string {
	for _, id := range ids {
		if !slices.Contains(set, id) {
			set = append(set, id)
		}
	}
	return set
}
