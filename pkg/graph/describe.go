package graph

import (
	"cmp"
	"slices"

	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

// Relationship titles returned by Describe.
const (
	TitleMarried        = "Married"
	TitleSiblings       = "Siblings"
	TitleFatherChildren = "Father - Children"
	TitleMotherChildren = "Mother - Children"
)

// Relationship explains one edge.
type Relationship struct {
	Title  string        `json:"title"`
	Source family.Member `json:"source"`
	Target family.Member `json:"target"`
	// Parent and Children are set for parent edges. Children are sorted by
	// birth year; members with an unknown year sort last.
	Parent   *family.Member  `json:"parent,omitempty"`
	Children []family.Member `json:"children,omitempty"`
}

// SiblingGaps returns the birth-year gap between consecutive children.
// A gap involving an unknown year is reported as -1.
func (r Relationship) SiblingGaps() []int {
	if len(r.Children) < 2 {
		return nil
	}
	gaps := make([]int, 0, len(r.Children)-1)
	for i := 0; i+1 < len(r.Children); i++ {
		a, okA := r.Children[i].Birth()
		b, okB := r.Children[i+1].Birth()
		if !okA || !okB {
			gaps = append(gaps, -1)
			continue
		}
		gaps = append(gaps, b-a)
	}
	return gaps
}

// Describe explains e using the current registry state.
func Describe(reg *family.Registry, e Edge) (Relationship, error) {
	src, ok := reg.Get(e.Source)
	if !ok {
		return Relationship{}, errors.NotFound(e.Source)
	}
	dst, ok := reg.Get(e.Target)
	if !ok {
		return Relationship{}, errors.NotFound(e.Target)
	}
	r := Relationship{Source: src, Target: dst}

	switch {
	case e.Kind == KindSpouse:
		r.Title = TitleMarried
		return r, nil
	case e.Kind == KindSibling:
		r.Title = TitleSiblings
		return r, nil
	case slices.Contains(src.Children, dst.ID):
		r.Parent = &src
	case slices.Contains(dst.Children, src.ID):
		r.Parent = &dst
	default:
		return Relationship{}, errors.New(errors.ErrCodeInvalidRelation, "%s and %s are not related", src.ID, dst.ID)
	}

	r.Title = TitleMotherChildren
	if r.Parent.Gender == family.Male {
		r.Title = TitleFatherChildren
	}
	for _, id := range r.Parent.Children {
		if c, ok := reg.Get(id); ok {
			r.Children = append(r.Children, c)
		}
	}
	slices.SortStableFunc(r.Children, func(a, b family.Member) int {
		ay, okA := a.Birth()
		by, okB := b.Birth()
		switch {
		case okA && okB:
			return cmp.Compare(ay, by)
		case okA:
			return -1
		case okB:
			return 1
		}
		return 0
	})
	return r, nil
}
