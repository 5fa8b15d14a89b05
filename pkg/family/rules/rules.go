// Package rules checks a proposed member against its relationship context.
//
// [Validate] is pure: it reads the registry, never changes it, and returns the
// first violated rule as an *errors.ValidationError whose message names the
// conflicting member and year. Rules run in a fixed order:
//
//  1. birth year not in the future
//  2. a new parent is at least [MinParentGap] years older than the target
//  3. a new child is at least [MinParentGap] years younger than the target
//  4. a new spouse is at least [MinSpouseAge] and old enough for every
//     child they adopt
//  5. an edited birth year still respects the gap to every linked parent,
//     child and joint child
//  6. death year not before birth year
//
// Malformed input (birth year not 4 digits, bad death year, unknown gender,
// unsafe photo URL) is rejected before the rules run.
package rules

import (
	"slices"

	"github.com/matzehuels/familytower/pkg/clock"
	"github.com/matzehuels/familytower/pkg/errors"
	"github.com/matzehuels/familytower/pkg/family"
)

const (
	// MinParentGap is the minimum number of years between parent and child births.
	MinParentGap = 10
	// MinSpouseAge is the minimum age to be added as a spouse.
	MinSpouseAge = 12
)

const fieldBirthYear = "birthYear"

// Validate checks draft d for the given relation. target is the member being
// related to (nil for root and edits). editingID names the member being
// edited, or is empty when adding.
func Validate(d family.Draft, rel family.Relation, target *family.Member, reg *family.Registry, editingID string, currentYear int) error {
	birth, err := checkInput(d)
	if err != nil {
		return err
	}

	if birth > currentYear {
		return errors.Invalid(errors.ErrCodeFutureBirth, fieldBirthYear,
			"Birth year cannot be in the future. Current year is %d", currentYear)
	}

	if editingID == "" && target != nil {
		if err := checkRelation(birth, rel, target, reg, currentYear); err != nil {
			return err
		}
	}

	if editingID != "" {
		if err := checkEdit(birth, editingID, reg); err != nil {
			return err
		}
	}

	if d.DeathYear != "" {
		death, _ := errors.ParseYear("deathYear", d.DeathYear)
		if death < birth {
			return errors.Invalid(errors.ErrCodeInvalidLifespan, "deathYear",
				"Death year %d is before birth year %d", death, birth)
		}
	}
	return nil
}

// Checker adapts Validate to family.CheckFunc, reading the year from c.
func Checker(c clock.Clock) family.CheckFunc {
	return func(d family.Draft, rel family.Relation, target *family.Member, reg *family.Registry, editingID string) error {
		return Validate(d, rel, target, reg, editingID, clock.CurrentYear(c))
	}
}

func checkInput(d family.Draft) (int, error) {
	birth, err := errors.ParseYear(fieldBirthYear, d.BirthYear)
	if err != nil {
		return 0, err
	}
	if d.DeathYear != "" {
		if _, err := errors.ParseYear("deathYear", d.DeathYear); err != nil {
			return 0, err
		}
	}
	if _, err := family.ParseGender(string(d.Gender)); err != nil {
		return 0, err
	}
	if err := errors.ValidateName("firstName", d.FirstName); err != nil {
		return 0, err
	}
	if err := errors.ValidateName("surname", d.Surname); err != nil {
		return 0, err
	}
	if err := errors.ValidateURL("photoUrl", d.PhotoURL); err != nil {
		return 0, err
	}
	return birth, nil
}

func checkRelation(birth int, rel family.Relation, target *family.Member, reg *family.Registry, currentYear int) error {
	switch rel {
	case family.RelationParent:
		if tb, ok := target.Birth(); ok && tb-birth < MinParentGap {
			return errors.Conflict(errors.ErrCodeAgeGap, fieldBirthYear, target.ID,
				"Parent must be at least %d years older than %s (born %d)", MinParentGap, target.DisplayName(), tb)
		}

	case family.RelationChild:
		if tb, ok := target.Birth(); ok && birth-tb < MinParentGap {
			return errors.Conflict(errors.ErrCodeAgeGap, fieldBirthYear, target.ID,
				"Child must be at least %d years younger than %s (born %d)", MinParentGap, target.DisplayName(), tb)
		}

	case family.RelationSpouse:
		if latest := currentYear - MinSpouseAge; birth > latest {
			return errors.Invalid(errors.ErrCodeUnderageSpouse, fieldBirthYear,
				"Spouse must be at least %d years old. Birth year must be %d or earlier", MinSpouseAge, latest)
		}
		for _, cid := range target.Children {
			if err := checkOlderThanChild(birth, cid, reg, "Spouse"); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkEdit re-checks the gap to every linked member using the edited year.
func checkEdit(birth int, id string, reg *family.Registry) error {
	m, ok := reg.Get(id)
	if !ok {
		return errors.NotFound(id)
	}
	for _, cid := range m.Children {
		if err := checkOlderThanChild(birth, cid, reg, "Parent"); err != nil {
			return err
		}
	}
	for _, pid := range m.Parents {
		p, ok := reg.Get(pid)
		if !ok {
			continue
		}
		if pb, ok := p.Birth(); ok && birth-pb < MinParentGap {
			return errors.Conflict(errors.ErrCodeAgeGap, fieldBirthYear, p.ID,
				"Child must be at least %d years younger than parent %s (born %d)", MinParentGap, p.DisplayName(), pb)
		}
	}
	for _, sid := range m.Spouses {
		s, ok := reg.Get(sid)
		if !ok {
			continue
		}
		for _, cid := range s.Children {
			if slices.Contains(m.Children, cid) {
				continue
			}
			if err := checkOlderThanChild(birth, cid, reg, "Parent"); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkOlderThanChild(birth int, childID string, reg *family.Registry, role string) error {
	c, ok := reg.Get(childID)
	if !ok {
		return nil
	}
	cb, ok := c.Birth()
	if !ok || cb-birth >= MinParentGap {
		return nil
	}
	return errors.Conflict(errors.ErrCodeAgeGap, fieldBirthYear, c.ID,
		"%s must be at least %d years older than child %s (born %d)", role, MinParentGap, c.DisplayName(), cb)
}
