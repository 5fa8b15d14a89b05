package family

import (
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/familytower/pkg/errors"
)

// SelfLabel is the first name forced onto the root member.
const SelfLabel = "You"

// Gender of a member.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)

// ParseGender parses a gender string. Empty input yields Other.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToLower(strings.TrimSpace(s))); g {
	case Male, Female, Other:
		return g, nil
	case "":
		return Other, nil
	default:
		return "", errors.Invalid(errors.ErrCodeInvalidGender, "gender", "gender must be male, female or other, got %q", s)
	}
}

// Opposite returns the spouse gender forced by a spouse relation.
// Other has no opposite and maps to itself.
func (g Gender) Opposite() Gender {
	switch g {
	case Male:
		return Female
	case Female:
		return Male
	default:
		return Other
	}
}

// Member is one person in the family graph. Relation slices hold member IDs
// and behave as ordered sets.
type Member struct {
	ID        string   `json:"id" bson:"id"`
	FirstName string   `json:"firstName" bson:"firstName"`
	Surname   string   `json:"surname" bson:"surname"`
	FullName  string   `json:"fullName" bson:"fullName"`
	BirthYear string   `json:"birthYear" bson:"birthYear"`
	DeathYear string   `json:"deathYear,omitempty" bson:"deathYear,omitempty"`
	Gender    Gender   `json:"gender" bson:"gender"`
	Bio       string   `json:"bio" bson:"bio"`
	PhotoURL  string   `json:"photoUrl,omitempty" bson:"photoUrl,omitempty"`
	Parents   []string `json:"parents" bson:"parents"`
	Spouses   []string `json:"spouses" bson:"spouses"`
	Children  []string `json:"children" bson:"children"`
}

// ComposeName joins first name and surname the way FullName is derived.
func ComposeName(firstName, surname string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(surname))
}

// Birth returns the birth year as an integer.
func (m Member) Birth() (int, bool) { return atoiYear(m.BirthYear) }

// Death returns the death year as an integer; false when living.
func (m Member) Death() (int, bool) { return atoiYear(m.DeathYear) }

// IsLiving reports whether no death year is recorded.
func (m Member) IsLiving() bool {
	_, dead := m.Death()
	return !dead
}

// Age returns the years lived for deceased members, otherwise the age in
// currentYear. The second result is false when the birth year is unknown.
func (m Member) Age(currentYear int) (int, bool) {
	birth, ok := m.Birth()
	if !ok {
		return 0, false
	}
	if death, dead := m.Death(); dead {
		return death - birth, true
	}
	return currentYear - birth, true
}

// DisplayName returns FullName, falling back to the ID.
func (m Member) DisplayName() string {
	if m.FullName != "" {
		return m.FullName
	}
	return m.ID
}

// Clone returns a deep copy.
func (m Member) Clone() Member {
	m.Parents = slices.Clone(m.Parents)
	m.Spouses = slices.Clone(m.Spouses)
	m.Children = slices.Clone(m.Children)
	return m
}

func (m *Member) normalize() {
	if m.Parents == nil {
		m.Parents = []string{}
	}
	if m.Spouses == nil {
		m.Spouses = []string{}
	}
	if m.Children == nil {
		m.Children = []string{}
	}
	m.FullName = ComposeName(m.FirstName, m.Surname)
}

func atoiYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	y, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return y, true
}

// Draft holds the user-supplied fields of a member about to be added.
type Draft struct {
	FirstName string `json:"firstName"`
	Surname   string `json:"surname"`
	BirthYear string `json:"birthYear"`
	DeathYear string `json:"deathYear,omitempty"`
	Gender    Gender `json:"gender"`
	Bio       string `json:"bio"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// Birth returns the draft birth year as an integer.
func (d Draft) Birth() (int, bool) { return atoiYear(d.BirthYear) }

// Patch carries the non-relation fields of an edit. Nil fields are left as is.
type Patch struct {
	FirstName *string `json:"firstName,omitempty"`
	Surname   *string `json:"surname,omitempty"`
	BirthYear *string `json:"birthYear,omitempty"`
	DeathYear *string `json:"deathYear,omitempty"`
	Gender    *Gender `json:"gender,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.FirstName == nil && p.Surname == nil && p.BirthYear == nil &&
		p.DeathYear == nil && p.Gender == nil && p.Bio == nil && p.PhotoURL == nil
}

// Apply returns m with the patch applied and FullName recomputed.
func (p Patch) Apply(m Member) Member {
	m = m.Clone()
	if p.FirstName != nil {
		m.FirstName = *p.FirstName
	}
	if p.Surname != nil {
		m.Surname = *p.Surname
	}
	if p.BirthYear != nil {
		m.BirthYear = strings.TrimSpace(*p.BirthYear)
	}
	if p.DeathYear != nil {
		m.DeathYear = strings.TrimSpace(*p.DeathYear)
	}
	if p.Gender != nil {
		m.Gender = *p.Gender
	}
	if p.Bio != nil {
		m.Bio = *p.Bio
	}
	if p.PhotoURL != nil {
		m.PhotoURL = *p.PhotoURL
	}
	m.normalize()
	return m
}

// AsDraft returns the draft view of a member with the patch applied, which is
// what the validator re-checks on edit.
func (p Patch) AsDraft(m Member) Draft {
	return DraftOf(p.Apply(m))
}

// DraftOf returns the non-relation fields of m.
func DraftOf(m Member) Draft {
	return Draft{
		FirstName: m.FirstName,
		Surname:   m.Surname,
		BirthYear: m.BirthYear,
		DeathYear: m.DeathYear,
		Gender:    m.Gender,
		Bio:       m.Bio,
		PhotoURL:  m.PhotoURL,
	}
}
