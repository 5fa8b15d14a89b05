// Package clock supplies the current calendar year to the core.
//
// Validation never reads the wall clock directly; callers inject a [Clock]
// so that "no future births" and "minimum age to marry" stay deterministic
// in tests.
package clock

import "time"

// Clock provides time to the application.
type Clock interface {
	Now() time.Time
}

// System returns the current wall-clock time.
type System struct{}

func (System) Now() time.Time { return time.Now().UTC() }

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Year returns a Fixed clock set to January 1st of year.
func Year(year int) Fixed {
	return Fixed(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// CurrentYear returns c's current year, falling back to the system clock
// when c is nil.
func CurrentYear(c Clock) int {
	if c == nil {
		c = System{}
	}
	return c.Now().Year()
}
