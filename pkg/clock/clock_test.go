package clock

import "testing"

func TestYear(t *testing.T) {
	if got := CurrentYear(Year(2024)); got != 2024 {
		t.Errorf("CurrentYear(Year(2024)) = %d, want 2024", got)
	}
}

func TestCurrentYearNil(t *testing.T) {
	if got := CurrentYear(nil); got < 2024 {
		t.Errorf("CurrentYear(nil) = %d, want a plausible system year", got)
	}
}
