package dates

import (
	"testing"
	"time"
)

func TestFormatParseRoundTrip(t *testing.T) {
	in := time.Date(2026, 12, 31, 18, 30, 0, 0, time.UTC)

	got, err := Parse(Format(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !got.Equal(in) {
		t.Fatalf("got = %v, want %v", got, in)
	}
}

func TestParseDayFirst(t *testing.T) {
	got, err := Parse("05/09/2026 20:15")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Day() != 5 || got.Month() != time.September {
		t.Fatalf("got = %v, want the 5th of September", got)
	}
}

func TestParseOrNowFallsBack(t *testing.T) {
	before := time.Now()
	got := ParseOrNow("not a date", "whenever")
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Fatalf("got = %v, want a current timestamp", got)
	}
}

func TestParseOrNowCombinesDateAndTime(t *testing.T) {
	got := ParseOrNow("01/02/2027", "09:45")
	want := time.Date(2027, 2, 1, 9, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got = %v, want %v", got, want)
	}
}
