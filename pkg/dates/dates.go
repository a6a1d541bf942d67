// Package dates centralizes the human-facing date format used by event
// forms ("dd/MM/yyyy HH:mm" in the upstream clients).
package dates

import "time"

const layout = "02/01/2006 15:04"

// Format renders a timestamp in the form layout.
func Format(t time.Time) string {
	return t.Format(layout)
}

// Parse reads a form timestamp.
func Parse(value string) (time.Time, error) {
	return time.Parse(layout, value)
}

// ParseOrNow combines a date and a time-of-day field, falling back to the
// current time when the input is malformed.
func ParseOrNow(date, timeOfDay string) time.Time {
	parsed, err := Parse(date + " " + timeOfDay)
	if err != nil {
		return time.Now()
	}
	return parsed
}
