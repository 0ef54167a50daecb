// Package time contains time related helpers
package time

import "time"

// ISOLayout is a fixed width RFC 3339 layout so stored values sort as text
const ISOLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ISO formats t in UTC with ISOLayout
func ISO(t time.Time) string { return t.UTC().Format(ISOLayout) }

// ParseISO parses any RFC 3339 value, including ISOLayout output
func ParseISO(s string) (time.Time, error) { return time.Parse(time.RFC3339Nano, s) }

// Ptr returns a pointer to t or nil if t is zero
func Ptr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Date truncates t to midnight of its calendar day in loc
func Date(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince counts calendar days from day to now
// day is read in its own zone so a plain date stays put, now is read in loc
// the result is negative when day is after today
func DaysSince(day, now time.Time, loc *time.Location) int {
	return int(Date(now, loc).Sub(Date(day, day.Location())).Hours() / 24)
}
