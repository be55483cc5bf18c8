package analysis

import "time"

// WindowDays is the length of a reporting window.
const WindowDays = 7

// DayOf returns the calendar day of t, read in t's own offset, as UTC midnight.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b. Both must be day values from DayOf.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// Window is an inclusive range of calendar days.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds [anchor, anchor+6] cut at today. An anchor after today is clamped to today.
func NewWindow(anchor, today time.Time) Window {
	anchor, today = DayOf(anchor), DayOf(today)
	if anchor.After(today) {
		anchor = today
	}
	end := anchor.AddDate(0, 0, WindowDays-1)
	if end.After(today) {
		end = today
	}
	return Window{Start: anchor, End: end}
}

// Contains reports whether the calendar day of t lies inside the window.
func (w Window) Contains(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(w.Start) && !d.After(w.End)
}

// Days returns the number of calendar days covered.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	return DaysBetween(w.Start, w.End) + 1
}
