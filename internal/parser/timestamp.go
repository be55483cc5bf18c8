package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// attempt is one timestamp shape. Attempts are tried in order until one matches.
type attempt struct {
	name  string
	parse func(s string, loc *time.Location) (time.Time, bool)
}

var timestampAttempts = []attempt{
	{name: "offset", parse: parseWithOffset},
	{name: "local", parse: parseWithoutOffset},
	{name: "date", parse: parseDateOnly},
}

var (
	truncatedOffset = regexp.MustCompile(`[+-]\d{2}$`)

	offsetLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05Z0700",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
	}
)

// NormalizeTimestamp parses the timestamp shapes found in local files and
// remote tables into an instant. Values without an offset are read in loc
// (time.Local when nil). Instants keep the offset they were written with so
// that calendar days follow the source's own clock.
func NormalizeTimestamp(token string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(token)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", mood.ErrUnparsableTimestamp)
	}
	// "2024-01-02 15:04:05" is common in database output.
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}
	for _, a := range timestampAttempts {
		if t, ok := a.parse(s, loc); ok {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", mood.ErrUnparsableTimestamp, token)
}

func parseWithOffset(s string, _ *time.Location) (time.Time, bool) {
	if !strings.Contains(s, "T") {
		return time.Time{}, false
	}
	if truncatedOffset.MatchString(s) {
		s += ":00"
	}
	for _, l := range offsetLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseWithoutOffset(s string, loc *time.Location) (time.Time, bool) {
	for _, l := range localLayouts {
		if t, err := time.ParseInLocation(l, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDateOnly(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(time.DateOnly, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
