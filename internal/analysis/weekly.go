package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/excotide/moodify/internal/mood"
)

// RequiredDays is the number of days with data that makes a week complete.
const RequiredDays = 7

const (
	positiveThreshold = 4.0
	negativeThreshold = 2.0
)

// WeeklyStats summarizes the daily reductions of one window.
type WeeklyStats struct {
	DaysWithData int
	PositiveDays int
	NegativeDays int
	DominantMood string
	AverageScore float64
	IsComplete   bool

	gated bool
}

// Aggregate folds daily reductions into window statistics. The average is
// the mean of the daily means, so sparse days weigh as much as busy ones.
func Aggregate(days []DayReduction) WeeklyStats {
	s := WeeklyStats{DaysWithData: len(days)}
	majorities := make([]string, 0, len(days))
	sum := 0.0
	for _, d := range days {
		sum += d.AverageScore
		if d.AverageScore >= positiveThreshold {
			s.PositiveDays++
		} else if d.AverageScore <= negativeThreshold {
			s.NegativeDays++
		}
		majorities = append(majorities, d.MajorityMood)
	}
	if len(days) > 0 {
		s.AverageScore = sum / float64(len(days))
	}
	s.DominantMood = majority(majorities)
	s.IsComplete = s.DaysWithData >= RequiredDays
	return s
}

// IncompletePolicy decides what a call site shows for weeks with fewer than RequiredDays days of data.
type IncompletePolicy string

const (
	// SuppressIncomplete hides the dominant mood, ratio and average label.
	SuppressIncomplete IncompletePolicy = "suppress"
	// ReportIncomplete shows partial statistics as they are.
	ReportIncomplete IncompletePolicy = "report"
)

// ParseIncompletePolicy validates a policy name. Empty means SuppressIncomplete.
func ParseIncompletePolicy(s string) (IncompletePolicy, error) {
	switch IncompletePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", SuppressIncomplete:
		return SuppressIncomplete, nil
	case ReportIncomplete:
		return ReportIncomplete, nil
	}
	return "", fmt.Errorf("invalid incomplete-week policy: %s (use suppress or report)", s)
}

// View returns the stats as presented under p.
func (s WeeklyStats) View(p IncompletePolicy) WeeklyStats {
	if p == SuppressIncomplete && !s.IsComplete {
		s.gated = true
		s.DominantMood = ""
	}
	return s
}

// Gated reports whether View suppressed the derived fields.
func (s WeeklyStats) Gated() bool { return s.gated }

// PositiveRatio is positive days over positive plus negative days.
func (s WeeklyStats) PositiveRatio() float64 {
	total := s.PositiveDays + s.NegativeDays
	if s.gated || total == 0 {
		return 0
	}
	return float64(s.PositiveDays) / float64(total)
}

// AverageMoodLabel maps the rounded average back onto the scale.
func (s WeeklyStats) AverageMoodLabel() string {
	if s.gated || s.DaysWithData == 0 {
		return ""
	}
	return mood.LabelFor(int(math.Round(s.AverageScore)))
}

// MoodCount is the number of days a mood was the daily majority.
type MoodCount struct {
	Mood string
	Days int
}

// Distribution counts daily majorities, in order of first appearance.
func Distribution(days []DayReduction) []MoodCount {
	idx := map[string]int{}
	var out []MoodCount
	for _, d := range days {
		i, ok := idx[d.MajorityMood]
		if !ok {
			i = len(out)
			idx[d.MajorityMood] = i
			out = append(out, MoodCount{Mood: d.MajorityMood})
		}
		out[i].Days++
	}
	return out
}
