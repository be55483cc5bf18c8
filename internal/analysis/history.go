package analysis

import (
	"sort"
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// HistoryRow is one observation as listed in the dated history.
type HistoryRow struct {
	Date     time.Time
	DayIndex int
	Time     string
	Mood     string
	Score    int
}

// History lists observations inside w by day, each day ordered by time.
// Days without observations are omitted.
func History(obs []mood.Observation, w Window) []HistoryRow {
	var rows []HistoryRow
	for _, b := range BucketByDay(obs, w) {
		entries := make([]mood.Observation, len(b.Observations))
		copy(entries, b.Observations)
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].At.Before(entries[j].At) })
		idx := DaysBetween(w.Start, b.Day) + 1
		for _, o := range entries {
			rows = append(rows, HistoryRow{
				Date:     b.Day,
				DayIndex: idx,
				Time:     o.At.Format(time.TimeOnly),
				Mood:     o.Mood,
				Score:    o.Score,
			})
		}
	}
	return rows
}

// GraphSlot is one day of the rolling graph.
type GraphSlot struct {
	DayOffset int
	Average   float64
	Count     int
}

// RollingGraph lays daily reductions onto seven slots by offset from the
// window start. Days without data stay zero.
func RollingGraph(days []DayReduction) [WindowDays]GraphSlot {
	var g [WindowDays]GraphSlot
	for i := range g {
		g[i].DayOffset = i
	}
	for _, d := range days {
		i := d.DayIndex - 1
		if i < 0 || i >= WindowDays {
			continue
		}
		g[i].Average = d.AverageScore
		g[i].Count = d.Count
	}
	return g
}
