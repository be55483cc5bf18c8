package analysis

import (
	"testing"

	"github.com/excotide/moodify/internal/mood"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reductions(avgs ...float64) []DayReduction {
	labels := []string{mood.Bagus, mood.Kacau, mood.Bagus, mood.Kacau, mood.Netral, mood.Netral, mood.Bagus}
	out := make([]DayReduction, len(avgs))
	for i, a := range avgs {
		out[i] = DayReduction{DayIndex: i + 1, AverageScore: a, MajorityMood: labels[i%len(labels)], Count: 1}
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)
	assert.Equal(t, WeeklyStats{}, s)
	assert.Equal(t, "", s.AverageMoodLabel())
	assert.Equal(t, 0.0, s.PositiveRatio())
}

func TestAggregateCompleteWeek(t *testing.T) {
	s := Aggregate(reductions(4, 1, 4.5, 2, 3, 3, 5))
	assert.Equal(t, 7, s.DaysWithData)
	assert.True(t, s.IsComplete)
	assert.Equal(t, 3, s.PositiveDays)
	assert.Equal(t, 2, s.NegativeDays)
	assert.Equal(t, mood.Bagus, s.DominantMood)
	assert.InDelta(t, 22.5/7, s.AverageScore, 1e-9)
	assert.InDelta(t, 0.6, s.PositiveRatio(), 1e-9)
	assert.Equal(t, mood.Netral, s.AverageMoodLabel())

	v := s.View(SuppressIncomplete)
	assert.False(t, v.Gated())
	assert.Equal(t, mood.Bagus, v.DominantMood)
}

func TestDominantMoodTieGoesToEarlierDay(t *testing.T) {
	s := Aggregate(reductions(4, 1))
	assert.Equal(t, mood.Bagus, s.DominantMood)
}

func TestIncompletePolicies(t *testing.T) {
	s := Aggregate(reductions(4, 5, 4))
	require.False(t, s.IsComplete)

	sup := s.View(SuppressIncomplete)
	assert.True(t, sup.Gated())
	assert.Equal(t, "", sup.DominantMood)
	assert.Equal(t, 0.0, sup.PositiveRatio())
	assert.Equal(t, "", sup.AverageMoodLabel())
	assert.Equal(t, 3, sup.DaysWithData)

	rep := s.View(ReportIncomplete)
	assert.False(t, rep.Gated())
	assert.Equal(t, mood.Bagus, rep.DominantMood)
	assert.Equal(t, 1.0, rep.PositiveRatio())
	assert.Equal(t, mood.Bagus, rep.AverageMoodLabel())
}

func TestParseIncompletePolicy(t *testing.T) {
	p, err := ParseIncompletePolicy("")
	require.NoError(t, err)
	assert.Equal(t, SuppressIncomplete, p)
	p, err = ParseIncompletePolicy("REPORT")
	require.NoError(t, err)
	assert.Equal(t, ReportIncomplete, p)
	_, err = ParseIncompletePolicy("maybe")
	assert.Error(t, err)
}

func TestDistribution(t *testing.T) {
	d := Distribution(reductions(4, 1, 4))
	assert.Equal(t, []MoodCount{{Mood: mood.Bagus, Days: 2}, {Mood: mood.Kacau, Days: 1}}, d)
}
