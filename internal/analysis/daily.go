package analysis

import (
	"time"

	"github.com/excotide/moodify/internal/mood"
)

// DailyBucket groups one calendar day's observations in insertion order.
type DailyBucket struct {
	Day          time.Time
	Observations []mood.Observation
}

// DayReduction is one day reduced to a representative score and mood.
type DayReduction struct {
	Day          time.Time
	DayIndex     int
	AverageScore float64
	MajorityMood string
	Count        int
}

// BucketByDay groups observations inside w by calendar day. Days come out
// ascending; days without observations are omitted.
func BucketByDay(obs []mood.Observation, w Window) []DailyBucket {
	byDay := make(map[time.Time]int)
	var buckets []DailyBucket
	for _, o := range obs {
		if !w.Contains(o.At) {
			continue
		}
		d := DayOf(o.At)
		i, ok := byDay[d]
		if !ok {
			i = len(buckets)
			byDay[d] = i
			buckets = append(buckets, DailyBucket{Day: d})
		}
		buckets[i].Observations = append(buckets[i].Observations, o)
	}
	sortBuckets(buckets)
	return buckets
}

func sortBuckets(b []DailyBucket) {
	// insertion sort; at most seven buckets
	for i := 1; i < len(b); i++ {
		for j := i; j > 0 && b[j].Day.Before(b[j-1].Day); j-- {
			b[j], b[j-1] = b[j-1], b[j]
		}
	}
}

// Reduce computes the mean score and majority mood of the bucket.
// start is the window start used for the day index.
func (b DailyBucket) Reduce(start time.Time) DayReduction {
	sum := 0
	labels := make([]string, 0, len(b.Observations))
	for _, o := range b.Observations {
		sum += o.Score
		labels = append(labels, o.Mood)
	}
	r := DayReduction{
		Day:          b.Day,
		DayIndex:     DaysBetween(DayOf(start), b.Day) + 1,
		MajorityMood: majority(labels),
		Count:        len(b.Observations),
	}
	if r.Count > 0 {
		r.AverageScore = float64(sum) / float64(r.Count)
	}
	return r
}

// ReduceDays buckets and reduces every day with data in w.
func ReduceDays(obs []mood.Observation, w Window) []DayReduction {
	buckets := BucketByDay(obs, w)
	out := make([]DayReduction, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.Reduce(w.Start))
	}
	return out
}

// majority returns the most frequent label. Ties go to the label seen first.
func majority(labels []string) string {
	counts := make(map[string]int, len(labels))
	var order []string
	for _, l := range labels {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}
	best, bestN := "", 0
	for _, l := range order {
		if counts[l] > bestN {
			best, bestN = l, counts[l]
		}
	}
	return best
}
