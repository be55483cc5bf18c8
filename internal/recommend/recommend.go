// Package recommend maps a weekly average score onto suggestions.
package recommend

// Level buckets a weekly average.
type Level int

const (
	NoData Level = iota
	Low
	Neutral
	Positive
	VeryPositive
)

// LevelFor buckets avg: <=0 no data, <=2.0 low, <3.5 neutral, <4.5 positive, else very positive.
func LevelFor(avg float64) Level {
	switch {
	case avg <= 0:
		return NoData
	case avg <= 2.0:
		return Low
	case avg < 3.5:
		return Neutral
	case avg < 4.5:
		return Positive
	default:
		return VeryPositive
	}
}

var headings = map[Level]string{
	NoData:       "No mood data in the last 7 days",
	Low:          "Suggestions for a low mood",
	Neutral:      "Suggestions for a neutral mood",
	Positive:     "Suggestions for a positive mood",
	VeryPositive: "Suggestions for a very positive mood",
}

var suggestions = map[Level][]string{
	NoData: {
		"Record a few moods first to get suggestions that fit you.",
	},
	Low: {
		"Take 5-10 minutes for box breathing (4-4-4-4)",
		"Try a short journal entry: write what you feel without judging it",
		"Reach out to someone you trust or ask for a little support",
		"Do something light: a slow walk or some stretching",
	},
	Neutral: {
		"Plan three small things for tomorrow",
		"Drink some water and have a healthy snack",
		"Listen to calming music or a favourite playlist",
		"Write down one thing that went reasonably well today",
	},
	Positive: {
		"Keep the good habits going: 20 minutes of physical activity",
		"Pick one small goal you can finish today",
		"Share something good with a friend or family member",
		"Spend 10 minutes on a hobby you enjoy",
	},
	VeryPositive: {
		"Celebrate what you achieved with a small reward",
		"Try a new, light challenge to keep growing",
		"Help someone else: send an encouraging message",
		"Plan something to look forward to this weekend",
	},
}

// Heading returns the title shown above the suggestions for avg.
func Heading(avg float64) string { return headings[LevelFor(avg)] }

// ForAverage returns the suggestions for avg. The slice is a copy.
func ForAverage(avg float64) []string {
	s := suggestions[LevelFor(avg)]
	out := make([]string, len(s))
	copy(out, s)
	return out
}
