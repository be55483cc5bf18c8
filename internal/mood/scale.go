package mood

import (
	"strconv"
	"strings"
)

// Scale labels, least to most positive.
const (
	Kacau       = "Kacau"
	Buruk       = "Buruk"
	Netral      = "Netral"
	Bagus       = "Bagus"
	SangatBagus = "Sangat bagus"
)

const (
	MinScore = 1
	MaxScore = 5
	// NeutralScore is used for labels outside the scale.
	NeutralScore = 3
)

var labels = [...]string{Kacau, Buruk, Netral, Bagus, SangatBagus}

var aliases = map[string]int{
	"kacau":        1,
	"buruk":        2,
	"netral":       3,
	"bagus":        4,
	"sangat bagus": 5,
	"sangat_bagus": 5,
	"sangat-bagus": 5,
	"sangatbagus":  5,
}

// Labels returns the scale labels ordered by score.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}

// Lookup resolves a label (case-insensitive, common spellings accepted) to its score.
func Lookup(label string) (int, bool) {
	s, ok := aliases[strings.ToLower(strings.TrimSpace(label))]
	return s, ok
}

// ScoreFor maps a label to its score; unknown labels score as neutral.
func ScoreFor(label string) int {
	if s, ok := Lookup(label); ok {
		return s
	}
	return NeutralScore
}

// LabelFor maps a score to its label; out-of-range scores map to Netral.
func LabelFor(score int) string {
	if !ValidScore(score) {
		return Netral
	}
	return labels[score-1]
}

// ValidScore reports whether score lies on the scale.
func ValidScore(score int) bool { return score >= MinScore && score <= MaxScore }

// Canonical resolves user input to a scale label. Both labels ("bagus")
// and scores ("4") are accepted.
func Canonical(input string) (string, bool) {
	in := strings.TrimSpace(input)
	if n, err := strconv.Atoi(in); err == nil {
		if !ValidScore(n) {
			return "", false
		}
		return LabelFor(n), true
	}
	s, ok := Lookup(in)
	if !ok {
		return "", false
	}
	return LabelFor(s), true
}
