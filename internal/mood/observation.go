package mood

import "time"

// Observation is a single recorded mood. It is a value type; nothing mutates it after creation.
type Observation struct {
	Mood  string    `json:"mood"`
	Score int       `json:"score"`
	At    time.Time `json:"timestamp"`
	Owner string    `json:"user_id,omitempty"`
}

// New builds an observation whose score is derived from the label.
func New(label string, at time.Time, owner string) Observation {
	return Observation{Mood: label, Score: ScoreFor(label), At: at, Owner: owner}
}

// Reconcile returns the score to store for label when a raw score was
// also supplied. An explicit, parseable, on-scale score wins; anything
// else falls back to the label mapping.
func Reconcile(label string, score int, scoreOK bool) int {
	if scoreOK && ValidScore(score) {
		return score
	}
	return ScoreFor(label)
}
