package mood

import "errors"

var (
	// ErrUnparsableTimestamp marks a single row whose timestamp matched no known shape.
	ErrUnparsableTimestamp = errors.New("unparsable timestamp")
	// ErrUnrecognizedSchema marks a tabular batch lacking the mood, score or timestamp column.
	ErrUnrecognizedSchema = errors.New("unrecognized schema")
	// ErrFutureDatedObservation is returned when an observation is timestamped after now.
	ErrFutureDatedObservation = errors.New("observation is dated in the future")
	// ErrStoreUnavailable is matched by every store I/O failure.
	ErrStoreUnavailable = errors.New("observation store unavailable")
	// ErrUnknownMood is returned when recording a label outside the scale.
	ErrUnknownMood = errors.New("unknown mood")
)
