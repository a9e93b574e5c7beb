package parser

import (
	"fmt"
	"time"
)

// The upstream feeds emit timestamps in a handful of shapes, distinguishable
// by string length alone. Anything else is tried against the numeric-offset
// ISO-8601 layout as a last resort.
const (
	layoutUTCMillis    = "2006-01-02T15:04:05.000Z"     // length 24, literal Z
	layoutOffsetColon  = "2006-01-02T15:04:05-07:00"    // length 25
	layoutDateOnly     = "2006-01-02"                   // length 10, local midnight
	layoutOffsetMillis = "2006-01-02T15:04:05.000-0700" // fallback
)

// parseFeedDate parses a feed timestamp by length dispatch. A failure is the
// caller's cue to drop the owning item; substituting the current time here
// would corrupt grouping and dedup downstream.
func parseFeedDate(s string) (time.Time, error) {
	switch len(s) {
	case 24:
		return time.Parse(layoutUTCMillis, s)
	case 25:
		return time.Parse(layoutOffsetColon, s)
	case 10:
		return time.ParseInLocation(layoutDateOnly, s, time.Local)
	}

	t, err := time.Parse(layoutOffsetMillis, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q: %w", s, err)
	}
	return t, nil
}
