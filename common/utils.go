package common

import (
	"time"

	"github.com/google/uuid"
)

// NewTrackingId generates the correlation key for a submitted operation.
// It is distinct from any chain-assigned transaction id.
func NewTrackingId() string {
	return uuid.NewString()
}

// NowMs returns the current wall clock in unix milliseconds.
// Registry records and history entries carry this format.
func NowMs() int64 {
	return time.Now().UnixMilli()
}

// ParseEventTime parses an event-supplied RFC3339 timestamp into unix
// milliseconds. Returns (0, false) if the string is empty or malformed.
func ParseEventTime(ts string) (int64, bool) {
	if ts == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return 0, false
	}
	return t.UnixMilli(), true
}
