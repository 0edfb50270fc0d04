package timeutil

import "time"

// Now returns the current time in UTC. Audit timestamps always use it so
// records from different hosts compare directly.
func Now() time.Time {
	return time.Now().UTC()
}

// ToUTC converts a time.Time to UTC, leaving the zero time unchanged
func ToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
