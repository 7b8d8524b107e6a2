package store

import (
	"fmt"
	"time"
)

// Entry timestamps are stored as local wall-clock text. The layout sorts
// lexicographically, so SQL ORDER BY timestamp matches chronological
// order without driver-side time conversion.
const entryTimeLayout = "2006-01-02 15:04:05"

// created_at is the only UTC instant in the schema.
const createdAtLayout = time.RFC3339

// zeroTime marks an open bound in range queries.
var zeroTime time.Time

func formatEntryTime(t time.Time) string {
	return t.Local().Format(entryTimeLayout)
}

func parseEntryTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(entryTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse entry timestamp %q: %w", s, err)
	}
	return t, nil
}
