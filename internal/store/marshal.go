package store

import (
	"database/sql"
	"fmt"
	"time"
)

// timestampLayout is a fixed-width RFC 3339 UTC form. The fractional
// seconds are always nine digits so that lexicographic ordering of the
// stored strings matches chronological ordering - SQLite compares and
// aggregates timestamps as TEXT.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// formatTimestamp renders a timestamp for storage. Always UTC.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTimestamp reads a stored timestamp back. Accepts any RFC 3339
// string, not just the fixed-width form, so hand-edited rows still load.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// nullInt converts a nullable SQL integer into a *int.
func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// intArg converts a *int into a driver-friendly value.
func intArg(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

// nullFloat converts a nullable SQL float into a *float64.
func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// floatArg converts a *float64 into a driver-friendly value.
func floatArg(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
