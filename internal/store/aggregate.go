package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// CwdAggregate is one per-directory grouping row.
type CwdAggregate struct {
	Cwd       string  `json:"cwd"`
	Count     int64   `json:"count"`
	TotalSecs float64 `json:"total_secs"`
}

// CommandCount is one per-command frequency row.
type CommandCount struct {
	Command  string    `json:"command"`
	Count    int64     `json:"count"`
	LastSeen time.Time `json:"last_seen"`
}

// DurationStats aggregates event counts and durations. Min, Max and Avg
// are nil when no events (or no measured durations) exist - an empty
// store is not an error.
type DurationStats struct {
	Count     int64    `json:"count"`
	TotalSecs float64  `json:"total_secs"`
	MinSecs   *float64 `json:"min_secs"`
	MaxSecs   *float64 `json:"max_secs"`
	AvgSecs   *float64 `json:"avg_secs"`
}

// AggregateByCwd groups all events by working directory, ordered by
// count descending. Self-invocations are excluded.
func (s *Store) AggregateByCwd(ctx context.Context) ([]CwdAggregate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT cwd, COUNT(*) AS cnt, COALESCE(SUM(duration_secs), 0)
		FROM command_events
		WHERE `+selfExclusion+`
		GROUP BY cwd
		ORDER BY cnt DESC, cwd ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate by cwd: %w", err)
	}
	defer rows.Close()

	var aggs []CwdAggregate
	for rows.Next() {
		var a CwdAggregate
		if err := rows.Scan(&a.Cwd, &a.Count, &a.TotalSecs); err != nil {
			return nil, fmt.Errorf("scan cwd aggregate: %w", err)
		}
		aggs = append(aggs, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cwd aggregates: %w", err)
	}

	if aggs == nil {
		aggs = []CwdAggregate{}
	}

	return aggs, nil
}

// TopCommands groups events by full command line and returns the n most
// frequent, ties broken by most recent occurrence first. Grouping by the
// full line keeps "git status" and "git push" distinct.
func (s *Store) TopCommands(ctx context.Context, n int) ([]CommandCount, error) {
	// MAX(timestamp) works as a recency tiebreak because the stored
	// form is fixed-width and collates chronologically.
	rows, err := s.db.QueryContext(ctx, `
		SELECT command, COUNT(*) AS cnt, MAX(timestamp) AS last_ts
		FROM command_events
		WHERE `+selfExclusion+`
		GROUP BY command
		ORDER BY cnt DESC, last_ts DESC, command ASC
		LIMIT ?
	`, n)
	if err != nil {
		return nil, fmt.Errorf("top commands: %w", err)
	}
	defer rows.Close()

	var counts []CommandCount
	for rows.Next() {
		var c CommandCount
		var lastTS string
		if err := rows.Scan(&c.Command, &c.Count, &lastTS); err != nil {
			return nil, fmt.Errorf("scan command count: %w", err)
		}
		parsed, err := parseTimestamp(lastTS)
		if err != nil {
			return nil, err
		}
		c.LastSeen = parsed
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate command counts: %w", err)
	}

	if counts == nil {
		counts = []CommandCount{}
	}

	return counts, nil
}

// Stats returns global count and duration aggregates across all
// non-self events.
func (s *Store) Stats(ctx context.Context) (DurationStats, error) {
	return s.durationStats(ctx, selfExclusion, nil)
}

// StatsUnder returns count and duration aggregates for all events whose
// working directory equals folder or is nested under it.
func (s *Store) StatsUnder(ctx context.Context, folder string) (DurationStats, error) {
	folder = strings.TrimRight(folder, "/")
	if folder == "" {
		folder = "/"
	}
	// substr comparison keeps the nesting check case-sensitive and
	// avoids LIKE-escaping the folder's own wildcards.
	where := selfExclusion + ` AND (cwd = ? OR substr(cwd, 1, length(?) + 1) = ? || '/')`
	return s.durationStats(ctx, where, []any{folder, folder, folder})
}

func (s *Store) durationStats(ctx context.Context, where string, args []any) (DurationStats, error) {
	var stats DurationStats
	var total sql.NullFloat64
	var min, max, avg sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), SUM(duration_secs), MIN(duration_secs), MAX(duration_secs), AVG(duration_secs)
		FROM command_events
		WHERE `+where, args...,
	).Scan(&stats.Count, &total, &min, &max, &avg)
	if err != nil {
		return DurationStats{}, fmt.Errorf("duration stats: %w", err)
	}

	if total.Valid {
		stats.TotalSecs = total.Float64
	}
	stats.MinSecs = nullFloat(min)
	stats.MaxSecs = nullFloat(max)
	stats.AvgSecs = nullFloat(avg)

	return stats, nil
}
