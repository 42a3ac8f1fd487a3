package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ctxlog/ctx/internal/event"
)

// selfExclusion filters the logger's own invocations out of every read
// path. Built from event.SelfCommand so the leading-token rule has a
// single source of truth. Matches the leading token only,
// case-sensitively (substr comparison is BINARY; LIKE would be
// case-insensitive for ASCII). Commands are stored trimmed, so a
// leading-token match is either the bare name or the name followed by a
// space.
var selfExclusion = fmt.Sprintf(
	`command <> '%s' AND substr(command, 1, %d) <> '%s '`,
	event.SelfCommand, len(event.SelfCommand)+1, event.SelfCommand,
)

// eventColumns is the column list shared by all event reads.
const eventColumns = `id, command, cwd, timestamp, exit_code, duration_secs`

// List returns stored events, excluding self-invocations.
//
// If since is non-nil, only events with timestamp >= since are returned.
// Results are ordered by timestamp then id (both descending when reverse
// is set). Returns an empty slice, not nil, when nothing matches.
func (s *Store) List(ctx context.Context, since *time.Time, reverse bool) ([]event.CommandEvent, error) {
	order := "ASC"
	if reverse {
		order = "DESC"
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM command_events
		WHERE %s
	`, eventColumns, selfExclusion)

	var args []any
	if since != nil {
		query += ` AND timestamp >= ?`
		args = append(args, formatTimestamp(*since))
	}
	query += fmt.Sprintf(` ORDER BY timestamp %s, id %s`, order, order)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []event.CommandEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	// Return empty slice instead of nil
	if events == nil {
		events = []event.CommandEvent{}
	}

	return events, nil
}

// Count returns the number of stored events, excluding self-invocations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM command_events WHERE `+selfExclusion,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}

// scanEvent scans a row into a CommandEvent.
func scanEvent(rows *sql.Rows) (event.CommandEvent, error) {
	var ev event.CommandEvent
	var ts string
	var exitCode sql.NullInt64
	var duration sql.NullFloat64

	if err := rows.Scan(&ev.ID, &ev.Command, &ev.Cwd, &ts, &exitCode, &duration); err != nil {
		return event.CommandEvent{}, fmt.Errorf("scan event: %w", err)
	}

	parsed, err := parseTimestamp(ts)
	if err != nil {
		return event.CommandEvent{}, err
	}
	ev.Timestamp = parsed
	ev.ExitCode = nullInt(exitCode)
	ev.Duration = nullFloat(duration)

	return ev, nil
}
