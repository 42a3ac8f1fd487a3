package store

import (
	"context"
	"fmt"

	"github.com/ctxlog/ctx/internal/event"
)

// Append durably persists one command event and returns the id assigned
// by the store. The write is atomic: a failed append leaves no partial
// row behind. The event's ID field is ignored on input.
func (s *Store) Append(ctx context.Context, ev event.CommandEvent) (int64, error) {
	return appendEvent(ctx, s.db, ev)
}

func appendEvent(ctx context.Context, q dbtx, ev event.CommandEvent) (int64, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO command_events (command, cwd, timestamp, exit_code, duration_secs)
		VALUES (?, ?, ?, ?, ?)
	`,
		ev.Command,
		ev.Cwd,
		formatTimestamp(ev.Timestamp),
		intArg(ev.ExitCode),
		floatArg(ev.Duration),
	)
	if err != nil {
		return 0, fmt.Errorf("append event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("append event: last insert id: %w", err)
	}

	return id, nil
}

// ClearAll deletes every stored event and returns the number of rows
// removed. Irreversible. The id sequence is NOT reset: AUTOINCREMENT
// keeps handing out ids above the highest ever assigned, so ids stay
// unique across clears.
func (s *Store) ClearAll(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM command_events`)
	if err != nil {
		return 0, fmt.Errorf("clear events: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clear events: rows affected: %w", err)
	}

	return deleted, nil
}
