package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ctxlog/ctx/internal/filter"
)

// ReadFilterState loads the singleton filter state. A database with no
// state row yet (fresh install) returns the zero state, not an error.
func (s *Store) ReadFilterState(ctx context.Context) (filter.State, error) {
	return readFilterState(ctx, s.db)
}

// WriteFilterState overwrites the singleton filter state. Called once
// per ingestion, whatever the filter decided.
func (s *Store) WriteFilterState(ctx context.Context, st filter.State) error {
	return writeFilterState(ctx, s.db, st)
}

func readFilterState(ctx context.Context, q dbtx) (filter.State, error) {
	var st filter.State
	var lastTS string

	err := q.QueryRowContext(ctx, `
		SELECT last_command, last_timestamp FROM filter_state WHERE id = 1
	`).Scan(&st.LastCommand, &lastTS)
	if errors.Is(err, sql.ErrNoRows) {
		return filter.State{}, nil
	}
	if err != nil {
		return filter.State{}, fmt.Errorf("read filter state: %w", err)
	}

	parsed, err := parseTimestamp(lastTS)
	if err != nil {
		return filter.State{}, err
	}
	st.LastTimestamp = parsed

	return st, nil
}

func writeFilterState(ctx context.Context, q dbtx, st filter.State) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO filter_state (id, last_command, last_timestamp)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_command = excluded.last_command,
			last_timestamp = excluded.last_timestamp
	`,
		st.LastCommand,
		formatTimestamp(st.LastTimestamp),
	)
	if err != nil {
		return fmt.Errorf("write filter state: %w", err)
	}

	return nil
}
