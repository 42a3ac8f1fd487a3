package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ctxlog/ctx/internal/event"
	"github.com/ctxlog/ctx/internal/filter"
)

// dbtx is the subset of sql.DB and sql.Tx the statement helpers need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Tx exposes the write-path operations inside one write transaction.
type Tx struct {
	tx *sql.Tx
}

// ReadFilterState is Store.ReadFilterState inside the transaction.
func (t *Tx) ReadFilterState(ctx context.Context) (filter.State, error) {
	return readFilterState(ctx, t.tx)
}

// WriteFilterState is Store.WriteFilterState inside the transaction.
func (t *Tx) WriteFilterState(ctx context.Context, st filter.State) error {
	return writeFilterState(ctx, t.tx, st)
}

// Append is Store.Append inside the transaction.
func (t *Tx) Append(ctx context.Context, ev event.CommandEvent) (int64, error) {
	return appendEvent(ctx, t.tx, ev)
}

// InWriteTx runs fn inside a single write transaction. The connection
// opens transactions with BEGIN IMMEDIATE, so the database write lock is
// held from the first statement onward: concurrent writers in other
// processes queue behind it (bounded by busy_timeout) instead of
// interleaving with it. An error from fn rolls the whole transaction
// back.
func (s *Store) InWriteTx(ctx context.Context, fn func(*Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write tx: %w", err)
	}

	if err := fn(&Tx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write tx: %w", err)
	}

	return nil
}
