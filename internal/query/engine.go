// Package query implements the read-only aggregation engine over the
// event store.
//
// Every operation returns data-shaped results (slices and structs, no
// formatting) so that text, markdown, and JSON presentation layers can
// share one core. Nothing here mutates state.
package query

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gobwas/glob"

	"github.com/ctxlog/ctx/internal/event"
	"github.com/ctxlog/ctx/internal/store"
)

// DefaultTopN is the default table size for Top.
const DefaultTopN = 10

// Engine serves filtered lists and aggregates from the store.
type Engine struct {
	store *store.Store
	now   func() time.Time
}

// New builds an engine over the given store.
func New(st *store.Store) *Engine {
	return &Engine{store: st, now: time.Now}
}

// WithNow overrides the clock. Used in tests for window queries.
func (e *Engine) WithNow(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Log returns the full history, oldest first, or newest first when
// reverse is set.
func (e *Engine) Log(ctx context.Context, reverse bool) ([]event.CommandEvent, error) {
	return e.store.List(ctx, nil, reverse)
}

// Recent returns events observed within the window, oldest first.
func (e *Engine) Recent(ctx context.Context, w Window) ([]event.CommandEvent, error) {
	since := e.now().Add(-w.Span)
	return e.store.List(ctx, &since, false)
}

// Summary holds per-folder aggregates. Folder matching includes nested
// directories: /home/u/proj matches itself and /home/u/proj/sub.
type Summary struct {
	Folder string              `json:"folder"`
	Stats  store.DurationStats `json:"stats"`
}

// Summary aggregates all events whose working directory equals folder
// or is nested under it. An empty store yields zero counts and nil
// min/max/avg, not an error.
func (e *Engine) Summary(ctx context.Context, folder string) (Summary, error) {
	stats, err := e.store.StatsUnder(ctx, folder)
	if err != nil {
		return Summary{}, fmt.Errorf("summary: %w", err)
	}
	return Summary{Folder: folder, Stats: stats}, nil
}

// Top returns the n most frequent commands, grouped by full command
// line, ordered by count descending with ties broken by most recent
// occurrence first. n <= 0 falls back to DefaultTopN.
func (e *Engine) Top(ctx context.Context, n int) ([]store.CommandCount, error) {
	if n <= 0 {
		n = DefaultTopN
	}
	return e.store.TopCommands(ctx, n)
}

// Projects groups all events by working directory, one row per distinct
// directory with count and total duration, ordered by count descending.
func (e *Engine) Projects(ctx context.Context) ([]store.CwdAggregate, error) {
	return e.store.AggregateByCwd(ctx)
}

// Search returns events whose command line matches the pattern, in
// chronological order. Matching is case-sensitive. A pattern containing
// glob metacharacters (* ? [) is compiled as a glob over the whole
// command line; anything else is a plain substring match.
func (e *Engine) Search(ctx context.Context, pattern string) ([]event.CommandEvent, error) {
	var match func(string) bool
	if strings.ContainsAny(pattern, "*?[") {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile search pattern %q: %w", pattern, err)
		}
		match = g.Match
	} else {
		match = func(command string) bool {
			return strings.Contains(command, pattern)
		}
	}

	events, err := e.store.List(ctx, nil, false)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matched := []event.CommandEvent{}
	for _, ev := range events {
		if match(ev.Command) {
			matched = append(matched, ev)
		}
	}

	return matched, nil
}

// Stats returns global count and duration aggregates.
func (e *Engine) Stats(ctx context.Context) (store.DurationStats, error) {
	return e.store.Stats(ctx)
}

// Count returns the number of stored non-self events.
func (e *Engine) Count(ctx context.Context) (int64, error) {
	return e.store.Count(ctx)
}
