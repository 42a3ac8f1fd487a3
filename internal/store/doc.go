// Package store provides SQLite-backed durable storage for the command
// history log.
//
// Two tables live in one database file:
//   - command_events: one row per accepted command invocation
//   - filter_state: singleton row holding the anti-abuse filter state
//
// # Invariants
//
//   - command_events.id is assigned by AUTOINCREMENT and is strictly
//     increasing with insertion order; ids are never reused, including
//     after a full clear.
//   - command text is stored verbatim and is never empty (CHECK constraint).
//   - Every read path excludes the logger's own invocations (leading
//     token "ctx") via one shared predicate; self-invocations are
//     physically stored but never observable through queries.
//   - Reads order by timestamp, then id as the tiebreak.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: bounded wait for locks, then error out
//   - foreign_keys=ON
//
// Concurrent invocations from separate processes are serialized by
// SQLite's own locking; the busy timeout guarantees a writer fails with
// an error rather than hanging when contention persists.
package store
