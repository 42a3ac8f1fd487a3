package event

import (
	"fmt"
	"strings"
	"time"
)

// SelfCommand is the leading token of the logger's own invocations.
// Events whose command line starts with this token never appear in
// query results.
const SelfCommand = "ctx"

// CommandEvent is one accepted command-execution record.
//
// Rows are immutable once written except for the full-table clear.
// Command is stored verbatim as typed, arguments and all.
type CommandEvent struct {
	ID        int64     `json:"id"`
	Command   string    `json:"command"`
	Cwd       string    `json:"cwd"`
	Timestamp time.Time `json:"timestamp"`
	ExitCode  *int      `json:"exit_code"`     // nil when the hook could not report one
	Duration  *float64  `json:"duration_secs"` // seconds; nil when the hook could not measure
}

// Candidate is a raw command-completion report from the shell hook,
// before normalization and filtering.
type Candidate struct {
	Command     string
	Cwd         string
	Timestamp   time.Time
	ExitCode    *int
	Duration    *float64
	Interactive bool
}

// ValidationError marks a malformed candidate. The ingestion pipeline
// drops these silently; they are hook artifacts, not real commands.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid candidate: %s %s", e.Field, e.Reason)
}

// Normalize converts a raw candidate into a storable CommandEvent.
//
// Command and cwd are whitespace-trimmed; an empty command or cwd after
// trimming returns a *ValidationError. A zero timestamp is replaced with
// now(). Timestamps are normalized to UTC.
func Normalize(c Candidate, now func() time.Time) (CommandEvent, error) {
	command := strings.TrimSpace(c.Command)
	if command == "" {
		return CommandEvent{}, &ValidationError{Field: "command", Reason: "is empty"}
	}

	cwd := strings.TrimSpace(c.Cwd)
	if cwd == "" {
		return CommandEvent{}, &ValidationError{Field: "cwd", Reason: "is empty"}
	}

	ts := c.Timestamp
	if ts.IsZero() {
		ts = now()
	}

	return CommandEvent{
		Command:   command,
		Cwd:       cwd,
		Timestamp: ts.UTC(),
		ExitCode:  c.ExitCode,
		Duration:  c.Duration,
	}, nil
}

// IsSelfInvocation reports whether a command line invokes the logger
// itself. Only the leading whitespace-delimited token is considered, so
// "ctx stats" matches but "ctxgrep foo" does not.
func IsSelfInvocation(command string) bool {
	trimmed := strings.TrimSpace(command)
	return trimmed == SelfCommand || strings.HasPrefix(trimmed, SelfCommand+" ")
}

// FirstToken returns the first whitespace-delimited token of a command
// line, or "" for a blank line.
func FirstToken(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
