// Package filter implements the anti-abuse gate for candidate events.
//
// The filter is a pure decision function over a candidate and a small
// persisted state (last command seen, last timestamp seen). It never
// reads history: every rule is O(1) over the candidate and the state.
//
// State is advanced for every candidate, accepted or rejected, so
// back-to-back invocations of the same blacklisted or rapid command are
// still detected as duplicates of each other.
package filter

import (
	"time"

	"github.com/ctxlog/ctx/internal/event"
)

// RapidThreshold is the minimum gap between two candidates. Anything
// observed closer than this to the previous candidate is rejected as
// rapid-fire (hook loops, pasted multi-line blocks).
const RapidThreshold = 500 * time.Millisecond

// Decision is the filter outcome for one candidate.
type Decision int

const (
	Accept Decision = iota
	RejectNonInteractive
	RejectBlacklisted
	RejectRapid
	RejectDuplicate
)

// String returns a stable identifier for logs and test output.
func (d Decision) String() string {
	switch d {
	case Accept:
		return "accept"
	case RejectNonInteractive:
		return "reject_non_interactive"
	case RejectBlacklisted:
		return "reject_blacklisted"
	case RejectRapid:
		return "reject_rapid"
	case RejectDuplicate:
		return "reject_duplicate"
	default:
		return "unknown"
	}
}

// Accepted reports whether the decision allows the event to be stored.
func (d Decision) Accepted() bool {
	return d == Accept
}

// Blacklist is the fixed set of first tokens that are never recorded.
// Configuration may append tokens but never removes these.
var Blacklist = []string{"ls", "clear", "pwd", "history", "exit"}

// State is the singleton filter state, persisted between invocations.
// It tracks the most recently *seen* candidate, not the most recently
// stored event: rejected candidates advance it too.
type State struct {
	LastCommand   string
	LastTimestamp time.Time
}

// Advance returns the successor state after observing a candidate,
// regardless of the decision taken for it.
func (s State) Advance(ev event.CommandEvent) State {
	return State{LastCommand: ev.Command, LastTimestamp: ev.Timestamp}
}

// Filter evaluates candidates against the blacklist and the persisted
// state. Safe for concurrent use; evaluation has no side effects.
type Filter struct {
	blacklist map[string]struct{}
}

// New builds a filter from the fixed blacklist plus any extra tokens.
func New(extra ...string) *Filter {
	bl := make(map[string]struct{}, len(Blacklist)+len(extra))
	for _, tok := range Blacklist {
		bl[tok] = struct{}{}
	}
	for _, tok := range extra {
		if tok != "" {
			bl[tok] = struct{}{}
		}
	}
	return &Filter{blacklist: bl}
}

// Evaluate applies the rejection rules in precedence order and returns
// the first match:
//
//  1. non-interactive invocation context
//  2. first token on the blacklist
//  3. observed within RapidThreshold of the previous candidate
//  4. exact duplicate of the previous candidate's command line
//
// The caller is responsible for persisting st.Advance(ev) afterwards,
// whatever the decision.
func (f *Filter) Evaluate(ev event.CommandEvent, interactive bool, st State) Decision {
	if !interactive {
		return RejectNonInteractive
	}

	if _, ok := f.blacklist[event.FirstToken(ev.Command)]; ok {
		return RejectBlacklisted
	}

	if !st.LastTimestamp.IsZero() && ev.Timestamp.Sub(st.LastTimestamp) < RapidThreshold {
		return RejectRapid
	}

	if st.LastCommand != "" && ev.Command == st.LastCommand {
		return RejectDuplicate
	}

	return Accept
}
