// Package ingest implements the write path: one candidate event in, at
// most one stored event out.
//
// Each shell command spawns one short-lived process that performs a
// single Ingest call and exits; there is no daemon. Cross-process
// serialization is delegated to the store's SQLite locking.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ctxlog/ctx/internal/event"
	"github.com/ctxlog/ctx/internal/filter"
	"github.com/ctxlog/ctx/internal/store"
)

// Status classifies the outcome of one ingestion call.
type Status int

const (
	// StatusStored means the candidate was accepted and persisted.
	StatusStored Status = iota
	// StatusDropped means the candidate was malformed (hook artifact)
	// and discarded with no state update.
	StatusDropped
	// StatusRejected means the anti-abuse filter refused the candidate.
	// Filter state was still advanced.
	StatusRejected
)

// Outcome reports what happened to one candidate.
type Outcome struct {
	Status   Status
	Decision filter.Decision // meaningful unless Status == StatusDropped
	EventID  int64           // set when Status == StatusStored
}

// Pipeline is the only writer of both the event table and the filter
// state.
type Pipeline struct {
	store  *store.Store
	filter *filter.Filter
	now    func() time.Time
	logger *slog.Logger
}

// New builds a pipeline over the given store and filter.
func New(st *store.Store, f *filter.Filter) *Pipeline {
	return &Pipeline{
		store:  st,
		filter: f,
		now:    time.Now,
		logger: slog.Default(),
	}
}

// WithNow overrides the clock. Used in tests.
func (p *Pipeline) WithNow(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// Ingest normalizes one candidate, runs it through the filter, and
// persists it if accepted.
//
// Malformed candidates are dropped silently with no state update.
// For everything else the read-decide-write sequence (filter state read,
// state advance, event append) runs inside one exclusive write
// transaction, so concurrent invocations from separate shells serialize:
// each sees the state left by the previous one, and the state update and
// the append commit or roll back together.
//
// Storage errors (including filter state reads/writes) propagate to the
// caller; there are no retries.
func (p *Pipeline) Ingest(ctx context.Context, cand event.Candidate) (Outcome, error) {
	traceID := uuid.NewString()

	ev, err := event.Normalize(cand, p.now)
	if err != nil {
		var verr *event.ValidationError
		if errors.As(err, &verr) {
			p.logger.Debug("dropped malformed candidate",
				"trace_id", traceID, "reason", verr.Error())
			return Outcome{Status: StatusDropped}, nil
		}
		return Outcome{}, fmt.Errorf("normalize candidate: %w", err)
	}

	var outcome Outcome
	err = p.store.InWriteTx(ctx, func(tx *store.Tx) error {
		st, err := tx.ReadFilterState(ctx)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}

		decision := p.filter.Evaluate(ev, cand.Interactive, st)

		if err := tx.WriteFilterState(ctx, st.Advance(ev)); err != nil {
			return fmt.Errorf("ingest: %w", err)
		}

		if !decision.Accepted() {
			outcome = Outcome{Status: StatusRejected, Decision: decision}
			return nil
		}

		id, err := tx.Append(ctx, ev)
		if err != nil {
			return fmt.Errorf("ingest: %w", err)
		}

		outcome = Outcome{Status: StatusStored, Decision: filter.Accept, EventID: id}
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if outcome.Status == StatusRejected {
		p.logger.Debug("rejected candidate",
			"trace_id", traceID, "decision", outcome.Decision.String())
	} else {
		p.logger.Debug("stored event",
			"trace_id", traceID, "event_id", outcome.EventID, "cwd", ev.Cwd)
	}

	return outcome, nil
}
