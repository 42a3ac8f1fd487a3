package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxlog/ctx/internal/filter"
)

func TestReadFilterState_FreshDatabase(t *testing.T) {
	s := openTestStore(t)

	st, err := s.ReadFilterState(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filter.State{}, st)
}

func TestFilterState_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 500000000, time.UTC)
	in := filter.State{LastCommand: "git status", LastTimestamp: ts}

	require.NoError(t, s.WriteFilterState(ctx, in))

	got, err := s.ReadFilterState(ctx)
	require.NoError(t, err)
	assert.Equal(t, in.LastCommand, got.LastCommand)
	assert.True(t, got.LastTimestamp.Equal(ts))
}

func TestWriteFilterState_Overwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.WriteFilterState(ctx, filter.State{LastCommand: "first", LastTimestamp: base}))
	require.NoError(t, s.WriteFilterState(ctx, filter.State{LastCommand: "second", LastTimestamp: base.Add(time.Second)}))

	got, err := s.ReadFilterState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", got.LastCommand)
	assert.True(t, got.LastTimestamp.Equal(base.Add(time.Second)))

	// Still exactly one row.
	var count int
	require.NoError(t, s.db.QueryRow("SELECT COUNT(*) FROM filter_state").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestFilterState_SurvivesClearAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	st := filter.State{LastCommand: "make", LastTimestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, s.WriteFilterState(ctx, st))

	_, err := s.ClearAll(ctx)
	require.NoError(t, err)

	got, err := s.ReadFilterState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "make", got.LastCommand)
}
