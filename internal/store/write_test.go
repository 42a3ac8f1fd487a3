package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxlog/ctx/internal/event"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEvent(command string, ts time.Time) event.CommandEvent {
	secs := 0.5
	code := 0
	return event.CommandEvent{
		Command:   command,
		Cwd:       "/home/user/proj",
		Timestamp: ts,
		ExitCode:  &code,
		Duration:  &secs,
	}
}

func TestAppend_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 6, 1, 12, 0, 0, 123456789, time.UTC)
	secs := 2.25
	code := 1
	in := event.CommandEvent{
		Command:   "git push origin main --force-with-lease",
		Cwd:       "/home/user/proj",
		Timestamp: ts,
		ExitCode:  &code,
		Duration:  &secs,
	}

	id, err := s.Append(ctx, in)
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	events, err := s.List(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Command, got.Command)
	assert.Equal(t, in.Cwd, got.Cwd)
	assert.True(t, got.Timestamp.Equal(ts), "timestamp %v != %v", got.Timestamp, ts)
	require.NotNil(t, got.ExitCode)
	assert.Equal(t, code, *got.ExitCode)
	require.NotNil(t, got.Duration)
	assert.Equal(t, secs, *got.Duration)
}

func TestAppend_NilExitCode(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := testEvent("make", time.Now().UTC())
	ev.ExitCode = nil
	_, err := s.Append(ctx, ev)
	require.NoError(t, err)

	events, err := s.List(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].ExitCode)
}

func TestAppend_NilDuration(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := testEvent("make", time.Now().UTC())
	ev.Duration = nil
	_, err := s.Append(ctx, ev)
	require.NoError(t, err)

	events, err := s.List(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].Duration)
}

func TestAppend_EmptyCommandRejected(t *testing.T) {
	s := openTestStore(t)

	ev := testEvent("", time.Now().UTC())
	_, err := s.Append(context.Background(), ev)
	assert.Error(t, err, "CHECK constraint should refuse an empty command")
}

func TestAppend_IDsStrictlyIncreasing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var prev int64
	for i := 0; i < 5; i++ {
		id, err := s.Append(ctx, testEvent("make", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestClearAll_CountAndIDSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var lastID int64
	for i := 0; i < 3; i++ {
		id, err := s.Append(ctx, testEvent("make", base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
		lastID = id
	}

	deleted, err := s.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// Ids are never reused: AUTOINCREMENT keeps counting past the clear.
	id, err := s.Append(ctx, testEvent("make again", base.Add(time.Minute)))
	require.NoError(t, err)
	assert.Greater(t, id, lastID)
}

func TestClearAll_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	deleted, err := s.ClearAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

// Concurrent writers from separate connections must never interleave
// into corrupted or partial rows.
func TestAppend_ConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	const writers = 4
	const perWriter = 25

	stores := make([]*Store, writers)
	for i := range stores {
		s, err := Open(path)
		require.NoError(t, err)
		defer s.Close()
		stores[i] = s
	}

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)

	for i, s := range stores {
		wg.Add(1)
		go func(i int, s *Store) {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				ts := base.Add(time.Duration(i*perWriter+j) * time.Second)
				if _, err := s.Append(context.Background(), testEvent("stress", ts)); err != nil {
					errs <- err
				}
			}
		}(i, s)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent append failed: %v", err)
	}

	count, err := stores[0].Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(writers*perWriter), count)

	// Every row survived intact.
	events, err := stores[0].List(context.Background(), nil, false)
	require.NoError(t, err)
	for _, ev := range events {
		assert.Equal(t, "stress", ev.Command)
		assert.NotNil(t, ev.Duration)
	}
}
