package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxlog/ctx/internal/event"
)

func TestList_EmptyStore(t *testing.T) {
	s := openTestStore(t)

	events, err := s.List(context.Background(), nil, false)
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestList_OrderedByTimestampThenID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order; two rows share a timestamp so
	// id breaks the tie.
	_, err := s.Append(ctx, testEvent("second", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = s.Append(ctx, testEvent("first", base))
	require.NoError(t, err)
	_, err = s.Append(ctx, testEvent("third", base.Add(time.Minute)))
	require.NoError(t, err)

	events, err := s.List(ctx, nil, false)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "first", events[0].Command)
	assert.Equal(t, "second", events[1].Command)
	assert.Equal(t, "third", events[2].Command)

	reversed, err := s.List(ctx, nil, true)
	require.NoError(t, err)
	require.Len(t, reversed, 3)
	assert.Equal(t, "third", reversed[0].Command)
	assert.Equal(t, "second", reversed[1].Command)
	assert.Equal(t, "first", reversed[2].Command)
}

func TestList_SinceFilter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	_, err := s.Append(ctx, testEvent("old", base.Add(-48*time.Hour)))
	require.NoError(t, err)
	_, err = s.Append(ctx, testEvent("boundary", base))
	require.NoError(t, err)
	_, err = s.Append(ctx, testEvent("new", base.Add(time.Hour)))
	require.NoError(t, err)

	events, err := s.List(ctx, &base, false)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "boundary", events[0].Command)
	assert.Equal(t, "new", events[1].Command)
}

func TestList_ExcludesSelfInvocations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	commands := []string{
		event.SelfCommand,                             // excluded
		event.SelfCommand + " stats",                  // excluded
		event.SelfCommand + "grep foo",                // leading token differs
		strings.ToUpper(event.SelfCommand) + " stats", // exclusion is case-sensitive
		"echo " + event.SelfCommand,                   // not the leading token
		"git status",
	}
	for i, command := range commands {
		_, err := s.Append(ctx, testEvent(command, base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	events, err := s.List(ctx, nil, false)
	require.NoError(t, err)

	var got []string
	for _, ev := range events {
		got = append(got, ev.Command)
	}
	assert.Equal(t, []string{"ctxgrep foo", "CTX stats", "echo ctx", "git status"}, got)

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
