package query

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctxlog/ctx/internal/testutil"
)

func TestReport_EmptyWindow(t *testing.T) {
	st := testutil.OpenStore(t)
	eng := New(st).WithNow(func() time.Time { return base })

	report, err := eng.Report(context.Background(), Today())
	require.NoError(t, err)
	assert.Equal(t, "Today", report.Window)
	assert.Equal(t, int64(0), report.TotalCommands)
	assert.Nil(t, report.UptimeSecs)
	assert.Empty(t, report.TopFolders)
	assert.Empty(t, report.TopCommands)
}

func TestReport_Aggregates(t *testing.T) {
	st := testutil.OpenStore(t)
	now := base.Add(12 * time.Hour)

	seed(t, st, "make", "/a", base, 10)
	seed(t, st, "make", "/a", base.Add(time.Hour), 5)
	seed(t, st, "vim .", "/b", base.Add(2*time.Hour), 30)
	// Outside the window.
	seed(t, st, "old", "/c", base.Add(-48*time.Hour), 100)

	eng := New(st).WithNow(func() time.Time { return now })
	report, err := eng.Report(context.Background(), Today())
	require.NoError(t, err)

	assert.Equal(t, int64(3), report.TotalCommands)
	assert.InDelta(t, 45.0, report.TotalSecs, 1e-9)

	require.NotNil(t, report.UptimeSecs)
	assert.InDelta(t, (2 * time.Hour).Seconds(), *report.UptimeSecs, 1e-9)

	require.Len(t, report.TopFolders, 2)
	assert.Equal(t, "/b", report.TopFolders[0].Folder, "ordered by time spent")
	assert.InDelta(t, 30.0, report.TopFolders[0].TotalSecs, 1e-9)

	require.Len(t, report.TopCommands, 2)
	assert.Equal(t, "make", report.TopCommands[0].Command)
	assert.Equal(t, int64(2), report.TopCommands[0].Count)
}

func TestReport_TopListsCappedAtThree(t *testing.T) {
	st := testutil.OpenStore(t)
	now := base.Add(time.Hour)

	for i := 0; i < 5; i++ {
		seed(t, st, string(rune('a'+i)), "/dir"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute), 1)
	}

	eng := New(st).WithNow(func() time.Time { return now })
	report, err := eng.Report(context.Background(), Today())
	require.NoError(t, err)

	assert.Len(t, report.TopFolders, 3)
	assert.Len(t, report.TopCommands, 3)
}

func TestWindow_Labels(t *testing.T) {
	assert.Equal(t, "Today", Today().Label)
	assert.Equal(t, 24*time.Hour, Today().Span)
	assert.Equal(t, "Weekly", LastNDays(7).Label)
	assert.Equal(t, "Last 3 Days", LastNDays(3).Label)
	assert.Equal(t, 3*24*time.Hour, LastNDays(3).Span)
}
