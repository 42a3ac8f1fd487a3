// Package render turns the query engine's data-shaped results into
// text or markdown. It is a pluggable consumer of the engine: nothing
// here reads the store.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ctxlog/ctx/internal/event"
	"github.com/ctxlog/ctx/internal/query"
	"github.com/ctxlog/ctx/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

// Events writes the standard listing used by log, today, weekly, and
// search output.
func Events(w io.Writer, events []event.CommandEvent) {
	for _, ev := range events {
		fmt.Fprintf(w, "[%s] %s\n  Dir: %s\n  Exit: %s | Duration: %s\n\n",
			ev.Timestamp.Format(timeLayout), ev.Command, ev.Cwd,
			exitCode(ev.ExitCode), duration(ev.Duration))
	}
}

// Summary writes the per-folder summary.
func Summary(w io.Writer, s query.Summary) {
	fmt.Fprintf(w, "Summary for '%s':\n", s.Folder)
	fmt.Fprintf(w, "  Commands run: %s\n", humanize.Comma(s.Stats.Count))
	fmt.Fprintf(w, "  Total time spent: %.2f seconds\n", s.Stats.TotalSecs)
	fmt.Fprintf(w, "  Shortest: %s | Longest: %s | Average: %s\n",
		duration(s.Stats.MinSecs), duration(s.Stats.MaxSecs), duration(s.Stats.AvgSecs))
}

// Top writes the frequency table. now anchors the relative last-used
// times so output stays deterministic under test.
func Top(w io.Writer, counts []store.CommandCount, now time.Time) {
	fmt.Fprintf(w, "Top %d most used commands:\n", len(counts))
	for i, c := range counts {
		fmt.Fprintf(w, "  %d. %s (%s times, last used %s)\n",
			i+1, c.Command, humanize.Comma(c.Count),
			humanize.RelTime(c.LastSeen, now, "ago", "from now"))
	}
}

// Projects writes the per-directory table.
func Projects(w io.Writer, aggs []store.CwdAggregate) {
	fmt.Fprintln(w, "Project folders:")
	for i, a := range aggs {
		fmt.Fprintf(w, "  %d. %s (%s commands, %.2f seconds)\n",
			i+1, a.Cwd, humanize.Comma(a.Count), a.TotalSecs)
	}
}

// Stats writes the global statistics block.
func Stats(w io.Writer, stats store.DurationStats) {
	fmt.Fprintln(w, "Overall Productivity Stats:")
	fmt.Fprintf(w, "  Total commands: %s\n", humanize.Comma(stats.Count))
	fmt.Fprintf(w, "  Total terminal time: %.2f seconds\n", stats.TotalSecs)
	fmt.Fprintf(w, "  Shortest command: %s\n", duration(stats.MinSecs))
	fmt.Fprintf(w, "  Longest command: %s\n", duration(stats.MaxSecs))
	fmt.Fprintf(w, "  Average command duration: %s\n", duration(stats.AvgSecs))
}

// Report writes the windowed productivity summary as plain text.
func Report(w io.Writer, r query.Report) {
	fmt.Fprintf(w, "Productivity Summary (%s):\n", r.Window)
	fmt.Fprintf(w, "Total commands: %s\n", humanize.Comma(r.TotalCommands))
	fmt.Fprintf(w, "Total terminal time: %.2f seconds\n", r.TotalSecs)
	fmt.Fprintf(w, "Total terminal uptime: %s\n", uptime(r.UptimeSecs))
	fmt.Fprintln(w, "Top 3 most worked folders:")
	for i, f := range r.TopFolders {
		fmt.Fprintf(w, "  %d. %s (%.2f seconds)\n", i+1, f.Folder, f.TotalSecs)
	}
	fmt.Fprintln(w, "Top 3 most used commands:")
	for i, c := range r.TopCommands {
		fmt.Fprintf(w, "  %d. %s (%s times)\n", i+1, c.Command, humanize.Comma(c.Count))
	}
}

// ReportMarkdown writes the windowed productivity summary as markdown.
func ReportMarkdown(w io.Writer, r query.Report) {
	fmt.Fprintf(w, "## Productivity Summary (%s)\n", r.Window)
	fmt.Fprintf(w, "- **Total commands:** %s\n", humanize.Comma(r.TotalCommands))
	fmt.Fprintf(w, "- **Total terminal time:** %.2f seconds\n", r.TotalSecs)
	fmt.Fprintf(w, "- **Total terminal uptime:** %s\n", uptime(r.UptimeSecs))
	fmt.Fprintln(w, "- **Top 3 most worked folders:**")
	for i, f := range r.TopFolders {
		fmt.Fprintf(w, "  %d. %s (`%.2f` seconds)\n", i+1, f.Folder, f.TotalSecs)
	}
	fmt.Fprintln(w, "- **Top 3 most used commands:**")
	for i, c := range r.TopCommands {
		fmt.Fprintf(w, "  %d. `%s` (%s times)\n", i+1, c.Command, humanize.Comma(c.Count))
	}
}

func exitCode(code *int) string {
	if code == nil {
		return "N/A"
	}
	return strconv.Itoa(*code)
}

func duration(secs *float64) string {
	if secs == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.2fs", *secs)
}

func uptime(secs *float64) string {
	if secs == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d seconds", int64(*secs))
}
