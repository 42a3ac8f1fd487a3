package query

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// reportTopSize bounds the folder and command tables in a report.
const reportTopSize = 3

// FolderTime is time spent in one working directory.
type FolderTime struct {
	Folder    string  `json:"folder"`
	TotalSecs float64 `json:"total_secs"`
}

// CommandUse is a per-command-line usage count.
type CommandUse struct {
	Command string `json:"command"`
	Count   int64  `json:"count"`
}

// Report is the windowed productivity summary consumed by the today and
// weekly exports.
type Report struct {
	Window        string       `json:"window"`
	TotalCommands int64        `json:"total_commands"`
	TotalSecs     float64      `json:"total_secs"`
	// UptimeSecs spans the first to the last observed command in the
	// window; nil when the window holds no events.
	UptimeSecs  *float64     `json:"uptime_secs"`
	TopFolders  []FolderTime `json:"top_folders"`
	TopCommands []CommandUse `json:"top_commands"`
}

// Report aggregates the window into totals, terminal uptime, the top
// folders by time spent, and the top commands by use count.
func (e *Engine) Report(ctx context.Context, w Window) (Report, error) {
	events, err := e.Recent(ctx, w)
	if err != nil {
		return Report{}, fmt.Errorf("report: %w", err)
	}

	report := Report{Window: w.Label}

	folderTime := make(map[string]float64)
	commandCount := make(map[string]int64)
	var first, last time.Time

	for _, ev := range events {
		if first.IsZero() {
			first = ev.Timestamp
		}
		last = ev.Timestamp

		if ev.Duration != nil {
			folderTime[ev.Cwd] += *ev.Duration
			report.TotalSecs += *ev.Duration
		} else if _, ok := folderTime[ev.Cwd]; !ok {
			folderTime[ev.Cwd] = 0
		}
		commandCount[ev.Command]++
		report.TotalCommands++
	}

	if !first.IsZero() {
		uptime := last.Sub(first).Seconds()
		report.UptimeSecs = &uptime
	}

	report.TopFolders = topFolders(folderTime)
	report.TopCommands = topCommands(commandCount)

	return report, nil
}

func topFolders(folderTime map[string]float64) []FolderTime {
	folders := make([]FolderTime, 0, len(folderTime))
	for folder, secs := range folderTime {
		folders = append(folders, FolderTime{Folder: folder, TotalSecs: secs})
	}
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].TotalSecs != folders[j].TotalSecs {
			return folders[i].TotalSecs > folders[j].TotalSecs
		}
		return folders[i].Folder < folders[j].Folder
	})
	if len(folders) > reportTopSize {
		folders = folders[:reportTopSize]
	}
	return folders
}

func topCommands(commandCount map[string]int64) []CommandUse {
	commands := make([]CommandUse, 0, len(commandCount))
	for command, count := range commandCount {
		commands = append(commands, CommandUse{Command: command, Count: count})
	}
	sort.Slice(commands, func(i, j int) bool {
		if commands[i].Count != commands[j].Count {
			return commands[i].Count > commands[j].Count
		}
		return commands[i].Command < commands[j].Command
	})
	if len(commands) > reportTopSize {
		commands = commands[:reportTopSize]
	}
	return commands
}
