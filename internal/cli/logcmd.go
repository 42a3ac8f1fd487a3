package cli

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/event"
	"github.com/ctxlog/ctx/internal/filter"
	"github.com/ctxlog/ctx/internal/ingest"
)

// LogCmdOptions holds flags for the log-cmd command.
type LogCmdOptions struct {
	*RootOptions
	Timestamp   string
	Interactive string // "auto" | "yes" | "no"
}

// NewLogCmdCommand creates the hidden ingestion entry point invoked by
// the shell hook once per completed command.
func NewLogCmdCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogCmdOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:    "log-cmd <command> <cwd> <exit_code> <duration_secs>",
		Short:  "Log a command (internal use)",
		Hidden: true,
		Args:   cobra.ExactArgs(4),
		// The shell hook must never stall or see noise: usage and
		// error chatter stay off unless something truly failed.
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogCmd(opts, cmd, args)
		},
	}

	cmd.Flags().StringVar(&opts.Timestamp, "timestamp", "", "event time, RFC 3339 (default: now)")
	cmd.Flags().StringVar(&opts.Interactive, "interactive", "auto", "interactive context (auto|yes|no)")

	return cmd
}

func runLogCmd(opts *LogCmdOptions, cmd *cobra.Command, args []string) error {
	configureLogging(opts.Verbose)

	cand := event.Candidate{
		Command:     args[0],
		Cwd:         args[1],
		Interactive: resolveInteractive(opts.Interactive),
	}

	// The hook passes numeric fields through shell arithmetic; a
	// mangled value means the measurement is unusable, not that the
	// command didn't happen. Unparsable values are recorded as absent.
	if code, err := strconv.Atoi(args[2]); err == nil {
		cand.ExitCode = &code
	}
	if secs, err := strconv.ParseFloat(args[3], 64); err == nil && secs >= 0 {
		cand.Duration = &secs
	}

	if opts.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, opts.Timestamp)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid --timestamp", err)
		}
		cand.Timestamp = ts
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	pipeline := ingest.New(e.st, filter.New(e.cfg.ExtraBlacklist...))
	outcome, err := pipeline.Ingest(cmd.Context(), cand)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to record command", err)
	}

	if e.out.JSON() {
		return e.out.Success(map[string]any{
			"status":   outcomeLabel(outcome),
			"event_id": outcome.EventID,
		})
	}

	// Dropped and rejected candidates exit 0 silently: from the
	// shell's perspective logging is fire-and-forget.
	return nil
}

func outcomeLabel(o ingest.Outcome) string {
	switch o.Status {
	case ingest.StatusStored:
		return "stored"
	case ingest.StatusDropped:
		return "dropped"
	default:
		return o.Decision.String()
	}
}

// resolveInteractive maps the --interactive flag to a bool, probing the
// terminal in auto mode. The hook's stderr stays attached to the tty in
// interactive shells and is detached in scripts and CI.
func resolveInteractive(mode string) bool {
	switch mode {
	case "yes":
		return true
	case "no":
		return false
	default:
		fd := os.Stderr.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// configureLogging routes slog to stderr; debug level under --verbose.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
