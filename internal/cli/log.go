package cli

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/query"
	"github.com/ctxlog/ctx/internal/render"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Reverse bool
	Less    bool
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show complete command history",
		Long: `Show the complete command history, oldest first.

Examples:
  ctx log
  ctx log --reverse
  ctx log --less`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Reverse, "reverse", false, "show logs in reverse order (newest at top)")
	cmd.Flags().BoolVar(&opts.Less, "less", false, "view logs with a pager")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	events, err := query.New(e.st).Log(cmd.Context(), opts.Reverse)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if e.out.JSON() {
		return e.out.Success(events)
	}

	var sb strings.Builder
	render.Events(&sb, events)

	if opts.Less && stdoutIsTerminal() {
		if err := render.Page(e.cfg.Pager, sb.String()); err != nil {
			return WrapExitError(ExitCommandError, "pager failed", err)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write([]byte(sb.String()))
	return err
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
