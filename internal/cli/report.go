package cli

import (
	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/query"
	"github.com/ctxlog/ctx/internal/render"
)

// ReportOptions holds flags shared by the today and weekly commands.
type ReportOptions struct {
	*RootOptions
	Export   bool
	Markdown bool
}

// NewTodayCommand creates the today command (last 24 hours).
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return newReportCommand(rootOpts, "today", "Show commands from the last 24 hours", query.Today())
}

// NewWeeklyCommand creates the weekly command (last 7 days).
func NewWeeklyCommand(rootOpts *RootOptions) *cobra.Command {
	return newReportCommand(rootOpts, "weekly", "Show commands from the last 7 days", query.LastNDays(7))
}

func newReportCommand(rootOpts *RootOptions, use, short string, window query.Window) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(opts, cmd, window)
		},
	}

	cmd.Flags().BoolVar(&opts.Export, "export", false, "export a human-readable summary")
	cmd.Flags().BoolVar(&opts.Markdown, "markdown", false, "export in markdown format")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command, window query.Window) error {
	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	eng := query.New(e.st)

	// Without --export/--markdown the command is a plain windowed
	// listing; with either flag it becomes the aggregated summary.
	if !opts.Export && !opts.Markdown {
		events, err := eng.Recent(cmd.Context(), window)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read history", err)
		}
		if e.out.JSON() {
			return e.out.Success(events)
		}
		render.Events(cmd.OutOrStdout(), events)
		return nil
	}

	report, err := eng.Report(cmd.Context(), window)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build report", err)
	}

	if e.out.JSON() {
		return e.out.Success(report)
	}
	if opts.Markdown {
		render.ReportMarkdown(cmd.OutOrStdout(), report)
	} else {
		render.Report(cmd.OutOrStdout(), report)
	}
	return nil
}
