package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/query"
	"github.com/ctxlog/ctx/internal/render"
)

// NewSummaryCommand creates the summary command.
func NewSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "summary <folder>",
		Short:         "Show summary for a specific project/folder",
		Long:          "Aggregate all commands run in the folder or any directory nested under it.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(rootOpts, cmd, func(e *env, eng *query.Engine) error {
				summary, err := eng.Summary(cmd.Context(), args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to summarize folder", err)
				}
				if e.out.JSON() {
					return e.out.Success(summary)
				}
				render.Summary(cmd.OutOrStdout(), summary)
				return nil
			})
		},
	}
}

// NewTopCommand creates the top command.
func NewTopCommand(rootOpts *RootOptions) *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:           "top",
		Short:         "Show top N most used commands",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(rootOpts, cmd, func(e *env, eng *query.Engine) error {
				counts, err := eng.Top(cmd.Context(), n)
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to rank commands", err)
				}
				if e.out.JSON() {
					return e.out.Success(counts)
				}
				render.Top(cmd.OutOrStdout(), counts, time.Now())
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&n, "n", query.DefaultTopN, "number of commands to show")

	return cmd
}

// NewProjectsCommand creates the projects command.
func NewProjectsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "projects",
		Short:         "List all detected project folders with stats",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(rootOpts, cmd, func(e *env, eng *query.Engine) error {
				aggs, err := eng.Projects(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to list projects", err)
				}
				if e.out.JSON() {
					return e.out.Success(aggs)
				}
				render.Projects(cmd.OutOrStdout(), aggs)
				return nil
			})
		},
	}
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "search <pattern>",
		Short: "Search history for commands matching a pattern",
		Long: `Search the history for commands matching a pattern.

Matching is case-sensitive. A pattern containing glob metacharacters
(* ? [) matches against the whole command line; any other pattern is a
substring match.

Examples:
  ctx search git
  ctx search 'git push*'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(rootOpts, cmd, func(e *env, eng *query.Engine) error {
				events, err := eng.Search(cmd.Context(), args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "search failed", err)
				}
				if e.out.JSON() {
					return e.out.Success(events)
				}
				render.Events(cmd.OutOrStdout(), events)
				return nil
			})
		},
	}
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "stats",
		Short:         "Show overall productivity stats",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(rootOpts, cmd, func(e *env, eng *query.Engine) error {
				stats, err := eng.Stats(cmd.Context())
				if err != nil {
					return WrapExitError(ExitCommandError, "failed to compute stats", err)
				}
				if e.out.JSON() {
					return e.out.Success(stats)
				}
				render.Stats(cmd.OutOrStdout(), stats)
				return nil
			})
		},
	}
}

// withEngine opens the environment, builds a query engine, and runs fn,
// closing the store afterwards.
func withEngine(rootOpts *RootOptions, cmd *cobra.Command, fn func(*env, *query.Engine) error) error {
	e, err := openEnv(rootOpts, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	return fn(e, query.New(e.st))
}
