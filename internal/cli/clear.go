package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes bool
}

// NewClearCommand creates the clear command. Confirmation lives here at
// the CLI layer; the store's ClearAll itself asks no questions.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "clear",
		Short:         "Clear all command logs",
		Long:          "Delete every stored command event. Irreversible.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}

func runClear(opts *ClearOptions, cmd *cobra.Command) error {
	if !opts.Yes && !confirm(cmd, "Are you sure you want to clear all logs? [y/N]: ") {
		fmt.Fprintln(cmd.OutOrStdout(), "Aborted. No logs were cleared.")
		return nil
	}

	e, err := openEnv(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer e.close()

	deleted, err := e.st.ClearAll(cmd.Context())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to clear logs", err)
	}

	if e.out.JSON() {
		return e.out.Success(map[string]any{"deleted": deleted})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "All logs have been cleared (%d removed).\n", deleted)
	return nil
}

// confirm prompts on the command's input stream and accepts y/Y.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
