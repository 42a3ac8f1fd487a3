package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/shell"
)

// InitOptions holds flags for the init command.
type InitOptions struct {
	*RootOptions
	Shell string
	Yes   bool
}

// NewInitCommand creates the init command, which prints the shell hook
// snippet and optionally appends it to the shell's rc file.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InitOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "init",
		Short:         "Initialize shell integration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Shell, "shell", "", "target shell (zsh|fish|bash; default: detected)")
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "append to the rc file without prompting")

	return cmd
}

func runInit(opts *InitOptions, cmd *cobra.Command) error {
	kind := shell.Kind(opts.Shell)
	switch kind {
	case shell.Zsh, shell.Fish, shell.Bash:
	case "":
		kind = shell.Detect()
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unsupported shell %q", opts.Shell))
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to locate home directory", err)
	}

	snippet := shell.Snippet(kind)
	rcPath := shell.RCPath(kind, home)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "# The following snippet will enable ctx logging for your %s shell:\n\n%s\n", kind, snippet)

	if !opts.Yes && !confirm(cmd, fmt.Sprintf("Would you like to append this to %s? [y/N]: ", rcPath)) {
		fmt.Fprintln(out, "Not appended. You can manually add the snippet above to your shell config file.")
		return nil
	}

	f, err := os.OpenFile(rcPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open rc file", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# ctx shell integration\n%s", snippet); err != nil {
		return WrapExitError(ExitCommandError, "failed to append snippet", err)
	}

	fmt.Fprintf(out, "Appended to %s!\n\nTo activate ctx logging, run: source %s\n", rcPath, rcPath)
	return nil
}
