package cli

import (
	"github.com/spf13/cobra"

	"github.com/ctxlog/ctx/internal/config"
	"github.com/ctxlog/ctx/internal/store"
)

// env bundles everything a command needs: configuration, an open store,
// and the output formatter.
type env struct {
	cfg config.Config
	st  *store.Store
	out *OutputFormatter
}

// openEnv loads configuration and opens the store. The --db flag
// overrides the configured database path.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath, err = cfg.DatabasePath()
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to locate database", err)
		}
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	return &env{
		cfg: cfg,
		st:  st,
		out: &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()},
	}, nil
}

func (e *env) close() {
	_ = e.st.Close()
}
