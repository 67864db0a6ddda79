package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfmt/internal/driver"
	"github.com/leapstack-labs/sqlfmt/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	var format string
	var fix bool

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-lint SQL files whenever they change",
		Long: `Watch lints the given paths once immediately, then watches them and
re-lints (or, with --fix, re-fixes) whenever a *.sql file changes. Runs
until interrupted.`,
		Example: `  sqlfmt-lint watch ./models
  sqlfmt-lint watch --fix ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, pathsOrDefault(args), format, fix)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, github")
	cmd.Flags().BoolVar(&fix, "fix", false, "apply fixes instead of only reporting")
	return cmd
}

func runWatch(cmd *cobra.Command, paths []string, format string, fix bool) error {
	cfg := GetConfig(cmd.Context())

	d, err := resolveDialect(cfg.Dialect)
	if err != nil {
		return err
	}
	lintCfg, err := cfg.ToLintConfig()
	if err != nil {
		return err
	}

	opts := driver.Options{Dialect: d, Config: lintCfg, Fix: fix}

	return watch.Run(cmd.Context(), paths, opts, func(results []driver.Result, err error) {
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "watch: %v\n", err)
			return
		}
		renderResults(cmd, format, driver.ToFileResults(results))
	}, nil)
}
