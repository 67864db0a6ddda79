package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfmt/internal/driver"
)

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Apply lint fixes to SQL files in place",
		Long: `Fix walks the given paths (or the current directory) for *.sql files,
applies every fixable rule's fix, and rewrites changed files in place.
Any violation a rule can't fix is still reported.`,
		Example: `  sqlfmt-lint fix
  sqlfmt-lint fix ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, pathsOrDefault(args), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, github")
	return cmd
}

func runFix(cmd *cobra.Command, paths []string, format string) error {
	cfg := GetConfig(cmd.Context())

	d, err := resolveDialect(cfg.Dialect)
	if err != nil {
		return err
	}
	lintCfg, err := cfg.ToLintConfig()
	if err != nil {
		return err
	}

	results, err := driver.Run(cmd.Context(), paths, driver.Options{
		Dialect: d,
		Config:  lintCfg,
		Fix:     true,
	})
	if err != nil {
		return err
	}

	if err := recordHistory(cmd.Context(), cfg.History, d.Name, results, true); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record history: %v\n", err)
	}

	changed := 0
	for _, r := range results {
		if r.Changed {
			changed++
			fmt.Fprintf(cmd.OutOrStdout(), "fixed %s\n", r.Path)
		}
	}

	renderResults(cmd, format, driver.ToFileResults(results))
	fmt.Fprintf(cmd.OutOrStdout(), "%d files changed\n", changed)

	for _, r := range results {
		if hasErrorSeverity(r.Violation) {
			return fmt.Errorf("unfixed lint violations remain")
		}
	}
	return nil
}
