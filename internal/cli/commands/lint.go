package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	intconfig "github.com/leapstack-labs/sqlfmt/internal/config"
	"github.com/leapstack-labs/sqlfmt/internal/driver"
	"github.com/leapstack-labs/sqlfmt/internal/history"
	"github.com/leapstack-labs/sqlfmt/internal/report"
)

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Report lint violations in SQL files",
		Long: `Lint walks the given paths (or the current directory) for *.sql files and
reports every rule violation found, without modifying any file.`,
		Example: `  sqlfmt-lint lint
  sqlfmt-lint lint ./models
  sqlfmt-lint lint --dialect postgres --format github ./models`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, pathsOrDefault(args), format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, github")
	return cmd
}

func runLint(cmd *cobra.Command, paths []string, format string) error {
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
	})
	if err != nil {
		return err
	}

	if err := recordHistory(cmd.Context(), cfg.History, d.Name, results, false); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record history: %v\n", err)
	}

	fileResults := driver.ToFileResults(results)
	renderResults(cmd, format, fileResults)

	for _, r := range results {
		if hasErrorSeverity(r.Violation) {
			return fmt.Errorf("lint violations found")
		}
	}
	return nil
}

func renderResults(cmd *cobra.Command, format string, fileResults []report.FileResult) {
	switch format {
	case "github":
		report.GithubAnnotations(cmd.OutOrStdout(), fileResults)
	default:
		report.Table(cmd.OutOrStdout(), fileResults)
	}
}

func recordHistory(ctx context.Context, cfg intconfig.HistoryConfig, dialectName string, results []driver.Result, fix bool) error {
	if !cfg.Enabled {
		return nil
	}

	store, err := history.Open(cfg.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	run, err := store.BeginRun(ctx, dialectName, len(results), fix)
	if err != nil {
		return err
	}
	for _, r := range results {
		if err := store.RecordViolations(ctx, run.ID, r.Path, r.Violation); err != nil {
			return err
		}
	}
	return store.CompleteRun(ctx, run.ID)
}
