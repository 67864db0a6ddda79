// Package cli provides the command-line interface for the linter.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfmt/internal/cli/commands"
	intconfig "github.com/leapstack-labs/sqlfmt/internal/config"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlfmt-lint",
		Short: "sqlfmt-lint - SQL linter and formatter",
		Long: `sqlfmt-lint analyzes and rewrites SQL the way a rule-based linter does:
lexing and parsing into a concrete syntax tree, running configurable rules
over it, and optionally applying their fixes back to source.`,
		Version:           Version,
		PersistentPreRunE: loadConfigIntoContext,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().String("config", "", "directory to search for .sqlfmt.yml (default: working directory, walking up)")
	rootCmd.PersistentFlags().String("dialect", "", "SQL dialect: ansi, postgres, snowflake, duckdb, databricks")
	rootCmd.PersistentFlags().StringSlice("include", nil, "rule names/codes/groups to include (default: all)")
	rootCmd.PersistentFlags().StringSlice("exclude", nil, "rule names/codes/groups to exclude")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("dialect", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"ansi", "postgres", "snowflake", "duckdb", "databricks"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewLintCommand())
	rootCmd.AddCommand(commands.NewFixCommand())
	rootCmd.AddCommand(commands.NewWatchCommand())
	rootCmd.AddCommand(commands.NewRulesCommand())
	rootCmd.AddCommand(commands.NewDialectsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

func loadConfigIntoContext(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
		return nil
	}

	dir, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return err
	}
	if dir == "" {
		dir, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("cli: getwd: %w", err)
		}
		if root := intconfig.FindProjectRoot(dir); root != "" {
			dir = root
		}
	}

	cfg, err := intconfig.Load(dir, cmd.Root().PersistentFlags())
	if err != nil {
		return fmt.Errorf("cli: load config: %w", err)
	}

	cmd.SetContext(commands.SetConfig(cmd.Context(), cfg))
	return nil
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 "Generate shell completion scripts",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
