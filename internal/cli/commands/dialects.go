package commands

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
)

// NewDialectsCommand creates the dialects command group.
func NewDialectsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dialects",
		Short: "Inspect available SQL dialects",
	}
	cmd.AddCommand(newDialectsListCommand())
	return cmd
}

func newDialectsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered SQL dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := dialect.Names()
			sort.Strings(names)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Dialect"})
			for _, n := range names {
				t.AppendRow(table.Row{n})
			}
			t.Render()
			return nil
		},
	}
}
