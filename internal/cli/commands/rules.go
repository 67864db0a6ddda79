package commands

import (
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlfmt/pkg/rules"
)

// NewRulesCommand creates the rules command group.
func NewRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect available lint rules",
	}
	cmd.AddCommand(newRulesListCommand())
	return cmd
}

func newRulesListCommand() *cobra.Command {
	var group string
	var dialectName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available lint rules",
		Long: `List every registered rule, its dotted name, legacy 4-character code,
default severity, and a one-line description.`,
		Example: `  sqlfmt-lint rules list
  sqlfmt-lint rules list --group convention
  sqlfmt-lint rules list --dialect postgres`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listRules(cmd, group, dialectName)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "filter by rule group, e.g. convention, layout")
	cmd.Flags().StringVar(&dialectName, "dialect", "", "filter to rules that apply to this dialect")
	return cmd
}

func listRules(cmd *cobra.Command, group, dialectName string) error {
	all := rules.All()
	sort.Slice(all, func(i, j int) bool { return all[i].Name() < all[j].Name() })

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Code", "Severity", "Description"})

	for _, r := range all {
		if group != "" && !hasGroup(r.Groups(), rules.Group(group)) {
			continue
		}
		if dialectName != "" && !rules.AppliesToDialect(r, dialectName) {
			continue
		}
		t.AppendRow(table.Row{r.Name(), r.Code(), r.DefaultSeverity().String(), r.Description()})
	}

	t.Render()
	return nil
}

func hasGroup(groups []rules.Group, want rules.Group) bool {
	for _, g := range groups {
		if g == want || g == rules.GroupAll {
			return true
		}
	}
	return false
}
