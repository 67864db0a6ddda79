package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/rules"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

func leavesToSegments(tbl *segment.Tables, leaves []lexer.Leaf) []*segment.Segment {
	out := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		out = append(out, segment.NewLeaf(tbl.NextID(), l.Kind, l.Raw, &m))
	}
	return out
}

// runRule parses sql with the ANSI dialect and returns every Main+Post phase
// violation produced by the named rule (dotted name or legacy code).
func runRule(t *testing.T, sql, ruleName string) []rules.Violation {
	t.Helper()
	d := dialect.NewANSI()
	tbl := segment.NewTables()
	leaves := lexer.Lex(sql, d.LexerMatchers(lexer.DefaultMatchers()))
	tree := parse.Parse(leavesToSegments(tbl, leaves), d, tbl)

	r, err := rules.Lookup(ruleName)
	require.NoError(t, err)

	result, err := rules.Run(tree, []rules.Rule{r}, d, tbl, nil, false)
	require.NoError(t, err)

	var out []rules.Violation
	for _, v := range result.Violations {
		out = append(out, v)
	}
	return out
}
