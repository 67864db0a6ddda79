package reflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/reflow"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

func parseANSI(t *testing.T, tbl *segment.Tables, sql string) *segment.Segment {
	t.Helper()
	d := dialect.NewANSI()
	leaves := lexer.Lex(sql, d.LexerMatchers(lexer.DefaultMatchers()))
	toks := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		toks = append(toks, segment.NewLeaf(tbl.NextID(), l.Kind, l.Raw, &m))
	}
	return parse.Parse(toks, d, tbl)
}

func TestRespaceInsertsMissingSpace(t *testing.T) {
	tbl := segment.NewTables()
	tree := parseANSI(t, tbl, "select a,b from t;")

	seq := reflow.FromRoot(tree, tbl)
	fixes := seq.Respace()
	require.NotEmpty(t, fixes)

	found := false
	for _, f := range fixes {
		if f.EditType == fix.CreateAfter {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRespaceRemovesSpaceBeforeComma(t *testing.T) {
	tbl := segment.NewTables()
	tree := parseANSI(t, tbl, "select a , b from t;")

	seq := reflow.FromRoot(tree, tbl)
	fixes := seq.Respace()
	require.NotEmpty(t, fixes)

	found := false
	for _, f := range fixes {
		if f.EditType == fix.Delete {
			found = true
		}
	}
	assert.True(t, found)
}

func TestRespaceLeavesCleanSpacingAlone(t *testing.T) {
	tbl := segment.NewTables()
	tree := parseANSI(t, tbl, "select a, b from t;")

	seq := reflow.FromRoot(tree, tbl)
	fixes := seq.Respace()
	assert.Empty(t, fixes)
}

func TestRebreakTrimsTrailingWhitespace(t *testing.T) {
	tbl := segment.NewTables()
	tree := parseANSI(t, tbl, "select a \nfrom t;")

	seq := reflow.FromRoot(tree, tbl)
	fixes := seq.Rebreak()
	require.NotEmpty(t, fixes)
	assert.Equal(t, fix.Delete, fixes[0].EditType)
}

func TestBreakLongLinesFlagsOverLength(t *testing.T) {
	tbl := segment.NewTables()
	long := "select aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa from t;"
	tree := parseANSI(t, tbl, long)

	seq := reflow.FromRoot(tree, tbl)
	results := seq.BreakLongLines(40)
	assert.NotEmpty(t, results)
}
