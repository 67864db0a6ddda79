package dialect

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
	"github.com/stretchr/testify/require"
)

func leavesToSegments(tbl *segment.Tables, leaves []lexer.Leaf) []*segment.Segment {
	out := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		out = append(out, segment.NewLeaf(tbl.NextID(), l.Kind, l.Raw, &m))
	}
	return out
}

func parseSQL(t *testing.T, d *Dialect, sql string) *segment.Segment {
	t.Helper()
	tbl := segment.NewTables()
	leaves := lexer.Lex(sql, d.LexerMatchers(lexer.DefaultMatchers()))
	toks := leavesToSegments(tbl, leaves)
	return parse.Parse(toks, d, tbl)
}

func TestANSIParsesSimpleSelectStar(t *testing.T) {
	d := NewANSI()
	file := parseSQL(t, d, "select * from foo;")
	require.Equal(t, token.File, file.Kind())
	require.Equal(t, "select * from foo;", file.Raw())

	var stmt *segment.Segment
	for _, c := range file.Children() {
		if c.Kind() == token.Statement {
			stmt = c
		}
	}
	require.NotNil(t, stmt)
	selects := stmt.SegmentsOfKind(token.SelectStatement)
	require.Len(t, selects, 1)
}

func TestANSIParsesJoinAndWhere(t *testing.T) {
	d := NewANSI()
	file := parseSQL(t, d, "select a.x, b.y from a inner join b on a.id = b.id where a.x > 1;")
	require.Equal(t, "select a.x, b.y from a inner join b on a.id = b.id where a.x > 1;", file.Raw())
	require.Empty(t, file.SegmentsOfKind(token.Unparsable))
}

func TestANSIParsesCTE(t *testing.T) {
	d := NewANSI()
	file := parseSQL(t, d, "with cte as (select 1) select * from cte;")
	require.Empty(t, file.SegmentsOfKind(token.Unparsable))
	require.Len(t, file.SegmentsOfKind(token.CommonTableExpression), 1)
}

func TestUnrecognisedStatementIsWrappedUnparsable(t *testing.T) {
	d := NewANSI()
	file := parseSQL(t, d, "vacuum full;")
	require.Len(t, file.SegmentsOfKind(token.Unparsable), 1)
}

func TestDerivedDialectInheritsAndOverrides(t *testing.T) {
	pg := NewPostgres()
	file := parseSQL(t, pg, "select distinct on (a) a, b from t;")
	require.Empty(t, file.SegmentsOfKind(token.Unparsable))

	_, ok := pg.Lookup("FromClauseSegment") // inherited, not overridden
	require.True(t, ok)
}

func TestBracketPatchAndSetMutationStayScopedToChild(t *testing.T) {
	base := NewRawDialect("base")
	base.AddToSet(ReservedKeywords, "select")
	child := base.Derive("child")
	child.AddToSet(ReservedKeywords, "qualify")

	require.True(t, child.InSet(ReservedKeywords, "select"))
	require.True(t, child.InSet(ReservedKeywords, "qualify"))
	require.False(t, base.InSet(ReservedKeywords, "qualify"))
}

func TestReplaceOverridesWithoutMutatingParent(t *testing.T) {
	base := NewRawDialect("base")
	base.Add("Greeting", grammar.NewStringParser("hello", token.Keyword))
	child := base.Derive("child")
	child.Replace("Greeting", grammar.NewStringParser("hi", token.Keyword))

	baseGrammar, _ := base.Lookup("Greeting")
	childGrammar, _ := child.Lookup("Greeting")
	require.NotEqual(t, baseGrammar, childGrammar)
}
