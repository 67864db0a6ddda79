package parse

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
	"github.com/stretchr/testify/require"
)

type stubDialect struct{ grammars map[string]grammar.Matchable }

func (d *stubDialect) Lookup(name string) (grammar.Matchable, bool) {
	g, ok := d.grammars[name]
	return g, ok
}

func makeTokens(tbl *segment.Tables, specs ...[2]string) []*segment.Segment {
	// specs is pairs of (raw, kindName) where kindName is "word", "ws" or ";"
	var out []*segment.Segment
	pos := 0
	for _, s := range specs {
		raw, kind := s[0], s[1]
		m := posmap.NewMarker(pos, pos+len(raw))
		var k token.SyntaxKind
		switch kind {
		case "ws":
			k = token.Whitespace
		case ";":
			k = token.SemiColon
		case "(":
			k = token.StartBracket
		case ")":
			k = token.EndBracket
		default:
			k = token.Word
		}
		out = append(out, segment.NewLeaf(tbl.NextID(), k, raw, &m))
		pos += len(raw)
	}
	return out
}

func TestParseSplitsOnTopLevelSemicolons(t *testing.T) {
	tbl := segment.NewTables()
	dialect := &stubDialect{grammars: map[string]grammar.Matchable{
		RootGrammarName: grammar.NewStringParser("select", token.Keyword),
	}}
	toks := makeTokens(tbl, [2]string{"select", ""}, [2]string{";", ";"}, [2]string{"select", ""})
	file := Parse(toks, dialect, tbl)
	require.Equal(t, token.File, file.Kind())

	var statementCount, semiCount int
	for _, c := range file.Children() {
		switch c.Kind() {
		case token.Statement:
			statementCount++
		case token.SemiColon:
			semiCount++
		}
	}
	require.Equal(t, 2, statementCount)
	require.Equal(t, 1, semiCount)
}

func TestParseIgnoresSemicolonsInsideBrackets(t *testing.T) {
	tbl := segment.NewTables()
	dialect := &stubDialect{grammars: map[string]grammar.Matchable{
		RootGrammarName: grammar.NewAnything(),
	}}
	toks := makeTokens(tbl, [2]string{"(", "("}, [2]string{";", ";"}, [2]string{")", ")"})
	spans := splitStatements(toks)
	require.Len(t, spans, 1)
}

func TestParseWrapsFailedStatementAsUnparsable(t *testing.T) {
	tbl := segment.NewTables()
	dialect := &stubDialect{grammars: map[string]grammar.Matchable{
		RootGrammarName: grammar.NewStringParser("select", token.Keyword),
	}}
	toks := makeTokens(tbl, [2]string{"!!!garbage", ""})
	file := Parse(toks, dialect, tbl)
	require.Len(t, file.Children(), 1)
	require.Equal(t, token.Unparsable, file.Children()[0].Kind())
}
