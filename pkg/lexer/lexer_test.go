package lexer

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/token"
	"github.com/stretchr/testify/require"
)

func TestLexSumOfLeafLengthsEqualsInput(t *testing.T) {
	inputs := []string{
		"select 1 ,4",
		"select foo.bar from table1 foo -- trailing comment\n",
		"/* nested /* block */ comment */ select 1",
		"select $tag$ literal text $tag$ as x",
	}
	for _, in := range inputs {
		leaves := Lex(in, DefaultMatchers())
		require.Equal(t, len(in), SumLen(leaves), "input=%q", in)
	}
}

func TestLexUnlexableNeverFails(t *testing.T) {
	leaves := Lex("select \x01 from t", DefaultMatchers())
	found := false
	for _, l := range leaves {
		if l.Kind == token.Unlexable {
			found = true
			require.Equal(t, "\x01", l.Raw)
		}
	}
	require.True(t, found)
}

func TestLexLongestMatchWins(t *testing.T) {
	leaves := Lex("a <= b", DefaultMatchers())
	var kinds []token.SyntaxKind
	for _, l := range leaves {
		kinds = append(kinds, l.Kind)
	}
	require.Contains(t, kinds, token.LessThanOrEqualOp)
	require.NotContains(t, kinds, token.LessThanOp)
}

func TestLexNestedBlockComment(t *testing.T) {
	in := "/* outer /* inner */ still outer */"
	leaves := Lex(in, DefaultMatchers())
	require.Len(t, leaves, 1)
	require.Equal(t, token.BlockComment, leaves[0].Kind)
	require.Equal(t, in, leaves[0].Raw)
}

func TestLexDollarQuote(t *testing.T) {
	in := "$body$ select 1 $body$"
	leaves := Lex(in, DefaultMatchers())
	require.Equal(t, token.DollarQuote, leaves[0].Kind)
	require.Equal(t, in, leaves[0].Raw)
}

func TestLexNumericAdjacencyGuard(t *testing.T) {
	leaves := Lex("1ecol", DefaultMatchers())
	// Not a single numeric literal consuming "1ecol"; falls back to "1" then a word.
	require.Equal(t, token.NumericLiteral, leaves[0].Kind)
	require.Equal(t, "1", leaves[0].Raw)
}
