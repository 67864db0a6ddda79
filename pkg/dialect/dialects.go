package dialect

import (
	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// NewPostgres derives postgres from ansi: adds the "::" cast operator at
// the lexer layer and a DISTINCT ON grammar override, each patched onto
// the inherited base rather than redefined from scratch.
func NewPostgres() *Dialect {
	d := NewANSI().Derive("postgres")
	d.PatchLexerMatchers(lexer.NewMultiStringMatcher("pg_cast", token.Arrow, "::"))
	d.Replace("SelectClauseSegment", grammar.NewNodeMatcher(token.SelectClause, grammar.NewSequence(
		grammar.Req(kw("select")),
		grammar.Opt(grammar.NewOneOf(
			grammar.NewSequence(
				grammar.Req(kw("distinct")),
				grammar.Opt(grammar.NewSequence(
					grammar.Req(kw("on")),
					grammar.Req(grammar.NewBracketed(
						grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
						grammar.NewDelimited(ref("ExpressionSegment"), grammar.NewTypedParser(token.Comma, token.Comma)),
					)),
				)),
			),
			kw("all"),
		)),
		grammar.Req(ref("SelectClauseElementListGrammar")),
	)))
	return d.Expand()
}

// NewSnowflake derives snowflake from ansi: adds QUALIFY and the "::" cast
// operator.
func NewSnowflake() *Dialect {
	d := NewANSI().Derive("snowflake")
	d.PatchLexerMatchers(lexer.NewMultiStringMatcher("sf_cast", token.Arrow, "::"))
	d.AddToSet(ReservedKeywords, "qualify")
	d.Add("QualifyClauseSegment", grammar.NewSequence(
		grammar.Req(kw("qualify")),
		grammar.Req(ref("ExpressionSegment")),
	))
	d.Replace("SelectStatementSegment", grammar.NewNodeMatcher(token.SelectStatement, grammar.NewSequence(
		grammar.Req(ref("SelectClauseSegment")),
		grammar.Opt(ref("FromClauseSegment")),
		grammar.Opt(ref("WhereClauseSegment")),
		grammar.Opt(ref("GroupByClauseSegment")),
		grammar.Opt(ref("HavingClauseSegment")),
		grammar.Opt(ref("QualifyClauseSegment")),
		grammar.Opt(ref("OrderByClauseSegment")),
		grammar.Opt(ref("LimitClauseSegment")),
	)))
	return d.Expand()
}

// NewDuckDB derives duckdb from ansi: adds QUALIFY (shared with Snowflake's
// analytic-query heritage) and leaves identifier quoting at ansi defaults
// (DuckDB accepts both double- and single-quoted identifiers in practice,
// but the unquoted/double-quoted pair the ansi base already wires covers
// the formatting-relevant cases in scope).
func NewDuckDB() *Dialect {
	d := NewANSI().Derive("duckdb")
	d.AddToSet(ReservedKeywords, "qualify")
	d.Add("QualifyClauseSegment", grammar.NewSequence(
		grammar.Req(kw("qualify")),
		grammar.Req(ref("ExpressionSegment")),
	))
	d.Replace("SelectStatementSegment", grammar.NewNodeMatcher(token.SelectStatement, grammar.NewSequence(
		grammar.Req(ref("SelectClauseSegment")),
		grammar.Opt(ref("FromClauseSegment")),
		grammar.Opt(ref("WhereClauseSegment")),
		grammar.Opt(ref("GroupByClauseSegment")),
		grammar.Opt(ref("HavingClauseSegment")),
		grammar.Opt(ref("QualifyClauseSegment")),
		grammar.Opt(ref("OrderByClauseSegment")),
		grammar.Opt(ref("LimitClauseSegment")),
		grammar.Opt(ref("OffsetClauseSegment")),
	)))
	return d.Expand()
}

// NewDatabricks derives databricks from ansi, registering backtick-quoted
// identifiers alongside the ansi double-quote form (Databricks/Spark SQL
// identifier quoting, ).
func NewDatabricks() *Dialect {
	d := NewANSI().Derive("databricks")
	d.Add("QuotedIdentifierSegment", grammar.NewOneOf(
		grammar.NewTypedParser(token.DoubleQuote, token.QuotedIdentifier),
		grammar.NewTypedParser(token.BackQuote, token.QuotedIdentifier),
	))
	return d.Expand()
}

// RegisterBuiltins registers the built-in dialect set (ansi, postgres,
// snowflake, duckdb, databricks), called once from internal/config at
// process start.
func RegisterBuiltins() {
	Register(NewANSI())
	Register(NewPostgres())
	Register(NewSnowflake())
	Register(NewDuckDB())
	Register(NewDatabricks())
}
