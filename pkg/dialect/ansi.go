package dialect

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func kw(literal string) *grammar.StringParser {
	return grammar.NewStringParser(literal, token.Keyword)
}

func ref(name string) *grammar.Ref { return grammar.NewRef(name) }

// NewANSI builds the root ANSI SQL dialect: the query-shaped grammar every
// other dialect derives from. It covers SELECT/CTE/set operations and the
// expression surface a projection/filter/order clause needs, not a
// general-purpose DDL/DML grammar — CREATE/INSERT/UPDATE bodies are left
// as statements this dialect doesn't yet recognise, which the Unparsable
// repair path already handles gracefully.
func NewANSI() *Dialect {
	d := NewRawDialect("ansi")

	reserved := []string{
		"select", "from", "where", "group", "by", "having", "order", "limit",
		"offset", "fetch", "with", "as", "on", "join", "inner", "left", "right",
		"full", "outer", "cross", "union", "intersect", "except", "all",
		"distinct", "case", "when", "then", "else", "end", "and", "or", "not",
		"null", "is", "in", "between", "like", "over", "partition", "asc",
		"desc", "nulls", "first", "last", "using", "recursive", "values",
		"rows", "only", "true", "false"}
	d.AddToSet(ReservedKeywords, reserved...)

	d.UpdateBracketSets("round", grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket})
	d.UpdateBracketSets("square", grammar.BracketType{Open: token.StartSquareBracket, Close: token.EndSquareBracket})

	// ---- Identifiers & literals ----
	// Reserved keywords are never naked identifiers, so a bare alias cannot
	// swallow the keyword that starts the next clause.
	d.Add("NakedIdentifierSegment", grammar.NewRegexParser(`[A-Za-z_][A-Za-z0-9_$]*`, token.NakedIdentifier).
		WithAntiTemplate(`(?i:`+strings.Join(reserved, "|")+`)`))
	d.Add("QuotedIdentifierSegment", grammar.NewTypedParser(token.DoubleQuote, token.QuotedIdentifier))
	d.Add("IdentifierSegment", grammar.NewOneOf(ref("NakedIdentifierSegment"), ref("QuotedIdentifierSegment")))

	d.Add("ObjectReferenceSegment", grammar.NewNodeMatcher(token.ObjectReference, grammar.NewDelimited(
		ref("IdentifierSegment"),
		grammar.NewTypedParser(token.Dot, token.Dot),
	)))
	d.Add("ColumnReferenceSegment", grammar.NewNodeMatcher(token.ColumnReference, grammar.NewDelimited(
		ref("IdentifierSegment"),
		grammar.NewTypedParser(token.Dot, token.Dot),
	)))

	d.Add("NumericLiteralSegment", grammar.NewTypedParser(token.NumericLiteral, token.LiteralExpression))
	d.Add("QuotedLiteralSegment", grammar.NewTypedParser(token.SingleQuote, token.LiteralExpression))
	d.Add("BooleanLiteralGrammar", grammar.NewNodeMatcher(token.BooleanLiteral, grammar.NewMultiStringParser(token.Keyword, "true", "false")))
	d.Add("NullLiteralSegment", grammar.NewNodeMatcher(token.NullLiteral, kw("null")))
	d.Add("LiteralGrammar", grammar.NewOneOf(
		ref("NumericLiteralSegment"),
		ref("QuotedLiteralSegment"),
		ref("BooleanLiteralGrammar"),
		ref("NullLiteralSegment"),
	))

	// ---- Expressions (flat, precedence-free: a lossless formatter/linter
	// never evaluates expressions, so a left-to-right operand/operator chain
	// is sufficient — Expression is modelled as a grammar element like any
	// other, not an evaluator) ----
	d.Add("ComparisonOperatorGrammar", grammar.NewOneOf(
		grammar.NewTypedParser(token.EqualsOp, token.ComparisonOperator),
		grammar.NewTypedParser(token.NotEqualsOp, token.ComparisonOperator),
		grammar.NewTypedParser(token.LessThanOp, token.ComparisonOperator),
		grammar.NewTypedParser(token.GreaterThanOp, token.ComparisonOperator),
		grammar.NewTypedParser(token.LessThanOrEqualOp, token.ComparisonOperator),
		grammar.NewTypedParser(token.GreaterThanOrEqualOp, token.ComparisonOperator),
	))
	d.Add("BinaryOperatorGrammar", grammar.NewOneOf(
		grammar.NewTypedParser(token.Plus, token.BinaryOperator),
		grammar.NewTypedParser(token.Minus, token.BinaryOperator),
		grammar.NewTypedParser(token.Star, token.BinaryOperator),
		grammar.NewTypedParser(token.Divide, token.BinaryOperator),
		grammar.NewTypedParser(token.Modulo, token.BinaryOperator),
		grammar.NewTypedParser(token.Concat, token.BinaryOperator),
		kw("and"), kw("or"),
		grammar.NewSequence(grammar.Req(kw("is")), grammar.Opt(kw("not"))),
		grammar.NewSequence(grammar.Opt(kw("not")), grammar.Req(kw("in"))),
		grammar.NewSequence(grammar.Opt(kw("not")), grammar.Req(kw("like"))),
		kw("between"),
		ref("ComparisonOperatorGrammar"),
	))

	d.Add("CaseExpressionSegment", grammar.NewNodeMatcher(token.CaseExpression, grammar.NewSequence(
		grammar.Req(kw("case")),
		grammar.Opt(ref("ExpressionSegment")),
		grammar.Req(&grammar.AnyNumberOf{
			Elements: []grammar.Matchable{grammar.NewNodeMatcher(token.WhenClause, grammar.NewSequence(
				grammar.Req(kw("when")),
				grammar.Req(ref("ExpressionSegment")),
				grammar.Req(kw("then")),
				grammar.Req(ref("ExpressionSegment")),
			))},
			MinTimes: 1,
		}),
		grammar.Opt(grammar.NewNodeMatcher(token.ElseClause, grammar.NewSequence(
			grammar.Req(kw("else")),
			grammar.Req(ref("ExpressionSegment")),
		))),
		grammar.Req(kw("end")),
	)))

	d.Add("FunctionNameSegment", grammar.NewNodeMatcher(token.FunctionName, ref("ObjectReferenceSegment")))
	d.Add("FunctionCallSegment", grammar.NewNodeMatcher(token.FunctionCall, grammar.NewSequence(
		grammar.Req(ref("FunctionNameSegment")),
		grammar.Req(grammar.NewNodeMatcher(token.BracketedArguments, grammar.NewBracketed(
			grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
			grammar.NewOneOf(
				grammar.NewSequence(grammar.Req(kw("distinct")), grammar.Req(ref("SelectClauseElementListGrammar"))),
				ref("StarExpressionSegment"),
				ref("SelectClauseElementListGrammar"),
				grammar.NewNothing(),
			),
		))),
		grammar.Opt(ref("OverClauseSegment")),
	)))

	d.Add("OverClauseSegment", grammar.NewNodeMatcher(token.WindowSpecification, grammar.NewSequence(
		grammar.Req(kw("over")),
		grammar.Req(grammar.NewBracketed(
			grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
			grammar.NewSequence(
				grammar.Opt(ref("PartitionByClauseSegment")),
				grammar.Opt(ref("OrderByClauseSegment")),
			),
		)),
	)))
	d.Add("PartitionByClauseSegment", grammar.NewNodeMatcher(token.PartitionByClause, grammar.NewSequence(
		grammar.Req(kw("partition")), grammar.Req(kw("by")),
		grammar.Req(grammar.NewDelimited(ref("ExpressionSegment"), grammar.NewTypedParser(token.Comma, token.Comma))),
	)))

	d.Add("StarExpressionSegment", grammar.NewNodeMatcher(token.StarExpression, grammar.NewOneOf(
		grammar.NewTypedParser(token.Star, token.Star),
		grammar.NewSequence(grammar.Req(ref("ObjectReferenceSegment")), grammar.Req(grammar.NewTypedParser(token.Dot, token.Dot)), grammar.Req(grammar.NewTypedParser(token.Star, token.Star))),
	)))

	d.Add("BracketedExpressionSegment", grammar.NewNodeMatcher(token.ExpressionBracketed, grammar.NewBracketed(
		grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
		ref("ExpressionSegment"),
	)))

	d.Add("ExpressionOperandGrammar", grammar.NewOneOf(
		ref("CaseExpressionSegment"),
		ref("FunctionCallSegment"),
		ref("BracketedExpressionSegment"),
		ref("LiteralGrammar"),
		ref("ColumnReferenceSegment"),
	))
	d.Add("ExpressionSegment", grammar.NewNodeMatcher(token.Expression, grammar.NewSequence(
		grammar.Req(ref("ExpressionOperandGrammar")),
		grammar.Req(&grammar.AnyNumberOf{Elements: []grammar.Matchable{
			grammar.NewSequence(grammar.Req(ref("BinaryOperatorGrammar")), grammar.Req(ref("ExpressionOperandGrammar"))),
		}}),
	)))

	// ---- SELECT clause ----
	d.Add("AliasExpressionSegment", grammar.NewNodeMatcher(token.AliasExpression, grammar.NewSequence(
		grammar.Opt(kw("as")),
		grammar.Req(ref("IdentifierSegment")),
	)))
	d.Add("SelectClauseElementGrammar", grammar.NewOneOf(
		ref("StarExpressionSegment"),
		grammar.NewSequence(grammar.Req(ref("ExpressionSegment")), grammar.Opt(ref("AliasExpressionSegment"))),
	))
	d.Add("SelectClauseElementListGrammar", grammar.NewDelimited(
		grammar.NewNodeMatcher(token.SelectTarget, ref("SelectClauseElementGrammar")),
		grammar.NewTypedParser(token.Comma, token.Comma),
	))
	d.Add("SelectClauseSegment", grammar.NewNodeMatcher(token.SelectClause, grammar.NewSequence(
		grammar.Req(kw("select")),
		grammar.Opt(grammar.NewOneOf(kw("distinct"), kw("all"))),
		grammar.Req(ref("SelectClauseElementListGrammar")),
	)))

	// ---- FROM / JOIN ----
	d.Add("TableExpressionSegment", grammar.NewNodeMatcher(token.FromExpressionElement, grammar.NewSequence(
		grammar.Req(grammar.NewOneOf(ref("ObjectReferenceSegment"), ref("BracketedExpressionSegment"))),
		grammar.Opt(ref("AliasExpressionSegment")),
	)))
	d.Add("JoinOnConditionSegment", grammar.NewNodeMatcher(token.JoinOnCondition, grammar.NewSequence(
		grammar.Req(kw("on")),
		grammar.Req(ref("ExpressionSegment")),
	)))
	d.Add("JoinUsingConditionSegment", grammar.NewNodeMatcher(token.JoinUsingCondition, grammar.NewSequence(
		grammar.Req(kw("using")),
		grammar.Req(grammar.NewBracketed(
			grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
			grammar.NewDelimited(ref("ColumnReferenceSegment"), grammar.NewTypedParser(token.Comma, token.Comma)),
		)),
	)))
	d.Add("JoinClauseSegment", grammar.NewNodeMatcher(token.JoinClause, grammar.NewSequence(
		grammar.Opt(grammar.NewOneOf(
			grammar.NewSequence(grammar.Req(kw("inner"))),
			grammar.NewSequence(grammar.Req(kw("left")), grammar.Opt(kw("outer"))),
			grammar.NewSequence(grammar.Req(kw("right")), grammar.Opt(kw("outer"))),
			grammar.NewSequence(grammar.Req(kw("full")), grammar.Opt(kw("outer"))),
			grammar.NewSequence(grammar.Req(kw("cross"))),
		)),
		grammar.Req(kw("join")),
		grammar.Req(ref("TableExpressionSegment")),
		grammar.Opt(grammar.NewOneOf(ref("JoinOnConditionSegment"), ref("JoinUsingConditionSegment"))),
	)))
	d.Add("FromExpressionSegment", grammar.NewNodeMatcher(token.FromExpression, grammar.NewSequence(
		grammar.Req(ref("TableExpressionSegment")),
		grammar.Req(&grammar.AnyNumberOf{Elements: []grammar.Matchable{ref("JoinClauseSegment")}}),
	)))
	d.Add("FromClauseSegment", grammar.NewNodeMatcher(token.FromClause, grammar.NewSequence(
		grammar.Req(kw("from")),
		grammar.Req(grammar.NewDelimited(ref("FromExpressionSegment"), grammar.NewTypedParser(token.Comma, token.Comma))),
	)))

	// ---- WHERE / GROUP BY / HAVING / ORDER BY / LIMIT ----
	d.Add("WhereClauseSegment", grammar.NewNodeMatcher(token.WhereClause, grammar.NewSequence(
		grammar.Req(kw("where")),
		grammar.Req(ref("ExpressionSegment")),
	)))
	d.Add("GroupByClauseSegment", grammar.NewNodeMatcher(token.GroupByClause, grammar.NewSequence(
		grammar.Req(kw("group")), grammar.Req(kw("by")),
		grammar.Req(grammar.NewDelimited(ref("ExpressionSegment"), grammar.NewTypedParser(token.Comma, token.Comma))),
	)))
	d.Add("HavingClauseSegment", grammar.NewNodeMatcher(token.HavingClause, grammar.NewSequence(
		grammar.Req(kw("having")),
		grammar.Req(ref("ExpressionSegment")),
	)))
	d.Add("OrderByClauseSegment", grammar.NewNodeMatcher(token.OrderByClause, grammar.NewSequence(
		grammar.Req(kw("order")), grammar.Req(kw("by")),
		grammar.Req(grammar.NewDelimited(
			grammar.NewNodeMatcher(token.OrderByItem, grammar.NewSequence(
				grammar.Req(ref("ExpressionSegment")),
				grammar.Opt(grammar.NewOneOf(kw("asc"), kw("desc"))),
				grammar.Opt(grammar.NewSequence(grammar.Req(kw("nulls")), grammar.Req(grammar.NewOneOf(kw("first"), kw("last"))))),
			)),
			grammar.NewTypedParser(token.Comma, token.Comma),
		)),
	)))
	d.Add("LimitClauseSegment", grammar.NewNodeMatcher(token.LimitClause, grammar.NewSequence(
		grammar.Req(kw("limit")),
		grammar.Req(ref("NumericLiteralSegment")),
	)))
	d.Add("OffsetClauseSegment", grammar.NewNodeMatcher(token.OffsetClause, grammar.NewSequence(
		grammar.Req(kw("offset")),
		grammar.Req(ref("NumericLiteralSegment")),
		grammar.Opt(grammar.NewOneOf(kw("row"), kw("rows"))),
	)))

	// ---- SELECT statement, set operations, CTEs ----
	d.Add("UnorderedSelectStatementSegment", grammar.NewNodeMatcher(token.SelectStatement, grammar.NewSequence(
		grammar.Req(ref("SelectClauseSegment")),
		grammar.Opt(ref("FromClauseSegment")),
		grammar.Opt(ref("WhereClauseSegment")),
		grammar.Opt(ref("GroupByClauseSegment")),
		grammar.Opt(ref("HavingClauseSegment")),
	)))
	d.Add("SelectStatementSegment", grammar.NewNodeMatcher(token.SelectStatement, grammar.NewSequence(
		grammar.Req(ref("SelectClauseSegment")),
		grammar.Opt(ref("FromClauseSegment")),
		grammar.Opt(ref("WhereClauseSegment")),
		grammar.Opt(ref("GroupByClauseSegment")),
		grammar.Opt(ref("HavingClauseSegment")),
		grammar.Opt(ref("OrderByClauseSegment")),
		grammar.Opt(ref("LimitClauseSegment")),
		grammar.Opt(ref("OffsetClauseSegment")),
	)))
	d.Add("SetOperatorGrammar", grammar.NewOneOf(
		grammar.NewSequence(grammar.Req(kw("union")), grammar.Opt(kw("all"))),
		kw("intersect"), kw("except"),
	))
	d.Add("SetExpressionSegment", grammar.NewNodeMatcher(token.SetExpression, grammar.NewDelimited(
		ref("UnorderedSelectStatementSegment"),
		ref("SetOperatorGrammar"),
	)))
	d.Add("CommonTableExpressionSegment", grammar.NewNodeMatcher(token.CommonTableExpression, grammar.NewSequence(
		grammar.Req(ref("IdentifierSegment")),
		grammar.Opt(grammar.NewBracketed(
			grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
			grammar.NewDelimited(ref("IdentifierSegment"), grammar.NewTypedParser(token.Comma, token.Comma)),
		)),
		grammar.Req(kw("as")),
		grammar.Req(grammar.NewBracketed(
			grammar.BracketType{Open: token.StartBracket, Close: token.EndBracket},
			ref("NonWithSelectableGrammar"),
		)),
	)))
	d.Add("NonWithSelectableGrammar", grammar.NewOneOf(ref("SetExpressionSegment"), ref("SelectStatementSegment")))
	d.Add("WithCompoundStatementSegment", grammar.NewNodeMatcher(token.WithCompoundStatement, grammar.NewSequence(
		grammar.Req(kw("with")),
		grammar.Opt(kw("recursive")),
		grammar.Req(grammar.NewDelimited(ref("CommonTableExpressionSegment"), grammar.NewTypedParser(token.Comma, token.Comma))),
		grammar.Req(ref("NonWithSelectableGrammar")),
	)))

	d.Add("StatementSegment", grammar.NewOneOf(
		ref("WithCompoundStatementSegment"),
		ref("SetExpressionSegment"),
		ref("SelectStatementSegment"),
	))

	return d.Expand()
}
