// Package token defines the closed syntax-kind enumeration shared by the
// lexer, the segment model, and the grammar combinators, plus the leaf
// Token type the lexer emits.
//
// Builtin kinds are constants (ids 0-999) for switch performance, reserved
// as a fixed range so dialects can register more above a sentinel without
// renumbering anything. Most kinds are shared across every dialect
// (Whitespace, Newline, Comment, Identifier, Keyword...), and dialect
// packages can still register their own above the sentinel for
// dialect-only constructs.
package token

import "fmt"

// SyntaxKind tags every CST segment: leaves (Whitespace, Keyword, Identifier,
// ...) and composites (File, Statement, SelectStatement, ...) alike.
//
//nolint:revive // intentionally not called "Kind" — used pervasively as token.SyntaxKind
type SyntaxKind int32

const (
	Unknown SyntaxKind = iota

	// ---- leaf kinds produced directly by the lexer ----
	Word          // bare word: identifier or keyword before classification
	Whitespace    // run of spaces/tabs
	Newline       // \n or \r\n
	SingleQuote   // 'literal'
	DoubleQuote   // "quoted identifier" or dialect string
	BackQuote     // `quoted identifier`
	DollarQuote   // $tag$ ... $tag$
	NumericLiteral
	InlineComment // -- ...
	BlockComment  // /* ... */
	Unlexable     // one unrecognised byte; lexing never hard-fails

	// ---- single/multi-char punctuation & operators ----
	Dot
	Comma
	Colon
	SemiColon
	StartBracket
	EndBracket
	StartSquareBracket
	EndSquareBracket
	StartCurlyBracket
	EndCurlyBracket
	Plus
	Minus
	Star
	Divide
	Modulo
	Concat // ||
	EqualsOp
	NotEqualsOp
	LessThanOp
	GreaterThanOp
	LessThanOrEqualOp
	GreaterThanOrEqualOp
	Arrow

	// ---- leaf kinds produced by reclassification during parse ----
	Keyword
	Identifier
	NakedIdentifier
	QuotedIdentifier
	ComparisonOperator
	BinaryOperator

	// ---- meta (zero-width) markers, never emitted to source ----
	Indent
	Dedent
	ImplicitIndent
	EndOfFile

	// ---- composite kinds produced by the parser/grammar ----
	File
	Statement
	Unparsable
	SelectStatement
	SetExpression
	WithCompoundStatement
	CommonTableExpression
	SelectClause
	SelectTarget
	FromClause
	FromExpression
	FromExpressionElement
	JoinClause
	JoinOnCondition
	JoinUsingCondition
	WhereClause
	GroupByClause
	HavingClause
	OrderByClause
	OrderByItem
	LimitClause
	OffsetClause
	FetchClause
	WindowClause
	NamedWindow
	WindowSpecification
	PartitionByClause
	ColumnReference
	ObjectReference
	TableReference
	AliasExpression
	ColumnDefinition
	Expression
	ExpressionBracketed
	CaseExpression
	WhenClause
	ElseClause
	FunctionCall
	FunctionName
	BracketedArguments
	CastExpression
	LiteralExpression
	BooleanLiteral
	NullLiteral
	StarExpression
	ArrayLiteral
	DelimitedList

	// maxBuiltin is the sentinel; dialect-registered kinds start above it.
	maxBuiltin SyntaxKind = 999
)

var kindNames = map[SyntaxKind]string{
	Unknown:              "Unknown",
	Word:                 "Word",
	Whitespace:           "Whitespace",
	Newline:              "Newline",
	SingleQuote:          "SingleQuote",
	DoubleQuote:          "DoubleQuote",
	BackQuote:            "BackQuote",
	DollarQuote:          "DollarQuote",
	NumericLiteral:       "NumericLiteral",
	InlineComment:        "InlineComment",
	BlockComment:         "BlockComment",
	Unlexable:            "Unlexable",
	Dot:                  "Dot",
	Comma:                "Comma",
	Colon:                "Colon",
	SemiColon:            "SemiColon",
	StartBracket:         "StartBracket",
	EndBracket:           "EndBracket",
	StartSquareBracket:   "StartSquareBracket",
	EndSquareBracket:     "EndSquareBracket",
	StartCurlyBracket:    "StartCurlyBracket",
	EndCurlyBracket:      "EndCurlyBracket",
	Plus:                 "Plus",
	Minus:                "Minus",
	Star:                 "Star",
	Divide:               "Divide",
	Modulo:               "Modulo",
	Concat:               "Concat",
	EqualsOp:             "EqualsOp",
	NotEqualsOp:          "NotEqualsOp",
	LessThanOp:           "LessThanOp",
	GreaterThanOp:        "GreaterThanOp",
	LessThanOrEqualOp:    "LessThanOrEqualOp",
	GreaterThanOrEqualOp: "GreaterThanOrEqualOp",
	Arrow:                "Arrow",
	Keyword:              "Keyword",
	Identifier:           "Identifier",
	NakedIdentifier:      "NakedIdentifier",
	QuotedIdentifier:     "QuotedIdentifier",
	ComparisonOperator:   "ComparisonOperator",
	BinaryOperator:       "BinaryOperator",
	Indent:               "Indent",
	Dedent:               "Dedent",
	ImplicitIndent:       "ImplicitIndent",
	EndOfFile:            "EndOfFile",
	File:                 "File",
	Statement:            "Statement",
	Unparsable:           "Unparsable",
	SelectStatement:      "SelectStatement",
	SetExpression:        "SetExpression",
	WithCompoundStatement: "WithCompoundStatement",
	CommonTableExpression: "CommonTableExpression",
	SelectClause:          "SelectClause",
	SelectTarget:          "SelectTarget",
	FromClause:            "FromClause",
	FromExpression:        "FromExpression",
	FromExpressionElement: "FromExpressionElement",
	JoinClause:            "JoinClause",
	JoinOnCondition:       "JoinOnCondition",
	JoinUsingCondition:    "JoinUsingCondition",
	WhereClause:           "WhereClause",
	GroupByClause:         "GroupByClause",
	HavingClause:          "HavingClause",
	OrderByClause:         "OrderByClause",
	OrderByItem:           "OrderByItem",
	LimitClause:           "LimitClause",
	OffsetClause:          "OffsetClause",
	FetchClause:           "FetchClause",
	WindowClause:          "WindowClause",
	NamedWindow:           "NamedWindow",
	WindowSpecification:   "WindowSpecification",
	PartitionByClause:     "PartitionByClause",
	ColumnReference:       "ColumnReference",
	ObjectReference:       "ObjectReference",
	TableReference:        "TableReference",
	AliasExpression:       "AliasExpression",
	ColumnDefinition:      "ColumnDefinition",
	Expression:            "Expression",
	ExpressionBracketed:   "ExpressionBracketed",
	CaseExpression:        "CaseExpression",
	WhenClause:            "WhenClause",
	ElseClause:            "ElseClause",
	FunctionCall:          "FunctionCall",
	FunctionName:          "FunctionName",
	BracketedArguments:    "BracketedArguments",
	CastExpression:        "CastExpression",
	LiteralExpression:     "LiteralExpression",
	BooleanLiteral:        "BooleanLiteral",
	NullLiteral:           "NullLiteral",
	StarExpression:        "StarExpression",
	ArrayLiteral:          "ArrayLiteral",
	DelimitedList:         "DelimitedList",
}

func (k SyntaxKind) String() string {
	if name, ok := dynamicName(k); ok {
		return name
	}
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// KindSet is a small set of SyntaxKind values, used pervasively for the
// `is_type_in` / crawler filter predicates.
type KindSet map[SyntaxKind]struct{}

// NewKindSet builds a KindSet from a list of kinds.
func NewKindSet(kinds ...SyntaxKind) KindSet {
	s := make(KindSet, len(kinds))
	for _, k := range kinds {
		s[k] = struct{}{}
	}
	return s
}

// Has reports whether k is in the set. An empty/nil set matches nothing;
// callers that mean "any kind" should test len(set) == 0 explicitly.
func (s KindSet) Has(k SyntaxKind) bool {
	_, ok := s[k]
	return ok
}
