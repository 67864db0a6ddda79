// Package parse drives the top-level recursive-descent parse: splitting a
// token stream into statements on top-level semicolons (honouring bracket
// nesting), matching each statement against the dialect's root grammar, and
// repairing statements that fail to match by wrapping them as Unparsable
// rather than failing the whole file.
package parse

import (
	"github.com/leapstack-labs/sqlfmt/pkg/grammar"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// RootGrammarName is the dialect grammar name the parser starts from for
// each statement.
const RootGrammarName = "StatementSegment"

var bracketPairs = [][2]token.SyntaxKind{
	{token.StartBracket, token.EndBracket},
	{token.StartSquareBracket, token.EndSquareBracket},
	{token.StartCurlyBracket, token.EndCurlyBracket},
}

func openKinds() token.KindSet {
	s := token.KindSet{}
	for _, p := range bracketPairs {
		s[p[0]] = struct{}{}
	}
	return s
}

func closeKinds() token.KindSet {
	s := token.KindSet{}
	for _, p := range bracketPairs {
		s[p[1]] = struct{}{}
	}
	return s
}

// statementSpan is one top-level statement: its token slice (not including
// the trailing semicolon) and the semicolon leaf that ended it, if any.
type statementSpan struct {
	tokens []*segment.Segment
	semi   *segment.Segment
}

// splitStatements partitions tokens on top-level (bracket-depth-zero)
// semicolons.
func splitStatements(tokens []*segment.Segment) []statementSpan {
	opens, closes := openKinds(), closeKinds()
	var spans []statementSpan
	depth := 0
	start := 0
	for i, tok := range tokens {
		switch {
		case opens.Has(tok.Kind()):
			depth++
		case closes.Has(tok.Kind()):
			if depth > 0 {
				depth--
			}
		case depth == 0 && tok.Kind() == token.SemiColon:
			spans = append(spans, statementSpan{tokens: tokens[start:i], semi: tok})
			start = i + 1
		}
	}
	if start < len(tokens) {
		spans = append(spans, statementSpan{tokens: tokens[start:]})
	}
	return spans
}

// Parse matches tokens against dialect's root grammar, producing a single
// token.File composite whose children are one token.Statement (or
// token.Unparsable, on repair) per top-level statement, interleaved with
// the semicolons that separated them.
func Parse(tokens []*segment.Segment, dialect grammar.DialectLookup, tables *segment.Tables) *segment.Segment {
	var children []*segment.Segment
	for _, span := range splitStatements(tokens) {
		children = append(children, parseStatement(span.tokens, dialect, tables)...)
		if span.semi != nil {
			children = append(children, segment.NewLeaf(tables.NextID(), token.SemiColon, span.semi.Raw(), span.semi.Marker()))
		}
	}
	return segment.NewComposite(tables.NextID(), token.File, children)
}

func parseStatement(tokens []*segment.Segment, dialect grammar.DialectLookup, tables *segment.Tables) []*segment.Segment {
	if allGaps(tokens) {
		return append([]*segment.Segment{}, tokens...)
	}

	ctx := grammar.NewMatchContext(dialect, tables)
	ref := grammar.NewRef(RootGrammarName)
	res := grammar.MatchOne(ref, tokens, 0, ctx)
	if res.Ok && res.Consumed == len(tokens) {
		stmt := segment.NewComposite(tables.NextID(), token.Statement, res.Segments)
		return []*segment.Segment{stmt}
	}
	// Repair: the whole statement becomes Unparsable. A partial match that
	// consumed a prefix is still discarded in favour of the raw tokens, so
	// the re-parse sanity check always sees one contiguous
	// Unparsable region rather than a half-reclassified tree.
	unparsable := segment.NewComposite(tables.NextID(), token.Unparsable, append([]*segment.Segment{}, tokens...))
	return []*segment.Segment{unparsable}
}

func allGaps(tokens []*segment.Segment) bool {
	for _, t := range tokens {
		if t.IsCode() {
			return false
		}
	}
	return true
}
