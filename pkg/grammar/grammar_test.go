package grammar

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
	"github.com/stretchr/testify/require"
)

func leafTokens(tbl *segment.Tables, words ...string) []*segment.Segment {
	var out []*segment.Segment
	pos := 0
	for i, w := range words {
		if i > 0 {
			m := posmap.NewMarker(pos, pos+1)
			out = append(out, segment.NewLeaf(tbl.NextID(), token.Whitespace, " ", &m))
			pos++
		}
		m := posmap.NewMarker(pos, pos+len(w))
		out = append(out, segment.NewLeaf(tbl.NextID(), token.Word, w, &m))
		pos += len(w)
	}
	return out
}

func newCtx(tbl *segment.Tables) *MatchContext {
	return NewMatchContext(nil, tbl)
}

func TestSequenceMatchesInOrderWithGaps(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select", "distinct")
	seq := NewSequence(
		Req(NewStringParser("select", token.Keyword)),
		Req(NewStringParser("distinct", token.Keyword)),
	)
	res := seq.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, len(toks), res.Consumed)
}

func TestSequenceOptionalElementMayBeAbsent(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select")
	seq := NewSequence(
		Req(NewStringParser("select", token.Keyword)),
		Opt(NewStringParser("distinct", token.Keyword)),
	)
	res := seq.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 1, res.Consumed)
}

func TestSequenceFailsWhenRequiredElementMissing(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select")
	seq := NewSequence(
		Req(NewStringParser("select", token.Keyword)),
		Req(NewStringParser("distinct", token.Keyword)),
	)
	res := seq.Match(toks, 0, newCtx(tbl))
	require.False(t, res.Ok)
}

func TestOneOfPicksLongestTrimmedMatch(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "not", "null")
	short := NewStringParser("not", token.Keyword)
	long := NewSequence(
		Req(NewStringParser("not", token.Keyword)),
		Req(NewStringParser("null", token.Keyword)),
	)
	oneOf := NewOneOf(short, long)
	res := oneOf.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 2, res.Consumed)
}

func TestOneOfTieBreaksByFirstDeclaredAlternative(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "null")
	first := NewNodeMatcher(token.NullLiteral, NewStringParser("null", token.Keyword))
	second := NewNodeMatcher(token.BooleanLiteral, NewStringParser("null", token.Keyword))
	oneOf := NewOneOf(first, second)
	res := oneOf.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Len(t, res.Segments, 1)
	require.Equal(t, token.NullLiteral, res.Segments[0].Kind())
}

func TestAnyNumberOfRespectsMinAndMax(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "a", "a", "a")
	rep := &AnyNumberOf{Elements: []Matchable{NewStringParser("a", token.Keyword)}, MinTimes: 1, MaxTimes: 2}
	res := rep.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	// MaxTimes=2 stops after consuming 2 "a" tokens (index 0 and 2, with the
	// gap whitespace at index 1 folded into the second element's consumption).
	require.True(t, res.Consumed < len(toks))
}

func TestAnyNumberOfFailsBelowMinTimes(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "b")
	rep := &AnyNumberOf{Elements: []Matchable{NewStringParser("a", token.Keyword)}, MinTimes: 1}
	res := rep.Match(toks, 0, newCtx(tbl))
	require.False(t, res.Ok)
}

func TestDelimitedMatchesCommaSeparatedList(t *testing.T) {
	tbl := segment.NewTables()
	m := posmap.NewMarker(0, 1)
	a := segment.NewLeaf(tbl.NextID(), token.Word, "a", &m)
	comma := segment.NewLeaf(tbl.NextID(), token.Comma, ",", &m)
	b := segment.NewLeaf(tbl.NextID(), token.Word, "b", &m)
	toks := []*segment.Segment{a, comma, b}

	del := NewDelimited(NewTypedParser(token.Word, token.Identifier), NewTypedParser(token.Comma, token.Comma))
	res := del.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 3, res.Consumed)
}

func TestDelimitedAllowsTrailingWhenConfigured(t *testing.T) {
	tbl := segment.NewTables()
	m := posmap.NewMarker(0, 1)
	a := segment.NewLeaf(tbl.NextID(), token.Word, "a", &m)
	comma := segment.NewLeaf(tbl.NextID(), token.Comma, ",", &m)
	toks := []*segment.Segment{a, comma}

	del := NewDelimited(NewTypedParser(token.Word, token.Identifier), NewTypedParser(token.Comma, token.Comma))
	del.AllowTrailing = true
	res := del.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 2, res.Consumed)
}

func TestDelimitedRejectsTrailingWhenNotConfigured(t *testing.T) {
	tbl := segment.NewTables()
	m := posmap.NewMarker(0, 1)
	a := segment.NewLeaf(tbl.NextID(), token.Word, "a", &m)
	comma := segment.NewLeaf(tbl.NextID(), token.Comma, ",", &m)
	toks := []*segment.Segment{a, comma}

	del := NewDelimited(NewTypedParser(token.Word, token.Identifier), NewTypedParser(token.Comma, token.Comma))
	res := del.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 1, res.Consumed) // trailing comma left unconsumed
}

func TestBracketedWrapsLeftoverAsUnparsableUnderGreedyMode(t *testing.T) {
	tbl := segment.NewTables()
	m := posmap.NewMarker(0, 1)
	open := segment.NewLeaf(tbl.NextID(), token.StartBracket, "(", &m)
	good := segment.NewLeaf(tbl.NextID(), token.Word, "a", &m)
	junk := segment.NewLeaf(tbl.NextID(), token.Word, "???", &m)
	close_ := segment.NewLeaf(tbl.NextID(), token.EndBracket, ")", &m)
	toks := []*segment.Segment{open, good, junk, close_}

	br := NewBracketed(BracketType{Open: token.StartBracket, Close: token.EndBracket}, NewTypedParser(token.Word, token.Identifier))
	res := br.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 4, res.Consumed)

	var sawUnparsable bool
	for _, s := range res.Segments {
		if s.Kind() == token.Unparsable {
			sawUnparsable = true
		}
	}
	require.True(t, sawUnparsable)
}

func TestBracketedMatchesNestedBracketsAsOneUnit(t *testing.T) {
	tbl := segment.NewTables()
	m := posmap.NewMarker(0, 1)
	outerOpen := segment.NewLeaf(tbl.NextID(), token.StartBracket, "(", &m)
	innerOpen := segment.NewLeaf(tbl.NextID(), token.StartBracket, "(", &m)
	word := segment.NewLeaf(tbl.NextID(), token.Word, "a", &m)
	innerClose := segment.NewLeaf(tbl.NextID(), token.EndBracket, ")", &m)
	outerClose := segment.NewLeaf(tbl.NextID(), token.EndBracket, ")", &m)
	toks := []*segment.Segment{outerOpen, innerOpen, word, innerClose, outerClose}

	br := NewBracketed(BracketType{Open: token.StartBracket, Close: token.EndBracket}, NewAnything())
	res := br.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 5, res.Consumed)
}

type staticDialect struct {
	grammars map[string]Matchable
}

func (d *staticDialect) Lookup(name string) (Matchable, bool) {
	g, ok := d.grammars[name]
	return g, ok
}

func TestRefResolvesThroughDialectLookup(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select")
	dialect := &staticDialect{grammars: map[string]Matchable{
		"SelectKeyword": NewStringParser("select", token.Keyword),
	}}
	ctx := NewMatchContext(dialect, tbl)
	ref := NewRef("SelectKeyword")
	res := ref.Match(toks, 0, ctx)
	require.True(t, res.Ok)
	require.Equal(t, 1, res.Consumed)
}

func TestRefExcludeVetoesMatchAtSamePosition(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "not", "null")
	dialect := &staticDialect{grammars: map[string]Matchable{
		"NotKeyword": NewStringParser("not", token.Keyword),
	}}
	ctx := NewMatchContext(dialect, tbl)
	ref := NewRef("NotKeyword").WithExclude(NewLookaheadExclude("not", "null"))
	res := ref.Match(toks, 0, ctx)
	require.False(t, res.Ok)
}

func TestLookaheadExcludeIsNonConsuming(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "not", "null")
	lae := NewLookaheadExclude("not", "null")
	res := lae.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, 0, res.Consumed)
}

func TestConditionalRespectsIndentFlag(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select")
	inner := NewStringParser("select", token.Keyword)

	ctxOff := newCtx(tbl)
	cond := NewConditional("indented_joins", inner)
	require.False(t, cond.Match(toks, 0, ctxOff).Ok)

	ctxOn := newCtx(tbl)
	ctxOn.Indent["indented_joins"] = true
	require.True(t, cond.Match(toks, 0, ctxOn).Ok)
}

func TestNothingNeverMatchesAndIsOptional(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "select")
	n := NewNothing()
	require.True(t, n.IsOptional())
	require.False(t, n.Match(toks, 0, newCtx(tbl)).Ok)
}

func TestAnythingConsumesThroughEndWithNoTerminators(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "a", "b", "c")
	a := NewAnything()
	res := a.Match(toks, 0, newCtx(tbl))
	require.True(t, res.Ok)
	require.Equal(t, len(toks), res.Consumed)
}

func TestAnythingStopsAtTerminator(t *testing.T) {
	tbl := segment.NewTables()
	toks := leafTokens(tbl, "a", "from")
	ctx := newCtx(tbl)
	ctx.Terminators = []Matchable{NewStringParser("from", token.Keyword)}
	a := NewAnything()
	res := a.Match(toks, 0, ctx)
	require.True(t, res.Ok)
	require.Equal(t, 1, res.Consumed)
}
