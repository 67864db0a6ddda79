package grammar

import (
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// Ref is a late-bound reference to a named grammar in the enclosing
// dialect, resolved through ctx.Dialect at match time so dialects can
// patch/replace the referenced grammar without Ref itself changing.
// Exclude, if set, vetoes the match when it matches at the same position
// (used for LookaheadExclude-style keyword carve-outs).
type Ref struct {
	Name             string
	Exclude          Matchable
	Terminators      []Matchable
	ResetTerminators bool
	AllowGaps        bool
	Optional         bool
	cacheKey         string
}

// NewRef builds a reference to name, with gaps allowed by default.
func NewRef(name string) *Ref {
	return &Ref{Name: name, AllowGaps: true, cacheKey: NewCacheKey("Ref:" + name)}
}

func (r *Ref) WithExclude(m Matchable) *Ref                 { r.Exclude = m; return r }
func (r *Ref) WithTerminators(ms ...Matchable) *Ref         { r.Terminators = ms; return r }
func (r *Ref) WithResetTerminators() *Ref                   { r.ResetTerminators = true; return r }
func (r *Ref) WithOptional() *Ref                           { r.Optional = true; return r }

func (r *Ref) CacheKey() string { return r.cacheKey }
func (r *Ref) IsOptional() bool { return r.Optional }

func (r *Ref) resolve(ctx *MatchContext) (Matchable, bool) {
	if ctx.Dialect == nil {
		return nil, false
	}
	return ctx.Dialect.Lookup(r.Name)
}

func (r *Ref) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	target, ok := r.resolve(ctx)
	if !ok {
		return nil, nil, false
	}
	return target.Simple(ctx)
}

func (r *Ref) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	target, ok := r.resolve(ctx)
	if !ok {
		return Unmatched
	}
	start := 0
	if r.AllowGaps {
		start = skipGaps(tokens, 0)
	}
	if r.Exclude != nil {
		if MatchOne(r.Exclude, tokens[start:], pos+start, ctx).Ok {
			return Unmatched
		}
	}
	child, _ := ctx.DeeperMatch(r.Name, r.ResetTerminators, r.Terminators, nil)
	res := MatchOne(target, tokens[start:], pos+start, child)
	if !res.Ok {
		return Unmatched
	}
	if start > 0 {
		res.Consumed += start
		res.Segments = append(append([]*segment.Segment{}, tokens[:start]...), res.Segments...)
	}
	return res
}

// NodeMatcher wraps a successful inner match's segments in a new composite
// segment of the given kind.
type NodeMatcher struct {
	Kind     token.SyntaxKind
	Inner    Matchable
	cacheKey string
}

func NewNodeMatcher(kind token.SyntaxKind, inner Matchable) *NodeMatcher {
	return &NodeMatcher{Kind: kind, Inner: inner, cacheKey: NewCacheKey("Node")}
}

func (n *NodeMatcher) CacheKey() string { return n.cacheKey }
func (n *NodeMatcher) IsOptional() bool { return n.Inner.IsOptional() }
func (n *NodeMatcher) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return n.Inner.Simple(ctx)
}
func (n *NodeMatcher) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	res := MatchOne(n.Inner, tokens, pos, ctx)
	if !res.Ok {
		return Unmatched
	}
	node := segment.NewComposite(ctx.Tables.NextID(), n.Kind, res.Segments)
	return MatchResult{Consumed: res.Consumed, Segments: []*segment.Segment{node}, Ok: true}
}

// Conditional gates inner on a named indent_* predicate in ctx.Indent;
// when the predicate is false (or unset and DefaultTrue is false)
// Conditional behaves as an always-fail, always-optional Nothing.
type Conditional struct {
	Predicate   string
	DefaultTrue bool
	Inner       Matchable
	cacheKey    string
}

func NewConditional(predicate string, inner Matchable) *Conditional {
	return &Conditional{Predicate: predicate, Inner: inner, cacheKey: NewCacheKey("Conditional")}
}

func (c *Conditional) CacheKey() string { return c.cacheKey }
func (c *Conditional) IsOptional() bool { return true }
func (c *Conditional) enabled(ctx *MatchContext) bool {
	v, ok := ctx.Indent[c.Predicate]
	if !ok {
		return c.DefaultTrue
	}
	return v
}
func (c *Conditional) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	if !c.enabled(ctx) {
		return nil, nil, true
	}
	return c.Inner.Simple(ctx)
}
func (c *Conditional) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	if !c.enabled(ctx) {
		return Unmatched
	}
	return MatchOne(c.Inner, tokens, pos, ctx)
}

// LookaheadExclude is a non-consuming two-token lookahead: it reports a
// match (meaning "the exclusion condition holds here") exactly when the
// next code token equals First and the one after it equals Second. Used as
// a Ref.Exclude to carve keyword ambiguities out of a broader rule.
type LookaheadExclude struct {
	First, Second string
	cacheKey      string
}

func NewLookaheadExclude(first, second string) *LookaheadExclude {
	return &LookaheadExclude{First: first, Second: second, cacheKey: NewCacheKey("LookaheadExclude")}
}

func (l *LookaheadExclude) CacheKey() string { return l.cacheKey }
func (l *LookaheadExclude) IsOptional() bool { return true }
func (l *LookaheadExclude) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return nil, nil, false
}
func (l *LookaheadExclude) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) || !eqFold(tokens[i].Raw(), l.First) {
		return Unmatched
	}
	j := skipGaps(tokens, i+1)
	if j >= len(tokens) || !eqFold(tokens[j].Raw(), l.Second) {
		return Unmatched
	}
	return MatchResult{Consumed: 0, Ok: true}
}

// ---------------------------------------------------------------------
// Bracketed
// ---------------------------------------------------------------------

// BracketType names a dialect's registered bracket pair; Round/Square/Curly are the built-in defaults.
type BracketType struct {
	Open  token.SyntaxKind
	Close token.SyntaxKind
}

// Bracketed matches Open, then Inner, then the matching Close, tracking
// nesting via ctx.BracketStack. Under ParseMode Greedy, if Inner does not
// reach the matching close bracket, the leftover tokens up to the close are
// wrapped as a single Unparsable segment rather than failing the match.
type Bracketed struct {
	Bracket   BracketType
	Inner     Matchable
	ParseMode ParseMode
	cacheKey  string
}

func NewBracketed(bracket BracketType, inner Matchable) *Bracketed {
	return &Bracketed{Bracket: bracket, Inner: inner, ParseMode: Greedy, cacheKey: NewCacheKey("Bracketed")}
}

func (b *Bracketed) CacheKey() string { return b.cacheKey }
func (b *Bracketed) IsOptional() bool { return false }
func (b *Bracketed) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return nil, token.NewKindSet(b.Bracket.Open), true
}

// findMatchingClose returns the index (within tokens) of the close bracket
// that balances the open bracket at index 0, or -1 if unbalanced.
func (b *Bracketed) findMatchingClose(tokens []*segment.Segment) int {
	depth := 0
	for i, t := range tokens {
		switch t.Kind() {
		case b.Bracket.Open:
			depth++
		case b.Bracket.Close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (b *Bracketed) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) || tokens[i].Kind() != b.Bracket.Open {
		return Unmatched
	}
	openLeaf := reclassify(ctx, tokens[i], b.Bracket.Open)
	closeRel := b.findMatchingClose(tokens[i:])
	if closeRel < 0 {
		return Unmatched
	}
	closeIdx := i + closeRel

	child, _ := ctx.DeeperMatch("Bracketed", false, nil, &b.Bracket.Open)
	inner := tokens[i+1 : closeIdx]
	innerRes := MatchOne(b.Inner, inner, pos+i+1, child)

	var out []*segment.Segment
	out = append(out, tokens[:i]...)
	out = append(out, openLeaf)

	if innerRes.Ok && innerRes.Consumed == len(inner) {
		out = append(out, innerRes.Segments...)
	} else if b.ParseMode == Strict {
		return Unmatched
	} else {
		// Greedy: package whatever's left over between the consumed prefix
		// (if any) and the close bracket as Unparsable.
		consumed := 0
		var matched []*segment.Segment
		if innerRes.Ok {
			consumed = innerRes.Consumed
			matched = innerRes.Segments
		}
		out = append(out, matched...)
		leftover := inner[consumed:]
		if len(leftover) > 0 {
			unparsable := segment.NewComposite(ctx.Tables.NextID(), token.Unparsable, append([]*segment.Segment{}, leftover...))
			out = append(out, unparsable)
		}
	}

	closeLeaf := reclassify(ctx, tokens[closeIdx], b.Bracket.Close)
	out = append(out, closeLeaf)
	return MatchResult{Consumed: closeIdx + 1, Segments: out, Ok: true}
}
