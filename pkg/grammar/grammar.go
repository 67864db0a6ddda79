// Package grammar implements the composable combinator library that drives
// the backtracking recursive-descent matcher over a token stream. A
// Matchable is a closed, polymorphic capability: given a token slice and
// a match context, it produces a MatchResult. Composites (Sequence,
// OneOf, AnyNumberOf, Delimited, Bracketed, ...) wrap other Matchables;
// terminals (StringParser, RegexParser, ...) match single leaves.
package grammar

import (
	"fmt"

	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// DialectLookup is the minimal capability Ref needs from a dialect: named
// grammar resolution. Kept as a narrow interface so this package never
// imports pkg/dialect — pkg/dialect imports pkg/grammar instead, breaking
// the cycle.
type DialectLookup interface {
	Lookup(name string) (Matchable, bool)
}

// MatchResult is what every Matchable.Match call returns: how many input
// tokens were consumed (including any skipped gap tokens) and the segments
// produced, or Ok=false if nothing matched at this position.
type MatchResult struct {
	Consumed int
	Segments []*segment.Segment
	Ok       bool
}

// Unmatched is the canonical "no match" result.
var Unmatched = MatchResult{}

// CodeConsumed returns how many *code* (non-gap) input tokens the result
// consumed — the metric OneOf's "longest trimmed match" policy compares.
func (r MatchResult) CodeConsumed(tokens []*segment.Segment) int {
	n := 0
	for i := 0; i < r.Consumed && i < len(tokens); i++ {
		if tokens[i].IsCode() {
			n++
		}
	}
	return n
}

// ParseMode controls how a composite treats content it can't fully match.
type ParseMode int

const (
	// Strict: any leftover inside an expected region is a failure.
	Strict ParseMode = iota
	// Greedy: consume up to the next terminator; leftover is wrapped
	// Unparsable.
	Greedy
	// GreedyOnceStarted behaves like Greedy but only once the first
	// successful inner match has happened.
	GreedyOnceStarted
)

// IndentConfig carries the `indent_*` flags Conditional consults, e.g. indented_ctes, indented_joins.
type IndentConfig map[string]bool

// MatchContext drives one matching attempt: dialect handle, current
// terminator set, bracket stack, recursion depth, a memoisation table keyed
// by (cache key, token index), and the indent configuration Conditional
// grammars consult.
type MatchContext struct {
	Dialect      DialectLookup
	Tables       *segment.Tables
	Terminators  []Matchable
	BracketStack []token.SyntaxKind
	Depth        int
	Indent       IndentConfig

	memo map[memoKey]MatchResult
}

type memoKey struct {
	cacheKey string
	index    int
}

// NewMatchContext creates a root match context.
func NewMatchContext(dialect DialectLookup, tables *segment.Tables) *MatchContext {
	return &MatchContext{
		Dialect: dialect,
		Tables:  tables,
		Indent:  IndentConfig{},
		memo:    make(map[memoKey]MatchResult),
	}
}

// memoGet/memoPut check the memo for a cached result and, failing that,
// store a freshly computed one. A grammar built as a struct literal has an
// empty cache key and is never memoised, so such grammars cannot share
// results with each other.
func (c *MatchContext) memoGet(key string, index int) (MatchResult, bool) {
	if key == "" {
		return MatchResult{}, false
	}
	r, ok := c.memo[memoKey{key, index}]
	return r, ok
}

func (c *MatchContext) memoPut(key string, index int, r MatchResult) {
	if key == "" {
		return
	}
	c.memo[memoKey{key, index}] = r
}

// DeeperMatch pushes a nested matching scope: a label (for diagnostics), an
// optional terminator reset, additional terminators, and whether entering
// an inner bracket pair. Returns the child context and a restore function.
func (c *MatchContext) DeeperMatch(label string, resetTerminators bool, newTerminators []Matchable, innerBracket *token.SyntaxKind) (*MatchContext, func()) {
	_ = label
	child := &MatchContext{
		Dialect:      c.Dialect,
		Tables:       c.Tables,
		Indent:       c.Indent,
		memo:         c.memo, // memo table is shared across one whole parse
		Depth:        c.Depth + 1,
		BracketStack: c.BracketStack,
	}
	if resetTerminators {
		child.Terminators = append([]Matchable{}, newTerminators...)
	} else {
		child.Terminators = append(append([]Matchable{}, c.Terminators...), newTerminators...)
	}
	if innerBracket != nil {
		child.BracketStack = append(append([]token.SyntaxKind{}, c.BracketStack...), *innerBracket)
	}
	return child, func() {}
}

// Matchable is a polymorphic grammar element capable of matching a prefix
// of a token stream.
type Matchable interface {
	// Match attempts to match tokens[0:] at the current position. pos is
	// the absolute index of tokens[0] within the statement's full token
	// stream — callers that re-slice tokens before recursing must advance
	// pos by the same amount, so memoisation can tell repeated matches of
	// the same grammar object at different positions apart.
	Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult
	// Simple returns a conservative "possible first tokens" oracle used to
	// prune alternatives without a full match attempt: the literal strings
	// and/or kinds that could legally start a match here. ok=false means
	// "unknown" (treated as "always possibly matches").
	Simple(ctx *MatchContext) (strs []string, kinds token.KindSet, ok bool)
	// IsOptional reports whether this element may be absent from an
	// enclosing Sequence/AnyNumberOf without failing it.
	IsOptional() bool
	// CacheKey uniquely identifies this grammar instance for memoisation.
	CacheKey() string
}

var nextCacheID int64

// NewCacheKey mints a process-unique cache key string for a new grammar
// instance, named for diagnostics.
func NewCacheKey(label string) string {
	nextCacheID++
	return fmt.Sprintf("%s#%d", label, nextCacheID)
}

// MatchOne drives a single Matchable at the current token index with
// memoisation and the `simple()` pruning oracle. pos is the absolute index
// of tokens[0] within the statement's token stream and is the memo key's
// position component — see Matchable.Match.
func MatchOne(m Matchable, tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	key := m.CacheKey()
	if cached, ok := ctx.memoGet(key, pos); ok {
		return cached
	}
	if len(tokens) > 0 {
		if strs, kinds, ok := m.Simple(ctx); ok {
			if !firstTokenCouldMatch(tokens, strs, kinds) {
				ctx.memoPut(key, pos, Unmatched)
				return Unmatched
			}
		}
	}
	result := m.Match(tokens, pos, ctx)
	ctx.memoPut(key, pos, result)
	return result
}

func firstTokenCouldMatch(tokens []*segment.Segment, strs []string, kinds token.KindSet) bool {
	i := 0
	for i < len(tokens) && !tokens[i].IsCode() {
		i++
	}
	if i >= len(tokens) {
		return false
	}
	tok := tokens[i]
	if len(kinds) > 0 && kinds.Has(tok.Kind()) {
		return true
	}
	if len(strs) > 0 {
		raw := tok.Raw()
		for _, s := range strs {
			if eqFold(raw, s) {
				return true
			}
		}
		return false
	}
	return len(kinds) == 0
}

func eqFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// skipGaps returns the index of the next code token at or after i, or
// len(tokens) if none remains — used by Sequence/Delimited/AnyNumberOf when
// allow_gaps permits whitespace/comments between elements.
func skipGaps(tokens []*segment.Segment, i int) int {
	for i < len(tokens) && !tokens[i].IsCode() {
		i++
	}
	return i
}
