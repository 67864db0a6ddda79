package grammar

import (
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// Element wraps a Matchable with sequence-local flags that a fluent
// builder API would otherwise spell as chained methods (.Optional()).
type Element struct {
	Grammar  Matchable
	Optional bool
}

// Opt marks an element as optional within a Sequence/AnyNumberOf.
func Opt(m Matchable) Element { return Element{Grammar: m, Optional: true} }

// Req wraps a required element.
func Req(m Matchable) Element { return Element{Grammar: m} }

// ---------------------------------------------------------------------
// Sequence
// ---------------------------------------------------------------------

// Sequence matches its elements left-to-right with optional gap tokens
// skipped between elements (AllowGaps, default true; set DisallowGaps to
// forbid any whitespace between elements). Any element marked Optional may
// be absent. Failure of a non-optional element fails the whole sequence
// with no partial consumption.
type Sequence struct {
	Elements     []Element
	DisallowGaps bool
	cacheKey     string
}

func NewSequence(elements ...Element) *Sequence {
	return &Sequence{Elements: elements, cacheKey: NewCacheKey("Sequence")}
}

func (s *Sequence) CacheKey() string { return s.cacheKey }
func (s *Sequence) IsOptional() bool { return false }
func (s *Sequence) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	var allStrs []string
	allKinds := token.KindSet{}
	for _, e := range s.Elements {
		strs, kinds, ok := e.Grammar.Simple(ctx)
		if !ok {
			return nil, nil, false
		}
		optional := e.Optional || e.Grammar.IsOptional()
		if len(strs) > 0 || len(kinds) > 0 {
			allStrs = append(allStrs, strs...)
			for k := range kinds {
				allKinds[k] = struct{}{}
			}
			if !optional {
				return allStrs, allKinds, true
			}
			continue
		}
		if !optional {
			return nil, nil, false
		}
	}
	return nil, nil, false
}

func (s *Sequence) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	rel := 0
	var out []*segment.Segment
	for _, e := range s.Elements {
		optional := e.Optional || e.Grammar.IsOptional()
		if s.DisallowGaps && rel > 0 {
			if skipGaps(tokens, rel) != rel {
				if optional {
					continue
				}
				return Unmatched
			}
		}
		res := MatchOne(e.Grammar, tokens[rel:], pos+rel, ctx)
		if !res.Ok {
			if optional {
				continue
			}
			return Unmatched
		}
		out = append(out, res.Segments...)
		rel += res.Consumed
	}
	return MatchResult{Consumed: rel, Segments: out, Ok: true}
}

// ---------------------------------------------------------------------
// OneOf
// ---------------------------------------------------------------------

// OneOf tries alternatives ordered by the "longest trimmed match" policy:
// match every candidate over the same token slice and return the one
// consuming the most code tokens; ties broken by first declaration order.
type OneOf struct {
	Alternatives []Matchable
	cacheKey     string
}

func NewOneOf(alts ...Matchable) *OneOf {
	return &OneOf{Alternatives: alts, cacheKey: NewCacheKey("OneOf")}
}

func (o *OneOf) CacheKey() string { return o.cacheKey }
func (o *OneOf) IsOptional() bool { return false }
func (o *OneOf) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	var allStrs []string
	allKinds := token.KindSet{}
	for _, alt := range o.Alternatives {
		strs, kinds, ok := alt.Simple(ctx)
		if !ok {
			return nil, nil, false
		}
		allStrs = append(allStrs, strs...)
		for k := range kinds {
			allKinds[k] = struct{}{}
		}
	}
	return allStrs, allKinds, true
}

func (o *OneOf) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	var best MatchResult
	bestCode := -1
	for _, alt := range o.Alternatives {
		res := MatchOne(alt, tokens, pos, ctx)
		if !res.Ok {
			continue
		}
		code := res.CodeConsumed(tokens)
		if code > bestCode {
			best = res
			bestCode = code
		}
	}
	if bestCode < 0 {
		return Unmatched
	}
	return best
}

// ---------------------------------------------------------------------
// AnyNumberOf
// ---------------------------------------------------------------------

// AnyNumberOf repeatedly matches any listed element; the order of elements
// within one iteration is unconstrained (OneOf-style), but forward progress
// must occur each iteration.
type AnyNumberOf struct {
	Elements          []Matchable
	MinTimes          int
	MaxTimes          int // 0 means unbounded
	MinTimesPerElement int
	cacheKey          string
}

func NewAnyNumberOf(elements ...Matchable) *AnyNumberOf {
	return &AnyNumberOf{Elements: elements, cacheKey: NewCacheKey("AnyNumberOf")}
}

func (a *AnyNumberOf) CacheKey() string { return a.cacheKey }
func (a *AnyNumberOf) IsOptional() bool { return a.MinTimes == 0 }
func (a *AnyNumberOf) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return (&OneOf{Alternatives: a.Elements}).Simple(ctx)
}

func (a *AnyNumberOf) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	rel := 0
	var out []*segment.Segment
	times := 0
	perElement := make([]int, len(a.Elements))
	for a.MaxTimes == 0 || times < a.MaxTimes {
		bestIdx := -1
		var best MatchResult
		bestCode := 0
		for i, el := range a.Elements {
			res := MatchOne(el, tokens[rel:], pos+rel, ctx)
			if !res.Ok {
				continue
			}
			code := res.CodeConsumed(tokens[rel:])
			if code > bestCode || bestIdx == -1 {
				if code == 0 && bestIdx != -1 {
					continue
				}
				best = res
				bestIdx = i
				bestCode = code
			}
		}
		if bestIdx == -1 || best.Consumed == 0 {
			break
		}
		out = append(out, best.Segments...)
		rel += best.Consumed
		perElement[bestIdx]++
		times++
	}
	if times < a.MinTimes {
		return Unmatched
	}
	if a.MinTimesPerElement > 0 {
		for _, c := range perElement {
			if c > 0 && c < a.MinTimesPerElement {
				return Unmatched
			}
		}
	}
	return MatchResult{Consumed: rel, Segments: out, Ok: true}
}

// ---------------------------------------------------------------------
// Delimited
// ---------------------------------------------------------------------

// Delimited matches one or more Element separated by Delimiter; a trailing
// delimiter is permitted iff AllowTrailing.
type Delimited struct {
	Element       Matchable
	Delimiter     Matchable
	AllowTrailing bool
	MinDelimiters int
	Terminators   []Matchable
	cacheKey      string
}

func NewDelimited(element, delimiter Matchable) *Delimited {
	return &Delimited{Element: element, Delimiter: delimiter, cacheKey: NewCacheKey("Delimited")}
}

func (d *Delimited) CacheKey() string { return d.cacheKey }
func (d *Delimited) IsOptional() bool { return false }
func (d *Delimited) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return d.Element.Simple(ctx)
}

func (d *Delimited) terminatorHits(tokens []*segment.Segment, pos int, ctx *MatchContext) bool {
	for _, t := range d.Terminators {
		if MatchOne(t, tokens, pos, ctx).Ok {
			return true
		}
	}
	return false
}

func (d *Delimited) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	rel := 0
	var out []*segment.Segment
	delimiterCount := 0
	for {
		if d.terminatorHits(tokens[rel:], pos+rel, ctx) {
			break
		}
		res := MatchOne(d.Element, tokens[rel:], pos+rel, ctx)
		if !res.Ok {
			if rel == 0 {
				return Unmatched
			}
			break
		}
		out = append(out, res.Segments...)
		rel += res.Consumed

		delim := MatchOne(d.Delimiter, tokens[rel:], pos+rel, ctx)
		if !delim.Ok {
			break
		}
		// Peek: if nothing but a terminator/EOF follows the delimiter and
		// trailing delimiters are disallowed, stop before consuming it.
		afterDelim := rel + delim.Consumed
		if !d.AllowTrailing {
			next := MatchOne(d.Element, tokens[afterDelim:], pos+afterDelim, ctx)
			if !next.Ok {
				break
			}
		}
		out = append(out, delim.Segments...)
		rel = afterDelim
		delimiterCount++
	}
	if delimiterCount < d.MinDelimiters {
		return Unmatched
	}
	return MatchResult{Consumed: rel, Segments: out, Ok: true}
}

// ---------------------------------------------------------------------
// Optional / Anything / Nothing
// ---------------------------------------------------------------------

// OptionalGrammar wraps inner so IsOptional() reports true regardless of
// inner's own default.
type OptionalGrammar struct {
	Inner    Matchable
	cacheKey string
}

func NewOptional(inner Matchable) *OptionalGrammar {
	return &OptionalGrammar{Inner: inner, cacheKey: NewCacheKey("Optional")}
}

func (o *OptionalGrammar) CacheKey() string { return o.cacheKey }
func (o *OptionalGrammar) IsOptional() bool { return true }
func (o *OptionalGrammar) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return o.Inner.Simple(ctx)
}
func (o *OptionalGrammar) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	return MatchOne(o.Inner, tokens, pos, ctx)
}

// Anything always matches, consuming greedily up to the first terminator
// match (or the end of the slice if none is configured) — used as a
// placeholder for dialect extension points.
type AnythingGrammar struct {
	cacheKey string
}

func NewAnything() *AnythingGrammar { return &AnythingGrammar{cacheKey: NewCacheKey("Anything")} }

func (a *AnythingGrammar) CacheKey() string { return a.cacheKey }
func (a *AnythingGrammar) IsOptional() bool { return true }
func (a *AnythingGrammar) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) { return nil, nil, false }
func (a *AnythingGrammar) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	end := len(tokens)
	for i := 0; i < len(tokens); i++ {
		stop := false
		for _, t := range ctx.Terminators {
			if MatchOne(t, tokens[i:], pos+i, ctx).Ok {
				stop = true
				break
			}
		}
		if stop {
			end = i
			break
		}
	}
	return MatchResult{Consumed: end, Segments: append([]*segment.Segment{}, tokens[:end]...), Ok: true}
}

// Nothing never matches; it exists as a placeholder dialects can
// replace_grammar over, and is itself always optional so an enclosing
// Sequence/AnyNumberOf can skip it cleanly.
type NothingGrammar struct {
	cacheKey string
}

func NewNothing() *NothingGrammar { return &NothingGrammar{cacheKey: NewCacheKey("Nothing")} }

func (n *NothingGrammar) CacheKey() string { return n.cacheKey }
func (n *NothingGrammar) IsOptional() bool { return true }
func (n *NothingGrammar) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) { return nil, nil, true }
func (n *NothingGrammar) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	return Unmatched
}
