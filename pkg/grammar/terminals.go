package grammar

import (
	"regexp"

	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// reclassify produces a new leaf segment sharing the original leaf's raw
// text and position but tagged with producedKind — e.g. a bare Word leaf
// reclassified as a Keyword once the grammar recognises it in keyword
// position.
func reclassify(ctx *MatchContext, leaf *segment.Segment, producedKind token.SyntaxKind) *segment.Segment {
	return segment.NewLeaf(ctx.Tables.NextID(), producedKind, leaf.Raw(), leaf.Marker())
}

// StringParser matches one leaf whose raw text equals literal
// (case-insensitively), highest precedence among equal-length matches.
type StringParser struct {
	Literal      string
	ProducedKind token.SyntaxKind
	cacheKey     string
}

func NewStringParser(literal string, kind token.SyntaxKind) *StringParser {
	return &StringParser{Literal: literal, ProducedKind: kind, cacheKey: NewCacheKey("String:" + literal)}
}

func (p *StringParser) CacheKey() string   { return p.cacheKey }
func (p *StringParser) IsOptional() bool   { return false }
func (p *StringParser) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return []string{p.Literal}, nil, true
}
func (p *StringParser) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) || !eqFold(tokens[i].Raw(), p.Literal) {
		return Unmatched
	}
	return MatchResult{Consumed: i + 1, Segments: append(append([]*segment.Segment{}, tokens[:i]...), reclassify(ctx, tokens[i], p.ProducedKind)), Ok: true}
}

// MultiStringParser matches one leaf whose raw text equals any of Strings
// (case-insensitively).
type MultiStringParser struct {
	Strings      []string
	ProducedKind token.SyntaxKind
	cacheKey     string
}

func NewMultiStringParser(kind token.SyntaxKind, strs ...string) *MultiStringParser {
	return &MultiStringParser{Strings: strs, ProducedKind: kind, cacheKey: NewCacheKey("MultiString")}
}

func (p *MultiStringParser) CacheKey() string { return p.cacheKey }
func (p *MultiStringParser) IsOptional() bool { return false }
func (p *MultiStringParser) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return p.Strings, nil, true
}
func (p *MultiStringParser) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) {
		return Unmatched
	}
	raw := tokens[i].Raw()
	for _, s := range p.Strings {
		if eqFold(raw, s) {
			return MatchResult{Consumed: i + 1, Segments: append(append([]*segment.Segment{}, tokens[:i]...), reclassify(ctx, tokens[i], p.ProducedKind)), Ok: true}
		}
	}
	return Unmatched
}

// TypedParser matches one leaf by its existing syntax kind.
type TypedParser struct {
	ExpectedKind token.SyntaxKind
	ProducedKind token.SyntaxKind
	cacheKey     string
}

func NewTypedParser(expected, produced token.SyntaxKind) *TypedParser {
	return &TypedParser{ExpectedKind: expected, ProducedKind: produced, cacheKey: NewCacheKey("Typed")}
}

func (p *TypedParser) CacheKey() string { return p.cacheKey }
func (p *TypedParser) IsOptional() bool { return false }
func (p *TypedParser) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return nil, token.NewKindSet(p.ExpectedKind), true
}
func (p *TypedParser) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) || tokens[i].Kind() != p.ExpectedKind {
		return Unmatched
	}
	kind := p.ProducedKind
	if kind == token.Unknown {
		kind = tokens[i].Kind()
	}
	return MatchResult{Consumed: i + 1, Segments: append(append([]*segment.Segment{}, tokens[:i]...), reclassify(ctx, tokens[i], kind)), Ok: true}
}

// RegexParser matches one leaf's raw text against pattern. AntiTemplate, if
// set, rejects matches that also match the anti-pattern — used to exclude
// reserved keywords from identifier matches.
type RegexParser struct {
	Pattern      *regexp.Regexp
	AntiTemplate *regexp.Regexp
	ProducedKind token.SyntaxKind
	cacheKey     string
}

func NewRegexParser(pattern string, kind token.SyntaxKind) *RegexParser {
	return &RegexParser{Pattern: regexp.MustCompile(`\A(?:` + pattern + `)\z`), ProducedKind: kind, cacheKey: NewCacheKey("Regex")}
}

// WithAntiTemplate returns p configured to reject matches against anti.
func (p *RegexParser) WithAntiTemplate(anti string) *RegexParser {
	p.AntiTemplate = regexp.MustCompile(`\A(?:` + anti + `)\z`)
	return p
}

func (p *RegexParser) CacheKey() string { return p.cacheKey }
func (p *RegexParser) IsOptional() bool { return false }
func (p *RegexParser) Simple(ctx *MatchContext) ([]string, token.KindSet, bool) {
	return nil, nil, false // regex oracle is unknown in general
}
func (p *RegexParser) Match(tokens []*segment.Segment, pos int, ctx *MatchContext) MatchResult {
	i := skipGaps(tokens, 0)
	if i >= len(tokens) {
		return Unmatched
	}
	raw := tokens[i].Raw()
	if !p.Pattern.MatchString(raw) {
		return Unmatched
	}
	if p.AntiTemplate != nil && p.AntiTemplate.MatchString(raw) {
		return Unmatched
	}
	return MatchResult{Consumed: i + 1, Segments: append(append([]*segment.Segment{}, tokens[:i]...), reclassify(ctx, tokens[i], p.ProducedKind)), Ok: true}
}
