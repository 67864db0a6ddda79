package lexer

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// Leaf is a single lexed leaf: a raw slice of the input, its kind, and the
// byte offset it starts at (callers turn this into a segment.Segment with a
// full Marker once the templated→source mapping is known).
type Leaf struct {
	Kind   token.SyntaxKind
	Raw    string
	Offset int
}

// Matcher is one entry in a dialect's lexer matcher list.
// Implementations try to match a prefix of input[pos:] and return the raw
// matched text, or ok=false if they don't match here.
type Matcher interface {
	// Name identifies the matcher for diagnostics and declaration-order tie
	// breaking.
	Name() string
	// FirstBytes is a cheap first-character predicate used to skip
	// obviously non-matching matchers; nil means "always try".
	FirstBytes() func(byte) bool
	// Match attempts to match at input[pos:]. A matcher that also implements
	// Subdivide (see subdivider) has its raw match split into sub-leaves
	// (used by block comment matchers so comments participate correctly in
	// reflow).
	Match(input string, pos int) (raw string, ok bool)
	Kind() token.SyntaxKind
}

// subdivider is implemented by matchers that want their match broken into
// multiple leaves (e.g. a block comment matcher splitting out embedded
// newlines so the reflow engine sees them).
type subdivider interface {
	Subdivide(raw string, offset int) []Leaf
}

// StringMatcher matches an exact literal, case-insensitively.
type StringMatcher struct {
	name    string
	literal string
	kind    token.SyntaxKind
}

// NewStringMatcher builds a StringMatcher for an exact (case-insensitive)
// literal, highest precedence among equal-length matches per 
func NewStringMatcher(name, literal string, kind token.SyntaxKind) *StringMatcher {
	return &StringMatcher{name: name, literal: literal, kind: kind}
}

func (m *StringMatcher) Name() string          { return m.name }
func (m *StringMatcher) Kind() token.SyntaxKind { return m.kind }
func (m *StringMatcher) FirstBytes() func(byte) bool {
	if m.literal == "" {
		return nil
	}
	first := lowerByte(m.literal[0])
	return func(b byte) bool { return lowerByte(b) == first }
}
func (m *StringMatcher) Match(input string, pos int) (string, bool) {
	end := pos + len(m.literal)
	if end > len(input) {
		return "", false
	}
	if !strings.EqualFold(input[pos:end], m.literal) {
		return "", false
	}
	return input[pos:end], true
}

// MultiStringMatcher matches the longest of a set of literals (keyword
// sets): 's MultiStringParser, reused at the lexer layer for
// multi-character operators such as "||" vs "|".
type MultiStringMatcher struct {
	name    string
	strings []string
	kind    token.SyntaxKind
}

func NewMultiStringMatcher(name string, kind token.SyntaxKind, strs ...string) *MultiStringMatcher {
	return &MultiStringMatcher{name: name, strings: strs, kind: kind}
}

func (m *MultiStringMatcher) Name() string          { return m.name }
func (m *MultiStringMatcher) Kind() token.SyntaxKind { return m.kind }
func (m *MultiStringMatcher) FirstBytes() func(byte) bool { return nil }
func (m *MultiStringMatcher) Match(input string, pos int) (string, bool) {
	best := ""
	for _, s := range m.strings {
		end := pos + len(s)
		if end <= len(input) && strings.EqualFold(input[pos:end], s) {
			if len(s) > len(best) {
				best = input[pos:end]
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// RegexMatcher matches a compiled regular expression anchored at pos.
type RegexMatcher struct {
	name string
	re   *regexp.Regexp
	kind token.SyntaxKind
}

// NewRegexMatcher builds a RegexMatcher. pattern is automatically anchored
// with \A so it only matches starting exactly at pos.
func NewRegexMatcher(name, pattern string, kind token.SyntaxKind) *RegexMatcher {
	return &RegexMatcher{name: name, re: regexp.MustCompile(`\A(?:` + pattern + `)`), kind: kind}
}

func (m *RegexMatcher) Name() string          { return m.name }
func (m *RegexMatcher) Kind() token.SyntaxKind { return m.kind }
func (m *RegexMatcher) FirstBytes() func(byte) bool { return nil }
func (m *RegexMatcher) Match(input string, pos int) (string, bool) {
	loc := m.re.FindStringIndex(input[pos:])
	if loc == nil || loc[0] != 0 {
		return "", false
	}
	return input[pos : pos+loc[1]], true
}

// NativeMatcher wraps a hand-written Cursor-driven function: numeric
// literals, nested block comments, dollar-quoted strings.
type NativeMatcher struct {
	name string
	fn   func(input string, pos int) (raw string, ok bool)
	kind token.SyntaxKind
	fb   func(byte) bool
	sub  func(raw string, offset int) []Leaf
}

// NewNativeMatcher builds a NativeMatcher. fb is an optional first-byte
// predicate for pruning; sub is an optional post-match subdivider.
func NewNativeMatcher(name string, kind token.SyntaxKind, fb func(byte) bool, fn func(string, int) (string, bool)) *NativeMatcher {
	return &NativeMatcher{name: name, kind: kind, fb: fb, fn: fn}
}

// WithSubdivide attaches a subdivider and returns the matcher for chaining.
func (m *NativeMatcher) WithSubdivide(sub func(raw string, offset int) []Leaf) *NativeMatcher {
	m.sub = sub
	return m
}

func (m *NativeMatcher) Name() string              { return m.name }
func (m *NativeMatcher) Kind() token.SyntaxKind     { return m.kind }
func (m *NativeMatcher) FirstBytes() func(byte) bool { return m.fb }
func (m *NativeMatcher) Match(input string, pos int) (string, bool) {
	return m.fn(input, pos)
}
func (m *NativeMatcher) Subdivide(raw string, offset int) []Leaf {
	if m.sub == nil {
		return nil
	}
	return m.sub(raw, offset)
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
