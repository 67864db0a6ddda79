package lexer

import "github.com/leapstack-labs/sqlfmt/pkg/token"

// Lex tokenises input using matchers in declaration order: at each
// position try every matcher; the longest match wins; ties are broken by
// matcher declaration order; an unmatched position emits a one-byte
// Unlexable leaf and lexing continues (lexing never fails outright).
// Matchers are tried via each one's cheap FirstBytes predicate to keep
// the scan close to linear.
func Lex(input string, matchers []Matcher) []Leaf {
	var out []Leaf
	pos := 0
	for pos < len(input) {
		m, raw, ok := tryMatchers(input, pos, matchers)
		if !ok {
			out = append(out, Leaf{Kind: token.Unlexable, Raw: input[pos : pos+1], Offset: pos})
			pos++
			continue
		}
		if sd, ok := m.(subdivider); ok {
			if parts := sd.Subdivide(raw, pos); parts != nil {
				out = append(out, parts...)
				pos += len(raw)
				continue
			}
		}
		out = append(out, Leaf{Kind: m.Kind(), Raw: raw, Offset: pos})
		pos += len(raw)
	}
	return out
}

func tryMatchers(input string, pos int, matchers []Matcher) (Matcher, string, bool) {
	var bestMatcher Matcher
	var bestRaw string
	cur := input[pos]
	for _, m := range matchers {
		if fb := m.FirstBytes(); fb != nil && !fb(cur) {
			continue
		}
		raw, ok := m.Match(input, pos)
		if !ok || raw == "" {
			continue
		}
		if len(raw) > len(bestRaw) {
			bestMatcher = m
			bestRaw = raw
		}
	}
	if bestMatcher == nil {
		return nil, "", false
	}
	return bestMatcher, bestRaw, true
}

// SumLen returns the total byte length of all leaves — used to assert
// 's invariant that the sum of leaf lengths equals input
// length.
func SumLen(leaves []Leaf) int {
	n := 0
	for _, l := range leaves {
		n += len(l.Raw)
	}
	return n
}
