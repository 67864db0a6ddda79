package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &IsNullComparison{} })
	Register(func() Rule { return &PreferLeftJoin{} })
	Register(func() Rule { return &BlockedWords{} })
}

// IsNullComparison flags "= NULL" / "!= NULL", which always evaluates to
// NULL rather than true or false.
type IsNullComparison struct{}

func (IsNullComparison) Name() string        { return "convention.is_null" }
func (IsNullComparison) Code() string        { return "CV05" }
func (IsNullComparison) Groups() []Group     { return []Group{GroupConvention} }
func (IsNullComparison) Description() string { return "Use IS NULL instead of = NULL for NULL comparisons." }
func (IsNullComparison) LongDescription() string {
	return "NULL represents unknown, so comparing anything to NULL with = or != always yields NULL rather than true or false. IS NULL / IS NOT NULL are the only correct way to test for it."
}
func (IsNullComparison) DefaultSeverity() Severity { return SeverityWarning }
func (IsNullComparison) IsFixCompatible() bool     { return false }
func (IsNullComparison) LintPhase() Phase          { return PhaseMain }
func (IsNullComparison) DialectSkip() []string     { return nil }
func (IsNullComparison) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.Expression)}
}

func (IsNullComparison) Eval(ctx Context) []fix.LintResult {
	children := ctx.Segment.Children()
	var out []fix.LintResult
	for i, c := range children {
		if c.Kind() != token.ComparisonOperator {
			continue
		}
		op := strings.TrimSpace(c.Raw())
		if op != "=" && op != "!=" && op != "<>" {
			continue
		}
		if !hasNullNeighbor(children, i) {
			continue
		}
		msg := "use IS NULL instead of = NULL; = NULL always evaluates to NULL, not true or false"
		if op != "=" {
			msg = "use IS NOT NULL instead of " + op + " NULL; it always evaluates to NULL, not true or false"
		}
		out = append(out, fix.LintResult{Anchor: c, Description: msg})
	}
	return out
}

func hasNullNeighbor(children []*segment.Segment, opIdx int) bool {
	if opIdx > 0 && children[opIdx-1].Kind() == token.NullLiteral {
		return true
	}
	if opIdx+1 < len(children) && children[opIdx+1].Kind() == token.NullLiteral {
		return true
	}
	return false
}

// PreferLeftJoin recommends LEFT JOIN over RIGHT JOIN, since a RIGHT JOIN can
// always be rewritten by swapping the table order.
type PreferLeftJoin struct{}

func (PreferLeftJoin) Name() string        { return "convention.left_join" }
func (PreferLeftJoin) Code() string        { return "CV08" }
func (PreferLeftJoin) Groups() []Group     { return []Group{GroupConvention} }
func (PreferLeftJoin) Description() string { return "Prefer LEFT JOIN over RIGHT JOIN for consistency." }
func (PreferLeftJoin) LongDescription() string {
	return "LEFT JOIN reads naturally left to right and preserves the table you mention first; RIGHT JOIN can always be expressed as a LEFT JOIN by swapping table order."
}
func (PreferLeftJoin) DefaultSeverity() Severity { return SeverityHint }
func (PreferLeftJoin) IsFixCompatible() bool     { return false }
func (PreferLeftJoin) LintPhase() Phase          { return PhaseMain }
func (PreferLeftJoin) DialectSkip() []string     { return nil }
func (PreferLeftJoin) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.JoinClause)}
}

func (PreferLeftJoin) Eval(ctx Context) []fix.LintResult {
	for _, leaf := range ctx.Segment.Leaves() {
		if leaf.Kind() != token.Keyword {
			continue
		}
		if strings.EqualFold(leaf.Raw(), "join") {
			break
		}
		if strings.EqualFold(leaf.Raw(), "right") {
			return []fix.LintResult{{
				Anchor:      ctx.Segment,
				Description: "consider using LEFT JOIN instead of RIGHT JOIN for better readability",
			}}
		}
	}
	return nil
}

// BlockedWords flags configured function names, e.g. DELETE, DROP, TRUNCATE
// used as function calls within a query.
type BlockedWords struct {
	blocked map[string]bool
}

var defaultBlockedWords = map[string]bool{
	"DELETE":   true,
	"DROP":     true,
	"TRUNCATE": true,
}

func (r *BlockedWords) words() map[string]bool {
	if r.blocked != nil {
		return r.blocked
	}
	return defaultBlockedWords
}

func (*BlockedWords) Name() string    { return "convention.blocked_words" }
func (*BlockedWords) Code() string    { return "CV09" }
func (*BlockedWords) Groups() []Group { return []Group{GroupConvention} }
func (*BlockedWords) Description() string {
	return "Block dangerous SQL keywords like DELETE, DROP, TRUNCATE used as functions."
}
func (*BlockedWords) LongDescription() string {
	return "A blocklist of function names that should never appear in a query, typically names that suggest a destructive operation has leaked into a read path."
}
func (*BlockedWords) DefaultSeverity() Severity { return SeverityWarning }
func (*BlockedWords) IsFixCompatible() bool     { return false }
func (*BlockedWords) LintPhase() Phase          { return PhaseMain }
func (*BlockedWords) DialectSkip() []string     { return nil }
func (*BlockedWords) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.FunctionName)}
}

// LoadFromConfig reads the "blocked_words" option, a list of case-insensitive
// function names, replacing the default blocklist entirely when set.
func (r *BlockedWords) LoadFromConfig(opts map[string]any) (Rule, error) {
	out := &BlockedWords{}
	raw, ok := opts["blocked_words"]
	if !ok {
		return out, nil
	}
	words, ok := raw.([]string)
	if !ok {
		if anySlice, ok := raw.([]any); ok {
			for _, v := range anySlice {
				if s, ok := v.(string); ok {
					words = append(words, s)
				}
			}
		}
	}
	out.blocked = make(map[string]bool, len(words))
	for _, w := range words {
		out.blocked[strings.ToUpper(w)] = true
	}
	return out, nil
}

func (r *BlockedWords) Eval(ctx Context) []fix.LintResult {
	name := strings.ToUpper(ctx.Segment.Raw())
	if !r.words()[name] {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      ctx.Segment,
		Description: "use of blocked word '" + name + "' detected",
	}}
}
