package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &ElseNull{} })
	Register(func() Rule { return &DistinctVsGroupBy{} })
}

// ElseNull flags a CASE expression's redundant "ELSE NULL": CASE already
// returns NULL when no WHEN matches and no ELSE is given.
type ElseNull struct{}

func (ElseNull) Name() string        { return "structure.else_null" }
func (ElseNull) Code() string        { return "ST01" }
func (ElseNull) Groups() []Group     { return []Group{GroupStructure} }
func (ElseNull) Description() string { return "ELSE NULL is redundant in CASE expressions." }
func (ElseNull) LongDescription() string {
	return "A CASE expression with no matching WHEN and no ELSE already evaluates to NULL; spelling out ELSE NULL adds words without changing behaviour."
}
func (ElseNull) DefaultSeverity() Severity { return SeverityHint }
func (ElseNull) IsFixCompatible() bool     { return true }
func (ElseNull) LintPhase() Phase          { return PhaseMain }
func (ElseNull) DialectSkip() []string     { return nil }
func (ElseNull) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.ElseClause)}
}

func (ElseNull) Eval(ctx Context) []fix.LintResult {
	if !isBareNull(ctx.Segment) {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      ctx.Segment,
		Description: "ELSE NULL is redundant; a CASE expression returns NULL by default when no ELSE is given",
		Fixes:       []fix.LintFix{fix.NewDelete(ctx.Segment)},
	}}
}

// isBareNull reports whether an ElseClause's expression is exactly a NULL
// literal, ignoring the "else" keyword and whitespace.
func isBareNull(elseClause *segment.Segment) bool {
	var codeLeaves []*segment.Segment
	for _, leaf := range elseClause.Leaves() {
		if leaf.IsCode() {
			codeLeaves = append(codeLeaves, leaf)
		}
	}
	if len(codeLeaves) != 2 {
		return false
	}
	// The NULL leaf is a keyword wrapped in a NullLiteral node, so the leaf
	// itself is recognised by kind and text.
	kw, lit := codeLeaves[0], codeLeaves[1]
	return strings.EqualFold(kw.Raw(), "else") && lit.Kind() == token.Keyword && strings.EqualFold(lit.Raw(), "null")
}

// DistinctVsGroupBy suggests GROUP BY instead of DISTINCT when the SELECT
// list is plain column references with no aggregation, since GROUP BY makes
// the grouping columns explicit.
type DistinctVsGroupBy struct{}

func (DistinctVsGroupBy) Name() string { return "structure.distinct" }
func (DistinctVsGroupBy) Code() string { return "ST08" }
func (DistinctVsGroupBy) Groups() []Group { return []Group{GroupStructure} }
func (DistinctVsGroupBy) Description() string {
	return "Consider GROUP BY instead of DISTINCT when selecting plain columns without aggregation."
}
func (DistinctVsGroupBy) LongDescription() string {
	return "GROUP BY on the same columns as a plain DISTINCT states the grouping explicitly and positions the query for future aggregates; a bare DISTINCT can read ambiguously once the query grows."
}
func (DistinctVsGroupBy) DefaultSeverity() Severity { return SeverityInfo }
func (DistinctVsGroupBy) IsFixCompatible() bool     { return false }
func (DistinctVsGroupBy) LintPhase() Phase          { return PhaseMain }
func (DistinctVsGroupBy) DialectSkip() []string     { return nil }
func (DistinctVsGroupBy) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.SelectClause)}
}

func (DistinctVsGroupBy) Eval(ctx Context) []fix.LintResult {
	clause := ctx.Segment
	if !hasDistinctKeyword(clause) {
		return nil
	}
	parent := ctx.Parent()
	if parent != nil {
		if _, ok := parent.Child(token.NewKindSet(token.GroupByClause)); ok {
			return nil
		}
	}
	targets := clause.ChildrenOfKindSet(token.NewKindSet(token.SelectTarget))
	if len(targets) == 0 {
		return nil
	}
	allSimple := true
	for _, t := range targets {
		if len(t.RecursiveCrawl(segment.CrawlOptions{Kinds: token.NewKindSet(token.StarExpression)})) > 0 {
			allSimple = false
			break
		}
		if len(t.RecursiveCrawl(segment.CrawlOptions{Kinds: token.NewKindSet(token.FunctionName)})) > 0 {
			// An aggregate (or any function) changes the semantics; GROUP BY
			// isn't a drop-in replacement, so stay quiet.
			return nil
		}
	}
	if !allSimple {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      clause,
		Description: "DISTINCT on simple columns could be expressed as GROUP BY for clarity",
	}}
}
