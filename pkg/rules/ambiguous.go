package rules

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &DistinctWithGroupBy{} })
	Register(func() Rule { return &ImplicitCrossJoin{} })
}

// DistinctWithGroupBy flags SELECT DISTINCT combined with GROUP BY: GROUP BY
// already produces unique rows, so DISTINCT is redundant.
type DistinctWithGroupBy struct{}

func (DistinctWithGroupBy) Name() string        { return "ambiguous.distinct" }
func (DistinctWithGroupBy) Code() string        { return "AM01" }
func (DistinctWithGroupBy) Groups() []Group     { return []Group{GroupAmbiguous} }
func (DistinctWithGroupBy) Description() string { return "Using DISTINCT with GROUP BY is redundant." }
func (DistinctWithGroupBy) LongDescription() string {
	return "GROUP BY already produces one row per group, so a DISTINCT on top of it never removes additional rows; it only obscures intent."
}
func (DistinctWithGroupBy) DefaultSeverity() Severity { return SeverityWarning }
func (DistinctWithGroupBy) IsFixCompatible() bool      { return false }
func (DistinctWithGroupBy) LintPhase() Phase           { return PhaseMain }
func (DistinctWithGroupBy) DialectSkip() []string      { return nil }
func (DistinctWithGroupBy) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.SelectStatement)}
}

func (r DistinctWithGroupBy) Eval(ctx Context) []fix.LintResult {
	clause, ok := ctx.Segment.Child(token.NewKindSet(token.SelectClause))
	if !ok {
		return nil
	}
	if !hasDistinctKeyword(clause) {
		return nil
	}
	if _, ok := ctx.Segment.Child(token.NewKindSet(token.GroupByClause)); !ok {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      clause,
		Description: "DISTINCT is redundant alongside GROUP BY",
	}}
}

func hasDistinctKeyword(clause *segment.Segment) bool {
	for _, leaf := range clause.Leaves() {
		if leaf.Kind() == token.Keyword && strings.EqualFold(leaf.Raw(), "distinct") {
			return true
		}
	}
	return false
}

// ImplicitCrossJoin flags comma-separated FROM items (an implicit cross
// join), recommending explicit JOIN syntax.
type ImplicitCrossJoin struct{}

func (ImplicitCrossJoin) Name() string        { return "ambiguous.join" }
func (ImplicitCrossJoin) Code() string        { return "AM05" }
func (ImplicitCrossJoin) Groups() []Group     { return []Group{GroupAmbiguous} }
func (ImplicitCrossJoin) Description() string { return "Comma-separated tables create an implicit cross join." }
func (ImplicitCrossJoin) LongDescription() string {
	return "FROM a, b is a cross join with the join condition left to WHERE (or missing entirely); explicit JOIN ... ON makes the relationship and intent visible at the join site."
}
func (ImplicitCrossJoin) DefaultSeverity() Severity { return SeverityInfo }
func (ImplicitCrossJoin) IsFixCompatible() bool      { return false }
func (ImplicitCrossJoin) LintPhase() Phase           { return PhaseMain }
func (ImplicitCrossJoin) DialectSkip() []string      { return nil }
func (ImplicitCrossJoin) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.FromClause)}
}

func (r ImplicitCrossJoin) Eval(ctx Context) []fix.LintResult {
	items := ctx.Segment.ChildrenOfKindSet(token.NewKindSet(token.FromExpression))
	if len(items) < 2 {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      ctx.Segment,
		Description: "comma-separated tables create an implicit cross join; prefer an explicit JOIN",
	}}
}
