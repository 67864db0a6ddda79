package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &UniqueTableAlias{} })
	Register(func() Rule { return &UnusedTableAlias{} })
	Register(func() Rule { return &SelfAlias{} })
}

// tableRef is one FROM/JOIN source: its object reference (table name) and,
// if present, the alias it's given.
type tableRef struct {
	element *segment.Segment
	name    string
	alias   *segment.Segment // the AliasExpression node, nil if unaliased
	aliasID string           // lowercased alias identifier text
}

// collectTableRefs walks every FromExpressionElement under root, pairing
// each with its object reference and optional alias.
func collectTableRefs(root *segment.Segment) []tableRef {
	elements := root.RecursiveCrawl(segment.CrawlOptions{
		Kinds:     token.NewKindSet(token.FromExpressionElement),
		AllowSelf: true,
	})
	out := make([]tableRef, 0, len(elements))
	for _, el := range elements {
		ref := tableRef{element: el}
		if obj, ok := el.Child(token.NewKindSet(token.ObjectReference)); ok {
			ref.name = obj.Raw()
		}
		if aliasExpr, ok := el.Child(token.NewKindSet(token.AliasExpression)); ok {
			ref.alias = aliasExpr
			if id := aliasIdentifier(aliasExpr); id != nil {
				ref.aliasID = strings.ToLower(id.Raw())
			}
		}
		out = append(out, ref)
	}
	return out
}

// aliasIdentifier returns the identifier leaf of an AliasExpression,
// skipping the optional "AS" keyword.
func aliasIdentifier(aliasExpr *segment.Segment) *segment.Segment {
	ids := token.NewKindSet(token.NakedIdentifier, token.QuotedIdentifier)
	for _, leaf := range aliasExpr.Leaves() {
		if ids.Has(leaf.Kind()) {
			return leaf
		}
	}
	return nil
}

// UniqueTableAlias flags the same alias used on more than one FROM/JOIN
// source.
type UniqueTableAlias struct{}

func (UniqueTableAlias) Name() string        { return "aliasing.unique_table" }
func (UniqueTableAlias) Code() string        { return "AL04" }
func (UniqueTableAlias) Groups() []Group     { return []Group{GroupAliasing} }
func (UniqueTableAlias) Description() string { return "Table aliases should be unique within a query." }
func (UniqueTableAlias) LongDescription() string {
	return "Duplicate table aliases cause ambiguity when referencing columns; most databases reject the query outright, and the ones that don't make every column reference ambiguous."
}
func (UniqueTableAlias) DefaultSeverity() Severity { return SeverityError }
func (UniqueTableAlias) IsFixCompatible() bool     { return false }
func (UniqueTableAlias) LintPhase() Phase          { return PhaseMain }
func (UniqueTableAlias) DialectSkip() []string     { return nil }
func (UniqueTableAlias) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.SelectStatement)}
}

func (UniqueTableAlias) Eval(ctx Context) []fix.LintResult {
	counts := make(map[string]int)
	anchors := make(map[string]*segment.Segment)
	for _, ref := range collectTableRefs(ctx.Segment) {
		if ref.aliasID == "" {
			continue
		}
		counts[ref.aliasID]++
		anchors[ref.aliasID] = ref.alias
	}
	var out []fix.LintResult
	for alias, count := range counts {
		if count <= 1 {
			continue
		}
		out = append(out, fix.LintResult{
			Anchor:      anchors[alias],
			Description: fmt.Sprintf("table alias %q is used %d times; aliases must be unique", alias, count),
		})
	}
	return out
}

// UnusedTableAlias flags an alias that's defined but never referenced from
// a column reference.
type UnusedTableAlias struct{}

func (UnusedTableAlias) Name() string        { return "aliasing.unused" }
func (UnusedTableAlias) Code() string        { return "AL05" }
func (UnusedTableAlias) Groups() []Group     { return []Group{GroupAliasing} }
func (UnusedTableAlias) Description() string { return "Table alias is defined but not referenced." }
func (UnusedTableAlias) LongDescription() string {
	return "An alias that nothing references adds noise without clarity, and often signals an incomplete refactor; either use it on the query's column references or drop it."
}
func (UnusedTableAlias) DefaultSeverity() Severity { return SeverityWarning }
func (UnusedTableAlias) IsFixCompatible() bool     { return false }
func (UnusedTableAlias) LintPhase() Phase          { return PhaseMain }
func (UnusedTableAlias) DialectSkip() []string     { return nil }
func (UnusedTableAlias) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.SelectStatement)}
}

func (UnusedTableAlias) Eval(ctx Context) []fix.LintResult {
	refs := collectTableRefs(ctx.Segment)
	if len(refs) == 0 {
		return nil
	}
	used := make(map[string]bool)
	cols := ctx.Segment.RecursiveCrawl(segment.CrawlOptions{Kinds: token.NewKindSet(token.ColumnReference)})
	for _, col := range cols {
		qualifier := columnQualifier(col)
		if qualifier != "" {
			used[strings.ToLower(qualifier)] = true
		}
	}
	var out []fix.LintResult
	for _, ref := range refs {
		if ref.aliasID == "" || used[ref.aliasID] {
			continue
		}
		out = append(out, fix.LintResult{
			Anchor:      ref.alias,
			Description: fmt.Sprintf("table alias %q is defined but never referenced", ref.aliasID),
		})
	}
	return out
}

// columnQualifier returns the leading dotted segment of a ColumnReference
// (e.g. "c" in "c.id"), or "" if the reference is unqualified.
func columnQualifier(col *segment.Segment) string {
	ids := token.NewKindSet(token.NakedIdentifier, token.QuotedIdentifier)
	var parts []string
	for _, leaf := range col.Leaves() {
		if ids.Has(leaf.Kind()) {
			parts = append(parts, leaf.Raw())
		}
	}
	if len(parts) < 2 {
		return ""
	}
	return parts[0]
}

// SelfAlias flags a table aliased to its own name, e.g. "customers AS
// customers".
type SelfAlias struct{}

func (SelfAlias) Name() string        { return "aliasing.self_alias" }
func (SelfAlias) Code() string        { return "AL09" }
func (SelfAlias) Groups() []Group     { return []Group{GroupAliasing} }
func (SelfAlias) Description() string { return "Table aliased to its own name is redundant." }
func (SelfAlias) LongDescription() string {
	return "Aliasing a table to its own name adds verbosity without benefit; remove the alias, or give the table a meaningfully different one."
}
func (SelfAlias) DefaultSeverity() Severity { return SeverityHint }
func (SelfAlias) IsFixCompatible() bool     { return true }
func (SelfAlias) LintPhase() Phase          { return PhaseMain }
func (SelfAlias) DialectSkip() []string     { return nil }
func (SelfAlias) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.FromExpressionElement)}
}

func (SelfAlias) Eval(ctx Context) []fix.LintResult {
	obj, ok := ctx.Segment.Child(token.NewKindSet(token.ObjectReference))
	if !ok {
		return nil
	}
	aliasExpr, ok := ctx.Segment.Child(token.NewKindSet(token.AliasExpression))
	if !ok {
		return nil
	}
	id := aliasIdentifier(aliasExpr)
	if id == nil || !strings.EqualFold(obj.Raw(), id.Raw()) {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      aliasExpr,
		Description: fmt.Sprintf("table %q is aliased to its own name; this is redundant", obj.Raw()),
		Fixes:       []fix.LintFix{fix.NewDelete(aliasExpr)},
	}}
}
