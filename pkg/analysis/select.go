package analysis

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// TableRef is one FromExpressionElement decomposed into its object
// reference parts and optional alias.
type TableRef struct {
	Element      *segment.Segment
	Parts        []string
	Alias        string
	AliasSegment *segment.Segment
}

// Name is the unqualified table/function name (the last dotted part).
func (r TableRef) Name() string {
	if len(r.Parts) == 0 {
		return ""
	}
	return r.Parts[len(r.Parts)-1]
}

// QualifiedName is the full dotted reference as written.
func (r TableRef) QualifiedName() string {
	return strings.Join(r.Parts, ".")
}

func aliasIdentifier(aliasExpr *segment.Segment) *segment.Segment {
	for _, leaf := range aliasExpr.Leaves() {
		if leaf.Kind() == token.NakedIdentifier || leaf.Kind() == token.QuotedIdentifier {
			return leaf
		}
	}
	return nil
}

// collectTableRefs finds every FromExpressionElement under root and
// decomposes it into a TableRef, covering both FROM-list entries and
// JOIN targets (both parse to the same node kind).
func collectTableRefs(root *segment.Segment) []TableRef {
	elements := root.RecursiveCrawl(segment.CrawlOptions{
		Kinds:       token.NewKindSet(token.FromExpressionElement),
		StopAtKinds: token.NewKindSet(token.SelectStatement),
		AllowSelf:   true,
	})

	refs := make([]TableRef, 0, len(elements))
	for _, el := range elements {
		ref := TableRef{Element: el}
		if objRef, ok := el.Child(token.NewKindSet(token.ObjectReference)); ok {
			ref.Parts = NewObjectReference(objRef).Parts
		}
		if aliasExpr, ok := el.Child(token.NewKindSet(token.AliasExpression)); ok {
			ref.AliasSegment = aliasExpr
			if id := aliasIdentifier(aliasExpr); id != nil {
				ref.Alias = id.Raw()
			}
		}
		refs = append(refs, ref)
	}
	return refs
}

func hasValueTableFunction(tableExpr *segment.Segment, d *dialect.Dialect) bool {
	if d == nil {
		return false
	}
	for _, fn := range tableExpr.SegmentsOfKind(token.FunctionName) {
		if d.InSet(dialect.ValueTableFunctions, strings.ToUpper(strings.TrimSpace(fn.Raw()))) {
			return true
		}
	}
	return false
}

// GetAliasesFromSelect splits a statement's FROM-clause table references
// into ordinary table aliases and "standalone" aliases: references whose
// own column set can't be known in advance (value-table functions like
// UNNEST/FLATTEN) and so are tracked by name only.
func GetAliasesFromSelect(stmt *segment.Segment, d *dialect.Dialect) (tableAliases []TableRef, standaloneAliases []string) {
	fc, ok := stmt.Child(token.NewKindSet(token.FromClause))
	if !ok {
		return nil, nil
	}

	seenStandalone := make(map[string]bool)
	for _, ref := range collectTableRefs(fc) {
		if hasValueTableFunction(ref.Element, d) {
			name := ref.EffectiveName()
			if !seenStandalone[name] {
				seenStandalone[name] = true
				standaloneAliases = append(standaloneAliases, name)
			}
			continue
		}
		tableAliases = append(tableAliases, ref)
	}
	return tableAliases, standaloneAliases
}

// EffectiveName returns the alias if present, else the qualified name as
// written, mirroring ScopeEntry.EffectiveName for TableRef.
func (r TableRef) EffectiveName() string {
	if r.Alias != "" {
		return r.Alias
	}
	return r.QualifiedName()
}

// ColumnAliasInfo pairs a SELECT target's output alias with the column
// reference it aliases, when the target is a bare column reference (not
// an arbitrary expression).
type ColumnAliasInfo struct {
	Alias           string
	AliasSegment    *segment.Segment
	ColumnReference *segment.Segment
}

// SelectInfo is the full set of name-resolution facts extracted from one
// SELECT statement: its table aliases, every object/column reference it
// contains, its output targets and their aliases, and any USING(...)
// join columns.
type SelectInfo struct {
	SelectStatement   *segment.Segment
	TableAliases      []TableRef
	StandaloneAliases []string
	ReferenceBuffer   []ObjectReference
	SelectTargets     []*segment.Segment
	ColAliases        []ColumnAliasInfo
	UsingCols         []string
}

// GetSelectInfo extracts a SelectInfo from stmt, a SelectStatement
// segment. It returns nil if stmt has no SELECT clause at all (malformed
// input) or, when earlyExit is set, if the statement has no FROM-clause
// aliases worth analyzing.
func GetSelectInfo(stmt *segment.Segment, d *dialect.Dialect, earlyExit bool) *SelectInfo {
	tableAliases, standaloneAliases := GetAliasesFromSelect(stmt, d)
	if earlyExit && len(tableAliases) == 0 && len(standaloneAliases) == 0 {
		return nil
	}

	sc, ok := stmt.Child(token.NewKindSet(token.SelectClause))
	if !ok {
		return nil
	}

	referenceBuffer := GetObjectReferences(sc)
	for _, kind := range []token.SyntaxKind{token.WhereClause, token.GroupByClause, token.HavingClause, token.OrderByClause} {
		if clause, ok := stmt.Child(token.NewKindSet(kind)); ok {
			referenceBuffer = append(referenceBuffer, GetObjectReferences(clause)...)
		}
	}

	selectTargets := sc.ChildrenOfKindSet(token.NewKindSet(token.SelectTarget))

	var colAliases []ColumnAliasInfo
	for _, target := range selectTargets {
		aliasExpr, ok := target.Child(token.NewKindSet(token.AliasExpression))
		if !ok {
			continue
		}
		id := aliasIdentifier(aliasExpr)
		if id == nil {
			continue
		}
		colRef, _ := target.Child(token.NewKindSet(token.ColumnReference))
		colAliases = append(colAliases, ColumnAliasInfo{Alias: id.Raw(), AliasSegment: aliasExpr, ColumnReference: colRef})
	}

	var usingCols []string
	if fc, ok := stmt.Child(token.NewKindSet(token.FromClause)); ok {
		joins := fc.RecursiveCrawl(segment.CrawlOptions{
			Kinds:       token.NewKindSet(token.JoinClause),
			StopAtKinds: token.NewKindSet(token.SelectStatement),
			AllowSelf:   true,
		})
		for _, join := range joins {
			if on, ok := join.Child(token.NewKindSet(token.JoinOnCondition)); ok {
				referenceBuffer = append(referenceBuffer, GetObjectReferences(on)...)
			}
			if using, ok := join.Child(token.NewKindSet(token.JoinUsingCondition)); ok {
				for _, col := range using.SegmentsOfKind(token.ColumnReference) {
					usingCols = append(usingCols, col.Raw())
				}
			}
		}
	}

	return &SelectInfo{
		SelectStatement:   stmt,
		TableAliases:      tableAliases,
		StandaloneAliases: standaloneAliases,
		ReferenceBuffer:   referenceBuffer,
		SelectTargets:     selectTargets,
		ColAliases:        colAliases,
		UsingCols:         usingCols,
	}
}
