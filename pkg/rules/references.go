package rules

import (
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &QualifyColumns{} })
}

// QualifyColumns recommends qualifying column references once a query reads
// from more than one table, since an unqualified name becomes ambiguous the
// moment two sources share a column.
type QualifyColumns struct{}

func (QualifyColumns) Name() string    { return "references.qualification" }
func (QualifyColumns) Code() string    { return "RF02" }
func (QualifyColumns) Groups() []Group { return []Group{GroupReferences} }
func (QualifyColumns) Description() string {
	return "Qualify column references in queries with multiple tables."
}
func (QualifyColumns) LongDescription() string {
	return "Once a query joins more than one source, an unqualified column name is ambiguous to a reader (and sometimes to the database) the moment both sources define it; prefix it with the table name or alias."
}
func (QualifyColumns) DefaultSeverity() Severity { return SeverityWarning }
func (QualifyColumns) IsFixCompatible() bool     { return false }
func (QualifyColumns) LintPhase() Phase          { return PhaseMain }
func (QualifyColumns) DialectSkip() []string     { return nil }
func (QualifyColumns) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.SelectStatement)}
}

func (QualifyColumns) Eval(ctx Context) []fix.LintResult {
	refs := collectTableRefs(ctx.Segment)
	if len(refs) < 2 {
		return nil
	}
	var out []fix.LintResult
	cols := ctx.Segment.RecursiveCrawl(segment.CrawlOptions{Kinds: token.NewKindSet(token.ColumnReference)})
	for _, col := range cols {
		if columnQualifier(col) != "" {
			continue
		}
		out = append(out, fix.LintResult{
			Anchor:      col,
			Description: "column '" + col.Raw() + "' should be qualified with its table name in a multi-table query",
		})
	}
	return out
}
