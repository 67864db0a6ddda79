// Package rules implements the C8 rule engine: crawlers, the rule contract,
// rule context, rule packs, and phase scheduling. Concrete
// rule bodies live in per-family files in this package and in pkg/rules/script.
package rules

import (
	"fmt"

	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

// Severity classifies how serious a rule violation is, on a four-level
// scale.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Group is one of the rule family tags a rule can belong to, used for
// group-based enable/disable in a RulePack.
type Group string

const (
	GroupAll            Group = "all"
	GroupCore           Group = "core"
	GroupAliasing       Group = "aliasing"
	GroupAmbiguous      Group = "ambiguous"
	GroupCapitalisation Group = "capitalisation"
	GroupConvention     Group = "convention"
	GroupLayout         Group = "layout"
	GroupReferences     Group = "references"
	GroupStructure      Group = "structure"
)

// Phase is when in the lint loop a rule runs.
type Phase int

const (
	PhaseMain Phase = iota
	PhasePost
)

// Context is the per-visit value a crawler hands a rule: the segment being visited, the parent stack from root to
// immediate parent, this segment's index among its siblings, the dialect,
// the Tables arena for minting new segment ids for fixes, and a per-rule
// scratch memory map shared by every visit within one crawl pass of that
// rule (see evalRule).
type Context struct {
	Segment    *segment.Segment
	Parents    []*segment.Segment
	SiblingIdx int
	Dialect    *dialect.Dialect
	Tables     *segment.Tables
	Memory     map[string]any
}

// Parent returns the immediate parent, or nil at the root.
func (c Context) Parent() *segment.Segment {
	if len(c.Parents) == 0 {
		return nil
	}
	return c.Parents[len(c.Parents)-1]
}

// Rule is the contract every lint rule satisfies.
type Rule interface {
	// Name is the dotted rule name, e.g. "aliasing.table".
	Name() string
	// Code is the legacy 4-character code, e.g. "AL04".
	Code() string
	Groups() []Group
	Description() string
	LongDescription() string
	DefaultSeverity() Severity
	CrawlBehaviour() Crawler
	// Eval analyses one visited context and returns zero or more results.
	Eval(ctx Context) []fix.LintResult
	IsFixCompatible() bool
	LintPhase() Phase
	// DialectSkip lists dialect names this rule does not apply to; empty
	// means "applies to every dialect".
	DialectSkip() []string
}

// Configurable is implemented by rules that accept rule-specific options
// from a config section.
type Configurable interface {
	LoadFromConfig(opts map[string]any) (Rule, error)
}

// AppliesToDialect reports whether r runs against a dialect of the given
// name, honoring DialectSkip.
func AppliesToDialect(r Rule, dialectName string) bool {
	for _, skip := range r.DialectSkip() {
		if skip == dialectName {
			return false
		}
	}
	return true
}
