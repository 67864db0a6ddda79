package rules

import (
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

func init() {
	Register(func() Rule { return &CommaSpacing{} })
}

// CommaSpacing flags whitespace immediately before a comma: commas hug the
// preceding token and are followed by a single space, so reflow can line-wrap
// a delimited list without stray leading gaps. It checks only the space
// before a comma; the lint loop does not run pkg/reflow's sequence, so
// list and line reflow are not applied in the Post phase.
type CommaSpacing struct{}

func (CommaSpacing) Name() string        { return "layout.comma_spacing" }
func (CommaSpacing) Code() string        { return "LT01" }
func (CommaSpacing) Groups() []Group     { return []Group{GroupLayout} }
func (CommaSpacing) Description() string { return "Commas should not be preceded by whitespace." }
func (CommaSpacing) LongDescription() string {
	return "A comma hugs the token before it and is followed by a single space; a leading gap before the comma is always spurious."
}
func (CommaSpacing) DefaultSeverity() Severity { return SeverityWarning }
func (CommaSpacing) IsFixCompatible() bool     { return true }
func (CommaSpacing) LintPhase() Phase          { return PhasePost }
func (CommaSpacing) DialectSkip() []string     { return nil }
func (CommaSpacing) CrawlBehaviour() Crawler {
	return SegmentSeekerCrawler{Kinds: token.NewKindSet(token.Comma)}
}

func (CommaSpacing) Eval(ctx Context) []fix.LintResult {
	parent := ctx.Parent()
	if parent == nil {
		return nil
	}
	siblings := parent.Children()
	if ctx.SiblingIdx == 0 || ctx.SiblingIdx > len(siblings) {
		return nil
	}
	prev := siblings[ctx.SiblingIdx-1]
	if prev.Kind() != token.Whitespace {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      prev,
		Description: "remove whitespace before comma",
		Fixes:       []fix.LintFix{fix.NewDelete(prev)},
	}}
}
