package reflow

import "github.com/leapstack-labs/sqlfmt/pkg/fix"

// Fixes runs every whitespace-only reflow pass (Respace, Rebreak) and
// returns their combined edits. BreakLongLines is deliberately excluded
// since it produces diagnostics, not fixes.
func (s *ReflowSequence) Fixes() []fix.LintFix {
	fixes := s.Respace()
	fixes = append(fixes, s.Rebreak()...)
	return fixes
}

// Results wraps Fixes in a single LintResult anchored at the sequence's
// root, the shape a layout Rule's Eval can return directly.
func (s *ReflowSequence) Results() []fix.LintResult {
	fixes := s.Fixes()
	if len(fixes) == 0 {
		return nil
	}
	return []fix.LintResult{{
		Anchor:      s.root,
		Description: "layout does not match the configured style",
		Fixes:       fixes,
	}}
}
