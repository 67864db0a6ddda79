package reflow

import (
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// maxBlankLines caps consecutive newlines at one blank line between two
// lines of content (2 newline leaves: the one ending line one and the one
// ending the blank line).
const maxBlankLines = 2

// Rebreak fixes up the line breaks a Point already contains: no
// whitespace trailing before a newline, and no more than one blank line
// in a row. It never inserts a line break where none exists — deciding
// where a statement *should* wrap is BreakLongLines' job, not this one's.
func (s *ReflowSequence) Rebreak() []fix.LintFix {
	var fixes []fix.LintFix

	for _, e := range s.elements {
		if e.point == nil {
			continue
		}
		fixes = append(fixes, trimTrailingWhitespace(e.point)...)
		fixes = append(fixes, collapseBlankLines(e.point)...)
	}

	return fixes
}

func trimTrailingWhitespace(p *Point) []fix.LintFix {
	var fixes []fix.LintFix
	for i := 0; i+1 < len(p.Segments); i++ {
		if p.Segments[i].Kind() == token.Whitespace && p.Segments[i+1].Kind() == token.Newline {
			fixes = append(fixes, fix.NewDelete(p.Segments[i]))
		}
	}
	return fixes
}

func collapseBlankLines(p *Point) []fix.LintFix {
	var fixes []fix.LintFix
	run := 0
	for _, seg := range p.Segments {
		if seg.Kind() == token.Newline {
			run++
			if run > maxBlankLines {
				fixes = append(fixes, fix.NewDelete(seg))
			}
			continue
		}
		run = 0
	}
	return fixes
}
