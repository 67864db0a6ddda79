package reflow

import (
	"fmt"

	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// DefaultMaxLineLength is the line length past which BreakLongLines
// starts flagging, matching the conventional SQL style-guide default.
const DefaultMaxLineLength = 80

// BreakLongLines reports every logical line longer than maxLineLength.
// It does not propose a Fix: choosing where to break a long line needs
// indent-depth tracking from the enclosing clause, which this sequence
// — built from a flat leaf stream — doesn't carry. Callers get a
// diagnostic LintResult they can act on manually until that tracking
// exists.
func (s *ReflowSequence) BreakLongLines(maxLineLength int) []fix.LintResult {
	var results []fix.LintResult

	line := 1
	length := 0
	var firstBlock *Block

	flush := func() {
		if firstBlock != nil && length > maxLineLength {
			results = append(results, fix.LintResult{
				Anchor:      firstBlock.Segment,
				Description: fmt.Sprintf("line %d is %d characters, exceeds the %d character limit", line, length, maxLineLength),
			})
		}
		length = 0
		firstBlock = nil
	}

	for _, e := range s.elements {
		if e.block != nil {
			if firstBlock == nil {
				firstBlock = e.block
			}
			length += len(e.block.Segment.Raw())
			continue
		}
		for _, seg := range e.point.Segments {
			if seg.Kind() == token.Newline {
				flush()
				line++
				continue
			}
			length += len(seg.Raw())
		}
	}
	flush()

	return results
}
