package reflow

import (
	"github.com/leapstack-labs/sqlfmt/pkg/fix"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// tightAfter never takes a space on their right: open brackets and dots
// bind directly to what follows.
var tightAfter = token.NewKindSet(token.StartBracket, token.StartSquareBracket, token.Dot)

// tightBefore never takes a space on their left: closing punctuation and
// separators bind directly to what precedes.
var tightBefore = token.NewKindSet(token.Comma, token.SemiColon, token.Dot, token.EndBracket, token.EndSquareBracket)

func wantSpace(prev, next token.SyntaxKind) bool {
	return !tightAfter.Has(prev) && !tightBefore.Has(next)
}

// Respace normalizes inter-token spacing on a single logical line: a
// single space where two tokens require one, none where they don't, and
// collapses any run of spaces down to one. It never touches a point that
// spans a newline or carries a comment — those stay Rebreak's job.
func (s *ReflowSequence) Respace() []fix.LintFix {
	var fixes []fix.LintFix

	for i := 0; i+2 < len(s.elements); i += 2 {
		prev, pt, next := s.elements[i].block, s.elements[i+1].point, s.elements[i+2].block
		if prev == nil || pt == nil || next == nil {
			continue
		}
		if s.skip(prev) || s.skip(next) {
			continue
		}
		if pt.HasNewline() || hasComment(*pt) {
			continue
		}

		want := wantSpace(prev.Segment.Kind(), next.Segment.Kind())
		ws, hasWS := pt.Whitespace()

		switch {
		case pt.Empty() && want:
			newWS := segment.NewLeaf(s.tables.NextID(), token.Whitespace, " ", nil)
			fixes = append(fixes, fix.NewCreateAfter(prev.Segment, newWS))
		case hasWS && !want:
			fixes = append(fixes, fix.NewDelete(ws))
		case hasWS && want && ws.Raw() != " ":
			newWS := segment.NewLeaf(s.tables.NextID(), token.Whitespace, " ", nil)
			fixes = append(fixes, fix.NewReplace(ws, newWS))
		}
	}

	return fixes
}

func hasComment(p Point) bool {
	for _, s := range p.Segments {
		if s.Kind() == token.InlineComment || s.Kind() == token.BlockComment {
			return true
		}
	}
	return false
}
