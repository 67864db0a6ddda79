package reflow

import (
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// Point is the run of non-code leaves (whitespace, newlines, comments)
// between two Blocks, possibly empty when two code leaves are directly
// adjacent in the source.
type Point struct {
	Segments []*segment.Segment
}

// HasNewline reports whether any leaf in the point is a line break —
// spacing decisions (Respace) skip points that cross a line boundary,
// since that's Rebreak's concern instead.
func (p Point) HasNewline() bool {
	for _, s := range p.Segments {
		if s.Kind() == token.Newline {
			return true
		}
	}
	return false
}

// Whitespace returns the point's whitespace leaf, if it has exactly one
// and nothing else — the shape Respace can normalize directly. Points
// with comments or multiple whitespace runs are left alone.
func (p Point) Whitespace() (*segment.Segment, bool) {
	if len(p.Segments) != 1 {
		return nil, false
	}
	if p.Segments[0].Kind() != token.Whitespace {
		return nil, false
	}
	return p.Segments[0], true
}

// Empty reports whether the point contains no leaves at all — two code
// leaves directly touching in the source.
func (p Point) Empty() bool {
	return len(p.Segments) == 0
}
