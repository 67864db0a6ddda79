// Package fix implements the LintFix taxonomy, anchor-edit reconciliation,
// tree rewrite, and re-parse sanity loop. Rules (pkg/rules) produce LintFix values; this package owns what
// they mean and how they're applied.
package fix

import (
	"fmt"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

// EditType is the taxonomy of structural edits a LintFix can carry.
type EditType int

const (
	CreateBefore EditType = iota
	CreateAfter
	Replace
	Delete
)

func (e EditType) String() string {
	switch e {
	case CreateBefore:
		return "create_before"
	case CreateAfter:
		return "create_after"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("EditType(%d)", int(e))
	}
}

// SourceFix is a textual edit aimed at the pre-template source, used when a
// fix must survive the templater round-trip.
type SourceFix struct {
	Edit           string
	SourceRange    posmap.Range
	TemplatedRange posmap.Range
}

// LintFix is one structural edit anchored to a CST node.
// Edit is nil for Delete; it carries the replacement/inserted segments for
// CreateBefore/CreateAfter/Replace.
type LintFix struct {
	EditType    EditType
	Anchor      *segment.Segment
	Edit        []*segment.Segment
	SourceFixes []SourceFix
}

// NewCreateBefore builds a LintFix that inserts segs immediately before anchor.
func NewCreateBefore(anchor *segment.Segment, segs ...*segment.Segment) LintFix {
	return LintFix{EditType: CreateBefore, Anchor: anchor, Edit: segs}
}

// NewCreateAfter builds a LintFix that inserts segs immediately after anchor.
func NewCreateAfter(anchor *segment.Segment, segs ...*segment.Segment) LintFix {
	return LintFix{EditType: CreateAfter, Anchor: anchor, Edit: segs}
}

// NewReplace builds a LintFix that replaces anchor with segs (possibly empty).
func NewReplace(anchor *segment.Segment, segs ...*segment.Segment) LintFix {
	return LintFix{EditType: Replace, Anchor: anchor, Edit: segs}
}

// NewDelete builds a LintFix that removes anchor entirely.
func NewDelete(anchor *segment.Segment) LintFix {
	return LintFix{EditType: Delete, Anchor: anchor}
}

// FixPatch is the lowered form handed to the final string-assembly stage,
// after a surviving fix has been mapped from templated space back to
// source space via LowerPatches.
type FixPatch struct {
	TemplatedRange posmap.Range
	SourceRange    posmap.Range
	FixedRaw       string
	OriginalRaw    string
	Category       string
}

// LintResult is what a rule's Eval emits per matched context: the anchor
// segment, an optional human description, and the fixes it proposes.
type LintResult struct {
	Anchor      *segment.Segment
	Description string
	Fixes       []LintFix
	SourceFixes []LintFix
}

// AnchorEditInfo aggregates every fix targeting one anchor id, so the
// applier can validate the bundle before rewriting.
type AnchorEditInfo struct {
	AnchorID segment.ID
	Counts   map[EditType]int
	Fixes    []LintFix
}

// NewAnchorEditInfo groups fixes by anchor id.
func NewAnchorEditInfo(fixes []LintFix) map[segment.ID]*AnchorEditInfo {
	out := make(map[segment.ID]*AnchorEditInfo)
	for _, f := range fixes {
		id := f.Anchor.ID()
		info, ok := out[id]
		if !ok {
			info = &AnchorEditInfo{AnchorID: id, Counts: make(map[EditType]int)}
			out[id] = info
		}
		info.Counts[f.EditType]++
		info.Fixes = append(info.Fixes, f)
	}
	return out
}

// Validate reports whether this anchor's fix bundle is a legal
// combination: at most one fix of any type, or exactly two fixes that
// are CreateBefore+CreateAfter. Any other combination is a rule bug, and
// the whole bundle is discarded for that anchor.
func (a *AnchorEditInfo) Validate() bool {
	total := len(a.Fixes)
	if total <= 1 {
		return true
	}
	if total == 2 && a.Counts[CreateBefore] == 1 && a.Counts[CreateAfter] == 1 {
		return true
	}
	return false
}
