package fix

import (
	"sort"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
)

// Patch categories, carried on FixPatch.Category.
const (
	CategoryEdit   = "edit"
	CategoryCreate = "create"
	CategoryDelete = "delete"
)

// LowerPatches converts every validated anchor bundle in usable into the
// FixPatch values that describe its net textual effect, anchored in both
// templated and source space via each anchor's own marker. Callers pass the
// same usable map TreeApplier.Apply rewrote the tree from, so a patch's
// range always refers to the anchor's position before this bundle's edit.
func LowerPatches(usable map[segment.ID]*AnchorEditInfo) []FixPatch {
	var out []FixPatch
	for _, info := range usable {
		out = append(out, lowerBundle(info)...)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TemplatedRange.Start < out[j].TemplatedRange.Start
	})
	return out
}

func lowerBundle(info *AnchorEditInfo) []FixPatch {
	if len(info.Fixes) == 0 {
		return nil
	}
	anchor := info.Fixes[0].Anchor
	m := anchor.Marker()
	if m == nil {
		return nil
	}

	if len(info.Fixes) == 2 {
		var before, after LintFix
		for _, f := range info.Fixes {
			if f.EditType == CreateBefore {
				before = f
			} else {
				after = f
			}
		}
		return []FixPatch{
			insertionPatch(m.Templated.Start, m.Source.Start, before.Edit),
			insertionPatch(m.Templated.End, m.Source.End, after.Edit),
		}
	}

	f := info.Fixes[0]
	switch f.EditType {
	case CreateBefore:
		return []FixPatch{insertionPatch(m.Templated.Start, m.Source.Start, f.Edit)}
	case CreateAfter:
		return []FixPatch{insertionPatch(m.Templated.End, m.Source.End, f.Edit)}
	case Replace:
		return []FixPatch{{
			TemplatedRange: m.Templated,
			SourceRange:    m.Source,
			FixedRaw:       rawOf(f.Edit),
			OriginalRaw:    anchor.Raw(),
			Category:       CategoryEdit,
		}}
	case Delete:
		return []FixPatch{{
			TemplatedRange: m.Templated,
			SourceRange:    m.Source,
			FixedRaw:       "",
			OriginalRaw:    anchor.Raw(),
			Category:       CategoryDelete,
		}}
	default:
		return nil
	}
}

func insertionPatch(templatedAt, sourceAt int, segs []*segment.Segment) FixPatch {
	return FixPatch{
		TemplatedRange: posmap.Range{Start: templatedAt, End: templatedAt},
		SourceRange:    posmap.Range{Start: sourceAt, End: sourceAt},
		FixedRaw:       rawOf(segs),
		Category:       CategoryCreate,
	}
}

func rawOf(segs []*segment.Segment) string {
	var out string
	for _, s := range segs {
		out += s.Raw()
	}
	return out
}
