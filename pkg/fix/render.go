package fix

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/templater"
)

// RenderFixedSource reconstructs the fixed source string for tf by splicing
// each patch's FixedRaw into tf.SourceStr at its SourceRange. Every byte of
// SourceStr outside a patch — including every one of tf.SourceOnlySlices(),
// which no rule fix ever anchors to — passes through untouched, so a
// templating construct's markers and comments survive the fix round-trip
// exactly as the templater originally sliced them.
func RenderFixedSource(tf *templater.TemplatedFile, patches []FixPatch) string {
	if len(patches) == 0 {
		return tf.SourceStr
	}
	sorted := append([]FixPatch{}, patches...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SourceRange.Start < sorted[j].SourceRange.Start
	})

	var b strings.Builder
	cursor := 0
	src := tf.SourceStr
	for _, p := range sorted {
		if p.SourceRange.Start < cursor {
			// Overlapping patches shouldn't occur (AnchorEditInfo.Validate
			// rejects conflicting bundles on one anchor), but the first
			// writer wins rather than corrupting already-written text.
			continue
		}
		b.WriteString(src[cursor:p.SourceRange.Start])
		b.WriteString(p.FixedRaw)
		cursor = p.SourceRange.End
	}
	b.WriteString(src[cursor:])
	return b.String()
}
