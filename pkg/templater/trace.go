package templater

import (
	"fmt"
	"sort"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
)

// SliceHint is one pre-computed source/templated boundary pair: an
// external templater renders the template twice, once normally and once
// with every dynamic node replaced by a unique marker, then diffs the two
// renderings to recover where each source region landed in the real
// templated output. That diffing algorithm lives in the external
// templater, not here — this package only consumes its result.
type SliceHint struct {
	Kind      SliceKind
	Source    posmap.Range
	Templated posmap.Range
}

// NewTracedTemplatedFile builds a TemplatedFile from pre-computed slice
// boundaries, sourced from
// an external templater's tracer-style diffing pass rather than parsed here.
// Hints need not arrive in order; they're sorted by templated start before
// being stored so TemplatedToSource's linear scan sees monotonic ranges for
// any caller that didn't reorder or duplicate source regions.
func NewTracedTemplatedFile(source, templated string, hints []SliceHint) (*TemplatedFile, error) {
	if len(hints) == 0 {
		return nil, fmt.Errorf("templater: NewTracedTemplatedFile requires at least one slice hint")
	}

	sorted := append([]SliceHint{}, hints...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Templated.Start < sorted[j].Templated.Start
	})

	f := &TemplatedFile{SourceStr: source, TemplatedStr: templated}
	for _, h := range sorted {
		if h.Source.Start < 0 || h.Source.End > len(source) || h.Source.Start > h.Source.End {
			return nil, fmt.Errorf("templater: slice hint source range %v out of bounds for source of length %d", h.Source, len(source))
		}
		if h.Templated.Start < 0 || h.Templated.End > len(templated) || h.Templated.Start > h.Templated.End {
			return nil, fmt.Errorf("templater: slice hint templated range %v out of bounds for templated string of length %d", h.Templated, len(templated))
		}
		f.RawSliced = append(f.RawSliced, RawFileSlice{
			Kind:   h.Kind,
			Raw:    source[h.Source.Start:h.Source.End],
			Source: h.Source,
		})
		f.TemplatedSlices = append(f.TemplatedSlices, TemplatedSlice{
			Kind:      h.Kind,
			Source:    h.Source,
			Templated: h.Templated,
		})
	}
	return f, nil
}
