// Package templater implements the TemplatedFile contract the core
// consumes, plus the identity mapping for plain SQL. The core never
// interprets templating syntax itself — an actual Jinja/dbt-macro engine
// is an external collaborator, so this package ships only the contract
// plus the two constructors a templater-aware caller needs: identity,
// and the pre-sliced/traced form an external templater hands the linter
// (see NewTracedTemplatedFile).
package templater

import "github.com/leapstack-labs/sqlfmt/pkg/posmap"

// SliceKind tags what a region of templated text is: literal SQL,
// templated output, or one of the templating-construct boundary kinds
// (block start/end/mid, comment).
type SliceKind string

const (
	Literal    SliceKind = "literal"
	Templated  SliceKind = "templated"
	BlockStart SliceKind = "block_start"
	BlockEnd   SliceKind = "block_end"
	BlockMid   SliceKind = "block_mid"
	Comment    SliceKind = "comment"
)

// producesTemplatedOutput reports whether a slice of this kind contributes
// bytes to the templated string. block_start/block_end/block_mid (loop and
// conditional control tokens) and comment slices never do — they're the
// immovable walls a fix applier treats as source-only slices.
func (k SliceKind) producesTemplatedOutput() bool {
	switch k {
	case BlockStart, BlockEnd, BlockMid, Comment:
		return false
	default:
		return true
	}
}

// RawFileSlice is the source-side counterpart of a TemplatedSlice: a region
// of source_str tagged with what kind of templating construct it is.
type RawFileSlice struct {
	Kind   SliceKind
	Raw    string
	Source posmap.Range
}

// TemplatedSlice records that templated_str[Templated] was produced from
// source_str[Source], tagged with its kind.
type TemplatedSlice struct {
	Kind      SliceKind
	Source    posmap.Range
	Templated posmap.Range
}

// TemplatedFile carries the source and templated strings, the slice maps
// between them, and the source-only slices a fix applier must never edit
// through.
type TemplatedFile struct {
	SourceStr    string
	TemplatedStr string

	RawSliced       []RawFileSlice
	TemplatedSlices []TemplatedSlice
}

// NewIdentityTemplatedFile builds the identity mapping used for plain SQL
// with no templating layer: source and templated strings are equal, and a
// single literal slice spans the whole file.
func NewIdentityTemplatedFile(source string) *TemplatedFile {
	whole := posmap.Range{Start: 0, End: len(source)}
	return &TemplatedFile{
		SourceStr:    source,
		TemplatedStr: source,
		RawSliced: []RawFileSlice{
			{Kind: Literal, Raw: source, Source: whole},
		},
		TemplatedSlices: []TemplatedSlice{
			{Kind: Literal, Source: whole, Templated: whole},
		},
	}
}

// SourceOnlySlices returns the source regions that produce no templated
// output — comments and block/whitespace-control markers. The fix applier
// treats these as immovable walls when reconstructing fixed source.
func (f *TemplatedFile) SourceOnlySlices() []RawFileSlice {
	var out []RawFileSlice
	for _, s := range f.RawSliced {
		if !s.Kind.producesTemplatedOutput() {
			out = append(out, s)
		}
	}
	return out
}

// TemplatedToSource maps a byte offset in templated_str back to the
// corresponding offset in source_str. Mapping is non-monotonic in general:
// templated output may reorder or duplicate source regions, so
// callers must not assume the result is ordered across calls.
func (f *TemplatedFile) TemplatedToSource(pos int) (int, bool) {
	for _, s := range f.TemplatedSlices {
		if pos < s.Templated.Start || pos > s.Templated.End {
			continue
		}
		if s.Templated.IsPoint() {
			return s.Source.Start, true
		}
		offset := pos - s.Templated.Start
		if offset > s.Source.Len() {
			offset = s.Source.Len()
		}
		return s.Source.Start + offset, true
	}
	return 0, false
}

// SourceToTemplated maps a byte offset in source_str forward to templated
// space. When a source region was rendered more than once (a loop body),
// the first occurrence is returned.
func (f *TemplatedFile) SourceToTemplated(pos int) (int, bool) {
	for _, s := range f.TemplatedSlices {
		if pos < s.Source.Start || pos > s.Source.End {
			continue
		}
		if s.Source.IsPoint() {
			return s.Templated.Start, true
		}
		offset := pos - s.Source.Start
		if offset > s.Templated.Len() {
			offset = s.Templated.Len()
		}
		return s.Templated.Start + offset, true
	}
	return 0, false
}
