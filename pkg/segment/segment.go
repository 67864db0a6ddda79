// Package segment implements the lossless CST node model: leaves carry raw
// source characters directly, composites derive their raw projection lazily
// from children, and every segment carries a syntax kind, an optional
// position marker, and a stable identity used to anchor fixes.
package segment

import (
	"strings"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// ID is a segment's stable identity, used to anchor LintFixes. Identity is
// stable across clone-for-copy; a new id is allocated only when a segment
// is explicitly deep-copied for mutation.
type ID int64

// Segment is the universal CST node: a leaf (raw characters, no children)
// or a composite (ordered children, raw derived lazily).
type Segment struct {
	id     ID
	kind   token.SyntaxKind
	marker *posmap.Marker // nil for synthesised nodes with no known position

	// leaf-only
	raw    string
	isLeaf bool

	// composite-only
	children []*Segment

	// meta segments (Indent/Dedent/ImplicitIndent/EndOfFile) are zero-width
	// structural markers, never emitted to source.
	isMeta bool

	rawCache string
	rawValid bool
}

// NewLeaf constructs a leaf segment. marker may be nil for synthesised
// leaves (e.g. fix-inserted keywords not yet positioned).
func NewLeaf(id ID, kind token.SyntaxKind, raw string, marker *posmap.Marker) *Segment {
	return &Segment{id: id, kind: kind, raw: raw, isLeaf: true, marker: marker}
}

// NewMeta constructs a zero-width meta marker segment.
func NewMeta(id ID, kind token.SyntaxKind, marker *posmap.Marker) *Segment {
	return &Segment{id: id, kind: kind, isLeaf: true, isMeta: true, marker: marker}
}

// NewComposite constructs a composite segment wrapping children. Its
// position marker is the convex hull of its children's markers; a composite with no positioned children has a nil marker.
func NewComposite(id ID, kind token.SyntaxKind, children []*Segment) *Segment {
	s := &Segment{id: id, kind: kind, children: children}
	s.marker = hullOfChildren(children)
	return s
}

func hullOfChildren(children []*Segment) *posmap.Marker {
	var markers []posmap.Marker
	for _, c := range children {
		if c.marker != nil {
			markers = append(markers, *c.marker)
		}
	}
	if len(markers) == 0 {
		return nil
	}
	hull := posmap.HullMarkers(markers)
	return &hull
}

// ID returns the segment's stable identity.
func (s *Segment) ID() ID { return s.id }

// Kind returns the segment's syntax kind.
func (s *Segment) Kind() token.SyntaxKind { return s.kind }

// Marker returns the segment's position marker, or nil if unpositioned.
func (s *Segment) Marker() *posmap.Marker { return s.marker }

// IsLeaf reports whether the segment is a leaf (no children).
func (s *Segment) IsLeaf() bool { return s.isLeaf }

// Children returns the segment's children, or nil for a leaf.
func (s *Segment) Children() []*Segment { return s.children }

// Raw returns the segment's raw source text: the literal string for a leaf,
// or the lazily-cached concatenation of children's Raw for a composite.
func (s *Segment) Raw() string {
	if s.isLeaf {
		return s.raw
	}
	if s.rawValid {
		return s.rawCache
	}
	var b strings.Builder
	for _, c := range s.children {
		b.WriteString(c.Raw())
	}
	s.rawCache = b.String()
	s.rawValid = true
	return s.rawCache
}

// IsCode reports whether the segment is non-whitespace, non-comment,
// non-meta content.
func (s *Segment) IsCode() bool {
	if s.isMeta {
		return false
	}
	switch s.kind {
	case token.Whitespace, token.Newline, token.InlineComment, token.BlockComment:
		return false
	}
	return true
}

// IsWhitespace reports whether the segment is whitespace or a newline.
func (s *Segment) IsWhitespace() bool {
	return s.kind == token.Whitespace || s.kind == token.Newline
}

// IsComment reports whether the segment is an inline or block comment.
func (s *Segment) IsComment() bool {
	return s.kind == token.InlineComment || s.kind == token.BlockComment
}

// IsMeta reports whether the segment is a zero-width structural marker.
func (s *Segment) IsMeta() bool { return s.isMeta }

// IsType reports whether the segment's kind equals k.
func (s *Segment) IsType(k token.SyntaxKind) bool { return s.kind == k }

// IsTypeIn reports whether the segment's kind is in set.
func (s *Segment) IsTypeIn(set token.KindSet) bool { return set.Has(s.kind) }

// Edit produces a modified clone of a leaf with new raw text and/or kind;
// the clone gets no new identity assigned here — the caller (the fix
// applier, via Tables) mints a fresh ID, since editing always happens
// through tree rewrite rather than in place.
func (s *Segment) Edit(newID ID, newRaw string, newKind token.SyntaxKind) *Segment {
	return &Segment{id: newID, kind: newKind, raw: newRaw, isLeaf: true, marker: s.marker}
}

// WithChildren returns a new composite segment with the same kind and
// identity-irrelevant fields but a replaced child list and a freshly
// computed position hull. Used by the fix applier to rebuild a node whose
// children changed while preserving the node's own identity when nothing
// about *this* node besides its children changed.
func (s *Segment) WithChildren(children []*Segment) *Segment {
	return &Segment{id: s.id, kind: s.kind, children: children, marker: hullOfChildren(children)}
}

// DirectDescendantTypeSet returns the set of immediate children's kinds,
// used by rules as a cheap pre-filter.
func (s *Segment) DirectDescendantTypeSet() token.KindSet {
	set := make(token.KindSet, len(s.children))
	for _, c := range s.children {
		set[c.kind] = struct{}{}
	}
	return set
}
