package segment

import "github.com/leapstack-labs/sqlfmt/pkg/token"

// PathStep records one step of a downward path: the parent segment and the
// index of the child taken at that step.
type PathStep struct {
	Parent *Segment
	Index  int
}

// CrawlOptions configures RecursiveCrawl.
type CrawlOptions struct {
	// Kinds restricts results to these kinds; empty means "all kinds".
	Kinds token.KindSet
	// StopAtKinds prunes descent once a non-root segment of one of these
	// kinds is reached (it is still yielded if it also matches Kinds).
	StopAtKinds token.KindSet
	// AllowRecurseInto, if non-nil, is consulted before descending into a
	// segment's children; returning false prunes that subtree entirely.
	AllowRecurseInto func(*Segment) bool
	// AllowSelf includes the root segment itself in the walk; the zero value
	// leaves the root out.
	AllowSelf bool
}

// RecursiveCrawl performs a pre-order descent of s, yielding segments
// matching opts.Kinds (or every segment, if Kinds is empty), pruned at
// opts.StopAtKinds and opts.AllowRecurseInto.
func (s *Segment) RecursiveCrawl(opts CrawlOptions) []*Segment {
	var out []*Segment
	var walk func(n *Segment, isRoot bool)
	walk = func(n *Segment, isRoot bool) {
		include := !isRoot || opts.AllowSelf
		if include && (len(opts.Kinds) == 0 || opts.Kinds.Has(n.kind)) {
			out = append(out, n)
		}
		if len(opts.StopAtKinds) > 0 && opts.StopAtKinds.Has(n.kind) && !isRoot {
			return
		}
		if opts.AllowRecurseInto != nil && !opts.AllowRecurseInto(n) {
			return
		}
		for _, c := range n.children {
			walk(c, false)
		}
	}
	walk(s, true)
	return out
}

// PathTo returns the unique downward path from s to descendant, recording
// at each step the parent and the sibling index taken. It
// returns nil if descendant is not found under s.
func (s *Segment) PathTo(descendant *Segment) []PathStep {
	if s == descendant {
		return []PathStep{}
	}
	for i, c := range s.children {
		if c == descendant {
			return []PathStep{{Parent: s, Index: i}}
		}
		if sub := c.PathTo(descendant); sub != nil {
			return append([]PathStep{{Parent: s, Index: i}}, sub...)
		}
	}
	return nil
}

// Child returns the first direct child whose kind is in set.
func (s *Segment) Child(set token.KindSet) (*Segment, bool) {
	for _, c := range s.children {
		if set.Has(c.kind) {
			return c, true
		}
	}
	return nil, false
}

// ChildrenOfKindSet returns all direct children whose kind is in set.
func (s *Segment) ChildrenOfKindSet(set token.KindSet) []*Segment {
	var out []*Segment
	for _, c := range s.children {
		if set.Has(c.kind) {
			out = append(out, c)
		}
	}
	return out
}

// SegmentsOfKind returns every descendant (including s) of the given kind,
// via an unrestricted RecursiveCrawl.
func (s *Segment) SegmentsOfKind(kind token.SyntaxKind) []*Segment {
	return s.RecursiveCrawl(CrawlOptions{Kinds: token.NewKindSet(kind), AllowSelf: true})
}

// Leaves returns every leaf segment under s, in source order.
func (s *Segment) Leaves() []*Segment {
	if s.isLeaf {
		return []*Segment{s}
	}
	var out []*Segment
	for _, c := range s.children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// FindByID searches s (and its descendants) for the segment with the given
// id, used by the fix applier to locate anchors.
func (s *Segment) FindByID(id ID) (*Segment, bool) {
	if s.id == id {
		return s, true
	}
	for _, c := range s.children {
		if found, ok := c.FindByID(id); ok {
			return found, true
		}
	}
	return nil, false
}
