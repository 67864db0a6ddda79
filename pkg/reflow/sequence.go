package reflow

import (
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// elem is either a *Block or a *Point, kept in the alternating order
// they occur in the source: Block, Point, Block, Point, ..., Block.
type elem struct {
	block *Block
	point *Point
}

// ReflowSequence is the alternating block/point chain derived from a
// segment's leaf stream.
type ReflowSequence struct {
	root     *segment.Segment
	tables   *segment.Tables
	elements []elem
	exclude  token.KindSet
}

// FromRoot walks root's leaves and groups them into the alternating
// block/point chain. tables is used to mint ids for any synthesized
// whitespace this sequence's fixes introduce.
func FromRoot(root *segment.Segment, tables *segment.Tables) *ReflowSequence {
	seq := &ReflowSequence{root: root, tables: tables}

	leaves := root.Leaves()
	var pending []*segment.Segment
	flushPoint := func() {
		seq.elements = append(seq.elements, elem{point: &Point{Segments: pending}})
		pending = nil
	}

	sawBlock := false
	for _, l := range leaves {
		if l.IsCode() {
			if sawBlock {
				flushPoint()
			} else if len(pending) > 0 {
				// leading non-code leaves before the first block: drop them
				// from consideration, they're outside any block's spacing.
				pending = nil
			}
			seq.elements = append(seq.elements, elem{block: &Block{Segment: l}})
			sawBlock = true
			continue
		}
		pending = append(pending, l)
	}

	return seq
}

// Without returns a copy of the sequence that skips spacing decisions
// touching blocks of the given kinds — e.g. to leave a rule's own
// domain untouched while still reflowing everything else.
func (s *ReflowSequence) Without(kinds ...token.SyntaxKind) *ReflowSequence {
	cp := *s
	cp.exclude = token.NewKindSet(kinds...)
	return &cp
}

func (s *ReflowSequence) skip(b *Block) bool {
	return len(s.exclude) > 0 && s.exclude.Has(b.Segment.Kind())
}

// blocks returns every Block in order.
func (s *ReflowSequence) blocks() []*Block {
	var out []*Block
	for _, e := range s.elements {
		if e.block != nil {
			out = append(out, e.block)
		}
	}
	return out
}
