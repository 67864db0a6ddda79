package rules

import (
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// Crawler yields the Contexts a rule's Eval is run against, over one parsed
// tree.
type Crawler interface {
	Crawl(root *segment.Segment, d *dialect.Dialect, tables *segment.Tables) []Context
}

// parentStacks walks root pre-order, recording the parent stack for every
// descendant so crawlers don't need to re-derive ancestry per match via
// repeated PathTo calls (segment.PathTo already gives the single-descendant
// version; this precomputes it for every node in one pass). siblingIndex
// derives the sibling index from the recorded parent.
func parentStacks(root *segment.Segment) map[*segment.Segment][]*segment.Segment {
	out := map[*segment.Segment][]*segment.Segment{root: nil}
	var walk func(n *segment.Segment, stack []*segment.Segment)
	walk = func(n *segment.Segment, stack []*segment.Segment) {
		for _, c := range n.Children() {
			out[c] = stack
			childStack := append(append([]*segment.Segment{}, stack...), n)
			walk(c, childStack)
		}
	}
	walk(root, nil)
	return out
}

func siblingIndex(parents map[*segment.Segment][]*segment.Segment, n *segment.Segment) int {
	parentStack := parents[n]
	if len(parentStack) == 0 {
		return 0
	}
	parent := parentStack[len(parentStack)-1]
	for i, c := range parent.Children() {
		if c == n {
			return i
		}
	}
	return 0
}

// RootOnlyCrawler visits exactly the root segment once.
type RootOnlyCrawler struct{}

func (RootOnlyCrawler) Crawl(root *segment.Segment, d *dialect.Dialect, tables *segment.Tables) []Context {
	return []Context{{Segment: root, Dialect: d, Tables: tables}}
}

// SegmentSeekerCrawler does a pre-order traversal yielding a Context for
// every segment whose kind is in Kinds; DisallowRecurse prunes descent
// once a match is emitted, so a matched subtree's interior isn't also
// visited.
type SegmentSeekerCrawler struct {
	Kinds           token.KindSet
	DisallowRecurse bool
}

func (c SegmentSeekerCrawler) Crawl(root *segment.Segment, d *dialect.Dialect, tables *segment.Tables) []Context {
	parents := parentStacks(root)
	matched := root.RecursiveCrawl(segment.CrawlOptions{
		Kinds:     c.Kinds,
		AllowSelf: true,
		AllowRecurseInto: func(n *segment.Segment) bool {
			if c.DisallowRecurse && n != root && c.Kinds.Has(n.Kind()) {
				return false
			}
			return true
		},
	})
	out := make([]Context, 0, len(matched))
	for _, m := range matched {
		out = append(out, Context{
			Segment:    m,
			Parents:    parents[m],
			SiblingIdx: siblingIndex(parents, m),
			Dialect:    d,
			Tables:     tables,
		})
	}
	return out
}

// TokenSeekerCrawler yields a Context per raw leaf segment.
type TokenSeekerCrawler struct{}

func (TokenSeekerCrawler) Crawl(root *segment.Segment, d *dialect.Dialect, tables *segment.Tables) []Context {
	parents := parentStacks(root)
	leaves := root.Leaves()
	out := make([]Context, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, Context{
			Segment:    l,
			Parents:    parents[l],
			SiblingIdx: siblingIndex(parents, l),
			Dialect:    d,
			Tables:     tables,
		})
	}
	return out
}
