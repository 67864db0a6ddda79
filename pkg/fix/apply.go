package fix

import (
	"github.com/leapstack-labs/sqlfmt/pkg/dialect"
	"github.com/leapstack-labs/sqlfmt/pkg/lexer"
	"github.com/leapstack-labs/sqlfmt/pkg/parse"
	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
)

// TreeApplier is the concrete implementation of pkg/rules' Applier
// contract: it reconciles a batch of LintFixes into per-anchor edit
// bundles, rewrites the tree with structural sharing of every untouched
// subtree, accepts the rewrite only if re-lexing and re-parsing its
// rendered text doesn't introduce new Unparsable regions, and lowers the
// accepted bundles into FixPatch values the caller can replay against a
// templated source.
type TreeApplier struct{}

// Apply rewrites tree with fixes, returning the rewritten tree, whether it
// was both applied (something actually changed) and valid (passed the
// re-parse sanity check), and the patches the accepted bundles lower to.
// When valid is false, rewritten and patches must be ignored — the caller
// keeps its previous tree.
func (TreeApplier) Apply(tree *segment.Segment, fixes []LintFix, d *dialect.Dialect, tables *segment.Tables) (rewritten *segment.Segment, applied bool, valid bool, patches []FixPatch) {
	bundles := NewAnchorEditInfo(fixes)
	usable := make(map[segment.ID]*AnchorEditInfo, len(bundles))
	for id, info := range bundles {
		if info.Validate() {
			usable[id] = info
		}
	}
	if len(usable) == 0 {
		return tree, false, true, nil
	}

	newTree, changed := rewriteNode(tree, usable, tables)
	if !changed {
		return tree, false, true, nil
	}
	if !sanityCheck(tree, newTree, d, tables) {
		return tree, false, false, nil
	}
	return newTree, true, true, LowerPatches(usable)
}

// rewriteNode rebuilds n bottom-up, sharing every subtree that contains no
// anchor from bundles.
func rewriteNode(n *segment.Segment, bundles map[segment.ID]*AnchorEditInfo, tables *segment.Tables) (*segment.Segment, bool) {
	if n.IsLeaf() {
		return n, false
	}
	newChildren, changed := rewriteChildren(n.Children(), bundles, tables)
	if !changed {
		return n, false
	}
	return segment.NewComposite(tables.NextID(), n.Kind(), newChildren), true
}

func rewriteChildren(children []*segment.Segment, bundles map[segment.ID]*AnchorEditInfo, tables *segment.Tables) ([]*segment.Segment, bool) {
	var out []*segment.Segment
	changed := false
	for _, c := range children {
		if info, ok := bundles[c.ID()]; ok {
			out = append(out, applyBundle(c, info)...)
			changed = true
			continue
		}
		newChild, childChanged := rewriteNode(c, bundles, tables)
		out = append(out, newChild)
		if childChanged {
			changed = true
		}
	}
	return out, changed
}

// applyBundle expands one anchor's validated fix bundle into the segments
// that replace it in its parent's child list.
func applyBundle(anchor *segment.Segment, info *AnchorEditInfo) []*segment.Segment {
	if len(info.Fixes) == 2 {
		var before, after LintFix
		for _, f := range info.Fixes {
			if f.EditType == CreateBefore {
				before = f
			} else {
				after = f
			}
		}
		out := append([]*segment.Segment{}, before.Edit...)
		out = append(out, anchor)
		out = append(out, after.Edit...)
		return out
	}

	f := info.Fixes[0]
	switch f.EditType {
	case CreateBefore:
		return append(append([]*segment.Segment{}, f.Edit...), anchor)
	case CreateAfter:
		return append([]*segment.Segment{anchor}, f.Edit...)
	case Replace:
		return append([]*segment.Segment{}, f.Edit...)
	case Delete:
		return nil
	default:
		return []*segment.Segment{anchor}
	}
}

// sanityCheck re-lexes and re-parses rewritten's rendered text and rejects
// the rewrite if doing so surfaces more Unparsable regions than the
// original tree had — a rule's fix must never turn valid SQL into garbage.
func sanityCheck(original, rewritten *segment.Segment, d *dialect.Dialect, tables *segment.Tables) bool {
	origUnparsable := len(original.SegmentsOfKind(token.Unparsable))

	leaves := lexer.Lex(rewritten.Raw(), d.LexerMatchers(lexer.DefaultMatchers()))
	toks := make([]*segment.Segment, 0, len(leaves))
	for _, l := range leaves {
		m := posmap.NewMarker(l.Offset, l.Offset+len(l.Raw))
		toks = append(toks, segment.NewLeaf(tables.NextID(), l.Kind, l.Raw, &m))
	}
	reparsed := parse.Parse(toks, d, tables)
	newUnparsable := len(reparsed.SegmentsOfKind(token.Unparsable))
	return newUnparsable <= origUnparsable
}
