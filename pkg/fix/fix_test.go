package fix

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/segment"
	"github.com/leapstack-labs/sqlfmt/pkg/token"
	"github.com/stretchr/testify/require"
)

func TestAnchorEditInfoValidatesSingleFix(t *testing.T) {
	tbl := segment.NewTables()
	anchor := segment.NewLeaf(tbl.NextID(), token.Word, "foo", nil)
	info := NewAnchorEditInfo([]LintFix{NewDelete(anchor)})
	require.True(t, info[anchor.ID()].Validate())
}

func TestAnchorEditInfoAllowsCreateBeforeAndAfterPair(t *testing.T) {
	tbl := segment.NewTables()
	anchor := segment.NewLeaf(tbl.NextID(), token.Word, "foo", nil)
	before := segment.NewLeaf(tbl.NextID(), token.Whitespace, " ", nil)
	after := segment.NewLeaf(tbl.NextID(), token.Whitespace, " ", nil)

	info := NewAnchorEditInfo([]LintFix{
		NewCreateBefore(anchor, before),
		NewCreateAfter(anchor, after),
	})
	require.True(t, info[anchor.ID()].Validate())
}

func TestAnchorEditInfoRejectsConflictingBundle(t *testing.T) {
	tbl := segment.NewTables()
	anchor := segment.NewLeaf(tbl.NextID(), token.Word, "foo", nil)
	replacement := segment.NewLeaf(tbl.NextID(), token.Word, "bar", nil)

	info := NewAnchorEditInfo([]LintFix{
		NewDelete(anchor),
		NewReplace(anchor, replacement),
	})
	require.False(t, info[anchor.ID()].Validate())
}

func TestAnchorEditInfoGroupsByAnchor(t *testing.T) {
	tbl := segment.NewTables()
	a := segment.NewLeaf(tbl.NextID(), token.Word, "a", nil)
	b := segment.NewLeaf(tbl.NextID(), token.Word, "b", nil)

	info := NewAnchorEditInfo([]LintFix{NewDelete(a), NewDelete(b)})
	require.Len(t, info, 2)
	require.True(t, info[a.ID()].Validate())
	require.True(t, info[b.ID()].Validate())
}
