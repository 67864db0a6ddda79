package templater

import (
	"testing"

	"github.com/leapstack-labs/sqlfmt/pkg/posmap"
	"github.com/stretchr/testify/require"
)

func TestNewIdentityTemplatedFileRoundTrips(t *testing.T) {
	f := NewIdentityTemplatedFile("select * from foo;")
	require.Equal(t, f.SourceStr, f.TemplatedStr)
	require.Len(t, f.TemplatedSlices, 1)
	require.Equal(t, Literal, f.TemplatedSlices[0].Kind)
	require.Empty(t, f.SourceOnlySlices())
}

func TestSourceOnlySlicesExcludesLiteralAndTemplated(t *testing.T) {
	source := "select 1 {# comment #}{{ col }}"
	templated := "select 1 42"
	hints := []SliceHint{
		{Kind: Literal, Source: posmap.Range{Start: 0, End: 9}, Templated: posmap.Range{Start: 0, End: 9}},
		{Kind: Comment, Source: posmap.Range{Start: 9, End: 22}, Templated: posmap.Range{Start: 9, End: 9}},
		{Kind: Templated, Source: posmap.Range{Start: 22, End: 31}, Templated: posmap.Range{Start: 9, End: 11}},
	}
	f, err := NewTracedTemplatedFile(source, templated, hints)
	require.NoError(t, err)

	only := f.SourceOnlySlices()
	require.Len(t, only, 1)
	require.Equal(t, Comment, only[0].Kind)
	require.Equal(t, "{# comment #}", only[0].Raw)
}

func TestTemplatedToSourceMapsIntoOriginatingRegion(t *testing.T) {
	source := "select {{ col }} from t"
	templated := "select name from t"
	hints := []SliceHint{
		{Kind: Literal, Source: posmap.Range{Start: 0, End: 7}, Templated: posmap.Range{Start: 0, End: 7}},
		{Kind: Templated, Source: posmap.Range{Start: 7, End: 16}, Templated: posmap.Range{Start: 7, End: 11}},
		{Kind: Literal, Source: posmap.Range{Start: 16, End: 23}, Templated: posmap.Range{Start: 11, End: 18}},
	}
	f, err := NewTracedTemplatedFile(source, templated, hints)
	require.NoError(t, err)

	src, ok := f.TemplatedToSource(9)
	require.True(t, ok)
	require.GreaterOrEqual(t, src, 7)
	require.LessOrEqual(t, src, 16)
}

func TestNewTracedTemplatedFileRejectsOutOfBoundsHint(t *testing.T) {
	_, err := NewTracedTemplatedFile("short", "short", []SliceHint{
		{Kind: Literal, Source: posmap.Range{Start: 0, End: 50}, Templated: posmap.Range{Start: 0, End: 5}},
	})
	require.Error(t, err)
}

func TestNewTracedTemplatedFileRejectsEmptyHints(t *testing.T) {
	_, err := NewTracedTemplatedFile("x", "x", nil)
	require.Error(t, err)
}
