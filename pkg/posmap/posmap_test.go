package posmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRangeOverlapsAndContains(t *testing.T) {
	a := Range{Start: 0, End: 10}
	b := Range{Start: 5, End: 15}
	c := Range{Start: 20, End: 25}

	require.True(t, a.Overlaps(b))
	require.False(t, a.Overlaps(c))
	require.True(t, a.Contains(Range{Start: 2, End: 8}))
	require.False(t, a.Contains(b))
}

func TestHullMarkersIsConvexHull(t *testing.T) {
	markers := []Marker{
		NewMarker(10, 15),
		NewMarker(20, 25),
		NewMarker(5, 8),
	}
	hull := HullMarkers(markers)
	require.Equal(t, 5, hull.Source.Start)
	require.Equal(t, 25, hull.Source.End)
}

func TestBeforeOrdersByTemplatedStart(t *testing.T) {
	a := NewMarker(100, 110) // source offsets don't matter for ordering
	b := NewMarker(0, 5)
	require.False(t, Before(a, b))
	require.True(t, Before(b, a))
}

func TestPointMarkers(t *testing.T) {
	m := NewMarker(10, 20)
	start := m.StartPointMarker()
	end := m.EndPointMarker()
	require.True(t, start.IsPoint())
	require.True(t, end.IsPoint())
	require.Equal(t, 10, start.Templated.Start)
	require.Equal(t, 20, end.Templated.Start)
}

func TestLineIndex(t *testing.T) {
	src := "select 1\nfrom foo\nwhere x = 1"
	idx := NewLineIndex(src)

	lc := idx.LineCol(0)
	require.Equal(t, LineCol{Line: 1, Col: 1}, lc)

	// 'f' of "from" is at offset 9
	lc = idx.LineCol(9)
	require.Equal(t, LineCol{Line: 2, Col: 1}, lc)

	lc = idx.LineCol(len(src) - 1)
	require.Equal(t, LineCol{Line: 3, Col: len("where x = 1")}, lc)
}
