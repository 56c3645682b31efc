package hottest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
	"github.com/Oloruntobi1/flamescope/internal/hottest"
)

func buildTree() *calltree.Node {
	return calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "B"}, {Name: "A"}}, Value: 3},
		{Frames: []calltree.Frame{{Name: "C"}, {Name: "A"}}, Value: 1},
	})
}

func TestBuild_OrderedBySelfValueThenValueDescending(t *testing.T) {
	entries := hottest.Build(buildTree())
	require.Len(t, entries, 3) // A, B, C (root excluded)

	require.Equal(t, "B", entries[0].Node.Name) // self_value 3
	require.Equal(t, "C", entries[1].Node.Name) // self_value 1
	require.Equal(t, "A", entries[2].Node.Name) // self_value 0
}

func TestBuild_WidthsSumToOne(t *testing.T) {
	entries := hottest.Build(buildTree())
	var sum float64
	for _, e := range entries {
		sum += e.Width
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestBuild_ExcludesRoot(t *testing.T) {
	root := buildTree()
	entries := hottest.Build(root)
	for _, e := range entries {
		require.NotEqual(t, root, e.Node)
	}
}

func TestBuild_AllZeroSelfStillCoversWholeIndex(t *testing.T) {
	// Degenerate case: every non-root node has self_value == 0 (a profile
	// of pure passthrough frames above one real leaf that itself vanished
	// in filtering). Total width must still equal 1 even though the usual
	// zero-share cap of 0.2 would otherwise leave it short.
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "mid"}, {Name: "top"}}, Value: 0},
	})
	entries := hottest.Build(root)
	var sum float64
	for _, e := range entries {
		sum += e.Width
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestHitTest_StripClickMatchesArrowNavigationAtSameIndex(t *testing.T) {
	entries := hottest.Build(buildTree())
	cursor := hottest.NewCursor(entries)

	second, ok := cursor.Next()
	require.True(t, ok)

	clicked, ok := hottest.HitTest(entries, entries[1].X+entries[1].Width/2)
	require.True(t, ok)
	require.Equal(t, second.Node.ID, clicked.Node.ID)
}

func TestHitTest_OutOfRangeFallsBackToLastEntry(t *testing.T) {
	entries := hottest.Build(buildTree())
	e, ok := hottest.HitTest(entries, 1.5)
	require.True(t, ok)
	require.Equal(t, entries[len(entries)-1].Node.ID, e.Node.ID)
}

func TestCursor_FirstPrevNextLast(t *testing.T) {
	entries := hottest.Build(buildTree())
	cursor := hottest.NewCursor(entries)

	first, _ := cursor.First()
	require.Equal(t, entries[0].Node.ID, first.Node.ID)

	last, _ := cursor.Last()
	require.Equal(t, entries[len(entries)-1].Node.ID, last.Node.ID)

	prev, _ := cursor.Prev()
	require.Equal(t, entries[len(entries)-2].Node.ID, prev.Node.ID)

	next, _ := cursor.Next()
	require.Equal(t, entries[len(entries)-1].Node.ID, next.Node.ID)
}

func TestCursor_SyncToMovesToMatchingNode(t *testing.T) {
	entries := hottest.Build(buildTree())
	cursor := hottest.NewCursor(entries)

	cursor.SyncTo(entries[2].Node.ID)
	cur, _ := cursor.Current()
	require.Equal(t, entries[2].Node.ID, cur.Node.ID)
}
