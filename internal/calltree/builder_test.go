package calltree_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
)

// TestBuild_TwoSamplesShareCommonAncestor: stacks [A, B]=3 and [A, C]=1
// fold into root(value=4) -> A(value=4, self=0) -> {B(value=3, self=3),
// C(value=1, self=1)}, widths {A:1.0, B:0.75, C:0.25}, A.x=0, B.x=0, C.x=0.75.
func TestBuild_TwoSamplesShareCommonAncestor(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "B"}, {Name: "A"}}, Value: 3},
		{Frames: []calltree.Frame{{Name: "C"}, {Name: "A"}}, Value: 1},
	})

	require.Equal(t, int64(4), root.Value)
	require.Len(t, root.Children, 1)

	a := root.Children[0]
	require.Equal(t, "A", a.Name)
	require.Equal(t, int64(4), a.Value)
	require.Equal(t, int64(0), a.SelfValue)
	require.Equal(t, 1.0, a.Width)
	require.Equal(t, 0.0, a.X)
	require.Len(t, a.Children, 2)

	b := calltree.FindByName(root, "B")
	require.NotNil(t, b)
	require.Equal(t, int64(3), b.Value)
	require.Equal(t, int64(3), b.SelfValue)
	require.Equal(t, 0.75, b.Width)
	require.Equal(t, 0.0, b.X)

	c := calltree.FindByName(root, "C")
	require.NotNil(t, c)
	require.Equal(t, int64(1), c.Value)
	require.Equal(t, int64(1), c.SelfValue)
	require.Equal(t, 0.25, c.Width)
	require.Equal(t, 0.75, c.X)
}

func TestBuild_SelfValueIsValueMinusChildren(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "leaf"}, {Name: "mid"}, {Name: "top"}}, Value: 10},
		{Frames: []calltree.Frame{{Name: "mid"}, {Name: "top"}}, Value: 2},
	})

	var childSum int64
	top := root.Children[0]
	for _, c := range top.Children {
		childSum += c.Value
	}
	require.Equal(t, top.Value-childSum, top.SelfValue)

	mid := calltree.FindByName(root, "mid")
	require.Equal(t, int64(12), mid.Value)
	require.Equal(t, int64(2), mid.SelfValue)
}

func TestBuild_ChildWidthsSumToParentWidth(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "x"}, {Name: "root"}}, Value: 5},
		{Frames: []calltree.Frame{{Name: "y"}, {Name: "root"}}, Value: 3},
		{Frames: []calltree.Frame{{Name: "z"}, {Name: "root"}}, Value: 2},
	})
	r := root.Children[0]

	var widthSum float64
	for _, c := range r.Children {
		widthSum += c.Width
	}
	require.InDelta(t, r.Width, widthSum, 1e-9)
}

func TestBuild_ChildrenSortedDescendingByValue(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "small"}, {Name: "root"}}, Value: 1},
		{Frames: []calltree.Frame{{Name: "big"}, {Name: "root"}}, Value: 9},
		{Frames: []calltree.Frame{{Name: "mid"}, {Name: "root"}}, Value: 4},
	})
	r := root.Children[0]
	require.Equal(t, "big", r.Children[0].Name)
	require.Equal(t, "mid", r.Children[1].Name)
	require.Equal(t, "small", r.Children[2].Name)
}

func TestBuild_EmptyFrameSampleIsDiscarded(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: nil, Value: 100},
		{Frames: []calltree.Frame{{Name: "only"}}, Value: 1},
	})
	require.Equal(t, int64(1), root.Value)
	require.Len(t, root.Children, 1)
}

// The synthetic root always occupies the full normalized width at depth 0.
func TestBuild_RootDepthAndWidthAreFixed(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "a"}}, Value: 1},
	})
	require.Equal(t, 0, root.Depth)
	require.Equal(t, 0.0, root.X)
	require.Equal(t, 1.0, root.Width)
	require.Equal(t, 1, root.Children[0].Depth)
}

// An all-zero tree never divides by zero when computing widths.
func TestBuild_NoSamplesYieldsEmptyRoot(t *testing.T) {
	root := calltree.Build(nil)
	require.Equal(t, int64(0), root.Value)
	require.Empty(t, root.Children)
	require.Equal(t, 0.0, root.SelfWidth)
}

func TestApplyFilter_CollapsesFilteredFrameAndReparentsChildren(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{
			Frames: []calltree.Frame{
				{Name: "Y"}, {Name: "X"}, {Name: "N", FileName: "/vendor/lib/n.go"}, {Name: "top"},
			},
			Value: 6,
		},
	})

	filtered := calltree.ApplyFilter(root, calltree.DefaultGoFilter(""))

	top := filtered.Children[0]
	require.Equal(t, "top", top.Name)
	require.Equal(t, int64(6), top.Value)

	require.Nil(t, calltree.FindByName(filtered, "N"))

	x := top.Children[0]
	require.Equal(t, "X", x.Name)
	require.Equal(t, top.Depth+1, x.Depth)
}

func TestApplyFilter_NilFilterIsNoOp(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		{Frames: []calltree.Frame{{Name: "a"}}, Value: 1},
	})
	require.Same(t, root, calltree.ApplyFilter(root, nil))
}

// A reparented grandchild whose name matches an existing, kept child of the
// same parent must collapse into it instead of appearing as a duplicate
// sibling.
func TestApplyFilter_ReparentedChildMergesWithSameNamedSibling(t *testing.T) {
	root := calltree.Build([]calltree.Sample{
		// top -> helper (kept) -> leaf1
		{Frames: []calltree.Frame{{Name: "leaf1"}, {Name: "helper"}, {Name: "top"}}, Value: 5},
		// top -> hidden (filtered) -> helper (kept) -> leaf2
		{Frames: []calltree.Frame{{Name: "leaf2"}, {Name: "helper"}, {Name: "hidden", FileName: "/vendor/lib/h.go"}, {Name: "top"}}, Value: 3},
	})

	filtered := calltree.ApplyFilter(root, calltree.DefaultGoFilter(""))

	top := filtered.Children[0]
	require.Equal(t, "top", top.Name)
	require.Len(t, top.Children, 1, "the two 'helper' siblings must collapse into one node")

	helper := top.Children[0]
	require.Equal(t, "helper", helper.Name)
	require.Equal(t, int64(8), helper.Value)
	require.Len(t, helper.Children, 2)

	names := map[string]bool{}
	for _, c := range helper.Children {
		names[c.Name] = true
		require.Same(t, helper, c.Parent)
	}
	require.True(t, names["leaf1"])
	require.True(t, names["leaf2"])
}
