package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
)

func TestRenderFlameBar_NilRootReturnsPlaceholder(t *testing.T) {
	require.Equal(t, "No data to render in flame graph.", RenderFlameBar(nil, 80, ""))
}

func TestRenderFlameBar_EmitsOneLinePerNode(t *testing.T) {
	root := sampleTree()
	out := RenderFlameBar(root, 80, "")
	require.Equal(t, 4, strings.Count(out, "\n")) // all, A, B, C
}

func TestRenderFlameBar_RootLineOmitsPercentage(t *testing.T) {
	root := sampleTree()
	out := RenderFlameBar(root, 80, "")
	firstLine := strings.SplitN(out, "\n", 2)[0]
	require.NotContains(t, firstLine, "%")
}

func TestFlameColorForRatio_HottestBandAtHighRatio(t *testing.T) {
	require.Equal(t, flameColorForRatio(0.5), flameColorForRatio(0.31))
	require.NotEqual(t, flameColorForRatio(0.5), flameColorForRatio(0.001))
}
