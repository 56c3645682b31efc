package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
)

// flameColorForRatio picks a "hotness" color band for a ratio in [0, 1].
// RenderFlameBar passes a node's share of the root's total value; this is
// not the same-depth ratio internal/render's InterpolateByDepthRatio uses
// for the GPU path, so the two front ends can shade a frame differently.
func flameColorForRatio(r float64) lipgloss.Color {
	switch {
	case r >= 0.30:
		return lipgloss.Color("196")
	case r >= 0.15:
		return lipgloss.Color("202")
	case r >= 0.08:
		return lipgloss.Color("208")
	case r >= 0.03:
		return lipgloss.Color("220")
	case r >= 0.01:
		return lipgloss.Color("154")
	default:
		return lipgloss.Color("82")
	}
}

// RenderFlameBar draws an ASCII icicle graph of root into a string termWidth
// columns wide, one line per node, the terminal counterpart of
// internal/render's GPU frame pass collapsed onto text cells instead of
// pixels. selectedID highlights the current selection with a
// reverse-video style.
func RenderFlameBar(root *calltree.Node, termWidth int, selectedID string) string {
	if root == nil || root.Value == 0 {
		return "No data to render in flame graph."
	}
	var b strings.Builder
	renderFlameNode(&b, root, termWidth, root.Value, 0, selectedID)
	return b.String()
}

func renderFlameNode(b *strings.Builder, node *calltree.Node, termWidth int, total int64, offset int, selectedID string) {
	nodeWidth := int(float64(node.Value) / float64(total) * float64(termWidth))
	if nodeWidth <= 0 {
		return
	}
	ratio := float64(node.Value) / float64(total)
	color := flameColorForRatio(ratio)
	style := lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("232"))
	if node.ID == selectedID {
		style = style.Reverse(true)
	}

	label := node.Name
	if node.Depth > 0 {
		label = fmt.Sprintf("%s (%.1f%%)", node.Name, ratio*100)
	}
	if len(label) > nodeWidth {
		if len(node.Name) <= nodeWidth {
			label = node.Name
		} else if nodeWidth > 0 {
			label = label[:nodeWidth]
		} else {
			label = ""
		}
	}

	bar := style.Render(label)
	if pad := nodeWidth - len(label); pad > 0 {
		bar += style.Render(strings.Repeat(" ", pad))
	}

	b.WriteString(strings.Repeat(" ", offset))
	b.WriteString(bar)
	b.WriteString("\n")

	childOffset := offset
	for _, child := range node.Children {
		renderFlameNode(b, child, termWidth, total, childOffset, selectedID)
		childOffset += int(float64(child.Value) / float64(total) * float64(termWidth))
	}
}
