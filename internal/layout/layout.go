// Package layout flattens the call tree built by
// internal/calltree into an ordered sequence of frame records the renderer
// can iterate without walking pointers, plus the depth/height bookkeeping
// the renderer needs to map tree-relative positions into device pixels.
package layout

import "github.com/Oloruntobi1/flamescope/internal/calltree"

// FrameRecord is one renderable frame: a flattened view of a calltree.Node
// carrying the fields the rendering and interaction packages touch on every
// frame without re-deriving them from the tree each time.
type FrameRecord struct {
	Node *calltree.Node

	ID         string
	Name       string
	Depth      int
	X, Width   float64
	SelfWidth  float64
	Value      int64
	SelfValue  int64
	FileName   string
	LineNumber int64
}

// GenerateFrames produces a pre-order traversal of root, one FrameRecord
// per node: a flat sequence in place of a recursive tree walk, so the
// renderer can iterate linearly. Frame height only matters at draw time,
// so it plays no part here and is applied later by internal/render.
func GenerateFrames(root *calltree.Node) []FrameRecord {
	var frames []FrameRecord
	var walk func(n *calltree.Node)
	walk = func(n *calltree.Node) {
		frames = append(frames, FrameRecord{
			Node:       n,
			ID:         n.ID,
			Name:       n.Name,
			Depth:      n.Depth,
			X:          n.X,
			Width:      n.Width,
			SelfWidth:  n.SelfWidth,
			Value:      n.Value,
			SelfValue:  n.SelfValue,
			FileName:   n.FileName,
			LineNumber: n.LineNumber,
		})
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root)
	return frames
}

// MaxDepth returns the highest Depth present among frames, or 0 if frames
// is empty.
func MaxDepth(frames []FrameRecord) int {
	max := 0
	for _, f := range frames {
		if f.Depth > max {
			max = f.Depth
		}
	}
	return max
}

// FrameHeight is frame_height = font_size + 2*frame_padding.
func FrameHeight(fontSize, framePadding float64) float64 {
	return fontSize + 2*framePadding
}

// GraphHeight is (max_depth + 1) * frame_height.
func GraphHeight(maxDepth int, frameHeight float64) float64 {
	return float64(maxDepth+1) * frameHeight
}
