package calltree

import "sort"

// Frame is one resolved stack frame, root of a Sample's Frames slice is not
// assumed — callers hand frames in leaf-to-root order (as pprof samples
// store them); Build reverses each Sample internally before folding.
type Frame struct {
	Name       string
	FileName   string
	LineNumber int64
}

// Sample is one fold input: a leaf-to-root stack plus its value in the
// metric the caller selected via classify.Metadata.
type Sample struct {
	Frames []Frame
	Value  int64
}

const rootName = "all"

// Build folds samples into a weighted tree rooted at a synthetic "all"
// node, computes self-value/self-count, sorts children by descending
// value, and assigns normalized x/width. A Sample with no frames is
// discarded.
func Build(samples []Sample) *Node {
	root := &Node{ID: "root", Name: rootName, Depth: 0}

	for _, s := range samples {
		if len(s.Frames) == 0 {
			continue
		}
		current := root
		current.Value += s.Value
		current.SampleCount++

		// Stacks are stored leaf-to-root; the tree is built root-to-leaf.
		for i := len(s.Frames) - 1; i >= 0; i-- {
			f := s.Frames[i]
			child := findChild(current, f.Name)
			if child == nil {
				child = &Node{
					ID:         current.ID + "/" + f.Name,
					Name:       f.Name,
					Depth:      current.Depth + 1,
					Parent:     current,
					FileName:   f.FileName,
					LineNumber: f.LineNumber,
				}
				current.Children = append(current.Children, child)
			}
			child.Value += s.Value
			child.SampleCount++
			current = child
		}
	}

	finalize(root)
	return root
}

func findChild(parent *Node, name string) *Node {
	for _, c := range parent.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// finalize sorts children by descending value, assigns normalized x/width,
// and computes self-value/self-count bottom-up.
func finalize(root *Node) {
	root.X = 0
	root.Width = 1
	layoutChildren(root)
	computeSelf(root, root.Value)
}

func layoutChildren(n *Node) {
	sort.SliceStable(n.Children, func(i, j int) bool {
		return n.Children[i].Value > n.Children[j].Value
	})

	if n.Value <= 0 || len(n.Children) == 0 {
		return
	}
	offset := n.X
	for _, c := range n.Children {
		c.Width = float64(c.Value) / float64(n.Value) * n.Width
		c.X = offset
		offset += c.Width
		layoutChildren(c)
	}
}

func computeSelf(n *Node, rootValue int64) {
	var childSum, childSampleSum int64
	for _, c := range n.Children {
		computeSelf(c, rootValue)
		childSum += c.Value
		childSampleSum += c.SampleCount
	}

	self := n.Value - childSum
	if self < 0 {
		self = 0
	}
	n.SelfValue = self

	selfCount := n.SampleCount - childSampleSum
	if selfCount < 0 {
		selfCount = 0
	}
	n.SelfSampleCount = selfCount

	if rootValue > 0 {
		n.SelfWidth = float64(n.SelfValue) / float64(rootValue)
	}
}
