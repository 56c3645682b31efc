// Package calltree folds samples into a weighted
// call tree and computing the derived self-value/width metrics the layout
// and rendering stages depend on.
package calltree

// Node is the core entity of the flame graph: one call-tree position,
// folding together every sample whose stack passed through it. Nodes are
// created and positioned during Build (repositioned by ApplyFilter), and
// treated as immutable afterwards; internal/layout only flattens them.
type Node struct {
	ID   string
	Name string

	Value           int64
	SelfValue       int64
	SampleCount     int64
	SelfSampleCount int64

	Children []*Node
	Parent   *Node
	Depth    int

	// X, Width, SelfWidth are normalized to [0,1] relative to the root and
	// are populated by Build's final layout pass.
	X         float64
	Width     float64
	SelfWidth float64

	FileName   string
	LineNumber int64
}

// FindByName walks the tree (pre-order) for the first node whose Name
// matches, used to keep a secondary selection (list, hottest index) in
// sync with the primary tree across a rebuild.
func FindByName(root *Node, name string) *Node {
	if root == nil {
		return nil
	}
	if root.Name == name {
		return root
	}
	for _, c := range root.Children {
		if found := FindByName(c, name); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits every node in the tree, root first, pre-order.
func Walk(root *Node, visit func(*Node)) {
	if root == nil {
		return
	}
	visit(root)
	for _, c := range root.Children {
		Walk(c, visit)
	}
}
