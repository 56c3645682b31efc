package calltree

import "strings"

// FilterFunc decides whether a node's frame should be hidden from an
// "application code only" view. It receives the frame's filename, kept
// parameterized rather than hard-coded to one ecosystem's path
// conventions. A nil FilterFunc disables filtering.
type FilterFunc func(fileName string) bool

// DefaultGoFilter hides Go's own runtime/stdlib frames and vendored
// dependencies.
func DefaultGoFilter(modulePath string) FilterFunc {
	return func(fileName string) bool {
		if fileName == "" {
			return false
		}
		if containsAny(fileName, "/vendor/", "/go/pkg/mod/") {
			return true
		}
		if modulePath != "" && strings.Contains(fileName, modulePath) {
			return false
		}
		return isLikelyGoRootPath(fileName)
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func isLikelyGoRootPath(fileName string) bool {
	return containsAny(fileName, "/usr/local/go/src/", "/go/src/runtime/")
}

// ApplyFilter removes nodes whose FileName matches filter, reparenting
// their children onto the removed node's parent. The removed node's own
// value needs no special handling: it was already counted in the parent's
// Value. Children are re-sorted and the whole tree is laid out again.
func ApplyFilter(root *Node, filter FilterFunc) *Node {
	if filter == nil {
		return root
	}
	filterChildren(root, filter)
	layoutChildren(root)
	computeSelf(root, root.Value)
	return root
}

func filterChildren(n *Node, filter FilterFunc) {
	var kept []*Node
	for _, c := range n.Children {
		filterChildren(c, filter)
		if filter(c.FileName) {
			// c is hidden: its children reparent onto n in its place.
			for _, gc := range c.Children {
				gc.Parent = n
				gc.Depth = n.Depth + 1
				kept = append(kept, gc)
			}
			continue
		}
		kept = append(kept, c)
	}
	// A reparented child can share a name with one already under n (or with
	// another reparented sibling); siblings with equal names collapse into
	// one node rather than rendering as duplicates.
	n.Children = mergeByName(kept)
	reassignDepths(n)
}

// mergeByName collapses same-named entries in nodes into one node each,
// combining their value/sample counts and recursively merging their
// children the same way.
func mergeByName(nodes []*Node) []*Node {
	merged := make([]*Node, 0, len(nodes))
	index := make(map[string]int, len(nodes))
	for _, n := range nodes {
		if i, ok := index[n.Name]; ok {
			mergeNodeInto(merged[i], n)
			continue
		}
		index[n.Name] = len(merged)
		merged = append(merged, n)
	}
	return merged
}

func mergeNodeInto(dst, src *Node) {
	dst.Value += src.Value
	dst.SampleCount += src.SampleCount
	dst.Children = mergeByName(append(dst.Children, src.Children...))
	for _, c := range dst.Children {
		c.Parent = dst
	}
}

func reassignDepths(n *Node) {
	for _, c := range n.Children {
		c.Depth = n.Depth + 1
		reassignDepths(c)
	}
}
