// Package hottest implements the "where time is actually
// spent" projection over a call tree, sorted by self-value with
// proportional strip widths.
package hottest

import (
	"sort"

	"github.com/Oloruntobi1/flamescope/internal/calltree"
)

// epsilon and maxZeroShare bound how much of the index width is given to
// nodes with zero self-value: each gets a thin epsilon-wide strip, capped
// in aggregate at maxZeroShare so they never crowd out the hot end.
const (
	epsilon      = 0.002
	maxZeroShare = 0.2
)

// Entry is one row of the hottest-frames projection: a node reference plus
// its allocated strip position.
type Entry struct {
	Node      *calltree.Node
	SelfValue int64
	Value     int64
	X, Width  float64
}

// Build sorts every non-root node by (self_value desc, value desc) and
// allocates proportional strip widths over [0, 1]. Ties are broken by
// total value so zero-self nodes still sort stably.
func Build(root *calltree.Node) []Entry {
	var nodes []*calltree.Node
	calltree.Walk(root, func(n *calltree.Node) {
		if n != root {
			nodes = append(nodes, n)
		}
	})

	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].SelfValue != nodes[j].SelfValue {
			return nodes[i].SelfValue > nodes[j].SelfValue
		}
		return nodes[i].Value > nodes[j].Value
	})

	var sumPositiveSelf int64
	var zeroCount int
	for _, n := range nodes {
		if n.SelfValue > 0 {
			sumPositiveSelf += n.SelfValue
		} else {
			zeroCount++
		}
	}

	var zeroShare float64
	switch {
	case sumPositiveSelf == 0 && zeroCount > 0:
		// No node has positive self-value: the zero-self strips must
		// still cover the whole index, or Σwidth < 1.
		zeroShare = 1
	default:
		zeroShare = epsilon * float64(zeroCount)
		if zeroShare > maxZeroShare {
			zeroShare = maxZeroShare
		}
	}
	positiveShare := 1 - zeroShare

	var perZeroWidth float64
	if zeroCount > 0 {
		perZeroWidth = zeroShare / float64(zeroCount)
	}

	entries := make([]Entry, len(nodes))
	var cursor float64
	for i, n := range nodes {
		var width float64
		if n.SelfValue > 0 && sumPositiveSelf > 0 {
			width = float64(n.SelfValue) / float64(sumPositiveSelf) * positiveShare
		} else {
			width = perZeroWidth
		}
		entries[i] = Entry{
			Node:      n,
			SelfValue: n.SelfValue,
			Value:     n.Value,
			X:         cursor,
			Width:     width,
		}
		cursor += width
	}
	return entries
}
