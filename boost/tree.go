package boost

import "math"

// Node is an internal split of a regression tree. Child references are node indices when
// non-negative and ^leaf when negative.
type Node struct {
	Feature     int
	Threshold   float64 // x <= Threshold goes left.
	DefaultLeft bool    // where missing (NaN) values go.
	Left        int
	Right       int
}

// Tree is a regression tree. A tree without nodes is a single leaf.
type Tree struct {
	Nodes  []Node
	Leaves []float64
}

// Predict returns the value of the leaf x falls into.
func (t Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return t.Leaves[0]
	}
	i := 0
	for {
		n := t.Nodes[i]
		v := x[n.Feature]
		var next int
		switch {
		case math.IsNaN(v):
			if n.DefaultLeft {
				next = n.Left
			} else {
				next = n.Right
			}
		case v <= n.Threshold:
			next = n.Left
		default:
			next = n.Right
		}
		if next < 0 {
			return t.Leaves[^next]
		}
		i = next
	}
}
