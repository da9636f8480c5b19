package model

import (
	"errors"
	"fmt"
)

// leaf marks a node without children, as in the fitted tree arrays.
const leaf = -1

type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

func (n Node) IsLeaf() bool {
	return n.Left == leaf
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Forest averages the normalized leaf distributions of its trees.
type Forest struct {
	Classes []float64 `json:"classes"`
	Trees   []Tree    `json:"trees"`
}

func (f *Forest) validate(width int) error {
	if len(f.Classes) < 2 {
		return errors.New("forest: need at least two classes")
	}
	if len(f.Trees) == 0 {
		return errors.New("forest: no trees")
	}
	for ti, t := range f.Trees {
		if len(t.Nodes) == 0 {
			return fmt.Errorf("tree %d: no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.IsLeaf() {
				if n.Right != leaf {
					return fmt.Errorf("tree %d node %d: leaf with right child", ti, ni)
				}
				if len(n.Value) != len(f.Classes) {
					return fmt.Errorf("tree %d node %d: value has %d entries, want %d", ti, ni, len(n.Value), len(f.Classes))
				}
				continue
			}
			if n.Feature < 0 || n.Feature >= width {
				return fmt.Errorf("tree %d node %d: feature %d out of range [0,%d)", ti, ni, n.Feature, width)
			}
			if n.Left <= ni || n.Left >= len(t.Nodes) || n.Right <= ni || n.Right >= len(t.Nodes) {
				return fmt.Errorf("tree %d node %d: child index out of range", ti, ni)
			}
		}
	}
	return nil
}

func (t Tree) distribution(x []float64) ([]float64, error) {
	i := 0
	// children always sit after their parent, so the walk is bounded
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[i]
		if n.IsLeaf() {
			var sum float64
			for _, v := range n.Value {
				sum += v
			}
			if sum <= 0 {
				return nil, errors.New("empty leaf distribution")
			}
			out := make([]float64, len(n.Value))
			for k, v := range n.Value {
				out[k] = v / sum
			}
			return out, nil
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return nil, errors.New("tree walk did not reach a leaf")
}

func (f *Forest) Proba(x []float64) ([]float64, error) {
	out := make([]float64, len(f.Classes))
	for ti, t := range f.Trees {
		d, err := t.distribution(x)
		if err != nil {
			return nil, fmt.Errorf("tree %d: %w", ti, err)
		}
		for k := range out {
			out[k] += d[k]
		}
	}
	n := float64(len(f.Trees))
	for k := range out {
		out[k] /= n
	}
	return out, nil
}

func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}
