package model

import "sort"

// treeNode is one node of a fitted regression tree, stored in a flat slice so
// the whole tree is gob-friendly. Left/Right of -1 marks a leaf.
type treeNode struct {
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

type regressionTree struct {
	Nodes []treeNode
}

// fitTree grows a depth-limited regression tree on a single feature by exact
// greedy variance-reduction splits. With no subsampling the fit is fully
// deterministic.
func fitTree(x, y []float64, maxDepth int) regressionTree {
	order := make([]int, len(x))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return x[order[a]] < x[order[b]] })

	xs := make([]float64, len(x))
	ys := make([]float64, len(y))
	for i, idx := range order {
		xs[i] = x[idx]
		ys[i] = y[idx]
	}

	t := &regressionTree{}
	t.grow(xs, ys, maxDepth)
	return *t
}

// grow builds the subtree over xs[ys] (sorted by xs) and returns its node
// index.
func (t *regressionTree) grow(xs, ys []float64, depth int) int {
	mean := meanOf(ys)
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, treeNode{Left: -1, Right: -1, Value: mean})

	if depth == 0 || len(ys) < 2 {
		return idx
	}

	split, threshold, ok := bestSplit(xs, ys)
	if !ok {
		return idx
	}

	left := t.grow(xs[:split], ys[:split], depth-1)
	right := t.grow(xs[split:], ys[split:], depth-1)
	t.Nodes[idx].Threshold = threshold
	t.Nodes[idx].Left = left
	t.Nodes[idx].Right = right
	return idx
}

// bestSplit finds the boundary maximizing squared-error reduction over a
// sorted feature. Returns the split position (first index of the right
// partition) and the midpoint threshold.
func bestSplit(xs, ys []float64) (int, float64, bool) {
	n := len(ys)

	var total, totalSq float64
	for _, v := range ys {
		total += v
		totalSq += v * v
	}

	bestGain := 0.0
	bestPos := -1

	var leftSum float64
	for i := 1; i < n; i++ {
		leftSum += ys[i-1]
		if xs[i] == xs[i-1] {
			continue
		}
		rightSum := total - leftSum
		// SSE reduction reduces to the weighted gap between partition means.
		gain := leftSum*leftSum/float64(i) + rightSum*rightSum/float64(n-i) - total*total/float64(n)
		if gain > bestGain {
			bestGain = gain
			bestPos = i
		}
	}

	if bestPos < 0 {
		return 0, 0, false
	}
	return bestPos, (xs[bestPos-1] + xs[bestPos]) / 2, true
}

func (t regressionTree) predict(x float64) float64 {
	i := 0
	for t.Nodes[i].Left >= 0 {
		if x <= t.Nodes[i].Threshold {
			i = t.Nodes[i].Left
		} else {
			i = t.Nodes[i].Right
		}
	}
	return t.Nodes[i].Value
}

func meanOf(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
