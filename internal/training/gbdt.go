package training

import (
	"math"
	"sort"
)

// The pack carries no Go ML library, so the boosted ensemble is
// implemented here: gradient boosting with logistic loss over weighted
// samples, CART-style regression trees on the residuals, and split-gain
// accumulation for feature importances.

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

type ensembleParams struct {
	trees         int
	maxDepth      int
	learningRate  float64
	minLeafWeight float64
}

// Ensemble is a fitted gradient-boosted tree ensemble emitting raw
// log-odds margins. Margins are calibrated downstream; callers never use
// them as probabilities directly.
type Ensemble struct {
	base         float64
	learningRate float64
	trees        []*treeNode
	gains        []float64
	featureCount int
}

func sigmoid(z float64) float64 {
	// Guard against overflow in exp for extreme margins.
	if z > 36 {
		return 1
	}
	if z < -36 {
		return 0
	}
	return 1.0 / (1.0 + math.Exp(-z))
}

// fitEnsemble fits on rows x with labels y in {0,1} and sample weights w.
func fitEnsemble(x [][]float64, y, w []float64, p ensembleParams) *Ensemble {
	n := len(x)
	featureCount := 0
	if n > 0 {
		featureCount = len(x[0])
	}

	// Base score: weighted prior log-odds.
	posW, totW := 0.0, 0.0
	for i := range y {
		totW += w[i]
		posW += w[i] * y[i]
	}
	prior := posW / totW
	prior = math.Max(1e-6, math.Min(1-1e-6, prior))

	e := &Ensemble{
		base:         math.Log(prior / (1 - prior)),
		learningRate: p.learningRate,
		gains:        make([]float64, featureCount),
		featureCount: featureCount,
	}

	margins := make([]float64, n)
	for i := range margins {
		margins[i] = e.base
	}

	residuals := make([]float64, n)
	hessians := make([]float64, n)
	indices := make([]int, n)

	for m := 0; m < p.trees; m++ {
		for i := range x {
			prob := sigmoid(margins[i])
			residuals[i] = y[i] - prob
			hessians[i] = math.Max(prob*(1-prob), 1e-6)
			indices[i] = i
		}

		root := buildTree(x, residuals, hessians, w, indices, p, e.gains, 0)
		e.trees = append(e.trees, root)

		for i := range x {
			margins[i] += p.learningRate * predictTree(root, x[i])
		}
	}

	return e
}

// buildTree grows a regression tree on the gradient residuals using
// weighted variance reduction as the split criterion. Leaf values take a
// single Newton step on the logistic loss.
func buildTree(x [][]float64, residuals, hessians, w []float64, indices []int, p ensembleParams, gains []float64, depth int) *treeNode {
	if depth >= p.maxDepth || len(indices) < 2 {
		return leafNode(residuals, hessians, w, indices)
	}

	feature, threshold, gain, ok := bestSplit(x, residuals, w, indices, p.minLeafWeight)
	if !ok {
		return leafNode(residuals, hessians, w, indices)
	}
	gains[feature] += gain

	var left, right []int
	for _, i := range indices {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(x, residuals, hessians, w, left, p, gains, depth+1),
		right:     buildTree(x, residuals, hessians, w, right, p, gains, depth+1),
	}
}

func leafNode(residuals, hessians, w []float64, indices []int) *treeNode {
	num, den := 0.0, 0.0
	for _, i := range indices {
		num += w[i] * residuals[i]
		den += w[i] * hessians[i]
	}
	value := 0.0
	if den > 0 {
		value = num / den
	}
	// Bound leaf output so a near-pure leaf cannot blow up the margin.
	value = math.Max(-4, math.Min(4, value))
	return &treeNode{leaf: true, value: value}
}

// bestSplit scans every feature for the threshold with the highest
// weighted variance reduction of the residuals.
func bestSplit(x [][]float64, residuals, w []float64, indices []int, minLeafWeight float64) (feature int, threshold, gain float64, ok bool) {
	totalW, totalSum, totalSq := 0.0, 0.0, 0.0
	for _, i := range indices {
		totalW += w[i]
		totalSum += w[i] * residuals[i]
		totalSq += w[i] * residuals[i] * residuals[i]
	}
	if totalW <= 0 {
		return 0, 0, 0, false
	}
	parentScore := totalSq - totalSum*totalSum/totalW

	type pair struct{ value, residual, weight float64 }
	featureCount := len(x[indices[0]])
	bestGain := 0.0

	pairs := make([]pair, 0, len(indices))
	for f := 0; f < featureCount; f++ {
		pairs = pairs[:0]
		for _, i := range indices {
			pairs = append(pairs, pair{x[i][f], residuals[i], w[i]})
		}
		sort.Slice(pairs, func(a, b int) bool { return pairs[a].value < pairs[b].value })

		leftW, leftSum, leftSq := 0.0, 0.0, 0.0
		for k := 0; k < len(pairs)-1; k++ {
			leftW += pairs[k].weight
			leftSum += pairs[k].weight * pairs[k].residual
			leftSq += pairs[k].weight * pairs[k].residual * pairs[k].residual

			// No split between identical values.
			if pairs[k].value == pairs[k+1].value {
				continue
			}
			rightW := totalW - leftW
			if leftW < minLeafWeight || rightW < minLeafWeight {
				continue
			}

			leftScore := leftSq - leftSum*leftSum/leftW
			rightSum := totalSum - leftSum
			rightSq := totalSq - leftSq
			rightScore := rightSq - rightSum*rightSum/rightW

			g := parentScore - leftScore - rightScore
			if g > bestGain {
				bestGain = g
				feature = f
				threshold = (pairs[k].value + pairs[k+1].value) / 2
				ok = true
			}
		}
	}

	return feature, threshold, bestGain, ok
}

func predictTree(node *treeNode, features []float64) float64 {
	for !node.leaf {
		if features[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// Margin returns the raw (uncalibrated) log-odds for a feature row.
func (e *Ensemble) Margin(features []float64) float64 {
	margin := e.base
	for _, t := range e.trees {
		margin += e.learningRate * predictTree(t, features)
	}
	return margin
}

// Importances returns per-feature split gains normalized to sum to 1.
func (e *Ensemble) Importances() []float64 {
	imp := make([]float64, e.featureCount)
	total := 0.0
	for _, g := range e.gains {
		total += g
	}
	if total <= 0 {
		return imp
	}
	for i, g := range e.gains {
		imp[i] = g / total
	}
	return imp
}
