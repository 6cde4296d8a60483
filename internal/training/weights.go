// Package training fits a probability-calibrated win classifier on a
// player's recent match history.
package training

// Recency tier weights. These are a fixed discrete contract, not a decay
// curve: the newest third of the history weighs 4x, the middle third 2x,
// the oldest third 1x.
const (
	oldTierWeight    = 1.0
	midTierWeight    = 2.0
	recentTierWeight = 4.0
)

// RecencyWeights assigns per-sample weights for a history ordered oldest
// to newest. Tier boundaries are n/3 and 2n/3 by integer division, so the
// remainder of a non-divisible history lands in the newest tier.
func RecencyWeights(n int) []float64 {
	weights := make([]float64, n)
	cut1 := n / 3
	cut2 := 2 * n / 3
	for i := range weights {
		switch {
		case i < cut1:
			weights[i] = oldTierWeight
		case i < cut2:
			weights[i] = midTierWeight
		default:
			weights[i] = recentTierWeight
		}
	}
	return weights
}
