package training

import "math"

// PlattScaler maps raw classifier margins to calibrated probabilities via
// a logistic fit, so the emitted win probability reflects observed
// frequencies rather than the ensemble's raw score.
type PlattScaler struct {
	A float64
	B float64
}

// fitPlatt fits sigmoid(A*margin + B) to the labels by weighted gradient
// descent on cross-entropy, using Platt's target smoothing to keep the fit
// from saturating on small samples.
func fitPlatt(margins, y, w []float64, iterations int) *PlattScaler {
	n := len(margins)

	posCount, negCount := 0.0, 0.0
	for i := range y {
		if y[i] > 0.5 {
			posCount++
		} else {
			negCount++
		}
	}
	// Platt's smoothed targets.
	tPos := (posCount + 1) / (posCount + 2)
	tNeg := 1 / (negCount + 2)

	targets := make([]float64, n)
	for i := range y {
		if y[i] > 0.5 {
			targets[i] = tPos
		} else {
			targets[i] = tNeg
		}
	}

	totalW := 0.0
	for _, wi := range w {
		totalW += wi
	}
	if totalW <= 0 {
		totalW = 1
	}

	s := &PlattScaler{A: 1, B: 0}
	const learningRate = 0.05
	for iter := 0; iter < iterations; iter++ {
		gradA, gradB := 0.0, 0.0
		for i := range margins {
			p := sigmoid(s.A*margins[i] + s.B)
			diff := (p - targets[i]) * w[i]
			gradA += diff * margins[i]
			gradB += diff
		}
		s.A -= learningRate * gradA / totalW
		s.B -= learningRate * gradB / totalW
	}

	if math.IsNaN(s.A) || math.IsNaN(s.B) {
		return &PlattScaler{A: 1, B: 0}
	}
	return s
}

// Calibrate maps a raw margin to a calibrated probability in [0,1].
func (s *PlattScaler) Calibrate(margin float64) float64 {
	return sigmoid(s.A*margin + s.B)
}
