package training

import (
	"math"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/analysis"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// FeatureInsight contrasts one predictive feature's recency-weighted mean
// in won games against lost games. PctDiff is relative to the losing-games
// mean and unavailable when that mean is zero.
type FeatureInsight struct {
	Feature  string        `json:"feature"`
	WinMean  float64       `json:"winMean"`
	LossMean float64       `json:"lossMean"`
	AbsDiff  float64       `json:"absDiff"`
	PctDiff  models.Metric `json:"pctDiff"`
}

// computeInsights builds the per-feature win/loss contrast table using the
// same recency weights as training. A zero-variance feature yields a
// difference of 0, not an error.
func computeInsights(history []models.FeatureRecord, weights []float64) []FeatureInsight {
	names := models.FeatureNames()
	insights := make([]FeatureInsight, len(names))

	winSums := make([]float64, len(names))
	lossSums := make([]float64, len(names))
	winW, lossW := 0.0, 0.0

	for i := range history {
		values := history[i].Features.Values()
		if history[i].Win {
			for f, v := range values {
				winSums[f] += v * weights[i]
			}
			winW += weights[i]
		} else {
			for f, v := range values {
				lossSums[f] += v * weights[i]
			}
			lossW += weights[i]
		}
	}

	for f, name := range names {
		winMean, lossMean := 0.0, 0.0
		if winW > 0 {
			winMean = winSums[f] / winW
		}
		if lossW > 0 {
			lossMean = lossSums[f] / lossW
		}

		insight := FeatureInsight{
			Feature:  name,
			WinMean:  winMean,
			LossMean: lossMean,
			AbsDiff:  math.Abs(winMean - lossMean),
			PctDiff:  models.Unavailable(),
		}
		if lossMean != 0 {
			insight.PctDiff = models.MetricOf((winMean - lossMean) / math.Abs(lossMean) * 100)
		}
		insights[f] = insight
	}

	return insights
}

// categoryRollup sums member-feature importances per fixed category.
func categoryRollup(importances map[string]float64) map[string]float64 {
	rollup := make(map[string]float64, len(models.FeatureCategories))
	for category, members := range models.FeatureCategories {
		total := 0.0
		for _, name := range members {
			total += importances[name]
		}
		rollup[category] = total
	}
	return rollup
}

// consistencyScore is 100*(1 - 2*cv(goldPerMinute)) clamped to [0,100]: a
// player whose gold income varies wildly across the window scores low.
func consistencyScore(history []models.FeatureRecord) float64 {
	gpm := make([]float64, len(history))
	for i := range history {
		gpm[i] = history[i].GoldPerMinute
	}
	cv := analysis.CoefficientOfVariation(gpm)
	return analysis.Clamp(100*(1-2*cv), 0, 100)
}
