package training

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

func testEngine() *Engine {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return NewEngine(config.Default().Training, l)
}

// separableHistory builds a deterministic, cleanly separable history: won
// games carry a large positive early-lane advantage, lost games a large
// negative one, with small per-game variation so tree splits have structure.
// Gold per minute is constant so the consistency score is exact.
func separableHistory(n int) []models.FeatureRecord {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	history := make([]models.FeatureRecord, 0, n)
	for i := 0; i < n; i++ {
		win := i%2 == 0
		advantage := 1000.0 + float64(i%5)*30
		if !win {
			advantage = -advantage
		}
		history = append(history, models.FeatureRecord{
			MatchID:       fmt.Sprintf("EUW1_%d", i),
			PUUID:         "player-1",
			GameCreation:  base.Add(time.Duration(i) * time.Hour),
			Win:           win,
			GoldPerMinute: 450,
			Features: models.FeatureVector{
				EarlyLaningGoldExpAdvantage: advantage,
				LaningGoldExpAdvantage:      advantage * 1.5,
				WardsPlaced:                 10, // zero variance
				SkillshotHitRate:            50 + float64(i%7),
			},
		})
	}
	return history
}

func TestRecencyWeights(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2, 4, 4, 4}, RecencyWeights(9))

	// Non-divisible history: the remainder lands in the newest tier.
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2, 4, 4, 4, 4}, RecencyWeights(10))

	assert.Empty(t, RecencyWeights(0))
	assert.Equal(t, []float64{4}, RecencyWeights(1))
}

func TestTrainInsufficientData(t *testing.T) {
	engine := testEngine()

	_, err := engine.Train(context.Background(), "player-1", separableHistory(9))
	var insufficient *models.InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 9, insufficient.Have)
	assert.Equal(t, 10, insufficient.Need)
}

func TestTrainDegenerateLabels(t *testing.T) {
	engine := testEngine()

	history := separableHistory(12)
	for i := range history {
		history[i].Win = true
	}

	_, err := engine.Train(context.Background(), "player-1", history)
	var degenerate *models.DegenerateLabelError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, 12, degenerate.Wins)
	assert.Equal(t, 0, degenerate.Losses)
}

func TestTrainContextCancelled(t *testing.T) {
	engine := testEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Train(ctx, "player-1", separableHistory(20))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTrainSeparableHistory(t *testing.T) {
	engine := testEngine()

	model, err := engine.Train(context.Background(), "player-1", separableHistory(40))
	require.NoError(t, err)
	require.NotNil(t, model)

	assert.Equal(t, "player-1", model.PUUID)
	assert.Equal(t, 40, model.SampleSize)
	assert.Equal(t, 20, model.Wins)
	assert.Equal(t, 20, model.Losses)
	assert.InDelta(t, 0.5, model.WinRate, 1e-9)

	// Cleanly separable data must be learned near-perfectly in sample.
	assert.GreaterOrEqual(t, model.InSampleAccuracy, 0.9)

	winLike := models.FeatureVector{EarlyLaningGoldExpAdvantage: 1000, LaningGoldExpAdvantage: 1500}
	lossLike := models.FeatureVector{EarlyLaningGoldExpAdvantage: -1000, LaningGoldExpAdvantage: -1500}

	pWin := model.WinProbability(winLike)
	pLoss := model.WinProbability(lossLike)
	assert.GreaterOrEqual(t, pWin, 0.0)
	assert.LessOrEqual(t, pWin, 1.0)
	assert.Greater(t, pWin, pLoss)
	assert.Greater(t, pWin, 0.5)
	assert.Less(t, pLoss, 0.5)
}

func TestTrainImportances(t *testing.T) {
	engine := testEngine()

	model, err := engine.Train(context.Background(), "player-1", separableHistory(40))
	require.NoError(t, err)

	require.Len(t, model.Importances, models.FeatureCount)
	sum := 0.0
	for _, v := range model.Importances {
		assert.GreaterOrEqual(t, v, 0.0)
		sum += v
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	// The lane-advantage features carry all of the signal.
	dominant := model.Importances["earlyLaningPhaseGoldExpAdvantage"] +
		model.Importances["laningPhaseGoldExpAdvantage"]
	assert.Greater(t, dominant, 0.9)

	// Category rollup mirrors the per-feature values.
	require.Len(t, model.CategoryImportances, len(models.FeatureCategories))
	assert.Greater(t, model.CategoryImportances["Early Game Leads"], 0.9)
	categorySum := 0.0
	for _, v := range model.CategoryImportances {
		categorySum += v
	}
	assert.InDelta(t, 1.0, categorySum, 1e-6)
}

func TestTrainInsights(t *testing.T) {
	engine := testEngine()

	model, err := engine.Train(context.Background(), "player-1", separableHistory(40))
	require.NoError(t, err)
	require.Len(t, model.Insights, models.FeatureCount)

	byName := make(map[string]FeatureInsight, len(model.Insights))
	for _, ins := range model.Insights {
		byName[ins.Feature] = ins
	}

	early := byName["earlyLaningPhaseGoldExpAdvantage"]
	assert.Greater(t, early.WinMean, 0.0)
	assert.Less(t, early.LossMean, 0.0)
	assert.Greater(t, early.AbsDiff, 1000.0)
	require.True(t, early.PctDiff.Available)

	// Zero-variance feature: identical means, no contrast, no error.
	wards := byName["wardsPlaced"]
	assert.Equal(t, 10.0, wards.WinMean)
	assert.Equal(t, 10.0, wards.LossMean)
	assert.Equal(t, 0.0, wards.AbsDiff)
	require.True(t, wards.PctDiff.Available)
	assert.Equal(t, 0.0, wards.PctDiff.Value)

	// All-zero feature: loss mean is 0, so the relative diff is unavailable.
	pings := byName["onMyWayPings"]
	assert.False(t, pings.PctDiff.Available)
}

func TestTrainConsistencyScore(t *testing.T) {
	engine := testEngine()

	// Constant gold per minute: maximum consistency.
	model, err := engine.Train(context.Background(), "player-1", separableHistory(40))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, model.ConsistencyScore, 1e-9)

	// Wildly varying income drives the score down.
	history := separableHistory(40)
	for i := range history {
		if i%2 == 0 {
			history[i].GoldPerMinute = 100
		} else {
			history[i].GoldPerMinute = 900
		}
	}
	volatile, err := engine.Train(context.Background(), "player-1", history)
	require.NoError(t, err)
	assert.Less(t, volatile.ConsistencyScore, model.ConsistencyScore)
	assert.GreaterOrEqual(t, volatile.ConsistencyScore, 0.0)
}

func TestBlendedWinProbability(t *testing.T) {
	engine := testEngine()

	model, err := engine.Train(context.Background(), "player-1", separableHistory(40))
	require.NoError(t, err)

	v := models.FeatureVector{EarlyLaningGoldExpAdvantage: 1000, LaningGoldExpAdvantage: 1500}
	want := 0.7*model.WinRate + 0.3*model.WinProbability(v)
	assert.InDelta(t, want, model.BlendedWinProbability(v), 1e-12)
}

func TestPlattCalibration(t *testing.T) {
	margins := []float64{-2, -1, 1, 2}
	y := []float64{0, 0, 1, 1}
	w := []float64{1, 1, 1, 1}

	s := fitPlatt(margins, y, w, 500)

	pHigh := s.Calibrate(2)
	pLow := s.Calibrate(-2)
	assert.Greater(t, pHigh, pLow)
	assert.Greater(t, pHigh, 0.5)
	assert.Less(t, pLow, 0.5)
	for _, p := range []float64{pHigh, pLow, s.Calibrate(0)} {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestEnsembleLearnsThreshold(t *testing.T) {
	// Single-feature step function: x<0 loses, x>0 wins.
	x := make([][]float64, 0, 20)
	y := make([]float64, 0, 20)
	w := make([]float64, 0, 20)
	for i := 0; i < 20; i++ {
		v := float64(i-10) * 100
		if v >= 0 {
			v += 100
		}
		x = append(x, []float64{v})
		label := 0.0
		if v > 0 {
			label = 1
		}
		y = append(y, label)
		w = append(w, 1)
	}

	ensemble := fitEnsemble(x, y, w, ensembleParams{
		trees:         20,
		maxDepth:      2,
		learningRate:  0.1,
		minLeafWeight: 2,
	})

	assert.Greater(t, ensemble.Margin([]float64{500}), 0.0)
	assert.Less(t, ensemble.Margin([]float64{-500}), 0.0)

	importances := ensemble.Importances()
	require.Len(t, importances, 1)
	assert.InDelta(t, 1.0, importances[0], 1e-9)
}
