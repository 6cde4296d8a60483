package training

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/metrics"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// Engine fits a recency-weighted, probability-calibrated win classifier.
// The caller supplies history oldest to newest (typically the last 50
// games); the engine does not re-sort.
type Engine struct {
	cfg    config.TrainingConfig
	logger *logrus.Logger
}

// NewEngine creates a training engine with the given hyperparameters.
func NewEngine(cfg config.TrainingConfig, logger *logrus.Logger) *Engine {
	return &Engine{cfg: cfg, logger: logger}
}

// Train fits a model on the player's history. Preconditions are enforced,
// never downgraded: too little history fails with InsufficientDataError,
// a single-class history with DegenerateLabelError. No partial model is
// ever produced.
func (e *Engine) Train(ctx context.Context, puuid string, history []models.FeatureRecord) (*TrainedModel, error) {
	start := time.Now()

	if len(history) < e.cfg.MinMatches {
		metrics.TrainingFailuresTotal.WithLabelValues("insufficient_data").Inc()
		return nil, &models.InsufficientDataError{Have: len(history), Need: e.cfg.MinMatches}
	}

	wins, losses := 0, 0
	for i := range history {
		if history[i].Win {
			wins++
		} else {
			losses++
		}
	}
	if wins == 0 || losses == 0 {
		metrics.TrainingFailuresTotal.WithLabelValues("degenerate_labels").Inc()
		return nil, &models.DegenerateLabelError{Wins: wins, Losses: losses}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	weights := RecencyWeights(len(history))
	x := make([][]float64, len(history))
	y := make([]float64, len(history))
	for i := range history {
		x[i] = history[i].Features.Values()
		if history[i].Win {
			y[i] = 1
		}
	}

	ensemble := fitEnsemble(x, y, weights, ensembleParams{
		trees:         e.cfg.Trees,
		maxDepth:      e.cfg.MaxDepth,
		learningRate:  e.cfg.LearningRate,
		minLeafWeight: e.cfg.MinLeafWeight,
	})

	margins := make([]float64, len(x))
	for i := range x {
		margins[i] = ensemble.Margin(x[i])
	}
	calibrator := fitPlatt(margins, y, weights, e.cfg.CalibrationIterations)

	correct := 0
	for i := range x {
		predicted := calibrator.Calibrate(margins[i]) >= 0.5
		if predicted == history[i].Win {
			correct++
		}
	}

	names := models.FeatureNames()
	rawImportances := ensemble.Importances()
	importances := make(map[string]float64, len(names))
	for i, name := range names {
		importances[name] = rawImportances[i]
	}

	model := &TrainedModel{
		ID:                  uuid.New(),
		PUUID:               puuid,
		TrainedAt:           time.Now(),
		SampleSize:          len(history),
		Wins:                wins,
		Losses:              losses,
		WinRate:             float64(wins) / float64(len(history)),
		FeatureNames:        names,
		Importances:         importances,
		CategoryImportances: categoryRollup(importances),
		Insights:            computeInsights(history, weights),
		ConsistencyScore:    consistencyScore(history),
		InSampleAccuracy:    float64(correct) / float64(len(history)),
		ensemble:            ensemble,
		calibrator:          calibrator,
	}

	metrics.ModelsTrainedTotal.Inc()
	metrics.TrainingDuration.Observe(time.Since(start).Seconds())
	e.logger.WithFields(logrus.Fields{
		"puuid":              puuid,
		"sample_size":        model.SampleSize,
		"in_sample_accuracy": model.InSampleAccuracy,
	}).Debug("Trained win-prediction model")

	return model, nil
}
