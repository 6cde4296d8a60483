package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// Historical-vs-model blend weights for the headline win probability.
const (
	winRateBlendWeight = 0.7
	modelBlendWeight   = 0.3
)

// TrainedModel is a calibrated classifier plus its feature-order contract
// and derived statistics. Built fresh per (player, data hash); superseded
// whenever the hash changes; never mutated in place.
type TrainedModel struct {
	ID        uuid.UUID `json:"id"`
	PUUID     string    `json:"puuid"`
	DataHash  string    `json:"dataHash"`
	TrainedAt time.Time `json:"trainedAt"`

	SampleSize int     `json:"sampleSize"`
	Wins       int     `json:"wins"`
	Losses     int     `json:"losses"`
	WinRate    float64 `json:"winRate"` // historical fraction of wins in the window

	FeatureNames        []string           `json:"featureNames"`
	Importances         map[string]float64 `json:"importances"`
	CategoryImportances map[string]float64 `json:"categoryImportances"`
	Insights            []FeatureInsight   `json:"insights"`
	ConsistencyScore    float64            `json:"consistencyScore"`

	// InSampleAccuracy is measured on the same records the model was fit
	// on. It is NOT held-out accuracy and must be presented as such.
	InSampleAccuracy float64 `json:"inSampleAccuracy"`

	ensemble   *Ensemble
	calibrator *PlattScaler
}

// WinProbability returns the calibrated win probability for a feature
// vector. The raw ensemble margin is never exposed.
func (m *TrainedModel) WinProbability(v models.FeatureVector) float64 {
	return m.calibrator.Calibrate(m.ensemble.Margin(v.Values()))
}

// BlendedWinProbability blends the window's historical win rate with the
// calibrated model output (0.7/0.3), the headline figure the serving layer
// reports.
func (m *TrainedModel) BlendedWinProbability(v models.FeatureVector) float64 {
	return winRateBlendWeight*m.WinRate + modelBlendWeight*m.WinProbability(v)
}
