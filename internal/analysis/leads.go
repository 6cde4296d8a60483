package analysis

import (
	"math"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// LeadAggregator reduces per-match delta series across a bounded window of
// recent matches into stable lane-lead averages with sample-size tracking.
type LeadAggregator struct {
	cfg config.AnalysisConfig
}

// NewLeadAggregator creates an aggregator pinned to the configured target
// minute, tolerance and match limit.
func NewLeadAggregator(cfg config.AnalysisConfig) *LeadAggregator {
	return &LeadAggregator{cfg: cfg}
}

// SampleAt extracts one match's lane-lead sample at the target minute. The
// match is excluded (ok=false) when no point lies within the tolerance
// window or the lane deltas are unavailable; no extrapolation.
func (g *LeadAggregator) SampleAt(matchID string, deltas []models.FrameDelta) (models.LaneLeadSample, bool) {
	target := int64(g.cfg.LaneLeadMinute) * 60000

	var best *models.FrameDelta
	bestDist := int64(math.MaxInt64)
	for i := range deltas {
		dist := deltas[i].Timestamp - target
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = &deltas[i]
		}
	}

	if best == nil || bestDist > g.cfg.LaneLeadToleranceMs {
		return models.LaneLeadSample{}, false
	}
	if !best.LaneGoldDelta.Available || !best.LaneXpDelta.Available {
		return models.LaneLeadSample{}, false
	}
	if math.IsNaN(best.LaneGoldDelta.Value) || math.IsNaN(best.LaneXpDelta.Value) {
		return models.LaneLeadSample{}, false
	}

	return models.LaneLeadSample{
		MatchID:  matchID,
		GoldLead: best.LaneGoldDelta.Value,
		XpLead:   best.LaneXpDelta.Value,
	}, true
}

// Aggregate reduces samples to their arithmetic mean, truncating to the
// configured match limit. Zero samples reports unavailable leads — "no
// data" is distinct from "no lead".
func (g *LeadAggregator) Aggregate(samples []models.LaneLeadSample) models.AggregatedLaneLead {
	if len(samples) > g.cfg.LaneLeadMatchLimit {
		samples = samples[:g.cfg.LaneLeadMatchLimit]
	}
	if len(samples) == 0 {
		return models.AggregatedLaneLead{
			GoldLead: models.Unavailable(),
			XpLead:   models.Unavailable(),
		}
	}

	goldSum, xpSum := 0.0, 0.0
	for _, s := range samples {
		goldSum += s.GoldLead
		xpSum += s.XpLead
	}
	n := float64(len(samples))

	return models.AggregatedLaneLead{
		GoldLead:   models.MetricOf(goldSum / n),
		XpLead:     models.MetricOf(xpSum / n),
		SampleSize: len(samples),
	}
}

// AggregateTerritory averages territorial summaries across recent matches,
// skipping matches whose metrics are unavailable. Zero usable matches
// reports all-unavailable with sample size 0.
func AggregateTerritory(summaries []models.TerritorialSummary) models.AggregatedTerritory {
	agg := models.AggregatedTerritory{}
	enemySum, jungleSum, riverSum, forwardSum := 0.0, 0.0, 0.0, 0.0

	for i := range summaries {
		s := &summaries[i]
		if !s.Available() {
			continue
		}
		enemySum += s.EnemyTerritoryPct.Value
		jungleSum += s.JungleInvasionPct.Value
		riverSum += s.RiverControlPct.Value
		forwardSum += s.ForwardPositionScore.Value
		agg.SampleSize++
	}

	if agg.SampleSize == 0 {
		return agg
	}

	n := float64(agg.SampleSize)
	agg.EnemyTerritoryPct = models.MetricOf(enemySum / n)
	agg.JungleInvasionPct = models.MetricOf(jungleSum / n)
	agg.RiverControlPct = models.MetricOf(riverSum / n)
	agg.ForwardPositionScore = models.MetricOf(forwardSum / n)
	return agg
}
