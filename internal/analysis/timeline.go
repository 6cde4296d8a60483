package analysis

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/config"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/metrics"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// minFramesForMetrics is the floor below which territorial and delta
// metrics are reported as unavailable rather than computed.
const minFramesForMetrics = 2

// TimelineAnalyzer derives territorial-control metrics and per-frame
// economic deltas from frame-sequenced position data. Pure and stateless;
// safe for concurrent use across matches.
type TimelineAnalyzer struct {
	cfg    config.AnalysisConfig
	logger *logrus.Logger
}

// NewTimelineAnalyzer creates an analyzer pinned to the given geometry
// constants.
func NewTimelineAnalyzer(cfg config.AnalysisConfig, logger *logrus.Logger) *TimelineAnalyzer {
	return &TimelineAnalyzer{cfg: cfg, logger: logger}
}

// Territory computes the territorial summary for one participant. A series
// with fewer than two frames yields all metrics unavailable, never zero.
func (a *TimelineAnalyzer) Territory(series *models.TimelineSeries, participantID, teamID int) models.TerritorialSummary {
	summary := models.TerritorialSummary{}
	if series != nil {
		summary.MatchID = series.MatchID
	}

	frames := series.ParticipantFrames(participantID)
	summary.FrameCount = len(frames)
	if len(frames) < minFramesForMetrics {
		return summary
	}

	metrics.TimelinesAnalyzedTotal.Inc()

	total := float64(len(frames))
	enemyFrames := 0.0
	jungleFrames := 0.0
	riverFrames := 0.0
	forwardSum := 0.0

	for _, f := range frames {
		if a.inEnemyTerritory(f, teamID) {
			enemyFrames++
		}
		if a.inEnemyJungle(f, teamID) {
			jungleFrames++
		}
		if a.onRiver(f) {
			riverFrames++
		}
		forwardSum += a.forwardDistance(f, teamID)
	}

	summary.EnemyTerritoryPct = models.MetricOf(enemyFrames / total * 100)
	summary.JungleInvasionPct = models.MetricOf(jungleFrames / total * 100)
	summary.RiverControlPct = models.MetricOf(riverFrames / total * 100)
	summary.ForwardPositionScore = models.MetricOf(a.forwardScore(forwardSum / total))

	return summary
}

// inEnemyTerritory: a blue player is past the center line when x+y exceeds
// mapCenter plus the margin; mirrored for red.
func (a *TimelineAnalyzer) inEnemyTerritory(f models.TimelineFrame, teamID int) bool {
	sum := f.X + f.Y
	if teamID == models.TeamRed {
		return sum < a.cfg.MapCenter-a.cfg.TerritoryMargin
	}
	return sum > a.cfg.MapCenter+a.cfg.TerritoryMargin
}

func (a *TimelineAnalyzer) inEnemyJungle(f models.TimelineFrame, teamID int) bool {
	if teamID == models.TeamRed {
		return f.X < a.cfg.MapSize-a.cfg.EnemyJungleX
	}
	return f.X > a.cfg.EnemyJungleX
}

// onRiver: perpendicular distance to the x+y = mapCenter anti-diagonal.
func (a *TimelineAnalyzer) onRiver(f models.TimelineFrame) bool {
	return math.Abs(f.X+f.Y-a.cfg.MapCenter)/math.Sqrt2 <= a.cfg.RiverTolerance
}

// forwardDistance is the signed distance past the center line toward the
// enemy base, in map units.
func (a *TimelineAnalyzer) forwardDistance(f models.TimelineFrame, teamID int) float64 {
	d := (f.X + f.Y - a.cfg.MapCenter) / math.Sqrt2
	if teamID == models.TeamRed {
		return -d
	}
	return d
}

// forwardScore normalizes the mean forward distance to [0,100] against the
// fixed bound, so scores compare across matches.
func (a *TimelineAnalyzer) forwardScore(meanDistance float64) float64 {
	bound := a.cfg.ForwardNormBound
	return Clamp((meanDistance+bound)/(2*bound)*100, 0, 100)
}

// DeltaSeries computes per-frame gold/XP deltas for one participant:
// against the all-participant mean, and against the identified lane
// opponent (laneOpponentID 0 means none). Frames across participants are
// aligned by nearest timestamp within the configured tolerance, never by
// array position. Fewer than two frames yields an empty series.
func (a *TimelineAnalyzer) DeltaSeries(series *models.TimelineSeries, participantID, laneOpponentID int) []models.FrameDelta {
	frames := series.ParticipantFrames(participantID)
	if len(frames) < minFramesForMetrics {
		return nil
	}

	deltas := make([]models.FrameDelta, 0, len(frames))
	for _, f := range frames {
		delta := models.FrameDelta{
			Minute:        int(math.Round(float64(f.Timestamp) / 60000.0)),
			Timestamp:     f.Timestamp,
			LaneGoldDelta: models.Unavailable(),
			LaneXpDelta:   models.Unavailable(),
		}

		goldSum, xpSum, count := 0.0, 0.0, 0
		for pid := range series.Frames {
			aligned := nearestFrame(series.Frames[pid], f.Timestamp, a.cfg.FrameToleranceMs)
			if aligned == nil {
				continue
			}
			goldSum += aligned.TotalGold
			xpSum += aligned.XP
			count++
		}
		if count > 0 {
			delta.GoldDelta = f.TotalGold - goldSum/float64(count)
			delta.XpDelta = f.XP - xpSum/float64(count)
		}

		if laneOpponentID > 0 {
			if opp := nearestFrame(series.Frames[laneOpponentID], f.Timestamp, a.cfg.FrameToleranceMs); opp != nil {
				delta.LaneGoldDelta = models.MetricOf(f.TotalGold - opp.TotalGold)
				delta.LaneXpDelta = models.MetricOf(f.XP - opp.XP)
			}
		}

		deltas = append(deltas, delta)
	}

	return deltas
}

// nearestFrame returns the frame closest to target within tolerance, or
// nil. Frames are ordered by timestamp, so a binary search narrows the
// candidates to the two neighbours.
func nearestFrame(frames []models.TimelineFrame, target int64, toleranceMs int64) *models.TimelineFrame {
	if len(frames) == 0 {
		return nil
	}
	i := sort.Search(len(frames), func(i int) bool {
		return frames[i].Timestamp >= target
	})

	var best *models.TimelineFrame
	bestDist := int64(math.MaxInt64)
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(frames) {
			continue
		}
		dist := frames[j].Timestamp - target
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist {
			bestDist = dist
			best = &frames[j]
		}
	}
	if best == nil || bestDist > toleranceMs {
		return nil
	}
	return best
}
