package analysis

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/champion"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/metrics"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

// Extractor converts one match's participant and challenge data into a
// FeatureRecord plus display-only stats. Extraction is pure and stateless;
// one Extractor is safe for concurrent use across matches.
type Extractor struct {
	table  *champion.SkillshotTable
	logger *logrus.Logger
}

// NewExtractor creates a feature extractor using the given skillshot
// lookup table.
func NewExtractor(table *champion.SkillshotTable, logger *logrus.Logger) *Extractor {
	return &Extractor{table: table, logger: logger}
}

// Extract produces the feature record and display stats for the player
// identified by puuid within the match. Missing required combat counters
// fail with a MissingFieldError; the two documented fallbacks
// (goldPerMinute recompute, zero-denominator skillshot rates) are the only
// places a zero substitutes for absent data.
func (e *Extractor) Extract(match *models.Match, puuid string) (*models.Extraction, error) {
	start := time.Now()
	defer func() {
		metrics.ExtractionDuration.Observe(time.Since(start).Seconds())
	}()

	p := match.Participant(puuid)
	if p == nil {
		return nil, models.ErrParticipantNotFound
	}

	if err := requireFields(match.MatchID, p); err != nil {
		metrics.ExtractionFailuresTotal.Inc()
		return nil, err
	}

	minutes := float64(match.GameDurationSeconds) / 60.0
	if minutes <= 0 {
		minutes = 1
	}

	ch := p.Challenges

	// goldPerMinute fallback: recompute only when the source value is
	// missing or exactly zero, otherwise pass it through unchanged.
	goldPerMinute := ch.GoldPerMinute
	if goldPerMinute == 0 {
		goldPerMinute = float64(*p.GoldEarned) / minutes
	}

	hitRate := e.skillshotHitRate(p)
	dodgeRate := e.skillshotDodgeRate(match, p)

	record := models.FeatureRecord{
		MatchID:       match.MatchID,
		PUUID:         p.PUUID,
		Champion:      p.ChampionName,
		GameCreation:  match.GameCreation,
		Win:           *p.Win,
		GoldPerMinute: goldPerMinute,
		Features: models.FeatureVector{
			EarlyLaningGoldExpAdvantage: ch.EarlyLaningPhaseGoldExpAdvantage,
			LaningGoldExpAdvantage:      ch.LaningPhaseGoldExpAdvantage,
			MaxCsAdvantageOnLane:        ch.MaxCsAdvantageOnLaneOpponent,
			LaneMinionsFirst10Minutes:   ch.LaneMinionsFirst10Minutes,
			MaxLevelLeadLaneOpponent:    ch.MaxLevelLeadLaneOpponent,
			VisionScoreAdvantageLane:    ch.VisionScoreAdvantageLaneOpponent,
			ControlWardRiverCoverage:    ch.ControlWardTimeCoverageInRiverOrEnemyHalf,
			WardsPlaced:                 float64(p.WardsPlaced),
			ControlWardsPlaced:          ch.ControlWardsPlaced,
			DetectorWardsPlaced:         float64(p.DetectorWardsPlaced),
			WardsKilled:                 float64(p.WardsKilled),
			EnemyMissingPings:           float64(p.EnemyMissingPings),
			OnMyWayPings:                float64(p.OnMyWayPings),
			GetBackPings:                float64(p.GetBackPings),
			NeedVisionPings:             float64(p.NeedVisionPings),
			HadAfkTeammate:              ch.HadAfkTeammate,
			SkillshotHitRate:            hitRate,
			SkillshotDodgeRate:          dodgeRate,
		},
	}

	display := e.displayStats(p, minutes, goldPerMinute)

	return &models.Extraction{Record: record, Display: display}, nil
}

// requireFields rejects records missing a required raw counter. The
// extractor never substitutes zero for absent combat/economy values.
func requireFields(matchID string, p *models.MatchParticipantRecord) error {
	missing := ""
	switch {
	case p.Win == nil:
		missing = "win"
	case p.Kills == nil:
		missing = "kills"
	case p.Deaths == nil:
		missing = "deaths"
	case p.Assists == nil:
		missing = "assists"
	case p.GoldEarned == nil:
		missing = "goldEarned"
	case p.TotalDamageDealtToChampions == nil:
		missing = "totalDamageDealtToChampions"
	}
	if missing != "" {
		return &models.MissingFieldError{MatchID: matchID, Field: missing}
	}
	return nil
}

// skillshotHitRate is hits / qualifying casts * 100 capped at 100, where
// casts count only abilities flagged as skillshots for the champion.
func (e *Extractor) skillshotHitRate(p *models.MatchParticipantRecord) float64 {
	casts := e.table.QualifyingCasts(p)
	return CappedPercent(p.Challenges.SkillshotsHit, float64(casts))
}

// skillshotDodgeRate is dodges / enemy skillshot casts * 100, same capping
// and zero-denominator policy as the hit rate.
func (e *Extractor) skillshotDodgeRate(match *models.Match, p *models.MatchParticipantRecord) float64 {
	enemyCasts := 0
	for i := range match.Participants {
		o := &match.Participants[i]
		if o.TeamID == p.TeamID {
			continue
		}
		enemyCasts += e.table.QualifyingCasts(o)
	}
	return CappedPercent(p.Challenges.SkillshotsDodged, float64(enemyCasts))
}

func (e *Extractor) displayStats(p *models.MatchParticipantRecord, minutes, goldPerMinute float64) models.DisplayStats {
	ch := p.Challenges

	kda := ch.KDA
	if kda == 0 {
		deaths := float64(*p.Deaths)
		if deaths == 0 {
			deaths = 1
		}
		kda = (float64(*p.Kills) + float64(*p.Assists)) / deaths
	}

	dpm := ch.DamagePerMinute
	if dpm == 0 {
		dpm = float64(*p.TotalDamageDealtToChampions) / minutes
	}

	aggression := math.Min(100, (dpm/1000*0.7+ch.SoloKills/5*0.3)*100)
	visionDominance := float64(p.VisionScore)*1.5 + ch.ControlWardsPlaced*5 + float64(p.WardsKilled)*2
	combatEfficiency := 0.0
	if *p.GoldEarned > 0 {
		combatEfficiency = math.Min(100, float64(*p.TotalDamageDealtToChampions)/float64(*p.GoldEarned)/2.0*100)
	}

	return models.DisplayStats{
		Kills:              *p.Kills,
		Deaths:             *p.Deaths,
		Assists:            *p.Assists,
		KDA:                kda,
		DamagePerMinute:    dpm,
		GoldPerMinute:      goldPerMinute,
		XpPerMinute:        float64(p.ChampExperience) / minutes,
		VisionScore:        p.VisionScore,
		KillParticipation:  ch.KillParticipation,
		SoloKills:          ch.SoloKills,
		TurretPlatesTaken:  ch.TurretPlatesTaken,
		TeamDamagePct:      ch.TeamDamagePercentage,
		DamageTakenTeamPct: ch.DamageTakenOnTeamPercentage,
		TotalCS:            p.TotalMinionsKilled + p.NeutralMinionsKilled,
		TowerDamage:        p.DamageDealtToTurrets,
		SkillshotsHit:      ch.SkillshotsHit,
		SkillshotsDodged:   ch.SkillshotsDodged,
		AggressionScore:    aggression,
		VisionDominance:    visionDominance,
		CombatEfficiency:   combatEfficiency,
	}
}

// BackfillLaningAdvantage substitutes timeline-derived lane leads for the
// challenge advantage fields when the source reported exactly zero. The
// challenge values are not reliably present in all queues, which would
// otherwise leave these indicators always 0.
func BackfillLaningAdvantage(record *models.FeatureRecord, deltas []models.FrameDelta) {
	if record == nil || len(deltas) == 0 {
		return
	}

	backfill := func(field *float64, minute int) {
		if *field != 0 {
			return
		}
		point := nearestDelta(deltas, minute)
		if point == nil || !point.LaneGoldDelta.Available || !point.LaneXpDelta.Available {
			return
		}
		// Approximates the combined gold+xp advantage metric.
		*field = point.LaneGoldDelta.Value + point.LaneXpDelta.Value
	}

	backfill(&record.Features.EarlyLaningGoldExpAdvantage, 8)
	backfill(&record.Features.LaningGoldExpAdvantage, 14)
}

func nearestDelta(deltas []models.FrameDelta, minute int) *models.FrameDelta {
	var best *models.FrameDelta
	bestDist := math.MaxFloat64
	for i := range deltas {
		d := math.Abs(float64(deltas[i].Minute - minute))
		if d < bestDist {
			bestDist = d
			best = &deltas[i]
		}
	}
	return best
}
