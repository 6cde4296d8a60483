package models

import "time"

// FeatureCount is the width of the predictive feature vector.
const FeatureCount = 18

// FeatureVector is the fixed, ordered set of predictive features shared
// verbatim between extraction and training. Field order here IS the model's
// input order; adding, removing or reordering fields changes the training
// contract and must be reflected in featureNames below.
//
// Display-only stats live in DisplayStats and must never appear here.
type FeatureVector struct {
	EarlyLaningGoldExpAdvantage float64 `json:"earlyLaningPhaseGoldExpAdvantage"`
	LaningGoldExpAdvantage      float64 `json:"laningPhaseGoldExpAdvantage"`
	MaxCsAdvantageOnLane        float64 `json:"maxCsAdvantageOnLaneOpponent"`
	LaneMinionsFirst10Minutes   float64 `json:"laneMinionsFirst10Minutes"`
	MaxLevelLeadLaneOpponent    float64 `json:"maxLevelLeadLaneOpponent"`
	VisionScoreAdvantageLane    float64 `json:"visionScoreAdvantageLaneOpponent"`
	ControlWardRiverCoverage    float64 `json:"controlWardTimeCoverageInRiverOrEnemyHalf"`
	WardsPlaced                 float64 `json:"wardsPlaced"`
	ControlWardsPlaced          float64 `json:"controlWardsPlaced"`
	DetectorWardsPlaced         float64 `json:"detectorWardsPlaced"`
	WardsKilled                 float64 `json:"wardsKilled"`
	EnemyMissingPings           float64 `json:"enemyMissingPings"`
	OnMyWayPings                float64 `json:"onMyWayPings"`
	GetBackPings                float64 `json:"getBackPings"`
	NeedVisionPings             float64 `json:"needVisionPings"`
	HadAfkTeammate              float64 `json:"hadAfkTeammate"`
	SkillshotHitRate            float64 `json:"skillshotHitRate"`
	SkillshotDodgeRate          float64 `json:"skillshotDodgeRate"`
}

var featureNames = [FeatureCount]string{
	"earlyLaningPhaseGoldExpAdvantage",
	"laningPhaseGoldExpAdvantage",
	"maxCsAdvantageOnLaneOpponent",
	"laneMinionsFirst10Minutes",
	"maxLevelLeadLaneOpponent",
	"visionScoreAdvantageLaneOpponent",
	"controlWardTimeCoverageInRiverOrEnemyHalf",
	"wardsPlaced",
	"controlWardsPlaced",
	"detectorWardsPlaced",
	"wardsKilled",
	"enemyMissingPings",
	"onMyWayPings",
	"getBackPings",
	"needVisionPings",
	"hadAfkTeammate",
	"skillshotHitRate",
	"skillshotDodgeRate",
}

// FeatureNames returns the feature names in model input order.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	copy(names, featureNames[:])
	return names
}

// Values returns the vector in model input order.
func (v FeatureVector) Values() []float64 {
	return []float64{
		v.EarlyLaningGoldExpAdvantage,
		v.LaningGoldExpAdvantage,
		v.MaxCsAdvantageOnLane,
		v.LaneMinionsFirst10Minutes,
		v.MaxLevelLeadLaneOpponent,
		v.VisionScoreAdvantageLane,
		v.ControlWardRiverCoverage,
		v.WardsPlaced,
		v.ControlWardsPlaced,
		v.DetectorWardsPlaced,
		v.WardsKilled,
		v.EnemyMissingPings,
		v.OnMyWayPings,
		v.GetBackPings,
		v.NeedVisionPings,
		v.HadAfkTeammate,
		v.SkillshotHitRate,
		v.SkillshotDodgeRate,
	}
}

// FeatureCategories is the fixed category → feature-set mapping used for
// the category importance rollup.
var FeatureCategories = map[string][]string{
	"Early Game Leads": {
		"earlyLaningPhaseGoldExpAdvantage",
		"laningPhaseGoldExpAdvantage",
		"maxCsAdvantageOnLaneOpponent",
		"laneMinionsFirst10Minutes",
		"maxLevelLeadLaneOpponent",
	},
	"Vision Habits": {
		"visionScoreAdvantageLaneOpponent",
		"controlWardTimeCoverageInRiverOrEnemyHalf",
		"wardsPlaced",
		"controlWardsPlaced",
		"detectorWardsPlaced",
		"wardsKilled",
	},
	"Communication": {
		"enemyMissingPings",
		"onMyWayPings",
		"getBackPings",
		"needVisionPings",
	},
	"Team Reliability": {
		"hadAfkTeammate",
	},
	"Mechanics": {
		"skillshotHitRate",
		"skillshotDodgeRate",
	},
}

// FeatureRecord is the derived, immutable per-(player, match) training row:
// the predictive vector, the label, and the metadata the engine needs for
// recency weighting and consistency scoring. GoldPerMinute rides along as
// metadata only; it is not part of the model input.
type FeatureRecord struct {
	MatchID       string        `json:"matchId"`
	PUUID         string        `json:"puuid"`
	Champion      string        `json:"champion"`
	GameCreation  time.Time     `json:"gameCreation"`
	Win           bool          `json:"win"`
	GoldPerMinute float64       `json:"goldPerMinute"`
	Features      FeatureVector `json:"features"`
}

// DisplayStats are computed for users but never enter the predictive
// vector. Keeping them on a separate type makes the isolation structural:
// the training engine's API only accepts FeatureRecord.
type DisplayStats struct {
	Kills              int     `json:"kills"`
	Deaths             int     `json:"deaths"`
	Assists            int     `json:"assists"`
	KDA                float64 `json:"kda"`
	DamagePerMinute    float64 `json:"damagePerMinute"`
	GoldPerMinute      float64 `json:"goldPerMinute"`
	XpPerMinute        float64 `json:"xpPerMinute"`
	VisionScore        int     `json:"visionScore"`
	KillParticipation  float64 `json:"killParticipation"`
	SoloKills          float64 `json:"soloKills"`
	TurretPlatesTaken  float64 `json:"turretPlatesTaken"`
	TeamDamagePct      float64 `json:"teamDamagePercentage"`
	DamageTakenTeamPct float64 `json:"damageTakenOnTeamPercentage"`
	TotalCS            int     `json:"totalMinionsKilled"`
	TowerDamage        int     `json:"towerDamageDealt"`
	SkillshotsHit      float64 `json:"skillshotsHit"`
	SkillshotsDodged   float64 `json:"skillshotsDodged"`
	AggressionScore    float64 `json:"aggressionScore"`
	VisionDominance    float64 `json:"visionDominance"`
	CombatEfficiency   float64 `json:"combatEfficiency"`
}

// Extraction bundles the two outputs of feature extraction for one match.
type Extraction struct {
	Record  FeatureRecord `json:"record"`
	Display DisplayStats  `json:"display"`
}
