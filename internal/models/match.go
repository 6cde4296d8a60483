// Package models defines the data model for the match analysis pipeline.
package models

import "time"

// Team identifiers as used by the match-data API.
const (
	TeamBlue = 100
	TeamRed  = 200
)

// Match represents one fetched match: identity, duration and the full
// participant list. Immutable once fetched.
type Match struct {
	MatchID             string                   `json:"matchId"`
	GameCreation        time.Time                `json:"gameCreation"`
	GameDurationSeconds int                      `json:"gameDurationSeconds"`
	Participants        []MatchParticipantRecord `json:"participants"`
}

// Participant returns the participant with the given PUUID, or nil.
func (m *Match) Participant(puuid string) *MatchParticipantRecord {
	for i := range m.Participants {
		if m.Participants[i].PUUID == puuid {
			return &m.Participants[i]
		}
	}
	return nil
}

// LaneOpponent returns the single enemy participant sharing the player's
// role assignment, or nil when no such participant exists (e.g. ARAM).
func (m *Match) LaneOpponent(p *MatchParticipantRecord) *MatchParticipantRecord {
	if p == nil || p.TeamPosition == "" {
		return nil
	}
	for i := range m.Participants {
		o := &m.Participants[i]
		if o.TeamID != p.TeamID && o.TeamPosition == p.TeamPosition {
			return o
		}
	}
	return nil
}

// MatchParticipantRecord holds one player's stats for one match.
//
// Combat and economy counters that the extractor refuses to default to zero
// are pointers so an absent value is distinguishable from a genuine zero.
type MatchParticipantRecord struct {
	PUUID         string `json:"puuid"`
	ParticipantID int    `json:"participantId"`
	ChampionName  string `json:"championName"`
	TeamID        int    `json:"teamId"`
	TeamPosition  string `json:"teamPosition"`

	Win *bool `json:"win"`

	Kills                       *int `json:"kills"`
	Deaths                      *int `json:"deaths"`
	Assists                     *int `json:"assists"`
	GoldEarned                  *int `json:"goldEarned"`
	TotalDamageDealtToChampions *int `json:"totalDamageDealtToChampions"`

	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`
	DamageDealtToTurrets int `json:"damageDealtToTurrets"`
	ChampExperience      int `json:"champExperience"`
	VisionScore          int `json:"visionScore"`
	WardsPlaced          int `json:"wardsPlaced"`
	WardsKilled          int `json:"wardsKilled"`
	DetectorWardsPlaced  int `json:"detectorWardsPlaced"`

	EnemyMissingPings  int `json:"enemyMissingPings"`
	OnMyWayPings       int `json:"onMyWayPings"`
	AssistMePings      int `json:"assistMePings"`
	GetBackPings       int `json:"getBackPings"`
	AllInPings         int `json:"allInPings"`
	CommandPings       int `json:"commandPings"`
	PushPings          int `json:"pushPings"`
	VisionClearedPings int `json:"visionClearedPings"`
	NeedVisionPings    int `json:"needVisionPings"`
	HoldPings          int `json:"holdPings"`

	Spell1Casts int `json:"spell1Casts"`
	Spell2Casts int `json:"spell2Casts"`
	Spell3Casts int `json:"spell3Casts"`
	Spell4Casts int `json:"spell4Casts"`

	Challenges ChallengeMetrics `json:"challenges"`
}

// ChallengeMetrics is the pre-computed lane/vision/communication sub-record.
// Some fields feed the predictive feature vector, others are display-only;
// the split is enforced by the extractor, not here.
type ChallengeMetrics struct {
	EarlyLaningPhaseGoldExpAdvantage          float64 `json:"earlyLaningPhaseGoldExpAdvantage"`
	LaningPhaseGoldExpAdvantage               float64 `json:"laningPhaseGoldExpAdvantage"`
	MaxCsAdvantageOnLaneOpponent              float64 `json:"maxCsAdvantageOnLaneOpponent"`
	LaneMinionsFirst10Minutes                 float64 `json:"laneMinionsFirst10Minutes"`
	MaxLevelLeadLaneOpponent                  float64 `json:"maxLevelLeadLaneOpponent"`
	VisionScoreAdvantageLaneOpponent          float64 `json:"visionScoreAdvantageLaneOpponent"`
	ControlWardTimeCoverageInRiverOrEnemyHalf float64 `json:"controlWardTimeCoverageInRiverOrEnemyHalf"`
	ControlWardsPlaced                        float64 `json:"controlWardsPlaced"`
	SkillshotsHit                             float64 `json:"skillshotsHit"`
	SkillshotsDodged                          float64 `json:"skillshotsDodged"`
	SoloKills                                 float64 `json:"soloKills"`
	KillParticipation                         float64 `json:"killParticipation"`
	GoldPerMinute                             float64 `json:"goldPerMinute"`
	DamagePerMinute                           float64 `json:"damagePerMinute"`
	KDA                                       float64 `json:"kda"`
	TeamDamagePercentage                      float64 `json:"teamDamagePercentage"`
	DamageTakenOnTeamPercentage               float64 `json:"damageTakenOnTeamPercentage"`
	TurretPlatesTaken                         float64 `json:"turretPlatesTaken"`
	HadAfkTeammate                            float64 `json:"hadAfkTeammate"`
}
