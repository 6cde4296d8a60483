package models

// TimelineFrame is one participant's positional/economic snapshot at one
// ~60s tick.
type TimelineFrame struct {
	ParticipantID int     `json:"participantId"`
	Timestamp     int64   `json:"timestamp"` // ms since match start
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	TotalGold     float64 `json:"totalGold"`
	XP            float64 `json:"xp"`
}

// TimelineSeries is the full frame set for one match, keyed by participant,
// with each participant's frames ordered by timestamp. Frame counts may
// differ by a tick across participants due to sampling jitter; consumers
// align by nearest timestamp, never by array position.
type TimelineSeries struct {
	MatchID string                  `json:"matchId"`
	Frames  map[int][]TimelineFrame `json:"frames"`
	Teams   map[int]int             `json:"teams"` // participantId -> teamId
}

// ParticipantFrames returns a participant's ordered frames, or nil.
func (s *TimelineSeries) ParticipantFrames(participantID int) []TimelineFrame {
	if s == nil {
		return nil
	}
	return s.Frames[participantID]
}

// TerritorialSummary holds the territorial metrics derived from one match's
// timeline. Every field is a Metric: a series with fewer than two frames
// yields all-unavailable, never zeros.
type TerritorialSummary struct {
	MatchID              string `json:"matchId"`
	EnemyTerritoryPct    Metric `json:"timeInEnemyTerritoryPct"`
	JungleInvasionPct    Metric `json:"jungleInvasionPct"`
	RiverControlPct      Metric `json:"riverControlPct"`
	ForwardPositionScore Metric `json:"forwardPositioningScore"`
	FrameCount           int    `json:"frameCount"`
}

// Available reports whether the summary carries usable metrics.
func (t *TerritorialSummary) Available() bool {
	return t != nil && t.EnemyTerritoryPct.Available
}

// AggregatedTerritory is the cross-match mean of territorial summaries with
// sample-size tracking.
type AggregatedTerritory struct {
	EnemyTerritoryPct    Metric `json:"timeInEnemyTerritoryPct"`
	JungleInvasionPct    Metric `json:"jungleInvasionPct"`
	RiverControlPct      Metric `json:"riverControlPct"`
	ForwardPositionScore Metric `json:"forwardPositioningScore"`
	SampleSize           int    `json:"sampleSize"`
}

// FrameDelta is one point of the per-frame economic delta series. Gold/XP
// deltas are against the all-participant mean at the aligned timestamp;
// lane deltas are against the identified lane opponent and are unavailable
// when no opponent exists or no frame aligns.
type FrameDelta struct {
	Minute        int     `json:"minute"`
	Timestamp     int64   `json:"timestamp"`
	GoldDelta     float64 `json:"goldDelta"`
	XpDelta       float64 `json:"xpDelta"`
	LaneGoldDelta Metric  `json:"laneGoldDelta"`
	LaneXpDelta   Metric  `json:"laneXpDelta"`
}

// LaneLeadSample is one match's (gold lead, xp lead) pair at the target
// minute.
type LaneLeadSample struct {
	MatchID  string  `json:"matchId"`
	GoldLead float64 `json:"goldLead"`
	XpLead   float64 `json:"xpLead"`
}

// AggregatedLaneLead reduces a bounded window of recent LaneLeadSamples to
// a mean with sample-size tracking. SampleSize 0 means "no timeline data";
// both leads are then unavailable, and consumers must not read them as 0.
type AggregatedLaneLead struct {
	GoldLead   Metric `json:"laneGoldLeadAt14"`
	XpLead     Metric `json:"laneXpLeadAt14"`
	SampleSize int    `json:"laneLeadSampleSize"`
}
