package analysis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/champion"
	"github.com/Demoen/LoL-Win-Prediction-Analyzer/internal/models"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

// testMatch builds a complete single-participant-per-side match. Lux's Q,
// E and R are flagged as skillshots in the built-in table, so Spell1,
// Spell3 and Spell4 casts qualify.
func testMatch() *models.Match {
	return &models.Match{
		MatchID:             "EUW1_100",
		GameCreation:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		GameDurationSeconds: 1800,
		Participants: []models.MatchParticipantRecord{
			{
				PUUID:                       "player-1",
				ParticipantID:               1,
				ChampionName:                "Lux",
				TeamID:                      models.TeamBlue,
				TeamPosition:                "MIDDLE",
				Win:                         boolPtr(true),
				Kills:                       intPtr(7),
				Deaths:                      intPtr(2),
				Assists:                     intPtr(9),
				GoldEarned:                  intPtr(15000),
				TotalDamageDealtToChampions: intPtr(24000),
				VisionScore:                 30,
				WardsPlaced:                 12,
				WardsKilled:                 4,
				DetectorWardsPlaced:         3,
				Spell1Casts:                 3,
				Spell2Casts:                 40,
				Spell3Casts:                 2,
				Spell4Casts:                 0,
				Challenges: models.ChallengeMetrics{
					SkillshotsHit:      6,
					SkillshotsDodged:   8,
					ControlWardsPlaced: 3,
					SoloKills:          2,
					GoldPerMinute:      0, // triggers the fallback
				},
			},
			{
				PUUID:                       "enemy-1",
				ParticipantID:               6,
				ChampionName:                "Xerath",
				TeamID:                      models.TeamRed,
				TeamPosition:                "MIDDLE",
				Win:                         boolPtr(false),
				Kills:                       intPtr(2),
				Deaths:                      intPtr(7),
				Assists:                     intPtr(3),
				GoldEarned:                  intPtr(11000),
				TotalDamageDealtToChampions: intPtr(18000),
				Spell1Casts:                 10,
				Spell2Casts:                 5,
				Spell3Casts:                 4,
				Spell4Casts:                 1,
			},
		},
	}
}

func TestExtractSkillshotHitRateCapped(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	// 6 hits over 5 qualifying casts (3 Q + 2 E) caps at 100, not 120.
	extraction, err := extractor.Extract(testMatch(), "player-1")
	require.NoError(t, err)
	assert.Equal(t, 100.0, extraction.Record.Features.SkillshotHitRate)
}

func TestExtractSkillshotRatesZeroDenominator(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	match := testMatch()
	match.Participants[0].Spell1Casts = 0
	match.Participants[0].Spell3Casts = 0
	match.Participants[0].Spell4Casts = 0
	// Unknown champion: no enemy casts qualify either.
	match.Participants[1].ChampionName = "Garen"

	extraction, err := extractor.Extract(match, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, extraction.Record.Features.SkillshotHitRate)
	assert.Equal(t, 0.0, extraction.Record.Features.SkillshotDodgeRate)
}

func TestExtractSkillshotDodgeRate(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	// Xerath: all four slots are skillshots, 20 total enemy casts.
	extraction, err := extractor.Extract(testMatch(), "player-1")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, extraction.Record.Features.SkillshotDodgeRate, 1e-9)
}

func TestExtractGoldPerMinuteFallback(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	// Source value 0: recompute 15000 gold over 30 minutes.
	extraction, err := extractor.Extract(testMatch(), "player-1")
	require.NoError(t, err)
	assert.InDelta(t, 500.0, extraction.Record.GoldPerMinute, 1e-9)

	// Non-zero source value passes through unchanged.
	match := testMatch()
	match.Participants[0].Challenges.GoldPerMinute = 417.3
	extraction, err = extractor.Extract(match, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 417.3, extraction.Record.GoldPerMinute)
}

func TestExtractMissingFieldError(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	match := testMatch()
	match.Participants[0].Kills = nil

	_, err := extractor.Extract(match, "player-1")
	var missing *models.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "kills", missing.Field)
	assert.Equal(t, "EUW1_100", missing.MatchID)
}

func TestExtractParticipantNotFound(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())
	_, err := extractor.Extract(testMatch(), "nobody")
	assert.ErrorIs(t, err, models.ErrParticipantNotFound)
}

func TestExtractRatesWithinRange(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())
	extraction, err := extractor.Extract(testMatch(), "player-1")
	require.NoError(t, err)

	for _, rate := range []float64{
		extraction.Record.Features.SkillshotHitRate,
		extraction.Record.Features.SkillshotDodgeRate,
	} {
		assert.GreaterOrEqual(t, rate, 0.0)
		assert.LessOrEqual(t, rate, 100.0)
	}
}

func TestDisplayCompositeScores(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())
	extraction, err := extractor.Extract(testMatch(), "player-1")
	require.NoError(t, err)

	d := extraction.Display
	// dpm = 24000/30 = 800; aggression = (800/1000*0.7 + 2/5*0.3)*100 = 68
	assert.InDelta(t, 68.0, d.AggressionScore, 1e-9)
	// visionDominance = 30*1.5 + 3*5 + 4*2 = 68
	assert.InDelta(t, 68.0, d.VisionDominance, 1e-9)
	// combat = min(100, 24000/15000/2*100) = 80
	assert.InDelta(t, 80.0, d.CombatEfficiency, 1e-9)
	assert.LessOrEqual(t, d.AggressionScore, 100.0)
	assert.LessOrEqual(t, d.CombatEfficiency, 100.0)
}

func TestExtractBatchIsolatesFailures(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	good := testMatch()
	bad := testMatch()
	bad.MatchID = "EUW1_101"
	bad.Participants[0].GoldEarned = nil

	results := extractor.ExtractBatch(context.Background(), []*models.Match{good, bad}, "player-1", 2)
	require.Len(t, results, 2)
	assert.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Extraction)

	var missing *models.MissingFieldError
	require.True(t, errors.As(results[1].Err, &missing), "bad match must fail without aborting the batch")
	assert.Equal(t, "goldEarned", missing.Field)

	records := Records(results)
	require.Len(t, records, 1)
	assert.Equal(t, "EUW1_100", records[0].MatchID)
}

func TestRecordsSortedOldestFirst(t *testing.T) {
	extractor := NewExtractor(champion.DefaultTable(), testLogger())

	older := testMatch()
	older.MatchID = "EUW1_old"
	older.GameCreation = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	newer := testMatch()
	newer.MatchID = "EUW1_new"

	// Input newest-first; Records must emit oldest-first for training.
	results := extractor.ExtractBatch(context.Background(), []*models.Match{newer, older}, "player-1", 1)
	records := Records(results)
	require.Len(t, records, 2)
	assert.Equal(t, "EUW1_old", records[0].MatchID)
	assert.Equal(t, "EUW1_new", records[1].MatchID)
}

func TestBackfillLaningAdvantage(t *testing.T) {
	record := &models.FeatureRecord{}
	deltas := []models.FrameDelta{
		{Minute: 8, LaneGoldDelta: models.MetricOf(300), LaneXpDelta: models.MetricOf(150)},
		{Minute: 14, LaneGoldDelta: models.MetricOf(700), LaneXpDelta: models.MetricOf(400)},
	}

	BackfillLaningAdvantage(record, deltas)
	assert.InDelta(t, 450.0, record.Features.EarlyLaningGoldExpAdvantage, 1e-9)
	assert.InDelta(t, 1100.0, record.Features.LaningGoldExpAdvantage, 1e-9)

	// A non-zero source value is preserved.
	record2 := &models.FeatureRecord{}
	record2.Features.EarlyLaningGoldExpAdvantage = 99
	BackfillLaningAdvantage(record2, deltas)
	assert.Equal(t, 99.0, record2.Features.EarlyLaningGoldExpAdvantage)
}
