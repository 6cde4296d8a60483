package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFeatureVectorOrderContract verifies Values() emits fields in the
// exact order FeatureNames() declares, by setting each field to a distinct
// sentinel and checking positions.
func TestFeatureVectorOrderContract(t *testing.T) {
	v := FeatureVector{}
	rv := reflect.ValueOf(&v).Elem()
	require.Equal(t, FeatureCount, rv.NumField())

	for i := 0; i < rv.NumField(); i++ {
		rv.Field(i).SetFloat(float64(i + 1))
	}

	values := v.Values()
	require.Len(t, values, FeatureCount)
	for i, val := range values {
		assert.Equal(t, float64(i+1), val, "field %d out of order", i)
	}

	names := FeatureNames()
	require.Len(t, names, FeatureCount)
	for i := 0; i < rv.NumField(); i++ {
		tag := reflect.TypeOf(v).Field(i).Tag.Get("json")
		assert.Equal(t, names[i], tag, "feature name %d disagrees with struct tag", i)
	}
}

// TestPredictiveDisplayIsolation verifies no display-only field name can
// appear in the predictive vector.
func TestPredictiveDisplayIsolation(t *testing.T) {
	predictive := make(map[string]bool)
	for _, name := range FeatureNames() {
		predictive[name] = true
	}

	dt := reflect.TypeOf(DisplayStats{})
	for i := 0; i < dt.NumField(); i++ {
		tag := dt.Field(i).Tag.Get("json")
		assert.False(t, predictive[tag], "display field %q leaked into the predictive vector", tag)
	}
}

// TestFeatureCategoriesCoverAllFeatures verifies the category rollup maps
// every predictive feature exactly once.
func TestFeatureCategoriesCoverAllFeatures(t *testing.T) {
	seen := make(map[string]int)
	for _, members := range FeatureCategories {
		for _, name := range members {
			seen[name]++
		}
	}

	for _, name := range FeatureNames() {
		assert.Equal(t, 1, seen[name], "feature %q must belong to exactly one category", name)
	}
	assert.Len(t, seen, FeatureCount)
}

func TestMetricMarshalJSON(t *testing.T) {
	data, err := json.Marshal(MetricOf(42.5))
	require.NoError(t, err)
	assert.Equal(t, "42.5", string(data))

	data, err = json.Marshal(Unavailable())
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestMetricUnmarshalJSON(t *testing.T) {
	var m Metric
	require.NoError(t, json.Unmarshal([]byte("null"), &m))
	assert.False(t, m.Available)

	require.NoError(t, json.Unmarshal([]byte("7.25"), &m))
	assert.True(t, m.Available)
	assert.Equal(t, 7.25, m.Value)
}

func TestLaneOpponent(t *testing.T) {
	match := &Match{
		Participants: []MatchParticipantRecord{
			{PUUID: "me", TeamID: TeamBlue, TeamPosition: "MIDDLE", ParticipantID: 1},
			{PUUID: "ally", TeamID: TeamBlue, TeamPosition: "TOP", ParticipantID: 2},
			{PUUID: "enemy-mid", TeamID: TeamRed, TeamPosition: "MIDDLE", ParticipantID: 6},
		},
	}

	me := match.Participant("me")
	require.NotNil(t, me)

	opp := match.LaneOpponent(me)
	require.NotNil(t, opp)
	assert.Equal(t, "enemy-mid", opp.PUUID)

	// No role assignment (e.g. ARAM) means no lane opponent.
	me.TeamPosition = ""
	assert.Nil(t, match.LaneOpponent(me))
}
