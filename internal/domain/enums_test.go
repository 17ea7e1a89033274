package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionStatus_Variants(t *testing.T) {
	cases := map[string]SessionStatus{
		"In Progress": StatusInProgress,
		"in_progress": StatusInProgress,
		"in-progress": StatusInProgress,
		"completed":   StatusCompleted,
		" Blocked ":   StatusBlocked,
	}
	for in, want := range cases {
		got, err := ParseSessionStatus(in)
		require.NoError(t, err, "input=%q", in)
		assert.Equal(t, want, got, "input=%q", in)
	}

	_, err := ParseSessionStatus("abandoned")
	assert.Error(t, err)
}

func TestParseItemType(t *testing.T) {
	got, err := ParseItemType("project")
	require.NoError(t, err)
	assert.Equal(t, ItemProject, got)

	_, err = ParseItemType("kata")
	assert.Error(t, err)
}

func TestParseDifficulty(t *testing.T) {
	got, err := ParseDifficulty("EXPERT")
	require.NoError(t, err)
	assert.Equal(t, DifficultyExpert, got)
}

func TestScoringConfig_MissingKeysDefaultToOne(t *testing.T) {
	var cfg ScoringConfig
	assert.Equal(t, 1.0, cfg.DifficultyWeight("Intermediate"))
	assert.Equal(t, 1.0, cfg.StatusMultiplier("Completed"))

	cfg = ScoringConfig{DifficultyWeights: map[string]float64{"Expert": 2}}
	assert.Equal(t, 2.0, cfg.DifficultyWeight("Expert"))
	assert.Equal(t, 1.0, cfg.DifficultyWeight("Beginner"))
}

func TestDateOf_UsesCalendarDateOfLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 2025-03-01 02:00 in UTC+9 is still 2025-02-28 in UTC.
	ts := time.Date(2025, 3, 1, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), DateOf(ts))
}

func TestAliasSet(t *testing.T) {
	s := NewAliasSet("Two Sum", "two-sum", "", "two-sum")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("Two Sum"))
	assert.Equal(t, []string{"Two Sum", "two-sum"}, s.Sorted())
}

func TestRemainingHours(t *testing.T) {
	w := &WorkItem{TargetHours: 10, Stats: ItemStats{TotalHours: 4}}
	assert.Equal(t, 6.0, w.RemainingHours())
	w.Stats.TotalHours = 12
	assert.Equal(t, 0.0, w.RemainingHours())
}
