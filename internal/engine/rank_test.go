package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/domain"
	"wayfarer/pkg/utils"
)

func testWeights() Weights {
	return Weights{Pref: 0.30, Time: 0.20, Budget: 0.20, Diversity: 0.15, Health: 0.15}
}

func rankInputFixture() RankInput {
	return RankInput{
		Trip:    tripFixture(),
		Scorer:  NewHeuristicPrefScorer(),
		Weights: testWeights(),
	}
}

func TestTimeFit(t *testing.T) {
	window := 9 * 60

	tests := []struct {
		name     string
		duration int
		want     float64
	}{
		{"sweet spot low edge", 60, 1},
		{"sweet spot high edge", 180, 1},
		{"short visit scales linearly", 30, 0.5},
		{"long visit decays", 300, 0.5},
		{"exceeds window", window + 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeFit(tt.duration, window), 1e-9)
		})
	}
}

func TestTimeFitFloor(t *testing.T) {
	// Extremely long visits bottom out at 0.2 while they still fit.
	window := 24 * 60
	assert.InDelta(t, 0.2, timeFit(500, window), 1e-9)
}

func TestBudgetFit(t *testing.T) {
	cap := 100.0

	assert.Equal(t, 0.5, budgetFit(40, nil))
	assert.Equal(t, 0.0, budgetFit(120, &cap))
	assert.Equal(t, 1.0, budgetFit(50, &cap))
	assert.InDelta(t, 0.8, budgetFit(10, &cap), 1e-9)
	assert.InDelta(t, 0.7, budgetFit(90, &cap), 1e-9)
}

func TestDiversityFitPenalizesRepeats(t *testing.T) {
	beach := domain.Candidate{POI: domain.POI{PoiID: "b", Region: "south", Themes: []string{"Beach"}}}

	assert.Equal(t, 1.0, diversityFit(beach, nil))

	sameRegion := domain.Candidate{POI: domain.POI{PoiID: "r", Region: "south"}}
	got := diversityFit(beach, []domain.Candidate{sameRegion})
	assert.InDelta(t, 1-1.0/3, got, 1e-9)

	// Only the last three scheduled items count.
	old := domain.Candidate{POI: domain.POI{PoiID: "old", Region: "south"}}
	fresh := domain.Candidate{POI: domain.POI{PoiID: "f", Region: "north"}}
	got = diversityFit(beach, []domain.Candidate{old, fresh, fresh, fresh})
	assert.Equal(t, 1.0, got)
}

func TestHealthFit(t *testing.T) {
	assert.InDelta(t, 0.5, healthFit("light", 120), 1e-9)
	assert.InDelta(t, 1.0, healthFit("intense", 180), 1e-9)
	assert.InDelta(t, 1.0, healthFit("moderate", 120), 1e-9)
	assert.InDelta(t, 0.75, healthFit("moderate", 60), 1e-9)
}

func TestSafetyPenaltyIsCapped(t *testing.T) {
	c := domain.Candidate{POI: domain.POI{
		SafetyFlags: []string{"crowded", "late_night"},
	}}

	assert.Zero(t, safetyPenalty(c, nil))

	got := safetyPenalty(c, []string{"crowded", "late_night"})
	assert.InDelta(t, 0.25, got, 1e-9)
}

func TestAffinityBonusClamped(t *testing.T) {
	c := domain.Candidate{POI: domain.POI{Tags: []string{"food", "local"}}}

	assert.Zero(t, affinityBonus(c, nil))

	bonus := affinityBonus(c, map[string]float64{"food": 1, "local": 1})
	assert.InDelta(t, 0.10, bonus, 1e-9)

	malus := affinityBonus(c, map[string]float64{"food": -1, "local": -1})
	assert.InDelta(t, -0.10, malus, 1e-9)
}

func TestRankIsDeterministic(t *testing.T) {
	candidates := []domain.Candidate{
		{POI: poiFixture("b", colombo)},
		{POI: poiFixture("a", colombo)},
		{POI: poiFixture("c", colombo)},
	}

	in := rankInputFixture()
	first, _ := Rank(candidates, in)
	second, _ := Rank(candidates, in)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].PoiID, second[i].PoiID)
		assert.Equal(t, first[i].Score, second[i].Score)
	}

	// Identical scores break ties on poi_id.
	assert.Equal(t, "a", first[0].PoiID)
	assert.Equal(t, "b", first[1].PoiID)
	assert.Equal(t, "c", first[2].PoiID)
}

func TestRankMetrics(t *testing.T) {
	candidates := []domain.Candidate{{POI: poiFixture("a", colombo)}}

	_, metrics := Rank(candidates, rankInputFixture())

	assert.Equal(t, "fallback_rule_v0", metrics.ModelVersion)
	for _, key := range []string{"pref_fit", "time_fit", "budget_fit", "diversity", "health_fit"} {
		assert.Contains(t, metrics.FactorAverages, key)
	}
}

func TestDefaultWeightsReadConfig(t *testing.T) {
	cfg := &utils.Config{
		WeightPref: 0.4, WeightTime: 0.2, WeightBudget: 0.2,
		WeightDiversity: 0.1, WeightHealth: 0.1,
	}
	w := DefaultWeights(cfg)
	assert.Equal(t, 0.4, w.Pref)
	assert.Equal(t, 0.1, w.Health)
}
