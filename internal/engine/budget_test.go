package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/domain"
)

func activity(id string, cost float64, durationMinutes int, tags ...string) domain.ScheduleItem {
	return domain.ScheduleItem{
		Type:            domain.ItemActivity,
		PoiID:           id,
		PlaceID:         "place_" + id,
		Title:           "POI " + id,
		EstimatedCost:   cost,
		DurationMinutes: durationMinutes,
		Tags:            tags,
	}
}

func swapCandidate(id string, cost float64, durationMinutes int, tags ...string) domain.Candidate {
	p := poiFixture(id, colombo)
	p.EstimatedCost = cost
	p.DurationMinutes = durationMinutes
	p.Tags = tags
	return domain.Candidate{POI: p}
}

func TestTagJaccard(t *testing.T) {
	assert.Zero(t, tagJaccard(nil, nil))
	assert.Equal(t, 1.0, tagJaccard([]string{"a", "b"}, []string{"b", "a"}))
	assert.InDelta(t, 1.0/3, tagJaccard([]string{"a", "b"}, []string{"b", "c"}), 1e-9)
}

func TestQualifiesAsSwap(t *testing.T) {
	original := activity("orig", 80, 120, "culture", "history")

	cheaperSimilar := swapCandidate("alt", 20, 110, "culture", "history")
	assert.True(t, qualifiesAsSwap(original, cheaperSimilar, domain.Preferences{}))

	dearer := swapCandidate("dear", 90, 120, "culture", "history")
	assert.False(t, qualifiesAsSwap(original, dearer, domain.Preferences{}))

	unrelated := swapCandidate("other", 20, 120, "beach")
	assert.False(t, qualifiesAsSwap(original, unrelated, domain.Preferences{}))

	tooLong := swapCandidate("long", 20, 200, "culture", "history")
	assert.False(t, qualifiesAsSwap(original, tooLong, domain.Preferences{}))

	avoided := swapCandidate("avoided", 20, 110, "culture", "crowded")
	prefs := domain.Preferences{AvoidTags: []string{"crowded"}}
	assert.False(t, qualifiesAsSwap(original, avoided, prefs))
}

func TestOptimizeBudgetSwapsExpensiveActivity(t *testing.T) {
	cap := 50.0
	plans := []domain.DayPlan{{
		Date: "2026-03-14",
		Items: []domain.ScheduleItem{
			activity("pricey", 80, 120, "culture", "history"),
			activity("cheap", 10, 60, "food"),
		},
	}}
	candidates := map[string][]domain.Candidate{
		"2026-03-14": {
			swapCandidate("alt", 20, 110, "culture", "history"),
			swapCandidate("alt_dearer", 30, 110, "culture", "history"),
		},
	}

	out, totals := OptimizeBudget(plans, tripFixture(), domain.Preferences{},
		domain.Constraints{DailyBudgetCap: &cap}, candidates)

	require.Len(t, out, 1)
	assert.LessOrEqual(t, out[0].ActivityCost(), cap)
	assert.Equal(t, out[0].ActivityCost(), totals.TripCostEst)

	// The cheapest qualifying alternative wins.
	ids := make([]string, 0)
	for _, it := range out[0].Activities() {
		ids = append(ids, it.PoiID)
	}
	assert.Contains(t, ids, "alt")
	assert.NotContains(t, ids, "pricey")

	require.NotEmpty(t, out[0].Notes)
	assert.Contains(t, out[0].Notes[0], "Swapped POI pricey")
	assert.Contains(t, out[0].Notes[0], "60.00")
}

func TestOptimizeBudgetWarnsWhenNoSwapQualifies(t *testing.T) {
	cap := 50.0
	plans := []domain.DayPlan{{
		Date: "2026-03-14",
		Items: []domain.ScheduleItem{
			activity("pricey", 80, 120, "culture"),
		},
	}}

	out, _ := OptimizeBudget(plans, tripFixture(), domain.Preferences{},
		domain.Constraints{DailyBudgetCap: &cap}, nil)

	require.Len(t, out, 1)
	require.NotEmpty(t, out[0].Notes)
	assert.Equal(t, budgetWarningNote, out[0].Notes[0])

	// The over-cap day is kept rather than silently truncated.
	assert.Len(t, out[0].Activities(), 1)
}

func TestOptimizeBudgetNeverTouchesLocks(t *testing.T) {
	cap := 50.0
	locked := activity("booked", 80, 120, "culture", "history")
	locked.Locked = true

	plans := []domain.DayPlan{{Date: "2026-03-14", Items: []domain.ScheduleItem{locked}}}
	candidates := map[string][]domain.Candidate{
		"2026-03-14": {swapCandidate("alt", 20, 110, "culture", "history")},
	}

	out, _ := OptimizeBudget(plans, tripFixture(), domain.Preferences{},
		domain.Constraints{DailyBudgetCap: &cap}, candidates)

	require.Len(t, out[0].Activities(), 1)
	assert.Equal(t, "booked", out[0].Activities()[0].PoiID)
}

func TestOptimizeBudgetNoCapPassesThrough(t *testing.T) {
	plans := []domain.DayPlan{{
		Date:  "2026-03-14",
		Items: []domain.ScheduleItem{activity("a", 500, 120, "culture")},
	}}

	out, totals := OptimizeBudget(plans, tripFixture(), domain.Preferences{}, domain.Constraints{}, nil)

	assert.Empty(t, out[0].Notes)
	assert.Equal(t, 500.0, totals.TripCostEst)
}

func TestOptimizeBudgetResetsAdjacentTransfers(t *testing.T) {
	cap := 50.0
	transfer := domain.ScheduleItem{
		Type: domain.ItemTransfer, FromPlaceID: "place_cheap", ToPlaceID: "place_pricey",
		Mode: "DRIVE", DurationMinutes: 12, DistanceKm: 8, Source: domain.SourceRoutesLive,
	}
	plans := []domain.DayPlan{{
		Date: "2026-03-14",
		Items: []domain.ScheduleItem{
			activity("cheap", 10, 60, "food"),
			transfer,
			activity("pricey", 80, 120, "culture", "history"),
		},
	}}
	candidates := map[string][]domain.Candidate{
		"2026-03-14": {swapCandidate("alt", 20, 110, "culture", "history")},
	}

	out, _ := OptimizeBudget(plans, tripFixture(), domain.Preferences{},
		domain.Constraints{DailyBudgetCap: &cap}, candidates)

	got := out[0].Items[1]
	require.Equal(t, domain.ItemTransfer, got.Type)
	assert.Equal(t, "place_alt", got.ToPlaceID)
	assert.Zero(t, got.DurationMinutes)
	assert.Equal(t, domain.SourceHeuristic, got.Source)
}

func TestComputeTotals(t *testing.T) {
	plans := []domain.DayPlan{
		{Date: "2026-03-14", Items: []domain.ScheduleItem{
			activity("a", 30, 60),
			{Type: domain.ItemTransfer, DurationMinutes: 15},
			activity("b", 20, 60),
		}},
		{Date: "2026-03-15", Items: []domain.ScheduleItem{activity("c", 10, 60)}},
	}

	totals := ComputeTotals(plans)

	assert.Equal(t, 60.0, totals.TripCostEst)
	assert.Equal(t, 15, totals.TripTransferMinutes)
	require.Len(t, totals.DailyCosts, 2)
	assert.Equal(t, 50.0, totals.DailyCosts[0].Cost)
	assert.Equal(t, 10.0, totals.DailyCosts[1].Cost)
}
