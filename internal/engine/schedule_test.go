package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/domain"
)

func packConfigFixture() PackConfig {
	return PackConfig{MaxItemsPerDay: 4, BreakAfterMinutes: 180, BreakMinutes: 30}
}

func schedulable(id string, coords domain.Coords, durationMinutes int, cost float64) domain.Candidate {
	p := poiFixture(id, coords)
	p.DurationMinutes = durationMinutes
	p.EstimatedCost = cost
	return domain.Candidate{POI: p, OpeningAlign: 0.5, Score: 0.5}
}

func byPoiIDIndex(cs []domain.Candidate) map[string]domain.Candidate {
	out := make(map[string]domain.Candidate, len(cs))
	for _, c := range cs {
		out[c.PoiID] = c
	}
	return out
}

func packInputFixture(ranked []domain.Candidate, locks []domain.Lock) PackDayInput {
	return PackDayInput{
		Date:    "2026-03-14",
		Ranked:  ranked,
		Locks:   locks,
		Day:     domain.DayTemplate{Start: "09:00", End: "18:00", Pace: "moderate"},
		Mode:    "DRIVE",
		Used:    make(map[string]bool),
		ByPoiID: byPoiIDIndex(ranked),
	}
}

func TestPackDayPlacesLocksAtTheirTimes(t *testing.T) {
	lunch := schedulable("lunch", colombo, 60, 15)
	other := schedulable("walk", colombo, 120, 0)

	in := packInputFixture([]domain.Candidate{lunch, other}, []domain.Lock{{
		Date: "2026-03-14", PoiID: "lunch", PlaceID: "place_lunch",
		Title: "Lunch", Start: "12:00", End: "13:00",
	}})

	items := PackDay(in, packConfigFixture())

	var lock *domain.ScheduleItem
	for i := range items {
		if items[i].PoiID == "lunch" {
			lock = &items[i]
		}
	}
	require.NotNil(t, lock)
	assert.True(t, lock.Locked)
	assert.Equal(t, "12:00", lock.Start)
	assert.Equal(t, "13:00", lock.End)
}

func TestPackDayLockOutsideCatalogKeepsCallerFields(t *testing.T) {
	in := packInputFixture(nil, []domain.Lock{{
		Date: "2026-03-14", PoiID: "external", PlaceID: "place_external",
		Title: "Booked tour", Start: "10:00", End: "12:00",
	}})

	items := PackDay(in, packConfigFixture())

	require.Len(t, items, 1)
	assert.Equal(t, "Booked tour", items[0].Title)
	assert.Equal(t, "place_external", items[0].PlaceID)
	assert.True(t, items[0].Locked)
}

func TestPackDayBracketsTransfersBetweenDistinctPlaces(t *testing.T) {
	a := schedulable("a", colombo, 120, 0)
	b := schedulable("b", domain.Coords{Lat: 6.95, Lng: 79.87}, 120, 0)

	items := PackDay(packInputFixture([]domain.Candidate{a, b}, nil), packConfigFixture())

	var transfers []domain.ScheduleItem
	for _, it := range items {
		if it.Type == domain.ItemTransfer {
			transfers = append(transfers, it)
		}
	}
	require.Len(t, transfers, 1)
	assert.NotEmpty(t, transfers[0].FromPlaceID)
	assert.NotEmpty(t, transfers[0].ToPlaceID)
	assert.NotEqual(t, transfers[0].FromPlaceID, transfers[0].ToPlaceID)

	// A trailing transfer with no following activity is trimmed.
	assert.NotEqual(t, domain.ItemTransfer, items[len(items)-1].Type)
}

func TestPackDayInsertsBreakAfterSustainedActivity(t *testing.T) {
	ranked := []domain.Candidate{
		schedulable("one", colombo, 120, 0),
		schedulable("two", colombo, 120, 0),
		schedulable("three", colombo, 120, 0),
	}

	items := PackDay(packInputFixture(ranked, nil), packConfigFixture())

	var hasBreak bool
	for _, it := range items {
		if it.Type == domain.ItemBreak {
			hasBreak = true
			assert.Equal(t, 30, it.DurationMinutes)
		}
	}
	assert.True(t, hasBreak)
}

func TestPackDayRespectsMaxItems(t *testing.T) {
	var ranked []domain.Candidate
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		ranked = append(ranked, schedulable(id, colombo, 60, 0))
	}

	cfg := packConfigFixture()
	cfg.BreakAfterMinutes = 600 // keep breaks out of this scenario
	items := PackDay(packInputFixture(ranked, nil), cfg)

	activities := 0
	for _, it := range items {
		if it.Type == domain.ItemActivity {
			activities++
		}
	}
	assert.Equal(t, cfg.MaxItemsPerDay, activities)
}

func TestPackDayRespectsDailyCap(t *testing.T) {
	cap := 50.0
	in := packInputFixture([]domain.Candidate{
		schedulable("pricey", colombo, 60, 40),
		schedulable("also_pricey", colombo, 60, 30),
		schedulable("free", colombo, 60, 0),
	}, nil)
	in.DailyCap = &cap

	items := PackDay(in, packConfigFixture())

	total := 0.0
	for _, it := range items {
		if it.Type == domain.ItemActivity {
			total += it.EstimatedCost
		}
	}
	assert.LessOrEqual(t, total, cap)
}

func TestPackDayNeverDuplicatesAcrossDays(t *testing.T) {
	ranked := []domain.Candidate{
		schedulable("a", colombo, 120, 0),
		schedulable("b", colombo, 120, 0),
		schedulable("c", colombo, 120, 0),
		schedulable("d", colombo, 120, 0),
	}

	used := make(map[string]bool)
	dayOne := packInputFixture(ranked, nil)
	dayOne.Used = used
	dayTwo := packInputFixture(ranked, nil)
	dayTwo.Date = "2026-03-15"
	dayTwo.Used = used

	seen := make(map[string]int)
	for _, items := range [][]domain.ScheduleItem{
		PackDay(dayOne, packConfigFixture()),
		PackDay(dayTwo, packConfigFixture()),
	} {
		for _, it := range items {
			if it.Type == domain.ItemActivity {
				seen[it.PoiID]++
			}
		}
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "poi %s scheduled more than once", id)
	}
}

func TestPackDaySkipsClosedIntervals(t *testing.T) {
	closed := schedulable("closed", colombo, 60, 0)
	closed.OpeningHours = map[string][]domain.OpeningSpan{
		"sun": {{Open: "09:00", Close: "17:00"}},
	}

	// 2026-03-14 is a Saturday.
	items := PackDay(packInputFixture([]domain.Candidate{closed}, nil), packConfigFixture())
	assert.Empty(t, items)
}

func TestValidateLocks(t *testing.T) {
	ok := []domain.Lock{
		{Date: "2026-03-14", Start: "09:00", End: "10:00"},
		{Date: "2026-03-14", Start: "10:00", End: "11:00"},
		{Date: "2026-03-15", Start: "09:30", End: "10:30"},
	}
	assert.True(t, ValidateLocks(ok))

	overlapping := []domain.Lock{
		{Date: "2026-03-14", Start: "09:00", End: "11:00"},
		{Date: "2026-03-14", Start: "10:00", End: "12:00"},
	}
	assert.False(t, ValidateLocks(overlapping))
}
