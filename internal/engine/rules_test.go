package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"wayfarer/internal/models/domain"
)

func candidateFixture(id string) domain.Candidate {
	return domain.Candidate{POI: poiFixture(id, colombo)}
}

func dropReasons(dropLog []domain.DropEntry) map[string]string {
	out := make(map[string]string, len(dropLog))
	for _, d := range dropLog {
		out[d.PoiID] = d.Reason
	}
	return out
}

func TestFilterDropsAvoidTags(t *testing.T) {
	c := candidateFixture("spicy")
	c.Tags = []string{"street_food"}

	prefs := domain.Preferences{AvoidTags: []string{"street_food"}}
	kept, dropLog := FilterCandidates([]domain.Candidate{c}, tripFixture(), prefs, domain.Constraints{}, nil)

	assert.Empty(t, kept)
	require.Len(t, dropLog, 1)
	assert.Equal(t, "avoid_tag:street_food", dropLog[0].Reason)
}

func TestFilterAvoidTagMatchesFuzzily(t *testing.T) {
	c := candidateFixture("market")
	c.Tags = []string{"night_market_food"}

	prefs := domain.Preferences{AvoidTags: []string{"market"}}
	kept, dropLog := FilterCandidates([]domain.Candidate{c}, tripFixture(), prefs, domain.Constraints{}, nil)

	assert.Empty(t, kept)
	require.Len(t, dropLog, 1)
}

func TestFilterDropsOutOfSeason(t *testing.T) {
	julyOnly := candidateFixture("whales")
	julyOnly.Seasonality = []string{"Jul"}

	allYear := candidateFixture("temple")
	allYear.Seasonality = []string{"All"}

	// Trip runs in March.
	kept, dropLog := FilterCandidates(
		[]domain.Candidate{julyOnly, allYear}, tripFixture(), domain.Preferences{}, domain.Constraints{}, nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "temple", kept[0].PoiID)
	assert.Equal(t, ReasonBadSeason, dropReasons(dropLog)["whales"])
}

func TestFilterDropsClosedOnAllTripDays(t *testing.T) {
	// Trip days are Sat and Sun; open Monday only.
	monOnly := candidateFixture("museum")
	monOnly.OpeningHours = map[string][]domain.OpeningSpan{
		"mon": {{Open: "09:00", Close: "17:00"}},
	}

	kept, dropLog := FilterCandidates(
		[]domain.Candidate{monOnly}, tripFixture(), domain.Preferences{}, domain.Constraints{}, nil)

	assert.Empty(t, kept)
	assert.Equal(t, ReasonClosed, dropReasons(dropLog)["museum"])
}

func TestFilterDropsTransferPrecheck(t *testing.T) {
	far := candidateFixture("far")
	far.DistanceKm = 50 // 75 minutes at DRIVE speed

	maxTransfer := 30
	cons := domain.Constraints{MaxTransferMinutes: &maxTransfer}
	kept, dropLog := FilterCandidates(
		[]domain.Candidate{far}, tripFixture(), domain.Preferences{}, cons, nil)

	assert.Empty(t, kept)
	assert.Equal(t, ReasonTransferExceeds, dropReasons(dropLog)["far"])
}

func TestFilterSafetyGateOnLightPace(t *testing.T) {
	hike := candidateFixture("hike")
	hike.DurationMinutes = 200

	animals := candidateFixture("safari")
	animals.SafetyFlags = []string{"wild_animals"}

	short := candidateFixture("cafe")
	short.DurationMinutes = 60

	trip := tripFixture()
	trip.DayTemplate.Pace = "light"

	kept, dropLog := FilterCandidates(
		[]domain.Candidate{hike, animals, short}, trip, domain.Preferences{}, domain.Constraints{}, nil)

	require.Len(t, kept, 1)
	assert.Equal(t, "cafe", kept[0].PoiID)
	reasons := dropReasons(dropLog)
	assert.Equal(t, ReasonSafetyGate, reasons["hike"])
	assert.Equal(t, ReasonSafetyGate, reasons["safari"])
}

func TestFilterSafetyGateOnlyAppliesToLightPace(t *testing.T) {
	hike := candidateFixture("hike")
	hike.DurationMinutes = 200

	kept, _ := FilterCandidates(
		[]domain.Candidate{hike}, tripFixture(), domain.Preferences{}, domain.Constraints{}, nil)

	assert.Len(t, kept, 1)
}

func TestFilterLockedCandidatesBypassRules(t *testing.T) {
	locked := candidateFixture("booked")
	locked.Tags = []string{"crowded"}
	locked.Seasonality = []string{"Jul"}

	prefs := domain.Preferences{AvoidTags: []string{"crowded"}}
	kept, dropLog := FilterCandidates(
		[]domain.Candidate{locked}, tripFixture(), prefs, domain.Constraints{},
		map[string]bool{"booked": true})

	assert.Len(t, kept, 1)
	assert.Empty(t, dropLog)
}
