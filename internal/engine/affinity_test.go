package engine

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"wayfarer/internal/models/domain"
)

func TestRatingWeight(t *testing.T) {
	assert.Equal(t, 1.0, RatingWeight(5))
	assert.Equal(t, 0.5, RatingWeight(4))
	assert.Equal(t, 0.0, RatingWeight(3))
	assert.Equal(t, -0.5, RatingWeight(2))
	assert.Equal(t, -1.0, RatingWeight(1))

	// Out-of-range ratings clamp instead of exploding.
	assert.Equal(t, 1.0, RatingWeight(9))
	assert.Equal(t, -1.0, RatingWeight(0))
}

func TestComputeAffinitiesSingleEvent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []domain.FeedbackEvent{
		{PoiID: "a", Rating: 5, Tags: []string{"food"}, Ts: now},
	}

	got := ComputeAffinities(events, now)
	assert.InDelta(t, 0.25, got["food"], 1e-9)
}

func TestComputeAffinitiesDecays(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []domain.FeedbackEvent{
		{PoiID: "a", Rating: 5, Tags: []string{"food"}, Ts: now.AddDate(0, 0, -30)},
	}

	got := ComputeAffinities(events, now)
	want := 0.25 * math.Exp(-0.02*30)
	assert.InDelta(t, want, got["food"], 1e-6)
}

func TestComputeAffinitiesNegativeRatings(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	events := []domain.FeedbackEvent{
		{PoiID: "a", Rating: 1, Tags: []string{"crowded"}, Ts: now},
	}

	got := ComputeAffinities(events, now)
	assert.InDelta(t, -0.25, got["crowded"], 1e-9)
}

func TestComputeAffinitiesOrderIndependent(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	early := domain.FeedbackEvent{PoiID: "a", Rating: 5, Tags: []string{"food"}, Ts: now.AddDate(0, 0, -10)}
	late := domain.FeedbackEvent{PoiID: "b", Rating: 2, Tags: []string{"food"}, Ts: now}

	forward := ComputeAffinities([]domain.FeedbackEvent{early, late}, now)
	reversed := ComputeAffinities([]domain.FeedbackEvent{late, early}, now)

	assert.InDelta(t, forward["food"], reversed["food"], 1e-9)
}
