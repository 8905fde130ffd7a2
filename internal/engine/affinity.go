package engine

import (
	"math"
	"sort"
	"time"

	"wayfarer/internal/models/domain"
)

const (
	affinityAlpha       = 0.25
	affinityDecayPerDay = 0.02
)

// RatingWeight maps a 1-5 star rating onto [-1, +1]; 3 stars is neutral.
func RatingWeight(rating int) float64 {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	return float64(rating-3) / 2.0
}

// ComputeAffinities folds rated feedback events into a per-tag affinity table
// using an exponential moving average with daily decay toward zero. The table
// is ephemeral; it is recomputed on every feedback request.
func ComputeAffinities(events []domain.FeedbackEvent, now time.Time) map[string]float64 {
	sorted := make([]domain.FeedbackEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Ts.Before(sorted[j].Ts)
	})

	affinities := make(map[string]float64)
	var lastUpdate time.Time

	decayAll := func(from, to time.Time) {
		if from.IsZero() || !to.After(from) {
			return
		}
		days := to.Sub(from).Hours() / 24
		factor := math.Exp(-affinityDecayPerDay * days)
		for tag := range affinities {
			affinities[tag] *= factor
		}
	}

	for _, ev := range sorted {
		ts := ev.Ts
		if ts.IsZero() {
			ts = now
		}
		decayAll(lastUpdate, ts)

		weight := RatingWeight(ev.Rating)
		for _, tag := range ev.Tags {
			affinities[tag] = affinityAlpha*weight + (1-affinityAlpha)*affinities[tag]
		}
		lastUpdate = ts
	}

	decayAll(lastUpdate, now)

	return affinities
}
