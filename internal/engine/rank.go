package engine

import (
	"math"
	"sort"
	"strings"

	"wayfarer/internal/models/domain"
	"wayfarer/pkg/utils"
)

const (
	sweetSpotMinMinutes = 60
	sweetSpotMaxMinutes = 180
	safetyPenaltyCap    = 0.25
	affinityBonusCap    = 0.10
)

// Weights for the five ranking factors; they sum to at most 1.
type Weights struct {
	Pref      float64
	Time      float64
	Budget    float64
	Diversity float64
	Health    float64
}

func DefaultWeights(cfg *utils.Config) Weights {
	return Weights{
		Pref:      cfg.WeightPref,
		Time:      cfg.WeightTime,
		Budget:    cfg.WeightBudget,
		Diversity: cfg.WeightDiversity,
		Health:    cfg.WeightHealth,
	}
}

type RankMetrics struct {
	ModelVersion   string             `json:"model_version"`
	FactorAverages map[string]float64 `json:"factor_averages"`
}

// RankInput carries everything the ranker needs beyond the candidates
// themselves. Recent holds the last already-scheduled activities so the
// diversity factor can penalize theme and region repetition.
type RankInput struct {
	DailyCap   *float64
	Prefs      domain.Preferences
	Trip       domain.TripContext
	Affinities map[string]float64
	Recent     []domain.Candidate
	Scorer     PreferenceScorer
	Weights    Weights
}

func timeFit(durationMinutes, windowMinutes int) float64 {
	if durationMinutes > windowMinutes {
		return 0
	}
	if durationMinutes >= sweetSpotMinMinutes && durationMinutes <= sweetSpotMaxMinutes {
		return 1
	}
	if durationMinutes < sweetSpotMinMinutes {
		return float64(durationMinutes) / float64(sweetSpotMinMinutes)
	}
	over := float64(durationMinutes-sweetSpotMaxMinutes) / 240.0
	return math.Max(0.2, 1-over)
}

func budgetFit(cost float64, cap *float64) float64 {
	if cap == nil {
		return 0.5
	}
	if *cap <= 0 || cost > *cap {
		return 0
	}
	ratio := cost / *cap
	switch {
	case ratio >= 0.2 && ratio <= 0.8:
		return 1
	case ratio < 0.2:
		return 0.6 + 2*ratio
	default:
		return clamp01(1 - 3*(ratio-0.8))
	}
}

func diversityFit(c domain.Candidate, recent []domain.Candidate) float64 {
	if len(recent) == 0 {
		return 1
	}
	// Only the last 3 scheduled items matter.
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}

	repeats := 0
	for _, prev := range recent {
		if prev.Region != "" && prev.Region == c.Region {
			repeats++
			continue
		}
		for _, theme := range c.Themes {
			matched := false
			for _, pt := range prev.Themes {
				if pt == theme {
					repeats++
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
	}
	return clamp01(1 - float64(repeats)/3.0)
}

func healthFit(pace string, durationMinutes int) float64 {
	d := float64(durationMinutes)
	switch pace {
	case "light":
		return clamp01(1 - d/240)
	case "intense":
		return clamp01(d / 180)
	default:
		return clamp01(1 - math.Abs(d-120)/240)
	}
}

func safetyPenalty(c domain.Candidate, avoidTags []string) float64 {
	penalty := 0.0
	for _, flag := range c.SafetyFlags {
		if flag != "crowded" && flag != "late_night" {
			continue
		}
		for _, avoid := range avoidTags {
			if strings.Contains(strings.ToLower(flag), strings.ToLower(avoid)) ||
				strings.Contains(strings.ToLower(avoid), strings.ToLower(flag)) {
				penalty += 0.125
				break
			}
		}
	}
	return math.Min(penalty, safetyPenaltyCap)
}

func affinityBonus(c domain.Candidate, affinities map[string]float64) float64 {
	if len(affinities) == 0 {
		return 0
	}
	sum := 0.0
	n := 0
	for _, tag := range c.Tags {
		if a, ok := affinities[tag]; ok {
			sum += a
			n++
		}
	}
	if n == 0 {
		return 0
	}
	bonus := sum / float64(n) * affinityBonusCap
	return math.Max(-affinityBonusCap, math.Min(affinityBonusCap, bonus))
}

// Rank scores and orders candidates with the weighted five-factor model.
// The sort is stable and ties break on poi_id so identical inputs always
// produce identical output.
func Rank(candidates []domain.Candidate, in RankInput) ([]domain.Candidate, RankMetrics) {
	windowMinutes := utils.TimeToMinutes(in.Trip.DayTemplate.End) - utils.TimeToMinutes(in.Trip.DayTemplate.Start)

	sums := map[string]float64{}
	ranked := make([]domain.Candidate, len(candidates))

	for i, c := range candidates {
		pref := in.Scorer.Score(c, in.Trip, in.Prefs)
		tf := timeFit(c.DurationMinutes, windowMinutes)
		bf := budgetFit(c.EstimatedCost, in.DailyCap)
		df := diversityFit(c, in.Recent)
		hf := healthFit(in.Trip.DayTemplate.Pace, c.DurationMinutes)
		penalty := safetyPenalty(c, in.Prefs.AvoidTags)
		bonus := affinityBonus(c, in.Affinities)

		c.Score = in.Weights.Pref*pref +
			in.Weights.Time*tf +
			in.Weights.Budget*bf +
			in.Weights.Diversity*df +
			in.Weights.Health*hf -
			penalty + bonus
		ranked[i] = c

		sums["pref_fit"] += pref
		sums["time_fit"] += tf
		sums["budget_fit"] += bf
		sums["diversity"] += df
		sums["health_fit"] += hf
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PoiID < ranked[j].PoiID
	})

	averages := make(map[string]float64, len(sums))
	if len(candidates) > 0 {
		for k, v := range sums {
			averages[k] = v / float64(len(candidates))
		}
	}

	return ranked, RankMetrics{
		ModelVersion:   in.Scorer.Version(),
		FactorAverages: averages,
	}
}
