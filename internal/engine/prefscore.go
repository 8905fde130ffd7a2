package engine

import (
	"wayfarer/internal/models/domain"
)

// PreferenceScorer is the pluggable preference-fit strategy. A learned model
// can replace the heuristic at startup; both must return calibrated [0,1].
type PreferenceScorer interface {
	Score(c domain.Candidate, trip domain.TripContext, prefs domain.Preferences) float64
	Version() string
}

// HeuristicPrefScorer is the deterministic fallback: Jaccard similarity
// between candidate tags and the union of preferred themes and tags.
type HeuristicPrefScorer struct{}

func NewHeuristicPrefScorer() PreferenceScorer {
	return &HeuristicPrefScorer{}
}

func (s *HeuristicPrefScorer) Version() string {
	return "fallback_rule_v0"
}

func (s *HeuristicPrefScorer) Score(c domain.Candidate, trip domain.TripContext, prefs domain.Preferences) float64 {
	avoid := make(map[string]bool, len(prefs.AvoidTags))
	for _, t := range prefs.AvoidTags {
		avoid[t] = true
	}

	candidateTags := make(map[string]bool, len(c.Tags))
	for _, t := range c.Tags {
		if avoid[t] {
			return 0
		}
		candidateTags[t] = true
	}

	preferred := make(map[string]bool, len(prefs.Themes)+len(prefs.ActivityTags))
	for _, t := range prefs.Themes {
		preferred[t] = true
	}
	for _, t := range prefs.ActivityTags {
		preferred[t] = true
	}

	if len(preferred) == 0 {
		return 0.5
	}
	if len(candidateTags) == 0 {
		// Slight penalty for untagged POIs.
		return 0.3
	}

	intersection := 0
	for t := range candidateTags {
		if preferred[t] {
			intersection++
		}
	}
	union := len(candidateTags) + len(preferred) - intersection

	score := float64(intersection) / float64(union)

	if candidateTags["local"] && candidateTags["food"] {
		score += 0.1
	}
	if candidateTags["culture"] && candidateTags["history"] {
		score += 0.1
	}
	if candidateTags["nature"] && candidateTags["quiet"] {
		score += 0.1
	}
	if candidateTags["crowded"] && preferred["quiet"] {
		score -= 0.2
	}

	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
