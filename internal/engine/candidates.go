package engine

import (
	"sort"
	"strings"

	"wayfarer/internal/models/domain"
	"wayfarer/pkg/utils"
)

// Default fallbacks when the trip context cannot be resolved against the
// catalog: Colombo city centre.
var defaultBaseCoords = domain.Coords{Lat: 6.9271, Lng: 79.8612}

const defaultMinPrefiltered = 50

// DefaultRadiusKm derives the candidate search radius from pace when the
// caller did not set one explicitly.
func DefaultRadiusKm(pace string) float64 {
	switch pace {
	case "light":
		return 25
	case "intense":
		return 80
	}
	return 50
}

// ResolveBaseCoords looks the trip base up in the catalog by place_id.
func ResolveBaseCoords(catalog []domain.POI, basePlaceID string) domain.Coords {
	for _, poi := range catalog {
		if poi.PlaceID == basePlaceID {
			return poi.Coords
		}
	}
	return defaultBaseCoords
}

// ThemeOverlapCount counts exact matches between the POI's themes/tags and
// the preferred themes/activity tags.
func ThemeOverlapCount(poi domain.POI, prefs domain.Preferences) int {
	count := 0
	for _, t := range poi.Themes {
		for _, want := range prefs.Themes {
			if t == want {
				count++
			}
		}
	}
	for _, t := range poi.Tags {
		for _, want := range prefs.ActivityTags {
			if t == want {
				count++
			}
		}
	}
	return count
}

func fuzzyTagMatch(have []string, want []string) bool {
	for _, w := range want {
		lw := strings.ToLower(w)
		for _, h := range have {
			lh := strings.ToLower(h)
			if strings.Contains(lh, lw) || strings.Contains(lw, lh) {
				return true
			}
		}
	}
	return false
}

func prefilterByThemesTags(pois []domain.POI, prefs domain.Preferences, minRequired int) []domain.POI {
	if len(prefs.Themes) == 0 && len(prefs.ActivityTags) == 0 {
		return pois
	}

	var filtered []domain.POI
	for _, poi := range pois {
		if ThemeOverlapCount(poi, prefs) > 0 ||
			fuzzyTagMatch(poi.Themes, prefs.Themes) ||
			fuzzyTagMatch(poi.Tags, prefs.ActivityTags) {
			filtered = append(filtered, poi)
		}
	}

	// Thin matches starve multi-day scheduling; fall back to the whole
	// regional set and let ranking weight the preferences instead.
	if len(filtered) < minRequired {
		return pois
	}
	return filtered
}

// OpeningAlignment scores [0..1] how much of the day window is covered by any
// opening span. Neutral 0.5 when the POI has no hours data.
func OpeningAlignment(poi domain.POI, day domain.DayTemplate) float64 {
	if len(poi.OpeningHours) == 0 {
		return 0.5
	}

	dayStart := utils.TimeToMinutes(day.Start)
	dayEnd := utils.TimeToMinutes(day.End)
	if dayEnd <= dayStart {
		return 0
	}

	best := 0.0
	for _, spans := range poi.OpeningHours {
		for _, span := range spans {
			openMin := utils.TimeToMinutes(span.Open)
			closeMin := utils.TimeToMinutes(span.Close)

			overlapStart := max(dayStart, openMin)
			overlapEnd := min(dayEnd, closeMin)
			if overlapStart >= overlapEnd {
				continue
			}

			ratio := float64(overlapEnd-overlapStart) / float64(dayEnd-dayStart)
			if ratio > best {
				best = ratio
			}
		}
	}
	return best
}

// GenerateCandidates runs the first two pipeline stages: geographic and
// thematic windowing, runtime annotation, hard-rule filtering, and the
// deterministic keeper sort. Pure over the catalog snapshot.
func GenerateCandidates(
	catalog []domain.POI,
	trip domain.TripContext,
	prefs domain.Preferences,
	cons domain.Constraints,
	lockedPoiIDs map[string]bool,
) ([]domain.Candidate, []domain.DropEntry) {

	base := ResolveBaseCoords(catalog, trip.BasePlaceID)

	radiusKm := DefaultRadiusKm(trip.DayTemplate.Pace)
	if cons.RadiusKm != nil {
		radiusKm = *cons.RadiusKm
	}

	var regional []domain.POI
	for _, poi := range catalog {
		if HaversineKm(base, poi.Coords) <= radiusKm {
			regional = append(regional, poi)
		}
	}

	minRequired := defaultMinPrefiltered
	if days := utils.DatesBetween(trip.DateRange.Start, trip.DateRange.End); len(days) > 0 {
		minRequired = len(days) * 4
	}
	themed := prefilterByThemesTags(regional, prefs, minRequired)

	candidates := make([]domain.Candidate, 0, len(themed))
	for _, poi := range themed {
		candidates = append(candidates, domain.Candidate{
			POI:          poi,
			DistanceKm:   HaversineKm(base, poi.Coords),
			OpeningAlign: OpeningAlignment(poi, trip.DayTemplate),
		})
	}

	kept, dropLog := FilterCandidates(candidates, trip, prefs, cons, lockedPoiIDs)

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		ra, rb := domain.PriceBandRank(a.PriceBand), domain.PriceBandRank(b.PriceBand)
		if ra != rb {
			return ra < rb
		}
		if a.OpeningAlign != b.OpeningAlign {
			return a.OpeningAlign > b.OpeningAlign
		}
		oa, ob := ThemeOverlapCount(a.POI, prefs), ThemeOverlapCount(b.POI, prefs)
		if oa != ob {
			return oa > ob
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.PoiID < b.PoiID
	})

	return kept, dropLog
}
