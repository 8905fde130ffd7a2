package domain

type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// OpeningSpan is one open/close window in "HH:MM".
type OpeningSpan struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// POI is an immutable catalog record. It is validated once at the catalog
// boundary and read-only for the duration of a pipeline run.
type POI struct {
	PoiID           string                   `json:"poi_id"`
	PlaceID         string                   `json:"place_id"`
	Name            string                   `json:"name"`
	Coords          Coords                   `json:"coords"`
	Tags            []string                 `json:"tags"`
	Themes          []string                 `json:"themes"`
	PriceBand       string                   `json:"price_band"`
	EstimatedCost   float64                  `json:"estimated_cost"`
	DurationMinutes int                      `json:"duration_minutes"`
	OpeningHours    map[string][]OpeningSpan `json:"opening_hours"`
	Seasonality     []string                 `json:"seasonality"`
	SafetyFlags     []string                 `json:"safety_flags"`
	Region          string                   `json:"region"`
}

// Candidate is a POI annotated with run-time fit fields. Its lifetime is a
// single pipeline run.
type Candidate struct {
	POI
	DistanceKm   float64 `json:"distance_km"`
	OpeningAlign float64 `json:"opening_align"`
	Score        float64 `json:"score"`
}

// PriceBandRank orders price bands for the deterministic candidate sort.
func PriceBandRank(band string) int {
	switch band {
	case "free":
		return 0
	case "low":
		return 1
	case "medium":
		return 2
	case "high":
		return 3
	}
	return 1
}

func (p POI) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type DropEntry struct {
	PoiID  string `json:"poi_id"`
	Reason string `json:"reason"`
}
