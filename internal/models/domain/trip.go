package domain

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayTemplate struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Pace  string `json:"pace"` // light | moderate | intense
}

// TripContext is immutable per request.
type TripContext struct {
	BasePlaceID string      `json:"base_place_id"`
	DateRange   DateRange   `json:"date_range"`
	DayTemplate DayTemplate `json:"day_template"`
	Modes       []string    `json:"modes"`
}

// Preferences are never mutated in place; feedback bias derives a new value.
type Preferences struct {
	Themes       []string `json:"themes"`
	ActivityTags []string `json:"activity_tags"`
	AvoidTags    []string `json:"avoid_tags"`
	Currency     string   `json:"currency,omitempty"`
}

type Constraints struct {
	DailyBudgetCap     *float64 `json:"daily_budget_cap,omitempty"`
	MaxTransferMinutes *int     `json:"max_transfer_minutes,omitempty"`
	RadiusKm           *float64 `json:"radius_km,omitempty"`
}

// Lock pins a POI to a fixed time span on a given day. Locks bypass rule
// drops and optimizer swaps.
type Lock struct {
	Date    string `json:"date"`
	PoiID   string `json:"poi_id"`
	PlaceID string `json:"place_id"`
	Title   string `json:"title,omitempty"`
	Start   string `json:"start"`
	End     string `json:"end"`
}
