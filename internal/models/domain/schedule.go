package domain

type ItemType string

const (
	ItemActivity ItemType = "activity"
	ItemTransfer ItemType = "transfer"
	ItemBreak    ItemType = "break"
)

const (
	SourceHeuristic  = "heuristic"
	SourceRoutesLive = "google_routes_live"
)

// ScheduleItem is the tagged union of activity, transfer and break items.
// Type discriminates which field group is meaningful.
type ScheduleItem struct {
	Type ItemType `json:"type"`

	// activity / break
	Start           string   `json:"start,omitempty"`
	End             string   `json:"end,omitempty"`
	PoiID           string   `json:"poi_id,omitempty"`
	PlaceID         string   `json:"place_id,omitempty"`
	Title           string   `json:"title,omitempty"`
	EstimatedCost   float64  `json:"estimated_cost,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Tags            []string `json:"tags,omitempty"`
	Locked          bool     `json:"locked,omitempty"`

	// transfer
	FromPlaceID  string  `json:"from_place_id,omitempty"`
	ToPlaceID    string  `json:"to_place_id,omitempty"`
	Mode         string  `json:"mode,omitempty"`
	DistanceKm   float64 `json:"distance_km,omitempty"`
	Source       string  `json:"source,omitempty"`
	VerifyFailed bool    `json:"verify_failed,omitempty"`
}

type DaySummary struct {
	EstCost    float64 `json:"est_cost"`
	WalkingKm  float64 `json:"walking_km"`
	HealthLoad string  `json:"health_load"`
}

type DayPlan struct {
	Date    string         `json:"date"`
	Summary DaySummary     `json:"summary"`
	Items   []ScheduleItem `json:"items"`
	Notes   []string       `json:"notes,omitempty"`
}

type DayCost struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
}

type TripTotals struct {
	TripCostEst         float64   `json:"trip_cost_est"`
	TripTransferMinutes int       `json:"trip_transfer_minutes"`
	DailyCosts          []DayCost `json:"daily_costs"`
}

// Activities returns the activity items in order.
func (d DayPlan) Activities() []ScheduleItem {
	var out []ScheduleItem
	for _, it := range d.Items {
		if it.Type == ItemActivity {
			out = append(out, it)
		}
	}
	return out
}

// ActivityCost sums the cost of non-transfer items.
func (d DayPlan) ActivityCost() float64 {
	total := 0.0
	for _, it := range d.Items {
		if it.Type != ItemTransfer {
			total += it.EstimatedCost
		}
	}
	return total
}
