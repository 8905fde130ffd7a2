package domain

import "time"

const (
	ActionRateItem           = "rate_item"
	ActionRemoveItem         = "remove_item"
	ActionRequestAlternative = "request_alternative"
	ActionEditTime           = "edit_time"
	ActionDailySignal        = "daily_signal"
)

type FeedbackAction struct {
	Type        string   `json:"type"`
	PlaceID     string   `json:"place_id,omitempty"`
	Rating      int      `json:"rating,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	NearPlaceID string   `json:"near_place_id,omitempty"`
	Energy      string   `json:"energy,omitempty"`
	Start       string   `json:"start,omitempty"`
	End         string   `json:"end,omitempty"`
}

// FeedbackEvent is a rated interaction used to build the affinity table.
type FeedbackEvent struct {
	PoiID  string    `json:"poi_id"`
	Rating int       `json:"rating"`
	Tags   []string  `json:"tags"`
	Ts     time.Time `json:"ts"`
}
