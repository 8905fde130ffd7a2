package response_models

import (
	"wayfarer/internal/engine"
	"wayfarer/internal/models/domain"
)

type ItineraryResponse struct {
	Currency string             `json:"currency"`
	Days     []domain.DayPlan   `json:"days"`
	Totals   domain.TripTotals  `json:"totals"`
	Notes    []string           `json:"notes,omitempty"`
	Metrics  engine.RankMetrics `json:"metrics"`
}

type FeedbackResponse struct {
	Day   domain.DayPlan `json:"day"`
	Notes []string       `json:"notes,omitempty"`
}

type SemanticMatch struct {
	PoiID      string  `json:"poi_id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}
