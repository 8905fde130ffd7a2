package request_models

import "wayfarer/internal/models/domain"

type ItineraryRequest struct {
	TripContext domain.TripContext     `json:"trip_context" binding:"required"`
	Preferences domain.Preferences     `json:"preferences"`
	Constraints domain.Constraints     `json:"constraints"`
	Locks       []domain.Lock          `json:"locks"`
	Feedback    []domain.FeedbackEvent `json:"feedback,omitempty"`
}

type FeedbackRequest struct {
	Date           string                  `json:"date" binding:"required"`
	BasePlaceID    string                  `json:"base_place_id" binding:"required"`
	DayTemplate    domain.DayTemplate      `json:"day_template"`
	Modes          []string                `json:"modes"`
	Preferences    domain.Preferences      `json:"preferences"`
	Constraints    domain.Constraints      `json:"constraints"`
	Locks          []domain.Lock           `json:"locks"`
	CurrentDayPlan domain.DayPlan          `json:"current_day_plan"`
	Actions        []domain.FeedbackAction `json:"actions" binding:"required"`
}
