package request_models

import "wayfarer/internal/models/domain"

type CreatePoiRequest struct {
	PoiID           string                          `json:"poi_id" binding:"required"`
	PlaceID         string                          `json:"place_id" binding:"required"`
	Name            string                          `json:"name" binding:"required"`
	Latitude        float64                         `json:"latitude"`
	Longitude       float64                         `json:"longitude"`
	Tags            []string                        `json:"tags"`
	Themes          []string                        `json:"themes"`
	PriceBand       string                          `json:"price_band"`
	EstimatedCost   float64                         `json:"estimated_cost"`
	DurationMinutes int                             `json:"duration_minutes"`
	OpeningHours    map[string][]domain.OpeningSpan `json:"opening_hours"`
	Seasonality     []string                        `json:"seasonality"`
	SafetyFlags     []string                        `json:"safety_flags"`
	Region          string                          `json:"region"`
}

type UpdatePoiRequest struct {
	CreatePoiRequest
}

type SemanticRerankRequest struct {
	Query string `json:"query" binding:"required"`
	Limit int    `json:"limit"`
}

type IndexPoiRequest struct {
	PoiID  string   `json:"poi_id" binding:"required"`
	Name   string   `json:"name"`
	Region string   `json:"region"`
	Tags   []string `json:"tags"`
	Text   string   `json:"text" binding:"required"`
}
