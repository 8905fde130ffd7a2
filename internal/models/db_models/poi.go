package db_models

import (
	"github.com/lib/pq"
)

// POI is the catalog row. OpeningHours holds the weekday→spans map as JSON
// text; it is parsed once at the snapshot boundary, never mid-pipeline.
type POI struct {
	BaseModel
	PoiID           string `gorm:"uniqueIndex"`
	PlaceID         string `gorm:"index"`
	Name            string
	Latitude        float64
	Longitude       float64
	Tags            pq.StringArray `gorm:"type:text[]"`
	Themes          pq.StringArray `gorm:"type:text[]"`
	PriceBand       string         `gorm:"default:low"`
	EstimatedCost   float64
	DurationMinutes int
	OpeningHours    string `gorm:"type:jsonb;default:'{}'"`
	Seasonality     pq.StringArray `gorm:"type:text[]"`
	SafetyFlags     pq.StringArray `gorm:"type:text[]"`
	Region          string
}
