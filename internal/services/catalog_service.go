package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"wayfarer/internal/models/db_models"
	"wayfarer/internal/models/domain"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/repositories"
	"wayfarer/pkg/utils"
)

// CatalogProviderInterface is the read-only boundary the pipeline consumes:
// a validated snapshot of the POI catalog.
type CatalogProviderInterface interface {
	Snapshot(ctx context.Context) ([]domain.POI, error)
}

type CatalogServiceInterface interface {
	CatalogProviderInterface

	CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) error
	UpdatePoi(ctx context.Context, req request_models.UpdatePoiRequest) error
	DeletePoi(ctx context.Context, poiID string) error
	ListPois(ctx context.Context, page, pageSize int) ([]domain.POI, error)
}

type CatalogService struct {
	poiRepository repositories.POIRepository

	mu       sync.RWMutex
	snapshot []domain.POI
	loaded   bool
}

func NewCatalogService(poiRepository repositories.POIRepository) CatalogServiceInterface {
	return &CatalogService{poiRepository: poiRepository}
}

func parseOpeningHours(raw string) map[string][]domain.OpeningSpan {
	if raw == "" || raw == "{}" {
		return nil
	}
	var hours map[string][]domain.OpeningSpan
	if err := json.Unmarshal([]byte(raw), &hours); err != nil {
		log.Printf("Malformed opening_hours payload: %v", err)
		return nil
	}
	return hours
}

func toDomainPOI(row db_models.POI) domain.POI {
	return domain.POI{
		PoiID:           row.PoiID,
		PlaceID:         row.PlaceID,
		Name:            row.Name,
		Coords:          domain.Coords{Lat: row.Latitude, Lng: row.Longitude},
		Tags:            row.Tags,
		Themes:          row.Themes,
		PriceBand:       row.PriceBand,
		EstimatedCost:   row.EstimatedCost,
		DurationMinutes: row.DurationMinutes,
		OpeningHours:    parseOpeningHours(row.OpeningHours),
		Seasonality:     row.Seasonality,
		SafetyFlags:     row.SafetyFlags,
		Region:          row.Region,
	}
}

// validateRecord enforces the catalog boundary rules: unique poi_id and a
// positive duration. Hours-free POIs (parks, viewpoints) are tolerated; they
// score a neutral opening alignment downstream.
func validateRecord(poi domain.POI, seen map[string]bool) error {
	if poi.PoiID == "" || seen[poi.PoiID] {
		return utils.ErrInvalidCatalogRecord
	}
	if poi.DurationMinutes <= 0 {
		return utils.ErrInvalidCatalogRecord
	}
	return nil
}

// Snapshot returns the validated catalog. The slice handed out is a copy so
// administrative mutation is never visible mid-pipeline.
func (s *CatalogService) Snapshot(ctx context.Context) ([]domain.POI, error) {
	s.mu.RLock()
	if s.loaded {
		out := make([]domain.POI, len(s.snapshot))
		copy(out, s.snapshot)
		s.mu.RUnlock()
		return out, nil
	}
	s.mu.RUnlock()

	rows, err := s.poiRepository.ListAll(ctx)
	if err != nil {
		log.Printf("Error loading catalog: %v", err)
		return nil, utils.ErrDatabaseError
	}

	seen := make(map[string]bool, len(rows))
	validated := make([]domain.POI, 0, len(rows))
	for _, row := range rows {
		poi := toDomainPOI(row)
		if err := validateRecord(poi, seen); err != nil {
			log.Printf("Skipping invalid catalog record %q: %v", row.PoiID, err)
			continue
		}
		seen[poi.PoiID] = true
		validated = append(validated, poi)
	}

	s.mu.Lock()
	s.snapshot = validated
	s.loaded = true
	s.mu.Unlock()

	out := make([]domain.POI, len(validated))
	copy(out, validated)
	return out, nil
}

func (s *CatalogService) invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.snapshot = nil
	s.mu.Unlock()
}

func openingHoursJSON(hours map[string][]domain.OpeningSpan) string {
	if len(hours) == 0 {
		return "{}"
	}
	raw, err := json.Marshal(hours)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func (s *CatalogService) CreatePoi(ctx context.Context, req request_models.CreatePoiRequest) error {
	if req.DurationMinutes <= 0 {
		return utils.ErrInvalidInput
	}

	row := &db_models.POI{
		PoiID:           req.PoiID,
		PlaceID:         req.PlaceID,
		Name:            req.Name,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		Tags:            req.Tags,
		Themes:          req.Themes,
		PriceBand:       req.PriceBand,
		EstimatedCost:   req.EstimatedCost,
		DurationMinutes: req.DurationMinutes,
		OpeningHours:    openingHoursJSON(req.OpeningHours),
		Seasonality:     req.Seasonality,
		SafetyFlags:     req.SafetyFlags,
		Region:          req.Region,
	}

	if _, err := s.poiRepository.CreatePoi(ctx, row); err != nil {
		log.Printf("Error creating POI: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate()
	return nil
}

func (s *CatalogService) UpdatePoi(ctx context.Context, req request_models.UpdatePoiRequest) error {
	existing, err := s.poiRepository.GetByPoiID(ctx, req.PoiID)
	if err != nil {
		log.Printf("Error fetching POI: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrPOINotFound
	}

	existing.PlaceID = req.PlaceID
	existing.Name = req.Name
	existing.Latitude = req.Latitude
	existing.Longitude = req.Longitude
	existing.Tags = req.Tags
	existing.Themes = req.Themes
	existing.PriceBand = req.PriceBand
	existing.EstimatedCost = req.EstimatedCost
	existing.DurationMinutes = req.DurationMinutes
	existing.OpeningHours = openingHoursJSON(req.OpeningHours)
	existing.Seasonality = req.Seasonality
	existing.SafetyFlags = req.SafetyFlags
	existing.Region = req.Region

	if err := s.poiRepository.UpdatePoi(ctx, existing); err != nil {
		log.Printf("Error updating POI: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate()
	return nil
}

func (s *CatalogService) DeletePoi(ctx context.Context, poiID string) error {
	existing, err := s.poiRepository.GetByPoiID(ctx, poiID)
	if err != nil {
		log.Printf("Error fetching POI: %v", err)
		return utils.ErrDatabaseError
	}
	if existing == nil {
		return utils.ErrPOINotFound
	}

	var id uuid.UUID = existing.ID
	if err := s.poiRepository.Delete(ctx, id); err != nil {
		log.Printf("Error deleting POI: %v", err)
		return utils.ErrDatabaseError
	}

	s.invalidate()
	return nil
}

func (s *CatalogService) ListPois(ctx context.Context, page, pageSize int) ([]domain.POI, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	rows, err := s.poiRepository.List(ctx, page, pageSize)
	if err != nil {
		log.Printf("Error listing POIs: %v", err)
		return nil, utils.ErrDatabaseError
	}

	out := make([]domain.POI, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainPOI(row))
	}
	return out, nil
}
