package services

import (
	"context"
	"fmt"
	"time"

	"wayfarer/internal/engine"
	"wayfarer/internal/models/domain"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

type FeedbackServiceInterface interface {
	ApplyFeedback(ctx context.Context, req request_models.FeedbackRequest) (*response_models.FeedbackResponse, error)
}

type FeedbackService struct {
	catalog CatalogProviderInterface
	eta     ETAServiceInterface
	scorer  engine.PreferenceScorer
	cfg     *utils.Config
}

func NewFeedbackService(
	catalog CatalogProviderInterface,
	eta ETAServiceInterface,
	scorer engine.PreferenceScorer,
	cfg *utils.Config,
) FeedbackServiceInterface {
	return &FeedbackService{
		catalog: catalog,
		eta:     eta,
		scorer:  scorer,
		cfg:     cfg,
	}
}

// feedbackAdjustments is everything the action list changes about the rebuild:
// derived preferences, excluded places, extra locks and the effective pace.
type feedbackAdjustments struct {
	prefs    domain.Preferences
	excluded map[string]bool
	locks    []domain.Lock
	events   []domain.FeedbackEvent
	pace     string
	notes    []string
}

func itemByPlaceID(plan domain.DayPlan, placeID string) (domain.ScheduleItem, bool) {
	for _, it := range plan.Items {
		if it.Type == domain.ItemActivity && it.PlaceID == placeID {
			return it, true
		}
	}
	return domain.ScheduleItem{}, false
}

func copyPreferences(prefs domain.Preferences) domain.Preferences {
	out := prefs
	out.Themes = append([]string(nil), prefs.Themes...)
	out.ActivityTags = append([]string(nil), prefs.ActivityTags...)
	out.AvoidTags = append([]string(nil), prefs.AvoidTags...)
	return out
}

func applyActions(req request_models.FeedbackRequest, now time.Time) (feedbackAdjustments, error) {
	adj := feedbackAdjustments{
		prefs:    copyPreferences(req.Preferences),
		excluded: make(map[string]bool),
		locks:    append([]domain.Lock(nil), req.Locks...),
		pace:     req.DayTemplate.Pace,
	}

	for _, action := range req.Actions {
		switch action.Type {
		case domain.ActionRateItem:
			item, found := itemByPlaceID(req.CurrentDayPlan, action.PlaceID)
			if !found {
				return adj, utils.ErrInvalidInput
			}
			tags := action.Tags
			if len(tags) == 0 {
				tags = item.Tags
			}
			adj.events = append(adj.events, domain.FeedbackEvent{
				PoiID:  item.PoiID,
				Rating: action.Rating,
				Tags:   tags,
				Ts:     now,
			})
			if action.Rating <= 2 {
				adj.prefs.AvoidTags = append(adj.prefs.AvoidTags, tags...)
				adj.notes = append(adj.notes,
					fmt.Sprintf("Low rating for %s; avoiding similar activities", item.Title))
			}

		case domain.ActionRemoveItem:
			adj.excluded[action.PlaceID] = true
			if item, found := itemByPlaceID(req.CurrentDayPlan, action.PlaceID); found {
				adj.notes = append(adj.notes, fmt.Sprintf("Removed %s from the day", item.Title))
			}

		case domain.ActionRequestAlternative:
			adj.excluded[action.PlaceID] = true
			if item, found := itemByPlaceID(req.CurrentDayPlan, action.PlaceID); found {
				adj.notes = append(adj.notes, fmt.Sprintf("Replaced %s with an alternative", item.Title))
			}

		case domain.ActionEditTime:
			item, found := itemByPlaceID(req.CurrentDayPlan, action.PlaceID)
			if !found {
				return adj, utils.ErrInvalidInput
			}
			adj.locks = append(adj.locks, domain.Lock{
				Date:    req.Date,
				PoiID:   item.PoiID,
				PlaceID: item.PlaceID,
				Title:   item.Title,
				Start:   action.Start,
				End:     action.End,
			})
			adj.notes = append(adj.notes,
				fmt.Sprintf("Pinned %s to %s-%s", item.Title, action.Start, action.End))

		case domain.ActionDailySignal:
			if action.Energy == "low" {
				adj.pace = "light"
				adj.notes = append(adj.notes, "Rebuilt with a lighter pace for today")
			}

		default:
			return adj, utils.ErrInvalidInput
		}
	}
	return adj, nil
}

// ApplyFeedback rebuilds one day through the same pipeline the full build
// uses. The caller's preferences and locks are never mutated; the actions
// derive adjusted copies that scope to this rebuild only.
func (s *FeedbackService) ApplyFeedback(ctx context.Context, req request_models.FeedbackRequest) (*response_models.FeedbackResponse, error) {
	if _, err := utils.ParseDate(req.Date); err != nil {
		return nil, utils.ErrInvalidDateRange
	}

	adj, err := applyActions(req, time.Now())
	if err != nil {
		return nil, err
	}
	if !engine.ValidateLocks(adj.locks) {
		return nil, utils.ErrOverlappingLocks
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(adj.excluded) > 0 {
		filtered := make([]domain.POI, 0, len(catalog))
		for _, poi := range catalog {
			if !adj.excluded[poi.PlaceID] {
				filtered = append(filtered, poi)
			}
		}
		catalog = filtered
	}

	trip := domain.TripContext{
		BasePlaceID: req.BasePlaceID,
		DateRange:   domain.DateRange{Start: req.Date, End: req.Date},
		DayTemplate: domain.DayTemplate{
			Start: req.DayTemplate.Start,
			End:   req.DayTemplate.End,
			Pace:  adj.pace,
		},
		Modes: req.Modes,
	}

	locked := lockedPoiSet(adj.locks)
	candidates, _, relaxNotes, err := generateWithRelaxation(
		catalog, trip, adj.prefs, req.Constraints, locked)
	if err != nil {
		return nil, err
	}

	var affinities map[string]float64
	if len(adj.events) > 0 {
		affinities = engine.ComputeAffinities(adj.events, time.Now())
	}

	ranked, _ := engine.Rank(candidates, engine.RankInput{
		DailyCap:   req.Constraints.DailyBudgetCap,
		Prefs:      adj.prefs,
		Trip:       trip,
		Affinities: affinities,
		Scorer:     s.scorer,
		Weights:    engine.DefaultWeights(s.cfg),
	})

	base := engine.ResolveBaseCoords(catalog, req.BasePlaceID)
	byPoiID := make(map[string]domain.Candidate, len(ranked))
	coords := make(map[string]domain.Coords, len(catalog))
	for _, c := range ranked {
		byPoiID[c.PoiID] = c
		coords[c.PlaceID] = c.Coords
	}
	for _, poi := range catalog {
		coords[poi.PlaceID] = poi.Coords
		if locked[poi.PoiID] {
			if _, ok := byPoiID[poi.PoiID]; !ok {
				byPoiID[poi.PoiID] = domain.Candidate{
					POI:          poi,
					DistanceKm:   engine.HaversineKm(base, poi.Coords),
					OpeningAlign: engine.OpeningAlignment(poi, trip.DayTemplate),
				}
			}
		}
	}

	s.eta.ResetCallBudget()

	items := engine.PackDay(engine.PackDayInput{
		Date:     req.Date,
		Ranked:   ranked,
		Locks:    adj.locks,
		Day:      trip.DayTemplate,
		Mode:     transferMode(req.Modes),
		DailyCap: req.Constraints.DailyBudgetCap,
		Used:     make(map[string]bool),
		ByPoiID:  byPoiID,
	}, engine.PackConfig{
		MaxItemsPerDay:    s.cfg.MaxItemsPerDay,
		BreakAfterMinutes: s.cfg.BreakAfterMinutes,
		BreakMinutes:      s.cfg.BreakMinutes,
	})

	dayStartMin := utils.TimeToMinutes(req.DayTemplate.Start)
	items, fallbacks, err := s.eta.VerifyDayPlan(ctx, items, coords, req.Date, dayStartMin)
	if err != nil {
		return nil, err
	}

	notes := append(adj.notes, relaxNotes...)
	if fallbacks > 0 {
		notes = append(notes, fmt.Sprintf("%d transfer(s) estimated heuristically after live verification failed", fallbacks))
	}

	plan := domain.DayPlan{Date: req.Date, Items: items}
	plan.Summary = domain.DaySummary{
		EstCost:    plan.ActivityCost(),
		WalkingKm:  walkingKm(items),
		HealthLoad: healthLoad(adj.pace),
	}

	return &response_models.FeedbackResponse{Day: plan, Notes: notes}, nil
}
