package services

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"wayfarer/internal/engine"
	"wayfarer/internal/models/domain"
	"wayfarer/pkg/memcache"
	"wayfarer/pkg/utils"
)

const departureBucketMinutes = 15

type ETAServiceInterface interface {
	// ResetCallBudget must run at the start of each request's scheduling
	// phase; the counter is shared process-wide.
	ResetCallBudget()

	// VerifyDayPlan resolves every transfer placeholder in the day's items.
	// It returns the number of heuristic fallbacks taken after a live
	// failure, so callers can note degraded results.
	VerifyDayPlan(ctx context.Context, items []domain.ScheduleItem, coords map[string]domain.Coords, date string, dayStartMin int) ([]domain.ScheduleItem, int, error)

	// VerifySequence verifies an ordered list of stops in one pass. It is a
	// no-op when live verification is disabled.
	VerifySequence(ctx context.Context, placeIDs []string, coords map[string]domain.Coords, mode, date string) ([]memcache.Leg, error)
}

type ETAService struct {
	cache     memcache.ETACacheInterface
	client    RoutesClientInterface
	live      bool
	strict    bool
	ttl       time.Duration
	maxEdges  int
	callsUsed atomic.Int64
}

func NewETAService(cache memcache.ETACacheInterface, client RoutesClientInterface, cfg *utils.Config) ETAServiceInterface {
	return &ETAService{
		cache:    cache,
		client:   client,
		live:     cfg.UseLiveRoutes && client != nil,
		strict:   cfg.StrictVerify,
		ttl:      time.Duration(cfg.TransferTTLMin) * time.Minute,
		maxEdges: cfg.MaxVerifyEdges,
	}
}

func (s *ETAService) ResetCallBudget() {
	s.callsUsed.Store(0)
}

func bucketKey(date string, departureMin int) string {
	bucket := departureMin - departureMin%departureBucketMinutes
	return date + "T" + utils.MinutesToTime(bucket)
}

func heuristicLeg(from, to domain.Coords, mode string) memcache.Leg {
	minutes, km := engine.EstimateLeg(from, to, mode)
	return memcache.Leg{DurationMinutes: minutes, DistanceKm: km, Source: domain.SourceHeuristic}
}

// resolveEdge returns the leg plus whether the heuristic was used because a
// live attempt failed or the budget ran out.
func (s *ETAService) resolveEdge(ctx context.Context, key memcache.LegKey, from, to domain.Coords, departure time.Time) (memcache.Leg, bool) {
	if leg, ok := s.cache.Get(key); ok {
		return leg, false
	}

	if !s.live {
		return heuristicLeg(from, to, key.Mode), false
	}

	// Increment-then-compare keeps the budget check atomic; concurrent
	// requests can otherwise slip past a separate load.
	if s.callsUsed.Add(1) > int64(s.maxEdges) {
		return heuristicLeg(from, to, key.Mode), true
	}

	leg, err := s.client.FetchETA(ctx, key.From, key.To, key.Mode, departure)
	if err != nil {
		log.Printf("Live ETA failed for %s→%s: %v", key.From, key.To, err)
		return heuristicLeg(from, to, key.Mode), true
	}

	leg.Source = domain.SourceRoutesLive
	s.cache.Set(key, leg, s.ttl)
	return leg, false
}

func (s *ETAService) VerifyDayPlan(ctx context.Context, items []domain.ScheduleItem, coords map[string]domain.Coords, date string, dayStartMin int) ([]domain.ScheduleItem, int, error) {
	fallbacks := 0
	edgeCount := 0
	departureMin := dayStartMin

	for i := range items {
		it := &items[i]
		if it.Type != domain.ItemTransfer {
			if it.End != "" {
				departureMin = utils.TimeToMinutes(it.End)
			}
			continue
		}

		if it.DurationMinutes > 0 {
			// Resolved on an earlier pass; heuristic legs clamp to three
			// minutes, so only fresh or reset placeholders carry a zero
			// duration. Re-resolving would re-fire failed live lookups and
			// inflate the fallback count.
			continue
		}

		from := coords[it.FromPlaceID]
		to := coords[it.ToPlaceID]

		edgeCount++
		if edgeCount > s.maxEdges {
			// Beyond the per-request cap every edge is heuristic and the
			// call budget is left untouched.
			leg := heuristicLeg(from, to, it.Mode)
			it.DurationMinutes = leg.DurationMinutes
			it.DistanceKm = leg.DistanceKm
			it.Source = leg.Source
			it.VerifyFailed = false
			continue
		}

		key := memcache.LegKey{
			From:   it.FromPlaceID,
			To:     it.ToPlaceID,
			Mode:   it.Mode,
			Bucket: bucketKey(date, departureMin),
		}

		departure, _ := utils.ParseDate(date)
		departure = departure.Add(time.Duration(departureMin) * time.Minute)

		leg, failed := s.resolveEdge(ctx, key, from, to, departure)
		if failed && s.strict {
			return nil, fallbacks, utils.ErrVerificationFailed
		}
		if failed {
			fallbacks++
		}

		it.DurationMinutes = leg.DurationMinutes
		it.DistanceKm = leg.DistanceKm
		it.Source = leg.Source
		it.VerifyFailed = failed
	}

	return items, fallbacks, nil
}

func (s *ETAService) VerifySequence(ctx context.Context, placeIDs []string, coords map[string]domain.Coords, mode, date string) ([]memcache.Leg, error) {
	if !s.live || len(placeIDs) < 2 {
		return nil, nil
	}

	legs := make([]memcache.Leg, 0, len(placeIDs)-1)
	for i := 0; i+1 < len(placeIDs); i++ {
		key := memcache.LegKey{
			From:   placeIDs[i],
			To:     placeIDs[i+1],
			Mode:   mode,
			Bucket: bucketKey(date, 0),
		}
		leg, failed := s.resolveEdge(ctx, key, coords[placeIDs[i]], coords[placeIDs[i+1]], time.Time{})
		if failed && s.strict {
			return nil, utils.ErrVerificationFailed
		}
		legs = append(legs, leg)
	}
	return legs, nil
}
