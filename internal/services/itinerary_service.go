package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"wayfarer/internal/engine"
	"wayfarer/internal/models/domain"
	"wayfarer/internal/models/request_models"
	"wayfarer/internal/models/response_models"
	"wayfarer/pkg/utils"
)

const defaultCurrency = "LKR"

type ItineraryServiceInterface interface {
	BuildItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error)
}

type ItineraryService struct {
	catalog CatalogProviderInterface
	eta     ETAServiceInterface
	scorer  engine.PreferenceScorer
	cfg     *utils.Config
}

func NewItineraryService(
	catalog CatalogProviderInterface,
	eta ETAServiceInterface,
	scorer engine.PreferenceScorer,
	cfg *utils.Config,
) ItineraryServiceInterface {
	return &ItineraryService{
		catalog: catalog,
		eta:     eta,
		scorer:  scorer,
		cfg:     cfg,
	}
}

func validateRequest(req request_models.ItineraryRequest) error {
	if _, err := utils.ParseDate(req.TripContext.DateRange.Start); err != nil {
		return utils.ErrInvalidDateRange
	}
	if _, err := utils.ParseDate(req.TripContext.DateRange.End); err != nil {
		return utils.ErrInvalidDateRange
	}
	if len(utils.DatesBetween(req.TripContext.DateRange.Start, req.TripContext.DateRange.End)) == 0 {
		return utils.ErrInvalidDateRange
	}
	if !engine.ValidateLocks(req.Locks) {
		return utils.ErrOverlappingLocks
	}
	return nil
}

// relaxStep widens the search one notch, most conservative first: radius,
// then transfer budget, then the preference prefilter.
func relaxStep(step int, prefs domain.Preferences, cons domain.Constraints, pace string) (domain.Preferences, domain.Constraints, string) {
	switch step {
	case 1:
		radius := engine.DefaultRadiusKm(pace)
		if cons.RadiusKm != nil {
			radius = *cons.RadiusKm
		}
		widened := radius * 1.5
		cons.RadiusKm = &widened
		return prefs, cons, "widened search radius"
	case 2:
		cons.MaxTransferMinutes = nil
		return prefs, cons, "relaxed transfer time limit"
	case 3:
		prefs.AvoidTags = nil
		prefs.Themes = nil
		prefs.ActivityTags = nil
		return prefs, cons, "relaxed preference filters"
	}
	return prefs, cons, ""
}

func lockedPoiSet(locks []domain.Lock) map[string]bool {
	set := make(map[string]bool, len(locks))
	for _, l := range locks {
		set[l.PoiID] = true
	}
	return set
}

func healthLoad(pace string) string {
	switch pace {
	case "light":
		return "low"
	case "intense":
		return "high"
	}
	return "moderate"
}

func transferMode(modes []string) string {
	if len(modes) > 0 {
		return modes[0]
	}
	return "DRIVE"
}

func walkingKm(items []domain.ScheduleItem) float64 {
	total := 0.0
	for _, it := range items {
		if it.Type == domain.ItemTransfer && it.Mode == "WALK" {
			total += it.DistanceKm
		}
	}
	return total
}

// generateWithRelaxation runs the candidate generator, walking the
// three-step relaxation ladder when a step yields nothing schedulable.
func generateWithRelaxation(
	catalog []domain.POI,
	trip domain.TripContext,
	prefs domain.Preferences,
	cons domain.Constraints,
	locked map[string]bool,
) ([]domain.Candidate, []domain.DropEntry, []string, error) {

	var notes []string
	for step := 0; step <= 3; step++ {
		if step > 0 {
			var note string
			prefs, cons, note = relaxStep(step, prefs, cons, trip.DayTemplate.Pace)
			notes = append(notes, "Relaxation applied: "+note)
		}
		candidates, dropLog := engine.GenerateCandidates(catalog, trip, prefs, cons, locked)
		if len(candidates) > 0 {
			return candidates, dropLog, notes, nil
		}
	}
	return nil, nil, notes, utils.ErrNoFeasiblePlan
}

func (s *ItineraryService) BuildItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	locked := lockedPoiSet(req.Locks)

	var affinities map[string]float64
	if len(req.Feedback) > 0 {
		affinities = engine.ComputeAffinities(req.Feedback, time.Now())
	}

	candidates, dropLog, relaxNotes, err := generateWithRelaxation(
		catalog, req.TripContext, req.Preferences, req.Constraints, locked)
	if err != nil {
		return nil, err
	}
	for _, d := range dropLog {
		log.Printf("Candidate %s dropped: %s", d.PoiID, d.Reason)
	}

	// The call budget covers one request's scheduling phase.
	s.eta.ResetCallBudget()

	base := engine.ResolveBaseCoords(catalog, req.TripContext.BasePlaceID)
	byPoiID := make(map[string]domain.Candidate, len(candidates))
	coords := make(map[string]domain.Coords, len(catalog))
	for _, c := range candidates {
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
					OpeningAlign: engine.OpeningAlignment(poi, req.TripContext.DayTemplate),
				}
			}
		}
	}

	dates := utils.DatesBetween(req.TripContext.DateRange.Start, req.TripContext.DateRange.End)
	used := make(map[string]bool)
	mode := transferMode(req.TripContext.Modes)
	packCfg := engine.PackConfig{
		MaxItemsPerDay:    s.cfg.MaxItemsPerDay,
		BreakAfterMinutes: s.cfg.BreakAfterMinutes,
		BreakMinutes:      s.cfg.BreakMinutes,
	}

	var (
		plans            []domain.DayPlan
		notes            []string
		dayMetrics       []engine.RankMetrics
		recent           []domain.Candidate
		candidatesByDate = make(map[string][]domain.Candidate)
	)
	notes = append(notes, relaxNotes...)

	dayStartMin := utils.TimeToMinutes(req.TripContext.DayTemplate.Start)

	for _, date := range dates {
		ranked, m := engine.Rank(candidates, engine.RankInput{
			DailyCap:   req.Constraints.DailyBudgetCap,
			Prefs:      req.Preferences,
			Trip:       req.TripContext,
			Affinities: affinities,
			Recent:     recent,
			Scorer:     s.scorer,
			Weights:    engine.DefaultWeights(s.cfg),
		})
		dayMetrics = append(dayMetrics, m)
		candidatesByDate[date] = ranked

		var dayLocks []domain.Lock
		for _, l := range req.Locks {
			if l.Date == date {
				dayLocks = append(dayLocks, l)
			}
		}

		items := engine.PackDay(engine.PackDayInput{
			Date:     date,
			Ranked:   ranked,
			Locks:    dayLocks,
			Day:      req.TripContext.DayTemplate,
			Mode:     mode,
			DailyCap: req.Constraints.DailyBudgetCap,
			Used:     used,
			ByPoiID:  byPoiID,
		}, packCfg)

		items, _, err := s.eta.VerifyDayPlan(ctx, items, coords, date, dayStartMin)
		if err != nil {
			return nil, err
		}

		plan := domain.DayPlan{Date: date, Items: items}
		plan.Summary = domain.DaySummary{
			EstCost:    plan.ActivityCost(),
			WalkingKm:  walkingKm(items),
			HealthLoad: healthLoad(req.TripContext.DayTemplate.Pace),
		}

		// Post-scheduling constraint check: the packer caps its own fills,
		// so this only trips when locks alone exceed the day maximum. Never
		// silently truncate.
		if n := len(plan.Activities()); n > s.cfg.MaxItemsPerDay {
			log.Printf("Day %s holds %d activities over the configured maximum", date, n)
			return nil, utils.ErrTooManyActivities
		}

		plans = append(plans, plan)

		for _, it := range plan.Activities() {
			if c, ok := byPoiID[it.PoiID]; ok {
				recent = append(recent, c)
			}
		}
	}

	plans, totals := engine.OptimizeBudget(plans, req.TripContext, req.Preferences, req.Constraints, candidatesByDate)

	// Optimizer swaps reset their adjacent transfers to zero-duration
	// placeholders; the verifier resolves only those and leaves settled
	// legs alone.
	for i := range plans {
		items, _, err := s.eta.VerifyDayPlan(ctx, plans[i].Items, coords, plans[i].Date, dayStartMin)
		if err != nil {
			return nil, err
		}
		plans[i].Items = items
	}
	totals = engine.ComputeTotals(plans)

	// The note counts final degraded legs, not resolution attempts.
	if failed := countFailedTransfers(plans); failed > 0 {
		notes = append(notes, fmt.Sprintf("%d transfer(s) estimated heuristically after live verification failed", failed))
	}
	for _, plan := range plans {
		notes = append(notes, plan.Notes...)
	}

	currency := req.Preferences.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return &response_models.ItineraryResponse{
		Currency: currency,
		Days:     plans,
		Totals:   totals,
		Notes:    notes,
		Metrics:  averageRankMetrics(dayMetrics),
	}, nil
}

func countFailedTransfers(plans []domain.DayPlan) int {
	n := 0
	for _, plan := range plans {
		for _, it := range plan.Items {
			if it.Type == domain.ItemTransfer && it.VerifyFailed {
				n++
			}
		}
	}
	return n
}

// averageRankMetrics merges per-day ranking metrics so the response reflects
// the whole trip rather than the last day ranked.
func averageRankMetrics(per []engine.RankMetrics) engine.RankMetrics {
	if len(per) == 0 {
		return engine.RankMetrics{}
	}
	avg := engine.RankMetrics{
		ModelVersion:   per[0].ModelVersion,
		FactorAverages: make(map[string]float64),
	}
	for _, m := range per {
		for k, v := range m.FactorAverages {
			avg.FactorAverages[k] += v
		}
	}
	for k := range avg.FactorAverages {
		avg.FactorAverages[k] /= float64(len(per))
	}
	return avg
}
