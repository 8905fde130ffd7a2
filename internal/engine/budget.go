package engine

import (
	"fmt"
	"sort"
	"strings"

	"wayfarer/internal/models/domain"
)

const (
	swapMinTagJaccard   = 0.2
	swapDurationSlack   = 0.3
	budgetWarningNote   = "budget warning: no qualifying swap could bring the day under its cap"
	crossDayRebalancing = false // defined extension point, disabled
)

func tagJaccard(a, b []string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	setA := make(map[string]bool, len(a))
	for _, t := range a {
		setA[t] = true
	}
	intersection := 0
	setB := make(map[string]bool, len(b))
	for _, t := range b {
		if setB[t] {
			continue
		}
		setB[t] = true
		if setA[t] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func hasAvoidTag(tags []string, avoid []string) bool {
	for _, a := range avoid {
		for _, t := range tags {
			if strings.EqualFold(a, t) {
				return true
			}
		}
	}
	return false
}

// adjacentTransfers returns the indexes of transfer items directly before and
// after the activity at idx.
func adjacentTransfers(items []domain.ScheduleItem, idx int) []int {
	var out []int
	if idx > 0 && items[idx-1].Type == domain.ItemTransfer {
		out = append(out, idx-1)
	}
	if idx+1 < len(items) && items[idx+1].Type == domain.ItemTransfer {
		out = append(out, idx+1)
	}
	return out
}

func qualifiesAsSwap(original domain.ScheduleItem, alt domain.Candidate, prefs domain.Preferences) bool {
	if alt.EstimatedCost >= original.EstimatedCost {
		return false
	}
	if hasAvoidTag(alt.Tags, prefs.AvoidTags) {
		return false
	}
	if tagJaccard(original.Tags, alt.Tags) < swapMinTagJaccard {
		return false
	}
	lo := float64(original.DurationMinutes) * (1 - swapDurationSlack)
	hi := float64(original.DurationMinutes) * (1 + swapDurationSlack)
	d := float64(alt.DurationMinutes)
	return d >= lo && d <= hi
}

// OptimizeBudget post-processes packed days: while a day exceeds its cap it
// swaps the most expensive non-locked activity for the cheapest qualifying,
// strictly cheaper same-day candidate, keeping thematic coherence through a
// tag-Jaccard floor. Deterministic throughout; no randomness.
func OptimizeBudget(
	plans []domain.DayPlan,
	trip domain.TripContext,
	prefs domain.Preferences,
	cons domain.Constraints,
	candidatesByDate map[string][]domain.Candidate,
) ([]domain.DayPlan, domain.TripTotals) {

	if cons.DailyBudgetCap == nil {
		return plans, ComputeTotals(plans)
	}
	cap := *cons.DailyBudgetCap

	scheduled := make(map[string]bool)
	for _, plan := range plans {
		for _, it := range plan.Items {
			if it.Type == domain.ItemActivity {
				scheduled[it.PoiID] = true
			}
		}
	}

	for di := range plans {
		plan := &plans[di]

		for plan.ActivityCost() > cap {
			// Non-locked activities, most expensive first; ties break on
			// cost, then title, then poi_id.
			type target struct {
				idx  int
				item domain.ScheduleItem
			}
			var targets []target
			for i, it := range plan.Items {
				if it.Type == domain.ItemActivity && !it.Locked {
					targets = append(targets, target{idx: i, item: it})
				}
			}
			sort.SliceStable(targets, func(i, j int) bool {
				a, b := targets[i].item, targets[j].item
				if a.EstimatedCost != b.EstimatedCost {
					return a.EstimatedCost > b.EstimatedCost
				}
				if a.Title != b.Title {
					return a.Title < b.Title
				}
				return a.PoiID < b.PoiID
			})

			swapped := false
			for _, tgt := range targets {
				if !transfersWithinCap(plan.Items, tgt.idx, cons.MaxTransferMinutes) {
					continue
				}

				var best *domain.Candidate
				for _, alt := range candidatesByDate[plan.Date] {
					if scheduled[alt.PoiID] {
						continue
					}
					if !qualifiesAsSwap(tgt.item, alt, prefs) {
						continue
					}
					if best == nil || cheaper(alt, *best) {
						picked := alt
						best = &picked
					}
				}
				if best == nil {
					continue
				}

				saved := tgt.item.EstimatedCost - best.EstimatedCost
				scheduled[best.PoiID] = true
				delete(scheduled, tgt.item.PoiID)
				replaceActivity(plan, tgt.idx, *best)
				plan.Notes = append(plan.Notes, fmt.Sprintf(
					"Swapped %s → %s to save %.2f", tgt.item.Title, best.Name, saved))
				swapped = true
				break
			}

			if !swapped {
				plan.Notes = append(plan.Notes, budgetWarningNote)
				break
			}
		}

		plan.Summary.EstCost = plan.ActivityCost()
	}

	return plans, ComputeTotals(plans)
}

func cheaper(a, b domain.Candidate) bool {
	if a.EstimatedCost != b.EstimatedCost {
		return a.EstimatedCost < b.EstimatedCost
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.PoiID < b.PoiID
}

func transfersWithinCap(items []domain.ScheduleItem, idx int, maxTransferMinutes *int) bool {
	if maxTransferMinutes == nil {
		return true
	}
	for _, ti := range adjacentTransfers(items, idx) {
		if items[ti].DurationMinutes > *maxTransferMinutes {
			return false
		}
	}
	return true
}

// replaceActivity swaps the activity in place and re-marks adjacent transfers
// for re-verification.
func replaceActivity(plan *domain.DayPlan, idx int, alt domain.Candidate) {
	old := plan.Items[idx]
	plan.Items[idx] = domain.ScheduleItem{
		Type:            domain.ItemActivity,
		Start:           old.Start,
		End:             old.End,
		PoiID:           alt.PoiID,
		PlaceID:         alt.PlaceID,
		Title:           alt.Name,
		EstimatedCost:   alt.EstimatedCost,
		DurationMinutes: old.DurationMinutes,
		Tags:            alt.Tags,
	}

	for _, ti := range adjacentTransfers(plan.Items, idx) {
		t := &plan.Items[ti]
		if ti < idx {
			t.ToPlaceID = alt.PlaceID
		} else {
			t.FromPlaceID = alt.PlaceID
		}
		t.DurationMinutes = 0
		t.DistanceKm = 0
		t.Source = domain.SourceHeuristic
		t.VerifyFailed = false
	}
}

// ComputeTotals aggregates trip-level cost and transfer time.
func ComputeTotals(plans []domain.DayPlan) domain.TripTotals {
	totals := domain.TripTotals{}
	for _, plan := range plans {
		cost := plan.ActivityCost()
		totals.TripCostEst += cost
		totals.DailyCosts = append(totals.DailyCosts, domain.DayCost{Date: plan.Date, Cost: cost})
		for _, it := range plan.Items {
			if it.Type == domain.ItemTransfer {
				totals.TripTransferMinutes += it.DurationMinutes
			}
		}
	}
	return totals
}
