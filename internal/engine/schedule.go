package engine

import (
	"sort"

	"wayfarer/internal/models/domain"
	"wayfarer/pkg/utils"
)

// Proximity bonus tiers keep routes geographically coherent.
const (
	proximityNearKm   = 10.0
	proximityMidKm    = 30.0
	proximityFarKm    = 50.0
	proximityNearBump = 0.15
	proximityMidBump  = 0.08
	proximityFarBump  = 0.03
)

type PackConfig struct {
	MaxItemsPerDay    int
	BreakAfterMinutes int
	BreakMinutes      int
}

// PackDayInput is the per-day slice of pipeline state. Used is shared across
// the whole trip so a POI is never scheduled twice in a multi-day plan.
type PackDayInput struct {
	Date     string
	Ranked   []domain.Candidate
	Locks    []domain.Lock
	Day      domain.DayTemplate
	Mode     string
	DailyCap *float64
	Used     map[string]bool
	ByPoiID  map[string]domain.Candidate
}

type gap struct {
	start int
	end   int
	lock  *domain.Lock
}

func splitDayAroundLocks(dayStart, dayEnd int, locks []domain.Lock) []gap {
	sorted := make([]domain.Lock, len(locks))
	copy(sorted, locks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utils.TimeToMinutes(sorted[i].Start) < utils.TimeToMinutes(sorted[j].Start)
	})

	var segments []gap
	cursor := dayStart
	for i := range sorted {
		lockStart := utils.TimeToMinutes(sorted[i].Start)
		lockEnd := utils.TimeToMinutes(sorted[i].End)
		if lockStart > cursor {
			segments = append(segments, gap{start: cursor, end: lockStart})
		}
		segments = append(segments, gap{start: lockStart, end: lockEnd, lock: &sorted[i]})
		if lockEnd > cursor {
			cursor = lockEnd
		}
	}
	if cursor < dayEnd {
		segments = append(segments, gap{start: cursor, end: dayEnd})
	}
	return segments
}

func openForInterval(poi domain.POI, weekday string, startMin, endMin int) bool {
	if len(poi.OpeningHours) == 0 {
		return true
	}
	for _, span := range poi.OpeningHours[weekday] {
		openMin := utils.TimeToMinutes(span.Open)
		closeMin := utils.TimeToMinutes(span.Close)
		if openMin < endMin && closeMin > startMin {
			return true
		}
	}
	return false
}

func proximityBonus(from, to domain.Coords) float64 {
	d := HaversineKm(from, to)
	switch {
	case d < proximityNearKm:
		return proximityNearBump
	case d < proximityMidKm:
		return proximityMidBump
	case d < proximityFarKm:
		return proximityFarBump
	}
	return 0
}

func activityItem(c domain.Candidate, startMin, endMin int, locked bool) domain.ScheduleItem {
	return domain.ScheduleItem{
		Type:            domain.ItemActivity,
		Start:           utils.MinutesToTime(startMin),
		End:             utils.MinutesToTime(endMin),
		PoiID:           c.PoiID,
		PlaceID:         c.PlaceID,
		Title:           c.Name,
		EstimatedCost:   c.EstimatedCost,
		DurationMinutes: endMin - startMin,
		Tags:            c.Tags,
		Locked:          locked,
	}
}

func transferPlaceholder(fromPlaceID, toPlaceID, mode string) domain.ScheduleItem {
	return domain.ScheduleItem{
		Type:        domain.ItemTransfer,
		FromPlaceID: fromPlaceID,
		ToPlaceID:   toPlaceID,
		Mode:        mode,
		Source:      domain.SourceHeuristic,
	}
}

// PackDay greedily fills one day: locks first, then ranked candidates into
// the remaining gaps, with transfer placeholders between distinct places and
// rest breaks after sustained activity. A candidate that fits no gap is
// skipped, never an error; an under-filled day is a valid outcome.
func PackDay(in PackDayInput, cfg PackConfig) []domain.ScheduleItem {
	dayStart := utils.TimeToMinutes(in.Day.Start)
	dayEnd := utils.TimeToMinutes(in.Day.End)
	weekday := utils.WeekdayKey(in.Date)

	var items []domain.ScheduleItem
	var lastPlaced *domain.Candidate

	runningCost := 0.0
	activityCount := 0
	minutesSinceBreak := 0

	for _, lock := range in.Locks {
		in.Used[lock.PoiID] = true
		if c, ok := in.ByPoiID[lock.PoiID]; ok {
			runningCost += c.EstimatedCost
		}
	}

	place := func(c domain.Candidate, startMin, endMin int, locked bool) {
		if lastPlaced != nil && lastPlaced.PlaceID != c.PlaceID {
			items = append(items, transferPlaceholder(lastPlaced.PlaceID, c.PlaceID, in.Mode))
		}
		items = append(items, activityItem(c, startMin, endMin, locked))
		minutesSinceBreak += endMin - startMin
		placed := c
		lastPlaced = &placed
		activityCount++
	}

	for _, seg := range splitDayAroundLocks(dayStart, dayEnd, in.Locks) {
		if seg.lock != nil {
			c, ok := in.ByPoiID[seg.lock.PoiID]
			if !ok {
				// Lock references a POI outside the catalog snapshot; carry
				// the caller-supplied fields through untouched.
				c = domain.Candidate{POI: domain.POI{
					PoiID:   seg.lock.PoiID,
					PlaceID: seg.lock.PlaceID,
					Name:    seg.lock.Title,
				}}
			}
			place(c, seg.start, seg.end, true)
			continue
		}

		cursor := seg.start
		for cursor < seg.end && activityCount < cfg.MaxItemsPerDay {
			pendingBreak := 0
			if minutesSinceBreak >= cfg.BreakAfterMinutes {
				pendingBreak = cfg.BreakMinutes
			}

			best := -1
			bestScore := 0.0
			for i, c := range in.Ranked {
				if in.Used[c.PoiID] {
					continue
				}
				startMin := cursor + pendingBreak
				endMin := startMin + c.DurationMinutes
				if endMin > seg.end {
					continue
				}
				if !openForInterval(c.POI, weekday, startMin, endMin) {
					continue
				}
				if in.DailyCap != nil && runningCost+c.EstimatedCost > *in.DailyCap {
					continue
				}

				score := 0.6*c.Score + 0.4*c.OpeningAlign
				if lastPlaced != nil {
					score += proximityBonus(lastPlaced.Coords, c.Coords)
				}
				if best < 0 || score > bestScore {
					best = i
					bestScore = score
				}
			}

			if best < 0 {
				break
			}

			if pendingBreak > 0 {
				items = append(items, domain.ScheduleItem{
					Type:            domain.ItemBreak,
					Start:           utils.MinutesToTime(cursor),
					End:             utils.MinutesToTime(cursor + pendingBreak),
					DurationMinutes: pendingBreak,
				})
				cursor += pendingBreak
				minutesSinceBreak = 0
			}

			c := in.Ranked[best]
			place(c, cursor, cursor+c.DurationMinutes, false)
			in.Used[c.PoiID] = true
			runningCost += c.EstimatedCost
			cursor += c.DurationMinutes
		}
	}

	// A transfer with no following activity is meaningless.
	if n := len(items); n > 0 && items[n-1].Type == domain.ItemTransfer {
		items = items[:n-1]
	}

	return items
}

// ValidateLocks rejects locks on the same day with overlapping spans.
func ValidateLocks(locks []domain.Lock) bool {
	byDate := make(map[string][]domain.Lock)
	for _, l := range locks {
		byDate[l.Date] = append(byDate[l.Date], l)
	}
	for _, dayLocks := range byDate {
		sort.SliceStable(dayLocks, func(i, j int) bool {
			return utils.TimeToMinutes(dayLocks[i].Start) < utils.TimeToMinutes(dayLocks[j].Start)
		})
		for i := 1; i < len(dayLocks); i++ {
			prevEnd := utils.TimeToMinutes(dayLocks[i-1].End)
			curStart := utils.TimeToMinutes(dayLocks[i].Start)
			if curStart < prevEnd {
				return false
			}
		}
	}
	return true
}
