package engine

import (
	"strings"

	"wayfarer/internal/models/domain"
	"wayfarer/pkg/utils"
)

// Drop reasons are stable strings; observability dashboards key on them.
const (
	ReasonBadSeason        = "bad_season"
	ReasonClosed           = "closed"
	ReasonTransferExceeds  = "precheck_transfer_exceeds"
	ReasonSafetyGate       = "safety_gate"
	reasonAvoidTagPrefix   = "avoid_tag:"
	longActivityGateMinute = 180
)

var dangerousSafetyFlags = map[string]bool{
	"wild_animals": true,
	"steep_climb":  true,
	"sea_sickness": true,
	"late_night":   true,
	"pickpockets":  true,
}

func violatedAvoidTag(poi domain.POI, avoid []string) string {
	for _, a := range avoid {
		if poi.HasTag(a) {
			return a
		}
	}
	for _, a := range avoid {
		la := strings.ToLower(a)
		for _, t := range poi.Tags {
			lt := strings.ToLower(t)
			if strings.Contains(lt, la) || strings.Contains(la, lt) {
				return a
			}
		}
	}
	return ""
}

func inSeason(poi domain.POI, dateRange domain.DateRange) bool {
	if len(poi.Seasonality) == 0 {
		return true
	}
	for _, s := range poi.Seasonality {
		if strings.EqualFold(s, "All") {
			return true
		}
	}

	months := utils.MonthsInRange(dateRange.Start, dateRange.End)
	if months == nil {
		// Malformed range is rejected before pipeline entry; be lenient here.
		return true
	}
	for _, m := range months {
		for _, s := range poi.Seasonality {
			if s == m {
				return true
			}
		}
	}
	return false
}

func openOnTripDays(poi domain.POI, trip domain.TripContext) bool {
	if len(poi.OpeningHours) == 0 {
		return true
	}

	dayStart := utils.TimeToMinutes(trip.DayTemplate.Start)
	dayEnd := utils.TimeToMinutes(trip.DayTemplate.End)

	weekdays := make(map[string]bool)
	for _, date := range utils.DatesBetween(trip.DateRange.Start, trip.DateRange.End) {
		weekdays[utils.WeekdayKey(date)] = true
	}
	if len(weekdays) == 0 {
		return true
	}

	for weekday := range weekdays {
		for _, span := range poi.OpeningHours[weekday] {
			openMin := utils.TimeToMinutes(span.Open)
			closeMin := utils.TimeToMinutes(span.Close)
			if openMin < dayEnd && closeMin > dayStart {
				return true
			}
		}
	}
	return false
}

func safetyGated(poi domain.POI, pace string) bool {
	if pace != "light" {
		return false
	}
	for _, flag := range poi.SafetyFlags {
		if dangerousSafetyFlags[flag] {
			return true
		}
	}
	return poi.DurationMinutes > longActivityGateMinute
}

// FilterCandidates applies the hard exclusion rules in order, short-circuiting
// on the first failure per candidate. Locked POIs bypass every check.
func FilterCandidates(
	candidates []domain.Candidate,
	trip domain.TripContext,
	prefs domain.Preferences,
	cons domain.Constraints,
	lockedPoiIDs map[string]bool,
) ([]domain.Candidate, []domain.DropEntry) {

	var kept []domain.Candidate
	var dropLog []domain.DropEntry

	for _, c := range candidates {
		if lockedPoiIDs[c.PoiID] {
			kept = append(kept, c)
			continue
		}

		if tag := violatedAvoidTag(c.POI, prefs.AvoidTags); tag != "" {
			dropLog = append(dropLog, domain.DropEntry{PoiID: c.PoiID, Reason: reasonAvoidTagPrefix + tag})
			continue
		}

		if !inSeason(c.POI, trip.DateRange) {
			dropLog = append(dropLog, domain.DropEntry{PoiID: c.PoiID, Reason: ReasonBadSeason})
			continue
		}

		if !openOnTripDays(c.POI, trip) {
			dropLog = append(dropLog, domain.DropEntry{PoiID: c.PoiID, Reason: ReasonClosed})
			continue
		}

		if cons.MaxTransferMinutes != nil &&
			MinTransferMinutes(c.DistanceKm, trip.Modes) > float64(*cons.MaxTransferMinutes) {
			dropLog = append(dropLog, domain.DropEntry{PoiID: c.PoiID, Reason: ReasonTransferExceeds})
			continue
		}

		if safetyGated(c.POI, trip.DayTemplate.Pace) {
			dropLog = append(dropLog, domain.DropEntry{PoiID: c.PoiID, Reason: ReasonSafetyGate})
			continue
		}

		kept = append(kept, c)
	}

	return kept, dropLog
}
