package utils

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// TimeToMinutes converts "HH:MM" to minutes since midnight. Malformed input
// yields 0 so callers stay lenient, matching catalog data quality.
func TimeToMinutes(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return 0
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0
	}
	return h*60 + m
}

func MinutesToTime(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func ParseDate(date string) (time.Time, error) {
	return time.Parse(dateLayout, date)
}

// DatesBetween returns every date from start to end inclusive, or nil when
// the range is malformed or reversed.
func DatesBetween(start, end string) []string {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return nil
	}
	if e.Before(s) {
		return nil
	}
	var out []string
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(dateLayout))
	}
	return out
}

// WeekdayKey maps a date to the opening-hours key ("mon".."sun").
func WeekdayKey(date string) string {
	d, err := ParseDate(date)
	if err != nil {
		return "mon"
	}
	return strings.ToLower(d.Format("Mon"))
}

// MonthKey maps a date to the seasonality key ("Jan".."Dec").
func MonthKey(d time.Time) string {
	return d.Format("Jan")
}

// MonthsInRange lists the distinct month keys touched by [start, end].
func MonthsInRange(start, end string) []string {
	s, err := ParseDate(start)
	if err != nil {
		return nil
	}
	e, err := ParseDate(end)
	if err != nil || e.Before(s) {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for d := time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, time.UTC); !d.After(e); d = d.AddDate(0, 1, 0) {
		key := MonthKey(d)
		if !seen[key] {
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}
