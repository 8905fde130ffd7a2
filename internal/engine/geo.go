package engine

import (
	"math"
	"strings"

	"wayfarer/internal/models/domain"
)

const earthRadiusKm = 6371.0

func HaversineKm(a, b domain.Coords) float64 {
	lat1 := a.Lat * math.Pi / 180
	lng1 := a.Lng * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	lng2 := b.Lng * math.Pi / 180

	dlat := lat2 - lat1
	dlng := lng2 - lng1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	c := 2 * math.Asin(math.Sqrt(h))

	return earthRadiusKm * c
}

// ModeSpeedKmh returns the average speed used for heuristic ETA estimates.
func ModeSpeedKmh(mode string) float64 {
	switch strings.ToUpper(mode) {
	case "DRIVE":
		return 40.0
	case "WALK":
		return 4.5
	case "BIKE":
		return 15.0
	case "TRANSIT":
		return 25.0
	}
	return 20.0
}

// EstimateLeg computes a heuristic transfer duration and distance for one
// leg, clamped to a 3 minute minimum.
func EstimateLeg(from, to domain.Coords, mode string) (int, float64) {
	distanceKm := HaversineKm(from, to)
	speed := ModeSpeedKmh(mode)
	minutes := int(distanceKm / speed * 60)
	if minutes < 3 {
		minutes = 3
	}
	return minutes, distanceKm
}

// MinTransferMinutes is the fastest heuristic ETA across the requested modes.
func MinTransferMinutes(distanceKm float64, modes []string) float64 {
	if len(modes) == 0 {
		return 0
	}
	best := math.Inf(1)
	for _, mode := range modes {
		minutes := distanceKm / ModeSpeedKmh(mode) * 60
		if minutes < best {
			best = minutes
		}
	}
	return best
}
