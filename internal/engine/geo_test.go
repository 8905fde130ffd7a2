package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"wayfarer/internal/models/domain"
)

var (
	colombo = domain.Coords{Lat: 6.9271, Lng: 79.8612}
	kandy   = domain.Coords{Lat: 7.2906, Lng: 80.6337}
)

func TestHaversineKm(t *testing.T) {
	assert.Zero(t, HaversineKm(colombo, colombo))

	// Colombo to Kandy is roughly 94 km as the crow flies.
	d := HaversineKm(colombo, kandy)
	assert.InDelta(t, 94, d, 5)

	assert.InDelta(t, d, HaversineKm(kandy, colombo), 1e-9)
}

func TestModeSpeedKmh(t *testing.T) {
	assert.Equal(t, 40.0, ModeSpeedKmh("DRIVE"))
	assert.Equal(t, 40.0, ModeSpeedKmh("drive"))
	assert.Equal(t, 4.5, ModeSpeedKmh("WALK"))
	assert.Equal(t, 15.0, ModeSpeedKmh("BIKE"))
	assert.Equal(t, 25.0, ModeSpeedKmh("TRANSIT"))
	assert.Equal(t, 20.0, ModeSpeedKmh("TELEPORT"))
}

func TestEstimateLegClampsToMinimum(t *testing.T) {
	near := domain.Coords{Lat: colombo.Lat + 0.001, Lng: colombo.Lng}
	minutes, km := EstimateLeg(colombo, near, "DRIVE")
	assert.Equal(t, 3, minutes)
	assert.Less(t, km, 1.0)
}

func TestEstimateLegUsesModeSpeed(t *testing.T) {
	driveMin, _ := EstimateLeg(colombo, kandy, "DRIVE")
	walkMin, _ := EstimateLeg(colombo, kandy, "WALK")
	assert.Greater(t, walkMin, driveMin)
}

func TestMinTransferMinutes(t *testing.T) {
	assert.Zero(t, MinTransferMinutes(50, nil))

	// 40 km at DRIVE speed is 60 minutes; WALK is far slower, so the
	// fastest mode wins.
	best := MinTransferMinutes(40, []string{"WALK", "DRIVE"})
	assert.InDelta(t, 60, best, 1e-9)
}
