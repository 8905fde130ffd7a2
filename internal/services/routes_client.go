package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"wayfarer/pkg/memcache"
)

// RoutesClientInterface wraps the external ETA service. Any transport-level
// problem surfaces as a single error so the verifier's fallback is an
// ordinary branch.
type RoutesClientInterface interface {
	FetchETA(ctx context.Context, fromPlaceID, toPlaceID, mode string, departure time.Time) (memcache.Leg, error)
}

type googleRoutesClient struct {
	http   *http.Client
	apiKey string
}

func NewGoogleRoutesClient(apiKey string, timeout time.Duration) RoutesClientInterface {
	return &googleRoutesClient{
		http:   &http.Client{Timeout: timeout},
		apiKey: apiKey,
	}
}

func routesTravelMode(mode string) string {
	switch strings.ToUpper(mode) {
	case "WALK":
		return "WALK"
	case "BIKE":
		return "BICYCLE"
	case "TRANSIT":
		return "TRANSIT"
	}
	return "DRIVE"
}

func (c *googleRoutesClient) FetchETA(ctx context.Context, fromPlaceID, toPlaceID, mode string, departure time.Time) (memcache.Leg, error) {
	body := map[string]interface{}{
		"origin":      map[string]string{"placeId": fromPlaceID},
		"destination": map[string]string{"placeId": toPlaceID},
		"travelMode":  routesTravelMode(mode),
	}
	if !departure.IsZero() {
		body["departureTime"] = departure.UTC().Format(time.RFC3339)
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return memcache.Leg{}, fmt.Errorf("routes encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://routes.googleapis.com/directions/v2:computeRoutes", bytes.NewReader(payload))
	if err != nil {
		return memcache.Leg{}, fmt.Errorf("routes request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.apiKey)
	req.Header.Set("X-Goog-FieldMask", "routes.duration,routes.distanceMeters")

	resp, err := c.http.Do(req)
	if err != nil {
		return memcache.Leg{}, fmt.Errorf("routes http error: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return memcache.Leg{}, fmt.Errorf("routes bad status: %s", resp.Status)
	}

	var decoded struct {
		Routes []struct {
			Duration       string `json:"duration"`
			DistanceMeters int    `json:"distanceMeters"`
		} `json:"routes"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return memcache.Leg{}, fmt.Errorf("routes decode: %w", err)
	}
	if len(decoded.Routes) == 0 {
		return memcache.Leg{}, fmt.Errorf("routes empty response")
	}

	seconds, err := time.ParseDuration(decoded.Routes[0].Duration)
	if err != nil {
		return memcache.Leg{}, fmt.Errorf("routes duration parse: %w", err)
	}

	minutes := int(seconds.Minutes())
	if minutes < 1 {
		minutes = 1
	}

	return memcache.Leg{
		DurationMinutes: minutes,
		DistanceKm:      float64(decoded.Routes[0].DistanceMeters) / 1000.0,
	}, nil
}
