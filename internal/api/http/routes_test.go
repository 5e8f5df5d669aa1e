package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"weathernow/internal/app"
	"weathernow/internal/geo"
	"weathernow/internal/location"
	"weathernow/internal/weather"
)

type stubResolver struct{}

func (stubResolver) Forward(ctx context.Context, name string) (geo.Place, error) {
	return geo.Place{Name: name}, nil
}

func (stubResolver) Reverse(ctx context.Context, coord geo.Coordinate) string {
	return geo.FallbackPlaceName
}

type stubFetcher struct{}

func (stubFetcher) Fetch(ctx context.Context, coord geo.Coordinate) (weather.Snapshot, error) {
	return weather.Snapshot{Latitude: coord.Latitude, Longitude: coord.Longitude}, nil
}

func newTestApp() *fiber.App {
	fiberApp := fiber.New()
	coord := app.NewCoordinator(stubResolver{}, stubFetcher{}, nil)
	RegisterRoutes(fiberApp, coord)
	return fiberApp
}

// TestSearchValidation verifies that the search intent requires a city.
func TestSearchValidation(t *testing.T) {
	fiberApp := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := fiberApp.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
}

func TestSearchAccepted(t *testing.T) {
	fiberApp := newTestApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search", strings.NewReader(`{"city":"Paris"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := fiberApp.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, resp.StatusCode)
	}
}

func TestStateRendersCurrentState(t *testing.T) {
	fiberApp := newTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	resp, err := fiberApp.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	var state app.State
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	if state.Loading {
		t.Fatal("fresh session must not be loading")
	}
}

// TestLocateDeniedSurfacesInState triggers the locate intent against a
// device that refuses permission and polls state for the outcome.
func TestLocateDeniedSurfacesInState(t *testing.T) {
	fiberApp := fiber.New()
	coord := app.NewCoordinator(stubResolver{}, stubFetcher{}, &location.StaticProvider{Granted: false})
	RegisterRoutes(fiberApp, coord)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/locate", nil)
	resp, err := fiberApp.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("expected status %d, got %d", http.StatusAccepted, resp.StatusCode)
	}

	deadline := time.Now().Add(time.Second)
	for {
		state := coord.Snapshot()
		if state.Err != "" {
			if state.Err != "Permission to access location was denied" {
				t.Fatalf("unexpected error message: %q", state.Err)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("locate flow never settled")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
