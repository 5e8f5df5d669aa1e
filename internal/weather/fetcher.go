package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"weathernow/internal/geo"
)

const defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Fetcher retrieves current conditions from the Open-Meteo forecast API.
type Fetcher struct {
	client  *http.Client
	baseURL string
	circuit *gobreaker.CircuitBreaker
}

// NewFetcher creates a Fetcher. baseURL may be empty to use the
// Open-Meteo endpoint.
func NewFetcher(client *http.Client, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = defaultForecastURL
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openmeteo-forecast",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Fetcher{
		client:  client,
		baseURL: baseURL,
		circuit: cb,
	}
}

// Fetch requests current conditions for the exact coordinate given.
// Coordinates are not range-checked; the API accepts any numeric pair.
// The returned snapshot is stamped with the input coordinate, not the
// one echoed by the provider.
func (f *Fetcher) Fetch(ctx context.Context, coord geo.Coordinate) (Snapshot, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", fmt.Sprintf("%f", coord.Latitude))
		values.Set("longitude", fmt.Sprintf("%f", coord.Longitude))
		values.Set("current_weather", "true")

		u := fmt.Sprintf("%s?%s", f.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequest(ctx, f.client, f.circuit, buildRequest)
	if err != nil {
		return Snapshot{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		CurrentWeather struct {
			Temperature float64 `json:"temperature"`
			WindSpeed   float64 `json:"windspeed"`
		} `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Snapshot{}, fmt.Errorf("weather response: %w", err)
	}

	return Snapshot{
		Temperature: payload.CurrentWeather.Temperature,
		WindSpeed:   payload.CurrentWeather.WindSpeed,
		Latitude:    coord.Latitude,
		Longitude:   coord.Longitude,
	}, nil
}
