package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

// ErrNotFound is returned when forward geocoding yields no candidates.
// Its message is what the UI shows, so keep it user-facing.
var ErrNotFound = errors.New("City not found")

// FallbackPlaceName is the label used when reverse geocoding cannot
// produce anything better.
const FallbackPlaceName = "Your Location"

const defaultSearchURL = "https://geocoding-api.open-meteo.com/v1/search"

// Resolver turns place names into coordinates and coordinates into
// best-effort place names.
type Resolver struct {
	client    *resty.Client
	searchURL string
	reverse   ReverseSource
}

// NewResolver creates a Resolver. searchURL may be empty to use the
// Open-Meteo geocoding endpoint. reverse may be nil, in which case
// Reverse always returns the fallback label.
func NewResolver(searchURL string, reverse ReverseSource) *Resolver {
	if searchURL == "" {
		searchURL = defaultSearchURL
	}
	return &Resolver{
		client:    resty.New(),
		searchURL: searchURL,
		reverse:   reverse,
	}
}

// Forward resolves a place name to its first geocoding candidate.
// Callers are expected to pass a non-empty, trimmed name.
func (r *Resolver) Forward(ctx context.Context, name string) (Place, error) {
	resp, err := r.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":  name,
			"count": "1",
		}).
		Get(r.searchURL)
	if err != nil {
		return Place{}, fmt.Errorf("geocoding request: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return Place{}, fmt.Errorf("geocoding failed with status %d", resp.StatusCode())
	}

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return Place{}, fmt.Errorf("geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		return Place{}, ErrNotFound
	}

	// First candidate is authoritative; no ranking or disambiguation.
	first := payload.Results[0]
	return Place{
		Name: first.Name,
		Coordinate: Coordinate{
			Latitude:  first.Latitude,
			Longitude: first.Longitude,
		},
	}, nil
}

// Reverse derives a label for a coordinate. It never fails: any lookup
// error or empty record set degrades to FallbackPlaceName.
func (r *Resolver) Reverse(ctx context.Context, coord Coordinate) string {
	if r.reverse == nil {
		return FallbackPlaceName
	}

	records, err := r.reverse.ReverseGeocode(ctx, coord)
	if err != nil || len(records) == 0 {
		return FallbackPlaceName
	}

	first := records[0]
	switch {
	case first.City != "":
		return first.City
	case first.Region != "":
		return first.Region
	case first.Country != "":
		return first.Country
	default:
		return FallbackPlaceName
	}
}
