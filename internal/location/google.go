package location

import (
	"context"

	"github.com/kelvins/geocoder"

	"weathernow/internal/geo"
)

// GoogleProvider reverse-geocodes through the Google Maps API. The
// position itself still comes from configuration; permission is always
// granted.
type GoogleProvider struct {
	Position geo.Coordinate
}

// NewGoogleProvider configures the shared geocoder API key and returns
// a provider anchored at the given position.
func NewGoogleProvider(apiKey string, position geo.Coordinate) *GoogleProvider {
	geocoder.ApiKey = apiKey
	return &GoogleProvider{Position: position}
}

func (p *GoogleProvider) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

func (p *GoogleProvider) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	return p.Position, nil
}

// ReverseGeocode maps Google address records onto the City/Region/Country
// fallback chain. The geocoder library is not context-aware; ctx only
// gates entry.
func (p *GoogleProvider) ReverseGeocode(ctx context.Context, coord geo.Coordinate) ([]geo.Address, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	addresses, err := geocoder.GeocodingReverse(geocoder.Location{
		Latitude:  coord.Latitude,
		Longitude: coord.Longitude,
	})
	if err != nil {
		return nil, err
	}

	records := make([]geo.Address, 0, len(addresses))
	for _, a := range addresses {
		records = append(records, geo.Address{
			City:    a.City,
			Region:  a.State,
			Country: a.Country,
		})
	}
	return records, nil
}
