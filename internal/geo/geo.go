package geo

import "context"

// Coordinate is a latitude/longitude pair identifying a point on Earth.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place couples a coordinate with its human-readable label as returned
// by forward geocoding.
type Place struct {
	Name string `json:"name"`
	Coordinate
}

// Address is a single reverse-geocoding record. All fields are optional;
// consumers fall back from City to Region to Country.
type Address struct {
	City    string `json:"city"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

// ReverseSource supplies reverse-geocoding records for a coordinate.
// Location providers implement this.
type ReverseSource interface {
	ReverseGeocode(ctx context.Context, coord Coordinate) ([]Address, error)
}
