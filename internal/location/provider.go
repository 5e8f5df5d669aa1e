// Package location defines the device-side collaborator the orchestrator
// consumes: permission state, current position, and reverse geocoding.
package location

import (
	"context"
	"errors"

	"weathernow/internal/geo"
)

// ErrPermissionDenied is surfaced verbatim to the user when the device
// refuses location access.
var ErrPermissionDenied = errors.New("Permission to access location was denied")

// ErrNoPosition is returned when a provider has no position to report.
var ErrNoPosition = errors.New("device position unavailable")

// Provider is the contract of an external location source.
type Provider interface {
	// RequestPermission asks for foreground location access.
	RequestPermission(ctx context.Context) (bool, error)

	// CurrentPosition reads the device's current coordinate. Only valid
	// after RequestPermission returned true.
	CurrentPosition(ctx context.Context) (geo.Coordinate, error)

	geo.ReverseSource
}

// StaticProvider is a Provider with a fixed position and canned reverse
// records. It backs the simulated device in configuration and tests.
type StaticProvider struct {
	Granted    bool
	Position   geo.Coordinate
	HasPos     bool
	Addresses  []geo.Address
	ReverseErr error
}

func (p *StaticProvider) RequestPermission(ctx context.Context) (bool, error) {
	return p.Granted, nil
}

func (p *StaticProvider) CurrentPosition(ctx context.Context) (geo.Coordinate, error) {
	if !p.HasPos {
		return geo.Coordinate{}, ErrNoPosition
	}
	return p.Position, nil
}

func (p *StaticProvider) ReverseGeocode(ctx context.Context, coord geo.Coordinate) ([]geo.Address, error) {
	if p.ReverseErr != nil {
		return nil, p.ReverseErr
	}
	return p.Addresses, nil
}
