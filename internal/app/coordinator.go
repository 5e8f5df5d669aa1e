// Package app contains the orchestration core: one coordinator per
// session owning the presentation state and running the three flows
// (search by name, locate device, initialize default) through a shared
// Start → Resolve → Fetch → Settle pipeline.
package app

import (
	"context"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"weathernow/internal/geo"
	"weathernow/internal/location"
	"weathernow/internal/weather"
)

// DefaultPlace is the session's initial location.
var DefaultPlace = geo.Place{
	Name:       "Berlin",
	Coordinate: geo.Coordinate{Latitude: 52.52, Longitude: 13.41},
}

// Resolver is the coordinate-resolution dependency of the coordinator.
type Resolver interface {
	Forward(ctx context.Context, name string) (geo.Place, error)
	Reverse(ctx context.Context, coord geo.Coordinate) string
}

// Fetcher is the current-conditions dependency of the coordinator.
type Fetcher interface {
	Fetch(ctx context.Context, coord geo.Coordinate) (weather.Snapshot, error)
}

// Coordinator owns the presentation state for one session. Flows may be
// started from any goroutine; individual transitions are serialized by
// the mutex and a monotonically increasing generation counter discards
// settles from flows that have been superseded.
type Coordinator struct {
	resolver Resolver
	fetcher  Fetcher
	device   location.Provider

	mu        sync.Mutex
	state     State
	gen       uint64
	lastCoord *geo.Coordinate
}

// NewCoordinator wires the coordinator's collaborators. device may be
// nil if locate-device is never triggered.
func NewCoordinator(resolver Resolver, fetcher Fetcher, device location.Provider) *Coordinator {
	return &Coordinator{
		resolver: resolver,
		fetcher:  fetcher,
		device:   device,
	}
}

// Snapshot returns a copy of the current state for rendering.
func (c *Coordinator) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.Weather != nil {
		snap := *s.Weather
		s.Weather = &snap
	}
	return s
}

// SetInput echoes the search text field into state. Not generation
// guarded: input echo belongs to no flow.
func (c *Coordinator) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = reduce(c.state, inputChanged{text: text})
}

// begin opens a new flow: bumps the generation, applies the Start reset
// and returns the generation token the flow must present on every
// subsequent transition.
func (c *Coordinator) begin() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = reduce(c.state, flowStarted{})
	return c.gen
}

// apply commits an event if the flow still owns the state. It reports
// whether the event was applied; a false return means the flow has been
// superseded and should stop mutating.
func (c *Coordinator) apply(gen uint64, ev Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.state = reduce(c.state, ev)
	return true
}

// SearchByName resolves the typed place name and fetches its weather.
// Whitespace-only input is a complete no-op: no state is touched.
func (c *Coordinator) SearchByName(ctx context.Context, text string) {
	query := strings.TrimSpace(text)
	if query == "" {
		return
	}

	id := uuid.NewString()
	gen := c.begin()
	log.Printf("INFO: flow %s: searching for %q", id, query)

	place, err := c.resolver.Forward(ctx, query)
	if err != nil {
		c.settleErr(gen, id, err)
		return
	}

	// City updates only when resolution succeeds; a failed search keeps
	// the previous label.
	c.apply(gen, citySet{name: place.Name})
	c.fetchAndSettle(ctx, gen, id, place.Coordinate)
}

// LocateDevice asks the device for permission and position, derives a
// best-effort label and fetches weather at the device coordinate.
func (c *Coordinator) LocateDevice(ctx context.Context) {
	id := uuid.NewString()
	gen := c.begin()
	log.Printf("INFO: flow %s: locating device", id)

	granted, err := c.device.RequestPermission(ctx)
	if err != nil {
		c.settleErr(gen, id, err)
		return
	}
	if !granted {
		c.settleErr(gen, id, location.ErrPermissionDenied)
		return
	}

	pos, err := c.device.CurrentPosition(ctx)
	if err != nil {
		c.settleErr(gen, id, err)
		return
	}

	// Reverse resolution cannot fail; it always yields a label.
	c.apply(gen, citySet{name: c.resolver.Reverse(ctx, pos)})
	c.fetchAndSettle(ctx, gen, id, pos)
}

// InitializeDefault runs once at session start and loads the default
// place without any geocoding call. The city label is set up front,
// not gated on the fetch succeeding.
func (c *Coordinator) InitializeDefault(ctx context.Context) {
	id := uuid.NewString()
	gen := c.begin()
	c.apply(gen, citySet{name: DefaultPlace.Name})
	log.Printf("INFO: flow %s: initializing with default place %s", id, DefaultPlace.Name)

	c.fetchAndSettle(ctx, gen, id, DefaultPlace.Coordinate)
}

// Refresh re-fetches conditions for the most recently resolved
// coordinate. A no-op when no flow has resolved a coordinate yet.
func (c *Coordinator) Refresh(ctx context.Context) {
	c.mu.Lock()
	coord := c.lastCoord
	c.mu.Unlock()
	if coord == nil {
		return
	}

	id := uuid.NewString()
	gen := c.begin()
	log.Printf("INFO: flow %s: refreshing conditions", id)

	c.fetchAndSettle(ctx, gen, id, *coord)
}

func (c *Coordinator) fetchAndSettle(ctx context.Context, gen uint64, id string, coord geo.Coordinate) {
	c.mu.Lock()
	if gen == c.gen {
		cc := coord
		c.lastCoord = &cc
	}
	c.mu.Unlock()

	snap, err := c.fetcher.Fetch(ctx, coord)
	if err != nil {
		c.settleErr(gen, id, err)
		return
	}

	if c.apply(gen, weatherLoaded{snapshot: snap}) {
		log.Printf("INFO: flow %s: settled with %.1f°C at %.2f,%.2f", id, snap.Temperature, snap.Latitude, snap.Longitude)
	} else {
		log.Printf("INFO: flow %s: superseded, result discarded", id)
	}
}

func (c *Coordinator) settleErr(gen uint64, id string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if c.apply(gen, flowFailed{message: msg}) {
		log.Printf("ERROR: flow %s: %s", id, msg)
	} else {
		log.Printf("INFO: flow %s: superseded, error discarded: %s", id, msg)
	}
}
