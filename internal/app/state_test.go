package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weathernow/internal/weather"
)

func TestReduceFlowStartedClearsOutcome(t *testing.T) {
	prior := State{
		City:    "Paris",
		Weather: &weather.Snapshot{Temperature: 18.2},
		Err:     "boom",
	}

	next := reduce(prior, flowStarted{})

	assert.True(t, next.Loading)
	assert.Empty(t, next.Err)
	assert.Nil(t, next.Weather)
	assert.Equal(t, "Paris", next.City, "start must not touch the city label")
}

func TestReduceWeatherLoadedSettles(t *testing.T) {
	snap := weather.Snapshot{Temperature: 21.5, WindSpeed: 3.0, Latitude: 52.52, Longitude: 13.41}

	next := reduce(State{Loading: true, Err: "stale"}, weatherLoaded{snapshot: snap})

	assert.False(t, next.Loading)
	assert.Empty(t, next.Err)
	if assert.NotNil(t, next.Weather) {
		assert.Equal(t, snap, *next.Weather)
	}
}

func TestReduceFlowFailedSettles(t *testing.T) {
	next := reduce(State{Loading: true}, flowFailed{message: "City not found"})

	assert.False(t, next.Loading)
	assert.Equal(t, "City not found", next.Err)
	assert.Nil(t, next.Weather)
}

func TestReduceFlowFailedFallbackMessage(t *testing.T) {
	next := reduce(State{Loading: true}, flowFailed{})

	assert.Equal(t, fallbackErrMessage, next.Err)
}

func TestReduceInputAndCity(t *testing.T) {
	next := reduce(State{}, inputChanged{text: "Par"})
	next = reduce(next, citySet{name: "Paris"})

	assert.Equal(t, "Par", next.InputCity)
	assert.Equal(t, "Paris", next.City)
}
