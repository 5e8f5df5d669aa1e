package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weathernow/internal/geo"
)

func TestFetchCurrentConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		assert.NotEmpty(t, r.URL.Query().Get("longitude"))

		w.Header().Set("Content-Type", "application/json")
		// Provider echoes rounded coordinates; the snapshot must keep the input ones.
		w.Write([]byte(`{"latitude":48.86,"longitude":2.35,"current_weather":{"temperature":18.2,"windspeed":9.4,"weathercode":3,"time":"2024-05-01T12:00"}}`))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), srv.URL)
	snap, err := fetcher.Fetch(context.Background(), geo.Coordinate{Latitude: 48.8566, Longitude: 2.3522})

	require.NoError(t, err)
	assert.Equal(t, 18.2, snap.Temperature)
	assert.Equal(t, 9.4, snap.WindSpeed)
	assert.Equal(t, 48.8566, snap.Latitude)
	assert.Equal(t, 2.3522, snap.Longitude)
}

func TestFetchBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), srv.URL)
	_, err := fetcher.Fetch(context.Background(), geo.Coordinate{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather request failed")
}

func TestFetchOutOfRangeCoordinatePassesThrough(t *testing.T) {
	var gotLat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("latitude")
		w.Write([]byte(`{"current_weather":{"temperature":0,"windspeed":0}}`))
	}))
	defer srv.Close()

	fetcher := NewFetcher(srv.Client(), srv.URL)
	snap, err := fetcher.Fetch(context.Background(), geo.Coordinate{Latitude: 1234.5, Longitude: -999.0})

	require.NoError(t, err)
	assert.Equal(t, "1234.500000", gotLat, "no range checking on input coordinates")
	assert.Equal(t, 1234.5, snap.Latitude)
}
