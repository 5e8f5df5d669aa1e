package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds everything the composition root needs. Core packages
// receive plain values; no env access happens outside this package and cmd.
type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	// Upstream endpoints, overridable for tests.
	GeocodingURL string
	ForecastURL  string

	// RefreshInterval re-runs the fetch for the current location.
	// 0 disables the refresh job.
	RefreshInterval time.Duration

	// Simulated device position; the locate flow reports permission
	// denied unless both are set.
	DeviceLat    float64
	DeviceLon    float64
	DeviceSet    bool
	GoogleAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.GeocodingURL = os.Getenv("GEOCODING_URL")
	cfg.ForecastURL = os.Getenv("FORECAST_URL")
	cfg.GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	refreshStr := getenvDefault("REFRESH_INTERVAL", "0")
	refresh, err := time.ParseDuration(refreshStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = refresh

	latStr, lonStr := os.Getenv("DEVICE_LAT"), os.Getenv("DEVICE_LON")
	if latStr != "" && lonStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEVICE_LAT: %w", err)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid DEVICE_LON: %w", err)
		}
		cfg.DeviceLat, cfg.DeviceLon, cfg.DeviceSet = lat, lon, true
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
