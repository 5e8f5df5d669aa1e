package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "weathernow/internal/api/http"
	"weathernow/internal/app"
	"weathernow/internal/config"
	"weathernow/internal/geo"
	"weathernow/internal/location"
	"weathernow/internal/scheduler"
	"weathernow/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound forecast calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	device := buildDeviceProvider(cfg)
	resolver := geo.NewResolver(cfg.GeocodingURL, device)
	fetcher := weather.NewFetcher(httpClient, cfg.ForecastURL)

	coord := app.NewCoordinator(resolver, fetcher, device)

	// Periodic refresh of the current location (disabled by default).
	sched := scheduler.New(coord, cfg.RefreshInterval)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	fiberApp := fiber.New(fiber.Config{
		AppName:               "weathernow",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	fiberApp.Use(logger.New())
	fiberApp.Use(recover.New())

	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weathernow",
		})
	})

	httpapi.RegisterRoutes(fiberApp, coord)

	// The default place loads once per session with no user action.
	go coord.InitializeDefault(context.Background())

	go func() {
		if err := fiberApp.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}

// buildDeviceProvider picks the location provider: Google-backed reverse
// geocoding when an API key is configured, otherwise a static simulated
// device that denies permission unless a position was configured.
func buildDeviceProvider(cfg *config.AppConfig) location.Provider {
	pos := geo.Coordinate{Latitude: cfg.DeviceLat, Longitude: cfg.DeviceLon}

	if cfg.GoogleAPIKey != "" && cfg.DeviceSet {
		return location.NewGoogleProvider(cfg.GoogleAPIKey, pos)
	}

	return &location.StaticProvider{
		Granted:  cfg.DeviceSet,
		Position: pos,
		HasPos:   cfg.DeviceSet,
	}
}
