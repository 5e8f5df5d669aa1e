// Package httpapi is the thin presentation adapter: it forwards user
// intents into the coordinator and renders whatever state it holds.
// No domain logic lives here.
package httpapi

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"weathernow/internal/app"
)

var validate = validator.New()

// searchRequest is the body of the search intent.
type searchRequest struct {
	City string `json:"city" validate:"required"`
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Flows are
// fired asynchronously; handlers respond immediately with the state as
// it stands, and clients poll /state for the outcome.
func RegisterRoutes(fiberApp *fiber.App, coord *app.Coordinator) {
	v1 := fiberApp.Group("/api/v1")

	v1.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(coord.Snapshot())
	})

	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		coord.SetInput(req.City)
		go coord.SearchByName(context.Background(), req.City)

		return c.Status(fiber.StatusAccepted).JSON(coord.Snapshot())
	})

	v1.Post("/locate", func(c *fiber.Ctx) error {
		go coord.LocateDevice(context.Background())

		return c.Status(fiber.StatusAccepted).JSON(coord.Snapshot())
	})
}
