package handler

import (
	"go-procurement-fixtures/internal/middleware"
	"go-procurement-fixtures/internal/service"
	"go-procurement-fixtures/internal/ws"
	"go-procurement-fixtures/pkg/jwt"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewRouter wires the fixture API. gen must write through a sink that
// announces artifacts on hub.
func NewRouter(gen service.GeneratorService, hub *ws.Hub) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Procurement Fixtures v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	fixtures := NewFixtureHandler(gen)

	api := app.Group("/api/v1")
	api.Get("/health", Health)
	api.Get("/pool", fixtures.GetPool)
	api.Get("/orders/:store/:date", fixtures.GetOrders)
	api.Get("/stock/:warehouse/:date", fixtures.GetStock)
	api.Post("/runs", middleware.RequireToken(), middleware.RequireScope(jwt.ScopeRunsCreate), fixtures.CreateRun)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		if !hub.Join(c) {
			return
		}
		defer hub.Leave(c)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	return app
}
