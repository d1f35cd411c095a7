package handler

import (
	"errors"
	"strconv"
	"sync"

	"go-procurement-fixtures/internal/fixture"
	"go-procurement-fixtures/internal/service"
	"go-procurement-fixtures/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// SeedHeader carries the seed a preview was rendered with.
const SeedHeader = "X-Fixture-Seed"

type FixtureHandler struct {
	service service.GeneratorService
	running sync.Mutex
}

func NewFixtureHandler(s service.GeneratorService) *FixtureHandler {
	return &FixtureHandler{service: s}
}

type artifactParams struct {
	Index int    `validate:"gte=1"`
	Date  string `validate:"required,datetime=2006-01-02"`
}

// parseArtifact reads the entity index param, the date param and the optional
// seed query. Without a seed a fresh one is drawn.
func parseArtifact(c *fiber.Ctx, indexParam string) (artifactParams, uint64, error) {
	index, err := strconv.Atoi(c.Params(indexParam))
	if err != nil {
		return artifactParams{}, 0, errors.New("invalid " + indexParam + " index")
	}
	p := artifactParams{Index: index, Date: c.Params("date")}
	if err := validator.Validate(p); err != nil {
		return p, 0, err
	}

	seed := fixture.RandomSeed()
	if raw := c.Query("seed"); raw != "" {
		seed, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return p, 0, errors.New("invalid seed")
		}
	}
	return p, seed, nil
}

// GetPool lists the SKUs every artifact draws from.
func (h *FixtureHandler) GetPool(c *fiber.Ctx) error {
	pool := h.service.Pool()
	return c.JSON(fiber.Map{"count": len(pool), "skus": pool})
}

// GetOrders renders one store's orders for a day without persisting them.
// GET /api/v1/orders/:store/:date?seed=
func (h *FixtureHandler) GetOrders(c *fiber.Ctx) error {
	p, seed, err := parseArtifact(c, "store")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	day, _ := fixture.ParseDay(p.Date)

	data, err := h.service.RenderOrders(seed, p.Index, day)
	if errors.Is(err, service.ErrInvalidIndex) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render orders"})
	}

	c.Set(SeedHeader, strconv.FormatUint(seed, 10))
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

// GetStock renders one warehouse's stock snapshot for a day as CSV.
// GET /api/v1/stock/:warehouse/:date?seed=
func (h *FixtureHandler) GetStock(c *fiber.Ctx) error {
	p, seed, err := parseArtifact(c, "warehouse")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	day, _ := fixture.ParseDay(p.Date)

	data, err := h.service.RenderStock(seed, p.Index, day)
	if errors.Is(err, service.ErrInvalidIndex) {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to render stock"})
	}

	c.Set(SeedHeader, strconv.FormatUint(seed, 10))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

// CreateRun writes a full dataset. Only one run may write at a time.
// POST /api/v1/runs
func (h *FixtureHandler) CreateRun(c *fiber.Ctx) error {
	var opts service.RunOptions
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&opts); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
		}
	}
	if err := validator.Validate(opts); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	if !h.running.TryLock() {
		return c.Status(409).JSON(fiber.Map{"error": "A run is already in progress"})
	}
	defer h.running.Unlock()

	summary, err := h.service.Run(c.UserContext(), opts)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(201).JSON(fiber.Map{"message": "Run completed", "data": summary})
}
