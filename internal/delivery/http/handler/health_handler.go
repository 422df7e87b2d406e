package handler

import (
	"github.com/gofiber/fiber/v3"

	"planboard/internal/database"
	"planboard/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	status := "ok"
	if h.db != nil {
		if err := h.db.Ping(c.Context()); err != nil {
			return response.JSON(c, fiber.StatusServiceUnavailable, fiber.Map{"status": "degraded"})
		}
	}
	return response.JSON(c, fiber.StatusOK, fiber.Map{"status": status})
}
