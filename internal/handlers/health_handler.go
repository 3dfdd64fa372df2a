package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/imf-ops/gadget-api/internal/database"
	"github.com/imf-ops/gadget-api/internal/dto"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	return c.JSON(dto.HealthResponse{
		Status:    "CLASSIFIED - IMF GADGET API OPERATIONAL",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
		DB:        dbStatus,
	})
}
