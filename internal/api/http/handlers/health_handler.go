package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler responds to liveness probes; no authentication.
type HealthHandler struct{}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Check reports service liveness.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success":   true,
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}
