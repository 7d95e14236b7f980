package handler

import (
	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports liveness. The matcher holds no connections worth
// probing; the only state worth reporting is whether a GitHub token is set.
type HealthHandler struct {
	tokenConfigured bool
}

func NewHealthHandler(tokenConfigured bool) *HealthHandler {
	return &HealthHandler{tokenConfigured: tokenConfigured}
}

func (h *HealthHandler) Register(r fiber.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":           "healthy",
		"service":          "issue-scout",
		"github_token_set": h.tokenConfigured,
	})
}
