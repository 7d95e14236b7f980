package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-scout/internal/service"
)

// ProfileHandler wires HTTP → ProfileService.
type ProfileHandler struct {
	svc service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Register mounts GET /users/:username/skills on the supplied router group.
func (h *ProfileHandler) Register(r fiber.Router) {
	r.Get("/users/:username/skills", h.analyzeUser)
}

// analyzeUser handles GET /users/:username/skills
func (h *ProfileHandler) analyzeUser(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username is required")
	}

	profile, err := h.svc.AnalyzeUser(c.UserContext(), username)
	if err != nil {
		return upstreamError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"username": username,
		"skills":   profile,
		"message":  fmt.Sprintf("Successfully analyzed skills for @%s", username),
	})
}
