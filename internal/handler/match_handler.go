package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-scout/internal/github"
	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/service"
)

// MatchHandler wires HTTP → MatchService.
type MatchHandler struct {
	svc service.MatchService
}

// NewMatchHandler creates a new MatchHandler.
func NewMatchHandler(svc service.MatchService) *MatchHandler {
	return &MatchHandler{svc: svc}
}

// Register mounts POST /match/skills and POST /match/username on the supplied
// router group.
func (h *MatchHandler) Register(r fiber.Router) {
	r.Post("/match/skills", h.matchBySkills)
	r.Post("/match/username", h.matchByUsername)
}

// matchBySkills handles POST /match/skills
func (h *MatchHandler) matchBySkills(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Username != "" {
		return fiber.NewError(fiber.StatusBadRequest, "this endpoint matches by skills; use /match/username for usernames")
	}

	resp, err := h.svc.MatchBySkills(c.UserContext(), req)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(resp)
}

// matchByUsername handles POST /match/username
func (h *MatchHandler) matchByUsername(c *fiber.Ctx) error {
	var req models.MatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.Username == "" {
		return fiber.NewError(fiber.StatusBadRequest, "username is required")
	}

	resp, err := h.svc.MatchByUsername(c.UserContext(), req)
	if err != nil {
		return upstreamError(c, err)
	}
	return c.JSON(resp)
}

// upstreamError maps collaborator failures onto HTTP statuses: missing users
// are 404, exhausted quota is 429 with a Retry-After hint, anything else from
// GitHub is a 502.
func upstreamError(c *fiber.Ctx, err error) error {
	if errors.Is(err, github.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "GitHub user or repository not found")
	}
	var rl *github.RateLimitError
	if errors.As(err, &rl) {
		if rl.RetryAfter > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(rl.RetryAfter.Seconds())))
		}
		return fiber.NewError(fiber.StatusTooManyRequests, rl.Error())
	}
	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}
