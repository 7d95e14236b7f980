package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ahmednasr/issue-scout/internal/service"
)

// Version is the service version reported by GET /.
const Version = "1.0.0"

// RegisterRoutes mounts every API endpoint on the app.
func RegisterRoutes(app *fiber.App,
	matchSvc service.MatchService,
	profileSvc service.ProfileService,
) {
	app.Get("/", serviceInfo)

	v1 := app.Group("/api/v1")
	NewMatchHandler(matchSvc).Register(v1)
	NewProfileHandler(profileSvc).Register(v1)
}

// serviceInfo handles GET /
func serviceInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":        "issue-scout",
		"version":     Version,
		"description": "Match developers with relevant GitHub issues based on skills",
	})
}
