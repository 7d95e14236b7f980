package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmednasr/issue-scout/internal/github"
	"github.com/ahmednasr/issue-scout/internal/models"
)

// stubMatchService returns canned responses.
type stubMatchService struct {
	resp models.MatchResponse
	err  error

	lastRequest models.MatchRequest
}

func (s *stubMatchService) MatchBySkills(_ context.Context, req models.MatchRequest) (models.MatchResponse, error) {
	s.lastRequest = req
	return s.resp, s.err
}

func (s *stubMatchService) MatchByUsername(_ context.Context, req models.MatchRequest) (models.MatchResponse, error) {
	s.lastRequest = req
	return s.resp, s.err
}

type stubProfileService struct {
	profile models.SkillProfile
	err     error
}

func (s *stubProfileService) AnalyzeUser(_ context.Context, _ string) (models.SkillProfile, error) {
	return s.profile, s.err
}

func newTestApp(match *stubMatchService, profiles *stubProfileService) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, match, profiles)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestMatchBySkillsEndpoint(t *testing.T) {
	match := &stubMatchService{
		resp: models.MatchResponse{
			Success:    true,
			Issues:     []models.ScoredIssue{{Issue: models.Issue{Number: 1}, Difficulty: models.Beginner, RelevanceScore: 7.5}},
			TotalFound: 1,
			Message:    "Found 1 matching issues",
		},
	}
	app := newTestApp(match, &stubProfileService{})

	resp := postJSON(t, app, "/api/v1/match/skills", models.MatchRequest{Skills: []string{"python"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body models.MatchResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, 1, body.TotalFound)

	// Defaults must be applied before the service sees the request.
	assert.Equal(t, models.DefaultMaxResults, match.lastRequest.MaxResults)
	assert.Equal(t, models.DefaultIssueTypes, match.lastRequest.IssueTypes)
}

func TestMatchBySkillsValidation(t *testing.T) {
	tests := []struct {
		name string
		body models.MatchRequest
	}{
		{name: "empty request", body: models.MatchRequest{}},
		{name: "both modes", body: models.MatchRequest{Skills: []string{"go"}, Username: "dev"}},
		{name: "negative max_results", body: models.MatchRequest{Skills: []string{"go"}, MaxResults: -1}},
		{name: "unknown experience level", body: models.MatchRequest{Skills: []string{"go"}, ExperienceLevel: "wizard"}},
		{name: "username on skills endpoint", body: models.MatchRequest{Username: "dev"}},
	}

	app := newTestApp(&stubMatchService{}, &stubProfileService{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, app, "/api/v1/match/skills", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestMatchByUsernameNotFound(t *testing.T) {
	match := &stubMatchService{err: github.ErrNotFound}
	app := newTestApp(match, &stubProfileService{})

	resp := postJSON(t, app, "/api/v1/match/username", models.MatchRequest{Username: "ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMatchByUsernameRateLimited(t *testing.T) {
	match := &stubMatchService{err: &github.RateLimitError{RetryAfter: 90 * time.Second}}
	app := newTestApp(match, &stubProfileService{})

	resp := postJSON(t, app, "/api/v1/match/username", models.MatchRequest{Username: "dev"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "90", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestAnalyzeUserEndpoint(t *testing.T) {
	profiles := &stubProfileService{
		profile: models.SkillProfile{
			Languages:       map[string]float64{"go": 1},
			ExperienceLevel: models.Advanced,
		},
	}
	app := newTestApp(&stubMatchService{}, profiles)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/dev/skills", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"experience_level":"advanced"`)
	assert.Contains(t, string(raw), `"username":"dev"`)
}

func TestAnalyzeUserNotFound(t *testing.T) {
	app := newTestApp(&stubMatchService{}, &stubProfileService{err: github.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/ghost/skills", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	app := fiber.New()
	NewHealthHandler(true).Register(app)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"status":"healthy"`)
	assert.Contains(t, string(raw), `"github_token_set":true`)
}

func TestServiceInfoEndpoint(t *testing.T) {
	app := newTestApp(&stubMatchService{}, &stubProfileService{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
