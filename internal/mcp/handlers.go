package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ahmednasr/issue-scout/internal/models"
	"github.com/ahmednasr/issue-scout/internal/service"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	matches  service.MatchService
	profiles service.ProfileService
}

func (h *toolHandler) handleMatchBySkills(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := models.MatchRequest{
		Skills:          request.GetStringSlice("skills", nil),
		ExperienceLevel: request.GetString("experience_level", ""),
		IssueTypes:      request.GetStringSlice("issue_types", nil),
		MaxResults:      request.GetInt("max_results", 0),
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resp, err := h.matches.MatchBySkills(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("matching failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func (h *toolHandler) handleMatchByUsername(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req := models.MatchRequest{
		Username:   request.GetString("username", ""),
		IssueTypes: request.GetStringSlice("issue_types", nil),
		MaxResults: request.GetInt("max_results", 0),
	}
	if err := req.Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	resp, err := h.matches.MatchByUsername(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("matching failed: %v", err)), nil
	}
	return jsonResult(resp)
}

func (h *toolHandler) handleAnalyzeUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}

	profile, err := h.profiles.AnalyzeUser(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}
	return jsonResult(profile)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
