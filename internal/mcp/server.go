// Package mcp exposes the matcher as Model Context Protocol tools, so AI
// agents can drive the same pipeline the HTTP API serves.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ahmednasr/issue-scout/internal/service"
)

// NewServer initializes and configures the MCP server without starting it.
// Exposed for unit testing.
func NewServer(matchSvc service.MatchService, profileSvc service.ProfileService) *server.MCPServer {
	s := server.NewMCPServer(
		"GitHub Issue Matcher",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		matches:  matchSvc,
		profiles: profileSvc,
	}

	// --- 1. Tool: match_issues_by_skills ---
	s.AddTool(mcp.NewTool("match_issues_by_skills",
		mcp.WithDescription("Find open GitHub issues matching a list of programming skills."),
		mcp.WithArray("skills", mcp.Description("Programming languages and technologies."), mcp.Required()),
		mcp.WithString("experience_level", mcp.Description("Experience level. Defaults to 'intermediate'."), mcp.Enum("beginner", "intermediate", "advanced", "expert")),
		mcp.WithArray("issue_types", mcp.Description("Issue labels to require, e.g. 'good first issue'.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return.")),
	), h.handleMatchBySkills)

	// --- 2. Tool: match_issues_by_username ---
	s.AddTool(mcp.NewTool("match_issues_by_username",
		mcp.WithDescription("Analyze a GitHub account and find open issues matching its derived skill profile."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
		mcp.WithArray("issue_types", mcp.Description("Issue labels to require.")),
		mcp.WithNumber("max_results", mcp.Description("Maximum number of issues to return.")),
	), h.handleMatchByUsername)

	// --- 3. Tool: analyze_user ---
	s.AddTool(mcp.NewTool("analyze_user",
		mcp.WithDescription("Derive a skill profile from a GitHub account without matching issues."),
		mcp.WithString("username", mcp.Description("GitHub username to analyze."), mcp.Required()),
	), h.handleAnalyzeUser)

	return s
}

// Serve runs the MCP server over stdio until the client disconnects.
func Serve(matchSvc service.MatchService, profileSvc service.ProfileService) error {
	return server.ServeStdio(NewServer(matchSvc, profileSvc))
}
