// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// NewMCPServer initializes and configures the dashboard MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"GitLab Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: get_group_report ---
	s.AddTool(mcp.NewTool("get_group_report",
		mcp.WithDescription("Generate a multi-group project health report with per-project scores, grades and activity."),
		mcp.WithString("groups", mcp.Description("Comma-separated GitLab group IDs (defaults to the configured groups).")),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of projects returned.")),
	), h.handleGetGroupReport)

	// --- 2. Tool: get_issue_analytics ---
	s.AddTool(mcp.NewTool("get_issue_analytics",
		mcp.WithDescription("Analyze open issues across groups: priorities, types, workload and recommendations."),
		mcp.WithString("groups", mcp.Description("Comma-separated GitLab group IDs.")),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
	), h.handleGetIssueAnalytics)

	// --- 3. Tool: get_team_analytics ---
	s.AddTool(mcp.NewTool("get_team_analytics",
		mcp.WithDescription("Aggregate per-member activity across groups: commits, merge requests, issues and workload."),
		mcp.WithString("groups", mcp.Description("Comma-separated GitLab group IDs.")),
		mcp.WithNumber("days", mcp.Description("Lookback window in days.")),
	), h.handleGetTeamAnalytics)

	// --- 4. Tool: get_project_trends ---
	s.AddTool(mcp.NewTool("get_project_trends",
		mcp.WithDescription("Compare project health and activity across multiple rolling windows with period-over-period deltas."),
		mcp.WithString("groups", mcp.Description("Comma-separated GitLab group IDs.")),
	), h.handleGetProjectTrends)

	return s
}

// StartMCPServer starts the dashboard MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
