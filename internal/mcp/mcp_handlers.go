package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
}

// applyOverrides clones the base config and re-validates any per-call
// overrides from the tool request.
func (h *toolHandler) applyOverrides(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if g := request.GetString("groups", ""); g != "" {
		if err := contract.RevalidateGroups(cfg, g); err != nil {
			return nil, err
		}
	}
	if d := request.GetInt("days", 0); d > 0 {
		if err := contract.RevalidateWindow(cfg, d); err != nil {
			return nil, err
		}
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	return cfg, nil
}

func (h *toolHandler) handleGetGroupReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid report parameters: %v", err)), nil
	}

	report, err := core.GetReportResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report generation failed: %v", err)), nil
	}
	if len(report.Projects) > cfg.ResultLimit {
		report.Projects = report.Projects[:cfg.ResultLimit]
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetIssueAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid issue parameters: %v", err)), nil
	}

	report, err := core.GetReportResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("issue analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.IssueAnalytics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTeamAnalytics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid team parameters: %v", err)), nil
	}

	report, err := core.GetReportResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("team analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report.Team, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetProjectTrends(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}

	trends, err := core.GetTrendResults(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(trends, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
