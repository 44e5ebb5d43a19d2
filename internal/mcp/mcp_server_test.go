package mcp_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	mcp_internal "github.com/yungngaew/gitlab-dashboard/internal/mcp"
)

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	baseCfg := &contract.Config{
		BaseURL:  "https://gitlab.example.com",
		Token:    "glpat-test",
		GroupIDs: []int{100},
		Days:     30,
		Workers:  2,
	}

	s := mcp_internal.NewMCPServer(baseCfg)
	ctx := context.Background()

	t.Run("get_group_report invalid groups", func(t *testing.T) {
		tool := s.GetTool("get_group_report")
		require.NotNil(t, tool, "Tool get_group_report should exist")

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_group_report",
				Arguments: map[string]any{
					"groups": "abc", // Not a positive integer
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid group ID")
	})

	t.Run("get_issue_analytics negative group", func(t *testing.T) {
		tool := s.GetTool("get_issue_analytics")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_issue_analytics",
				Arguments: map[string]any{
					"groups": "-5",
				},
			},
		}

		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid group ID")
	})

	t.Run("all expected tools registered", func(t *testing.T) {
		for _, name := range []string{
			"get_group_report",
			"get_issue_analytics",
			"get_team_analytics",
			"get_project_trends",
		} {
			assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
		}
	})
}
