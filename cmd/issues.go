package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// issuesCmd analyzes open issues across the configured groups.
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Analyze open issues across groups.",
	Long: `Classify open issues by priority, type and workflow state, then surface
the signals that need attention.

The analysis includes:
- Priority and type breakdowns derived from issue labels
- Overdue, unassigned and stale issue counts
- Per-assignee workload distribution
- Prioritized recommendations (workload imbalance, bug ratio, stale backlog)

Examples:
  # Analyze issues for one group
  gldash issues --groups 1721

  # Export every enriched issue to CSV
  gldash issues --groups 1721 --output csv --output-file issues.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIssues(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot analyze issues", err)
		}
	},
}
