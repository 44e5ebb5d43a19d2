package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// trendsCmd compares project metrics across multiple rolling windows.
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Compare project health across multiple time windows.",
	Long: `Analyze every project over several rolling windows that share the same
end time, then compute period-over-period deltas between adjacent windows.

The comparison includes:
- Health score, commit and code change deltas per transition (e.g. 7d to 15d)
- Per-period project rankings for each tracked dimension

Deltas are skipped when the earlier period has no baseline, so brand-new
projects do not show infinite growth.

Examples:
  # Default periods (7, 15, 30, 60, 90 days)
  gldash trends --groups 1721

  # Custom periods
  gldash trends --groups 1721 --trend-periods 7,30,90`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteTrends(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot analyze trends", err)
		}
	},
}
