package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

// reportCmd generates the full multi-group dashboard report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full project health report across groups.",
	Long: `Fetch commits, merge requests and issues for every project in the
configured groups and aggregate them into a single report.

The report includes:
- Per-project health scores, grades and activity sparklines
- Per-group rollups with a coarse group grade
- Cross-group summary totals and health distribution
- Issue analytics with actionable recommendations
- Team activity and contributor code churn

Examples:
  # Report on two groups over the default 30-day window
  gldash report --groups 1721,1722

  # Shorter window, JSON output for scripting
  gldash report --groups 1721 --days 7 --output json

  # Include multi-period trends and persist the report
  gldash report --groups 1721 --trends --store-backend sqlite

  # Export project and activity data for DuckDB/pandas
  gldash report --groups 1721 --output parquet --output-file report`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot generate report", err)
		}
	},
}
