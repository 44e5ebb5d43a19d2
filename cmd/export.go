package cmd

import (
	"github.com/spf13/cobra"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// exportCmd generates a report and writes it as Parquet datasets.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export report data to Parquet for BI tools and analytics",
	Long: `Generate a full report and write it to Parquet format for use with
analytics tools.

Exports two datasets next to the given output file base:
- <base>.projects.parquet - per-project health metrics
- <base>.activity.parquet - the user x project x day activity matrix

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export report data
  gldash export --groups 1721 --output-file gldash-data

  # Use with DuckDB for analysis
  gldash export --groups 1721 --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.projects.parquet') LIMIT 10"`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Output = schema.ParquetOut
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot export report data", err)
		}
	},
}
