// Package cmd defines the command-line interface for gldash.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("gitlab-url", "", "GitLab base URL, e.g. https://gitlab.example.com")
	rootCmd.PersistentFlags().String("gitlab-token", "", "GitLab personal access token (prefer GLDASH_GITLAB_TOKEN)")
	rootCmd.PersistentFlags().StringP("groups", "g", "", "Comma-separated GitLab group IDs")
	rootCmd.PersistentFlags().IntP("days", "d", contract.DefaultLookbackDays, "Lookback window in days")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in section headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().Bool("trends", false, "Include multi-period trend comparison in the report")
	reportCmd.Flags().String("trend-periods", "", "Comma-separated trend periods in days (e.g. 7,15,30)")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of trendsCmd to Viper
	trendsCmd.Flags().String("trend-periods", "", "Comma-separated trend periods in days (e.g. 7,15,30)")
	if err := viper.BindPFlags(trendsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding trends flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
