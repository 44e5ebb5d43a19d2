package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yungngaew/gitlab-dashboard/core"
	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/internal/persist"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup,
// so no GitLab URL or token is required.
func storeSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("store-backend")

	// Handle empty backend as the SQLite default so plain 'gldash store
	// status' inspects the local database.
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(strings.ToLower(backendStr))
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", backendStr)
	}
	connStr := viper.GetString("store-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	output := schema.OutputMode(strings.ToLower(viper.GetString("output")))
	if output == "" {
		output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", output)
	}

	emojis, err := contract.ParseBoolString(viper.GetString("emoji"))
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.Output = output
	cfg.OutputFile = viper.GetString("output-file")
	cfg.UseEmojis = emojis
	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focuses on report store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by report commands. This avoids requiring GitLab
// credentials for local database operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the historical report store",
	Long: `Manage the database that keeps every generated report.

When a store backend is configured, gldash persists each report run:
- The full report payload as JSON
- Flattened group, project, team member and issue rows
- KPI values, per-user daily activity and contributor code churn

This enables longitudinal dashboards and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection health
  migrate - Run database schema migrations

Examples:
  # Check store status
  gldash store status

  # Run migrations against PostgreSQL
  gldash store migrate --store-backend postgresql --store-db-connect "host=db dbname=gldash"`,
}

// storeStatusCmd shows report store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display report store statistics and connection details",
	Long: `Show detailed information about the report store.

Displays:
- Backend type and connection status
- Total number of reports stored
- Last report timestamp
- Database table sizes

Examples:
  # Check store status for the default SQLite database
  gldash store status

  # Check a shared MySQL store
  gldash store status --store-backend mysql --store-db-connect "user:pass@tcp(db:3306)/gldash"`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStoreStatus(rootCtx, cfg); err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
	},
}

// storeMigrateCmd runs database migrations for the report store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

By default, migrates to the latest version. Use --target-version for
specific versions.

Examples:
  # Migrate to latest version (default)
  gldash store migrate

  # Migrate to specific version
  gldash store migrate --target-version 1

  # Rollback to initial state
  gldash store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := persist.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
