//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/internal/persist"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// TestStoreWithMySQL runs a full report round trip against a MySQL backend.
func TestStoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gldash",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gldash?parseTime=true", host, port.Port())
	runStoreRoundTrip(t, ctx, schema.MySQLBackend, connStr)
}

// TestStoreWithPostgres runs a full report round trip against a PostgreSQL backend.
func TestStoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	runStoreRoundTrip(t, ctx, schema.PostgreSQLBackend, connStr)
}

// runStoreRoundTrip migrates the schema, saves a report and checks the status
// counts against the given backend.
func runStoreRoundTrip(t *testing.T, ctx context.Context, backend schema.DatabaseBackend, connStr string) {
	t.Helper()

	cfg := &contract.Config{
		StoreBackend:   backend,
		StoreDBConnect: connStr,
	}

	sink, err := persist.NewStore(cfg)
	require.NoError(t, err)
	defer func() { _ = sink.Close() }()

	require.NoError(t, sink.SaveReport(ctx, integrationReport()))

	status, err := sink.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, string(backend), status.Backend)
	assert.Equal(t, 1, status.TotalReports)
	assert.Equal(t, int64(1), status.TableSizes["gldash_reports"])
	assert.Equal(t, int64(2), status.TableSizes["gldash_project_cache"])
	assert.Equal(t, int64(1), status.TableSizes["gldash_group_cache"])
}

func integrationReport() *schema.Report {
	summary := schema.NewSummary()
	summary.TotalProjects = 2
	summary.TotalCommits = 14

	return &schema.Report{
		GeneratedAt:    time.Now().UTC(),
		PeriodDays:     30,
		WindowStart:    time.Now().UTC().AddDate(0, 0, -30),
		WindowEnd:      time.Now().UTC(),
		GroupsAnalyzed: 1,
		Summary:        summary,
		Groups: map[int]*schema.GroupRollup{
			100: {ID: 100, Name: "platform", ProjectsCount: 2, HealthGrade: "B"},
		},
		Projects: []*schema.ProjectMetrics{
			{ID: 1, Name: "auth-service", HealthScore: 90, HealthGrade: "A",
				Status: schema.StatusActive, Commits: 12, Groups: []int{100}},
			{ID: 2, Name: "billing", HealthScore: 55, HealthGrade: "C-",
				Status: schema.StatusInactive, Commits: 2, Groups: []int{100}},
		},
		IssueAnalytics: schema.NewIssueAnalytics(),
		Team: map[string]*schema.TeamMember{
			"ada@example.com": {Name: "ada@example.com", Commits: 14},
		},
		Activity: []schema.ActivityCell{
			{ProjectID: 1, UserID: "ada@example.com", Date: "2026-06-14", Commits: 3},
		},
		Churn: []schema.ContributorChurn{
			{Name: "ada@example.com", TotalAdditions: 120, TotalDeletions: 30, TotalChanges: 150},
		},
	}
}
