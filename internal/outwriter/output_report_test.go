package outwriter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

func textConfig() *contract.Config {
	return &contract.Config{
		Output:      schema.TextOut,
		Precision:   1,
		Workers:     4,
		ResultLimit: 25,
		UseColors:   false,
		UseEmojis:   false,
		Width:       120,
	}
}

func sampleOutputReport() *schema.Report {
	summary := schema.NewSummary()
	summary.TotalProjects = 2
	summary.ActiveProjects = 1
	summary.TotalCommits = 14
	summary.TotalMRs = 3
	summary.TotalIssues = 5
	summary.UniqueContributors = 3
	summary.HealthDistribution["A"] = 1
	summary.HealthDistribution["C-"] = 1

	return &schema.Report{
		GeneratedAt:    time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
		PeriodDays:     30,
		WindowStart:    time.Date(2026, 5, 16, 10, 0, 0, 0, time.UTC),
		WindowEnd:      time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC),
		GroupsAnalyzed: 1,
		Summary:        summary,
		Groups: map[int]*schema.GroupRollup{
			100: {
				ID: 100, Name: "platform", ProjectsCount: 2, ActiveProjects: 1,
				TotalCommits: 14, TotalMRs: 3, TotalIssues: 5, HealthGrade: "B",
			},
		},
		Projects: []*schema.ProjectMetrics{
			{
				ID: 1, Name: "auth-service", HealthScore: 90, HealthGrade: "A",
				Status: schema.StatusActive, Commits: 12, ContributorCount: 3,
				OpenIssues: 2, OpenMRs: 1, MRsCreated: 2, MRsMerged: 1,
				IssuesCreated: 3, IssuesClosed: 2, DaysSinceLastCommit: 1,
				Sparkline: "▁▃▇█", Groups: []int{100},
			},
			{
				ID: 2, Name: "legacy-billing", HealthScore: 55, HealthGrade: "C-",
				Status: schema.StatusInactive, Commits: 2, ContributorCount: 1,
				OpenIssues: 3, DaysSinceLastCommit: 40, Groups: []int{100},
			},
		},
		Failed: []schema.FailedProject{
			{ID: 3, Name: "broken-repo", Err: "list branches: 403"},
		},
	}
}

func TestWriteReportTables(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportTables(&buf, sampleOutputReport(), textConfig(), 2*time.Second)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "SUMMARY")
	assert.Contains(t, output, "Projects: 2 (1 active)")
	assert.Contains(t, output, "A:1")
	assert.Contains(t, output, "C-:1")
	assert.Contains(t, output, "platform")
	assert.Contains(t, output, "auth-service")
	assert.Contains(t, output, "legacy-billing")
	assert.Contains(t, output, "▁▃▇█")
	assert.Contains(t, output, "broken-repo")
	assert.Contains(t, output, "Showing top 2 of 2 projects")
	assert.Contains(t, output, "with 4 workers")
}

func TestWriteReportTablesRespectsResultLimit(t *testing.T) {
	cfg := textConfig()
	cfg.ResultLimit = 1

	var buf bytes.Buffer
	err := writeReportTables(&buf, sampleOutputReport(), cfg, time.Second)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "auth-service")
	assert.NotContains(t, output, "legacy-billing")
	assert.Contains(t, output, "Showing top 1 of 2 projects")
}

func TestWriteReportTablesWithEmojis(t *testing.T) {
	cfg := textConfig()
	cfg.UseEmojis = true

	var buf bytes.Buffer
	err := writeReportTables(&buf, sampleOutputReport(), cfg, time.Second)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "📊 SUMMARY")
}

func TestWriteReportCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeReportCSV(&buf, sampleOutputReport())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 projects

	assert.Contains(t, lines[0], "health_score")
	assert.Contains(t, lines[0], "groups")
	assert.Contains(t, lines[1], "auth-service")
	assert.Contains(t, lines[1], "90")
	assert.Contains(t, lines[2], "legacy-billing")
	assert.Contains(t, lines[2], "100")
}

func TestWriteReportJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleOutputReport()))

	var decoded schema.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 30, decoded.PeriodDays)
	assert.Len(t, decoded.Projects, 2)
	assert.Equal(t, "auth-service", decoded.Projects[0].Name)
}
