package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

func sampleTrendComparison() *schema.TrendComparison {
	trends := schema.NewTrendSet()
	trends.HealthScore["7d_to_15d"] = schema.TrendDelta{Change: -5, Percent: -5.6}
	trends.Commits["7d_to_15d"] = schema.TrendDelta{Change: 6, Percent: 100}

	return &schema.TrendComparison{
		Periods: []int{7, 15},
		Projects: map[int]*schema.ProjectTrends{
			1: {
				ProjectID:   1,
				ProjectName: "auth-service",
				Periods: map[string]*schema.ProjectMetrics{
					"7d":  {ID: 1, Name: "auth-service", HealthScore: 90, Commits: 6, ContributorCount: 2},
					"15d": {ID: 1, Name: "auth-service", HealthScore: 85, Commits: 12, ContributorCount: 3},
				},
				Trends: trends,
			},
		},
		Rankings: map[string][]schema.RankEntry{
			"health_score_15d": {
				{ProjectID: 1, ProjectName: "auth-service", Value: 85},
			},
			"commits_15d": {
				{ProjectID: 1, ProjectName: "auth-service", Value: 12},
			},
		},
	}
}

func TestWriteTrendsTables(t *testing.T) {
	var buf bytes.Buffer
	err := writeTrendsTables(&buf, sampleTrendComparison(), textConfig(), time.Second)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "TREND ANALYSIS")
	assert.Contains(t, output, "Periods: 7d 15d")
	assert.Contains(t, output, "90 (6c)")
	assert.Contains(t, output, "85 (12c)")
	assert.Contains(t, output, "7d_to_15d")
	assert.Contains(t, output, "health -5.0 (-5.6%)")
	assert.Contains(t, output, "commits +6.0 (100.0%)")
	assert.Contains(t, output, "health_score_15d")
}

func TestWriteTrendsTablesMissingPeriod(t *testing.T) {
	comparison := sampleTrendComparison()
	delete(comparison.Projects[1].Periods, "15d")

	var buf bytes.Buffer
	err := writeTrendsTables(&buf, comparison, textConfig(), time.Second)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "-")
}

func TestWriteTrendsCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeTrendsCSV(&buf, sampleTrendComparison())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + one row per period

	assert.Contains(t, lines[0], "period_days")
	assert.Contains(t, lines[1], "auth-service,7,90,6")
	assert.Contains(t, lines[2], "auth-service,15,85,12")
}
