package core

import (
	"fmt"
	"sort"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Recommendation trigger thresholds.
const (
	criticalBacklogThreshold = 3
	bugRatioThreshold        = 0.6
	staleBacklogThreshold    = 10
	unassignedThreshold      = 5
	healthyOpenThreshold     = 20
	concentrationThreshold   = 20
	workloadImbalanceFactor  = 2.0
)

// buildRecommendations derives actionable signals from finished analytics.
// The result is sorted most urgent first.
func buildRecommendations(a *schema.IssueAnalytics) []schema.Recommendation {
	var recs []schema.Recommendation

	if critical := a.ByPriority[schema.PriorityCritical]; critical > criticalBacklogThreshold {
		recs = append(recs, schema.Recommendation{
			Severity: schema.SeverityCritical,
			Title:    "Critical issue backlog",
			Message:  fmt.Sprintf("%d open issues are marked critical", critical),
			Action:   "Triage critical issues and assign owners this week",
		})
	}

	if member, load, ok := workloadOutlier(a.AssigneeWorkload); ok {
		recs = append(recs, schema.Recommendation{
			Severity:   schema.SeverityHigh,
			Title:      "Workload imbalance",
			Message:    fmt.Sprintf("%s carries %d open issues, more than twice the team average", member, load),
			Action:     "Rebalance open issues across the team",
			TeamMember: member,
		})
	}

	if a.TotalOpen > 0 {
		if ratio := float64(a.ByType[schema.TypeBug]) / float64(a.TotalOpen); ratio > bugRatioThreshold {
			recs = append(recs, schema.Recommendation{
				Severity: schema.SeverityHigh,
				Title:    "Bug-heavy backlog",
				Message:  fmt.Sprintf("%.0f%% of open issues are bugs", ratio*100),
				Action:   "Schedule a stabilization sprint before new feature work",
			})
		}
	}

	if a.Stale > staleBacklogThreshold {
		recs = append(recs, schema.Recommendation{
			Severity: schema.SeverityMedium,
			Title:    "Stale issues piling up",
			Message:  fmt.Sprintf("%d open issues have not been updated in %d days", a.Stale, staleDaysThreshold),
			Action:   "Review stale issues and close or reprioritize them",
		})
	}

	if a.Unassigned > unassignedThreshold {
		recs = append(recs, schema.Recommendation{
			Severity: schema.SeverityMedium,
			Title:    "Unassigned issues",
			Message:  fmt.Sprintf("%d open issues have no assignee", a.Unassigned),
			Action:   "Assign owners during the next triage session",
		})
	}

	if project, count, ok := concentrationOutlier(a.ProjectIssues); ok {
		recs = append(recs, schema.Recommendation{
			Severity: schema.SeverityMedium,
			Title:    "Issue concentration",
			Message:  fmt.Sprintf("%s alone holds %d open issues", project, count),
			Action:   "Consider splitting work or adding contributors to this project",
			Project:  project,
		})
	}

	if a.TotalOpen < healthyOpenThreshold && a.ByPriority[schema.PriorityCritical] == 0 {
		recs = append(recs, schema.Recommendation{
			Severity: schema.SeverityInfo,
			Title:    "Backlog is healthy",
			Message:  fmt.Sprintf("%d open issues and none critical", a.TotalOpen),
			Action:   "Keep the current triage cadence",
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return schema.SeverityRank(recs[i].Severity) < schema.SeverityRank(recs[j].Severity)
	})
	return recs
}

// workloadOutlier finds the most loaded assignee when their load exceeds
// twice the mean. At least two assignees are required for a meaningful mean.
func workloadOutlier(workload map[string]int) (string, int, bool) {
	if len(workload) < 2 {
		return "", 0, false
	}
	total := 0
	maxMember, maxLoad := "", 0
	for member, load := range workload {
		total += load
		if load > maxLoad || (load == maxLoad && member < maxMember) {
			maxMember, maxLoad = member, load
		}
	}
	mean := float64(total) / float64(len(workload))
	if float64(maxLoad) > workloadImbalanceFactor*mean {
		return maxMember, maxLoad, true
	}
	return "", 0, false
}

// concentrationOutlier finds the project with the largest open issue count
// above the concentration threshold.
func concentrationOutlier(projectIssues map[string]int) (string, int, bool) {
	maxProject, maxCount := "", 0
	for project, count := range projectIssues {
		if count > maxCount || (count == maxCount && project < maxProject) {
			maxProject, maxCount = project, count
		}
	}
	if maxCount > concentrationThreshold {
		return maxProject, maxCount, true
	}
	return "", 0, false
}
