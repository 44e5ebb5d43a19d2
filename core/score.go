// Package core has core logic for fetching, aggregation and scoring.
package core

import (
	"strings"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Health scoring thresholds. The score starts at a baseline and each signal
// adjusts it; the result is clamped to [0, 100].
const (
	healthBaseline = 100

	staleDaysThreshold = 30 // issues untouched more than this many days count as stale
)

// sparklineRunes index activity levels from none to peak.
var sparklineRunes = []rune("▁▂▃▄▅▆▇█")

// forcedClosedMarkers are label substrings that force an issue's effective
// state to closed regardless of platform state.
var forcedClosedMarkers = []string{"complete", "done", "finished"}

// healthScore computes the 0-100 health score for a project bundle from its
// window aggregates. Inputs are read only.
func healthScore(m *schema.ProjectMetrics) int {
	score := healthBaseline

	switch {
	case m.Commits == 0:
		score -= 30
	case m.Commits < 5:
		score -= 15
	case m.Commits > 50:
		score += 5
	}

	switch {
	case m.OpenIssues > 20:
		score -= 20
	case m.OpenIssues > 10:
		score -= 10
	case m.OpenIssues < 5:
		score += 5
	}

	switch {
	case m.OpenMRs > 10:
		score -= 15
	case m.OpenMRs > 5:
		score -= 5
	}

	switch {
	case m.ContributorCount == 1:
		score -= 10
	case m.ContributorCount > 3:
		score += 10
	}

	switch {
	case m.DaysSinceLastCommit < 3:
		score += 5
	case m.DaysSinceLastCommit > 14:
		score -= 20
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// gradeForScore maps a health score to its letter grade.
func gradeForScore(score int) string {
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 85:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 75:
		return "B"
	case score >= 70:
		return "B-"
	case score >= 65:
		return "C+"
	case score >= 60:
		return "C"
	case score >= 55:
		return "C-"
	default:
		return "D"
	}
}

// groupGrade maps a group's average member score to a coarse letter grade.
func groupGrade(avgScore float64) string {
	switch {
	case avgScore >= 90:
		return "A+"
	case avgScore >= 80:
		return "A"
	case avgScore >= 70:
		return "B"
	case avgScore >= 60:
		return "C"
	default:
		return "D"
	}
}

// statusForDays maps days since last commit to a project status.
func statusForDays(days int) schema.ProjectStatus {
	switch {
	case days < 7:
		return schema.StatusActive
	case days < 30:
		return schema.StatusMaintenance
	default:
		return schema.StatusInactive
	}
}

// labelsContain reports whether any label contains any of the needles.
func labelsContain(labels []string, needles ...string) bool {
	for _, needle := range needles {
		for _, label := range labels {
			if strings.Contains(label, needle) {
				return true
			}
		}
	}
	return false
}

// classifyPriority derives issue priority from lower-cased labels. Rules are
// checked in severity order against the whole label set, so a critical marker
// wins no matter where it sits; unlabeled issues default to medium.
func classifyPriority(labels []string) schema.Priority {
	switch {
	case labelsContain(labels, "critical", "urgent"):
		return schema.PriorityCritical
	case labelsContain(labels, "high"):
		return schema.PriorityHigh
	case labelsContain(labels, "medium"):
		return schema.PriorityMedium
	case labelsContain(labels, "low"):
		return schema.PriorityLow
	}
	return schema.PriorityMedium
}

// classifyType derives the issue category from lower-cased labels, checking
// bug before feature before enhancement across the whole label set.
func classifyType(labels []string) schema.IssueType {
	switch {
	case labelsContain(labels, "bug"):
		return schema.TypeBug
	case labelsContain(labels, "feature"):
		return schema.TypeFeature
	case labelsContain(labels, "enhancement"):
		return schema.TypeEnhancement
	}
	return schema.TypeOther
}

// classifyWorkflowState derives the simplified workflow state. A blocked
// label always wins; otherwise an assigned issue counts as in progress and
// an unassigned one as to-do.
func classifyWorkflowState(labels []string, hasAssignee bool) schema.WorkflowState {
	if labelsContain(labels, "blocked") {
		return schema.StateBlocked
	}
	if hasAssignee {
		return schema.StateInProgress
	}
	return schema.StateToDo
}

// isForcedClosed reports whether any label marks the issue as effectively
// closed even though the platform state says otherwise.
func isForcedClosed(labels []string) bool {
	return labelsContain(labels, forcedClosedMarkers...)
}

// isOverdue reports whether a due date has passed. Date-only due dates get
// end-of-day grace; a malformed due date never counts as overdue.
func isOverdue(dueDate string, now time.Time) bool {
	if dueDate == "" {
		return false
	}
	if t, err := time.Parse(time.RFC3339, dueDate); err == nil {
		return now.After(t)
	}
	if t, err := time.Parse("2006-01-02", dueDate); err == nil {
		endOfDay := t.Add(24*time.Hour - time.Second)
		return now.After(endOfDay)
	}
	return false
}

// sparkline renders daily commit counts over the window as a fixed-width
// activity strip, newest day last. Counts are scaled against the window peak.
func sparkline(commitsByDay map[string]int, end time.Time, days int) string {
	if days <= 0 {
		return ""
	}
	if days > 30 {
		days = 30 // cap the strip width for console output
	}

	counts := make([]int, days)
	peak := 0
	for i := range days {
		day := end.AddDate(0, 0, -(days - 1 - i)).UTC().Format("2006-01-02")
		counts[i] = commitsByDay[day]
		if counts[i] > peak {
			peak = counts[i]
		}
	}

	var sb strings.Builder
	for _, n := range counts {
		if peak == 0 || n == 0 {
			sb.WriteRune(sparklineRunes[0])
			continue
		}
		idx := n * (len(sparklineRunes) - 1) / peak
		if idx == 0 {
			idx = 1 // any activity at all is visible
		}
		sb.WriteRune(sparklineRunes[idx])
	}
	return sb.String()
}
