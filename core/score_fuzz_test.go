package core

import (
	"testing"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// FuzzHealthScore fuzzes the score function with random window aggregates.
func FuzzHealthScore(f *testing.F) {
	seeds := []struct {
		commits, openIssues, openMRs, contributors, daysSince int
	}{
		{10, 3, 1, 2, 1},
		{0, 0, 0, 0, schema.NoCommitSentinel},
		{100, 50, 20, 10, 0},
		{-1, -1, -1, -1, -1},
	}
	for _, seed := range seeds {
		f.Add(seed.commits, seed.openIssues, seed.openMRs, seed.contributors, seed.daysSince)
	}

	f.Fuzz(func(t *testing.T, commits, openIssues, openMRs, contributors, daysSince int) {
		m := &schema.ProjectMetrics{
			Commits:             commits,
			OpenIssues:          openIssues,
			OpenMRs:             openMRs,
			ContributorCount:    contributors,
			DaysSinceLastCommit: daysSince,
		}
		score := healthScore(m)
		if score < 0 || score > 100 {
			t.Fatalf("score %d out of range for %+v", score, m)
		}
		if grade := gradeForScore(score); grade == "" {
			t.Fatalf("empty grade for score %d", score)
		}
	})
}

// FuzzIsOverdue fuzzes the due date parser with arbitrary strings.
func FuzzIsOverdue(f *testing.F) {
	seeds := []string{
		"",
		"2026-06-01",
		"2026-06-01T10:00:00Z",
		"not-a-date",
		"2026-13-45",
		"0000-00-00",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	f.Fuzz(func(t *testing.T, dueDate string) {
		// Must never panic; malformed input must fail open.
		overdue := isOverdue(dueDate, now)
		if overdue && dueDate == "" {
			t.Fatal("empty due date reported overdue")
		}
	})
}

// FuzzClassifyPriority fuzzes label classification with arbitrary label sets.
func FuzzClassifyPriority(f *testing.F) {
	f.Add("critical", "bug")
	f.Add("", "")
	f.Add("HIGH", "in progress")
	f.Add("urgent-fix", "doing")

	f.Fuzz(func(t *testing.T, label1, label2 string) {
		labels := lowercaseLabels([]string{label1, label2})
		p := classifyPriority(labels)
		if schema.PriorityRank(p) < 0 || schema.PriorityRank(p) > 3 {
			t.Fatalf("unexpected priority %q", p)
		}
		_ = classifyType(labels)
		_ = classifyWorkflowState(labels, label1 != "")
	})
}
