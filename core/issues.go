package core

import (
	"strings"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// lowercaseLabels returns a lower-cased copy of the label list.
func lowercaseLabels(labels []string) []string {
	out := make([]string, len(labels))
	for i, label := range labels {
		out[i] = strings.ToLower(label)
	}
	return out
}

// enrichIssue normalizes one raw issue into its enriched record. Enrichment
// happens exactly once per issue; every consumer reads the same record.
func enrichIssue(raw schema.Issue, resolver *Resolver, now time.Time) schema.IssueRecord {
	labels := lowercaseLabels(raw.Labels)

	state := raw.State
	if isForcedClosed(labels) {
		state = "closed"
	}

	assignee := ""
	if raw.Assignee != nil {
		assignee = resolver.ResolveName(raw.Assignee.Name).Key
	}

	age := int(now.Sub(raw.CreatedAt).Hours() / 24)
	if age < 0 {
		age = 0
	}

	return schema.IssueRecord{
		ID:          raw.ID,
		IID:         raw.IID,
		ProjectID:   raw.ProjectID,
		ProjectName: raw.ProjectName,
		Title:       raw.Title,

		Labels:        labels,
		Priority:      classifyPriority(labels),
		Type:          classifyType(labels),
		WorkflowState: classifyWorkflowState(labels, raw.Assignee != nil),
		State:         state,

		AssigneeName: assignee,
		AuthorName:   raw.Author.Name,
		CreatedAt:    raw.CreatedAt,
		UpdatedAt:    raw.UpdatedAt,
		ClosedAt:     raw.ClosedAt,
		DueDate:      raw.DueDate,
		WebURL:       raw.WebURL,

		AgeDays: age,
		// Overdue is computed even for force-closed issues so audits can see
		// the original due state.
		IsOverdue: raw.State == "opened" && isOverdue(raw.DueDate, now),
	}
}

// buildIssueAnalytics aggregates enriched issues across the project set.
// Counters cover effectively open issues only; AllIssues keeps everything.
func buildIssueAnalytics(records []schema.IssueRecord, now time.Time) *schema.IssueAnalytics {
	a := schema.NewIssueAnalytics()
	a.AllIssues = records

	for _, rec := range records {
		if rec.State == "closed" {
			continue
		}
		a.TotalOpen++
		a.ByPriority[rec.Priority]++
		a.ByType[rec.Type]++
		a.ByState[rec.WorkflowState]++

		if rec.IsOverdue {
			a.Overdue++
		}
		if rec.AssigneeName == "" {
			a.Unassigned++
		} else {
			a.AssigneeWorkload[rec.AssigneeName]++
		}
		if int(now.Sub(rec.UpdatedAt).Hours()/24) > staleDaysThreshold {
			a.Stale++
		}
		if rec.ProjectName != "" {
			a.ProjectIssues[rec.ProjectName]++
		}
	}

	a.Recommendations = buildRecommendations(a)
	return a
}
