package core

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// analyzeProject builds the full metrics bundle for one project and window.
// Listing failures mark the whole project failed; per-commit stat failures
// degrade that commit's line counts to zero.
func analyzeProject(ctx context.Context, fetcher contract.Fetcher, resolver *Resolver,
	project schema.Project, cfg *contract.Config) *schema.ProjectMetrics {
	m := schema.NewProjectMetrics(project, cfg.StartTime, cfg.EndTime, cfg.Days)

	commits, err := collectCommits(ctx, fetcher, project.ID, cfg.StartTime, cfg.EndTime)
	if err != nil {
		m.Err = err.Error()
		return m
	}
	aggregateCommits(ctx, fetcher, resolver, m, commits)

	if err := aggregateMergeRequests(ctx, fetcher, m, cfg); err != nil {
		m.Err = err.Error()
		return m
	}
	if err := aggregateIssues(ctx, fetcher, m, cfg); err != nil {
		m.Err = err.Error()
		return m
	}

	languages, err := fetcher.GetProjectLanguages(ctx, project.ID)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("languages for project %d", project.ID), err)
	} else {
		m.Languages = languages
	}

	m.Sparkline = sparkline(m.CommitsByDay, cfg.EndTime, cfg.Days)
	m.Status = statusForDays(m.DaysSinceLastCommit)
	m.HealthScore = healthScore(m)
	m.HealthGrade = gradeForScore(m.HealthScore)
	return m
}

// collectCommits lists commits from every branch, deduplicates by SHA and
// re-applies the window filter. The client-side filter is authoritative;
// server-side since/until parameters are treated as advisory.
func collectCommits(ctx context.Context, fetcher contract.Fetcher, projectID int,
	start, end time.Time) ([]schema.Commit, error) {
	branches, err := fetcher.ListBranches(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("branches: %w", err)
	}

	seen := make(map[string]struct{})
	var commits []schema.Commit
	for _, branch := range branches {
		listed, err := fetcher.ListCommits(ctx, projectID, branch.Name, start, end)
		if err != nil {
			return nil, fmt.Errorf("commits on %s: %w", branch.Name, err)
		}
		for _, c := range listed {
			if _, dup := seen[c.ID]; dup {
				continue
			}
			if c.CreatedAt.Before(start) || c.CreatedAt.After(end) {
				continue
			}
			seen[c.ID] = struct{}{}
			c.ProjectID = projectID
			commits = append(commits, c)
		}
	}

	sort.Slice(commits, func(i, j int) bool {
		return commits[i].CreatedAt.Before(commits[j].CreatedAt)
	})
	return commits, nil
}

// aggregateCommits folds the deduplicated commit list into the bundle.
func aggregateCommits(ctx context.Context, fetcher contract.Fetcher, resolver *Resolver,
	m *schema.ProjectMetrics, commits []schema.Commit) {
	m.RawCommits = commits
	m.Commits = len(commits)

	var lastCommit time.Time
	for _, c := range commits {
		day := c.CreatedAt.UTC().Format("2006-01-02")
		m.CommitsByDay[day]++

		identity := resolver.Resolve(c.AuthorName, c.AuthorEmail)
		m.Contributors[identity.Key]++

		stats, err := fetcher.GetCommitStats(ctx, m.ID, c.ID)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("stats for commit %s", c.ShortID), err)
			stats = schema.CommitStats{}
		}
		change := m.CodeChanges[identity.Key]
		change.Additions += stats.Additions
		change.Deletions += stats.Deletions
		change.Commits++
		m.CodeChanges[identity.Key] = change

		if c.CreatedAt.After(lastCommit) {
			lastCommit = c.CreatedAt
		}
	}
	m.ContributorCount = len(m.Contributors)

	if !lastCommit.IsZero() {
		days := int(m.WindowEnd.Sub(lastCommit).Hours() / 24)
		if days < 0 {
			days = 0
		}
		m.DaysSinceLastCommit = days
	}
}

// aggregateMergeRequests counts window MR activity plus the current open set.
func aggregateMergeRequests(ctx context.Context, fetcher contract.Fetcher,
	m *schema.ProjectMetrics, cfg *contract.Config) error {
	windowed, err := fetcher.ListMergeRequests(ctx, m.ID, contract.ListOptions{
		Scope:         "all",
		CreatedAfter:  cfg.StartTime,
		CreatedBefore: cfg.EndTime,
	})
	if err != nil {
		return fmt.Errorf("merge requests: %w", err)
	}

	for i := range windowed {
		windowed[i].ProjectID = m.ID
	}
	m.RawMergeRequests = windowed

	for _, mr := range windowed {
		if mr.CreatedAt.Before(cfg.StartTime) || mr.CreatedAt.After(cfg.EndTime) {
			continue
		}
		m.MRsCreated++
		if mr.MergedAt != nil && !mr.MergedAt.Before(cfg.StartTime) && !mr.MergedAt.After(cfg.EndTime) {
			m.MRsMerged++
		}
		if mr.State == "closed" {
			m.MRsClosed++
		}
	}

	// The open set is window independent.
	open, err := fetcher.ListMergeRequests(ctx, m.ID, contract.ListOptions{State: "opened", Scope: "all"})
	if err != nil {
		return fmt.Errorf("open merge requests: %w", err)
	}
	for i := range open {
		open[i].ProjectID = m.ID
	}
	m.RawOpenMRs = open
	m.OpenMRs = len(open)
	return nil
}

// aggregateIssues counts window issue activity plus the current open set.
// Labels marking an issue complete force it out of the open count.
func aggregateIssues(ctx context.Context, fetcher contract.Fetcher,
	m *schema.ProjectMetrics, cfg *contract.Config) error {
	windowed, err := fetcher.ListIssues(ctx, m.ID, contract.ListOptions{
		Scope:         "all",
		CreatedAfter:  cfg.StartTime,
		CreatedBefore: cfg.EndTime,
	})
	if err != nil {
		return fmt.Errorf("issues: %w", err)
	}

	for _, issue := range windowed {
		if issue.CreatedAt.Before(cfg.StartTime) || issue.CreatedAt.After(cfg.EndTime) {
			continue
		}
		m.IssuesCreated++
		if issue.ClosedAt != nil && !issue.ClosedAt.Before(cfg.StartTime) && !issue.ClosedAt.After(cfg.EndTime) {
			m.IssuesClosed++
		}
	}

	open, err := fetcher.ListIssues(ctx, m.ID, contract.ListOptions{State: "opened", Scope: "all"})
	if err != nil {
		return fmt.Errorf("open issues: %w", err)
	}
	for i := range open {
		open[i].ProjectID = m.ID
		open[i].ProjectName = m.Name
		if isForcedClosed(lowercaseLabels(open[i].Labels)) {
			continue
		}
		m.OpenIssues++
	}
	m.RawOpenIssues = open
	m.TotalIssues = m.OpenIssues + m.IssuesClosed

	// Retain the union of open and windowed issues for the downstream engines.
	seen := make(map[int]struct{}, len(open))
	raw := make([]schema.Issue, 0, len(open)+len(windowed))
	for _, issue := range open {
		seen[issue.ID] = struct{}{}
		raw = append(raw, issue)
	}
	for _, issue := range windowed {
		if _, dup := seen[issue.ID]; dup {
			continue
		}
		issue.ProjectID = m.ID
		issue.ProjectName = m.Name
		raw = append(raw, issue)
	}
	m.RawIssues = raw
	return nil
}
