package core

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// buildReport fetches and aggregates everything for the configured groups
// into one report. Group-level fetch failures degrade to warnings; a report
// is produced as long as at least one group resolves.
func buildReport(ctx context.Context, fetcher contract.Fetcher, cfg *contract.Config) (*schema.Report, error) {
	groups, projects, membership, err := discoverProjects(ctx, fetcher, cfg.GroupIDs)
	if err != nil {
		return nil, err
	}

	resolver := buildResolver(ctx, fetcher, cfg, projects)
	bundles := analyzeProjects(ctx, fetcher, resolver, cfg, projects, membership)

	return assembleReport(cfg, groups, bundles, resolver), nil
}

// discoverProjects resolves groups and deduplicates their project lists.
// A project reachable through several groups is analyzed once and tagged
// with every group it belongs to.
func discoverProjects(ctx context.Context, fetcher contract.Fetcher, groupIDs []int) (
	map[int]schema.Group, []schema.Project, map[int][]int, error) {
	groups := make(map[int]schema.Group)
	membership := make(map[int][]int) // project ID -> group IDs
	var projects []schema.Project

	for _, groupID := range groupIDs {
		group, err := fetcher.GetGroup(ctx, groupID)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("group %d", groupID), err)
			continue
		}

		listed, err := fetcher.ListGroupProjects(ctx, groupID)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("projects for group %d", groupID), err)
			continue
		}
		groups[groupID] = group

		for _, p := range listed {
			if _, seen := membership[p.ID]; !seen {
				projects = append(projects, p)
			}
			membership[p.ID] = append(membership[p.ID], groupID)
		}
	}

	if len(groups) == 0 {
		return nil, nil, nil, fmt.Errorf("none of the %d configured groups could be fetched", len(groupIDs))
	}
	return groups, projects, membership, nil
}

// buildResolver freezes the identity index from every project's membership
// before analysis starts.
func buildResolver(ctx context.Context, fetcher contract.Fetcher, cfg *contract.Config,
	projects []schema.Project) *Resolver {
	var members []schema.Member
	for _, p := range projects {
		listed, err := fetcher.ListProjectMembers(ctx, p.ID)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("members for project %d", p.ID), err)
			continue
		}
		members = append(members, listed...)
	}
	return NewResolver(cfg.Aliases, members)
}

// analyzeProjects fans project analysis out over a bounded worker pool and
// collects the bundles in input order.
func analyzeProjects(ctx context.Context, fetcher contract.Fetcher, resolver *Resolver,
	cfg *contract.Config, projects []schema.Project, membership map[int][]int) []*schema.ProjectMetrics {
	jobs := make(chan schema.Project, len(projects))
	results := make(chan *schema.ProjectMetrics, len(projects))

	var wg sync.WaitGroup
	workers := min(cfg.Workers, max(len(projects), 1))
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				m := analyzeProject(ctx, fetcher, resolver, p, cfg)
				m.Groups = membership[p.ID]
				results <- m
			}
		}()
	}

	for _, p := range projects {
		jobs <- p
	}
	close(jobs)
	wg.Wait()
	close(results)

	byID := make(map[int]*schema.ProjectMetrics, len(projects))
	for m := range results {
		byID[m.ID] = m
	}
	bundles := make([]*schema.ProjectMetrics, 0, len(projects))
	for _, p := range projects {
		bundles = append(bundles, byID[p.ID])
	}
	return bundles
}

// assembleReport folds finished bundles into the final report object.
func assembleReport(cfg *contract.Config, groups map[int]schema.Group,
	bundles []*schema.ProjectMetrics, resolver *Resolver) *schema.Report {
	report := &schema.Report{
		GeneratedAt:    cfg.EndTime,
		PeriodDays:     cfg.Days,
		WindowStart:    cfg.StartTime,
		WindowEnd:      cfg.EndTime,
		GroupsAnalyzed: len(groups),
		Summary:        schema.NewSummary(),
		Groups:         make(map[int]*schema.GroupRollup, len(groups)),
		Contributors:   make(map[string]int),
		DailyActivity:  make(map[string]int),
		TechnologyStack: make(map[string]int),
	}

	team := newTeamAccumulator(resolver)
	matrix := newActivityMatrix(resolver)
	var records []schema.IssueRecord

	for _, m := range bundles {
		if m.Failed() {
			report.Failed = append(report.Failed, schema.FailedProject{ID: m.ID, Name: m.Name, Err: m.Err})
			continue
		}
		report.Projects = append(report.Projects, m)

		report.Summary.TotalProjects++
		if m.Status == schema.StatusActive {
			report.Summary.ActiveProjects++
		}
		report.Summary.TotalCommits += m.Commits
		report.Summary.TotalMRs += m.MRsCreated
		report.Summary.TotalIssues += m.OpenIssues
		report.Summary.HealthDistribution[m.HealthGrade]++

		for identity, commits := range m.Contributors {
			report.Contributors[identity] += commits
		}
		for day, commits := range m.CommitsByDay {
			report.DailyActivity[day] += commits
		}
		for language := range m.Languages {
			report.TechnologyStack[language]++
		}

		team.addProject(m)
		matrix.addProject(m)
		records = append(records, enrichedIssues(m, resolver)...)
	}
	report.Summary.UniqueContributors = len(report.Contributors)

	sort.SliceStable(report.Projects, func(i, j int) bool {
		if report.Projects[i].HealthScore != report.Projects[j].HealthScore {
			return report.Projects[i].HealthScore > report.Projects[j].HealthScore
		}
		return report.Projects[i].Name < report.Projects[j].Name
	})

	for groupID, group := range groups {
		report.Groups[groupID] = rollupGroup(groupID, group, report.Projects)
	}

	report.IssueAnalytics = buildIssueAnalytics(records, cfg.EndTime)
	report.Team = team.finalize()
	report.Activity = matrix.finalize()
	report.Churn = buildContributorChurn(report.Projects)
	return report
}

// rollupGroup summarizes the bundles belonging to one group.
func rollupGroup(groupID int, group schema.Group, bundles []*schema.ProjectMetrics) *schema.GroupRollup {
	rollup := &schema.GroupRollup{
		ID:          group.ID,
		Name:        group.Name,
		Path:        group.Path,
		Description: group.Description,
		HealthGrade: "D",
	}

	var scoreSum int
	for _, m := range bundles {
		if !containsInt(m.Groups, groupID) {
			continue
		}
		rollup.ProjectsCount++
		rollup.TotalCommits += m.Commits
		rollup.TotalMRs += m.MRsCreated
		rollup.TotalIssues += m.OpenIssues
		if m.Status == schema.StatusActive {
			rollup.ActiveProjects++
		}
		scoreSum += m.HealthScore
	}

	if rollup.ProjectsCount > 0 {
		avg := float64(scoreSum) / float64(rollup.ProjectsCount)
		rollup.HealthGrade = groupGrade(avg)
	}
	return rollup
}

// buildContributorChurn aggregates per-contributor line changes across
// projects, largest total churn first.
func buildContributorChurn(bundles []*schema.ProjectMetrics) []schema.ContributorChurn {
	byName := make(map[string]*schema.ContributorChurn)
	for _, m := range bundles {
		for identity, change := range m.CodeChanges {
			entry, ok := byName[identity]
			if !ok {
				entry = &schema.ContributorChurn{Name: identity}
				byName[identity] = entry
			}
			entry.TotalAdditions += change.Additions
			entry.TotalDeletions += change.Deletions
			entry.TotalChanges += change.Additions + change.Deletions
			entry.Projects = append(entry.Projects, schema.ProjectChurn{
				ProjectID:   m.ID,
				ProjectName: m.Name,
				Additions:   change.Additions,
				Deletions:   change.Deletions,
				Changes:     change.Additions + change.Deletions,
			})
		}
	}

	out := make([]schema.ContributorChurn, 0, len(byName))
	for _, entry := range byName {
		sort.Slice(entry.Projects, func(i, j int) bool {
			return entry.Projects[i].Changes > entry.Projects[j].Changes
		})
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalChanges != out[j].TotalChanges {
			return out[i].TotalChanges > out[j].TotalChanges
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func containsInt(xs []int, x int) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
