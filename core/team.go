package core

import (
	"sort"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// teamAccumulator folds per-project raw records into per-identity aggregates.
type teamAccumulator struct {
	resolver *Resolver
	members  map[string]*teamEntry
}

type teamEntry struct {
	member   *schema.TeamMember
	projects map[string]struct{}
}

func newTeamAccumulator(resolver *Resolver) *teamAccumulator {
	return &teamAccumulator{
		resolver: resolver,
		members:  make(map[string]*teamEntry),
	}
}

func (t *teamAccumulator) entry(identity Identity) *teamEntry {
	e, ok := t.members[identity.Key]
	if !ok {
		e = &teamEntry{
			member:   &schema.TeamMember{Name: identity.Key, Unmapped: !identity.Mapped},
			projects: make(map[string]struct{}),
		}
		t.members[identity.Key] = e
	}
	return e
}

// addProject folds one finished project bundle into the team aggregates.
// Window-created issues and MRs drive the activity counters; the current
// open sets drive workload.
func (t *teamAccumulator) addProject(m *schema.ProjectMetrics) {
	for _, c := range m.RawCommits {
		identity := t.resolver.Resolve(c.AuthorName, c.AuthorEmail)
		e := t.entry(identity)
		e.member.Commits++
		e.projects[m.Name] = struct{}{}

		// Only commits feed the recent activity log.
		e.member.RecentActivity = append(e.member.RecentActivity, schema.ActivityEvent{
			Type:    "commit",
			Project: m.Name,
			Message: c.Title,
			Date:    c.CreatedAt,
		})
	}

	for _, mr := range m.RawMergeRequests {
		if mr.CreatedAt.Before(m.WindowStart) || mr.CreatedAt.After(m.WindowEnd) {
			continue
		}
		identity := t.resolver.ResolveName(mr.Author.Name)
		e := t.entry(identity)
		e.member.MergeRequests++
		e.projects[m.Name] = struct{}{}
	}

	// Workload comes from the current open sets, not the window slices; an
	// open MR or issue created before the window still counts.
	for _, mr := range m.RawOpenMRs {
		identity := t.resolver.ResolveName(mr.Author.Name)
		e := t.entry(identity)
		e.projects[m.Name] = struct{}{}
		e.member.Workload.OpenMRs++
	}

	for _, record := range enrichedIssues(m, t.resolver) {
		if record.AssigneeName == "" {
			continue
		}
		if record.CreatedAt.Before(m.WindowStart) || record.CreatedAt.After(m.WindowEnd) {
			continue
		}
		e := t.entry(t.resolver.ResolveName(record.AssigneeName))
		e.projects[m.Name] = struct{}{}
		if record.State == "closed" {
			e.member.IssuesResolved++
			continue
		}
		e.member.IssuesAssigned++
	}

	for _, raw := range m.RawOpenIssues {
		record := enrichIssue(raw, t.resolver, m.WindowEnd)
		if record.AssigneeName == "" || record.State == "closed" {
			continue
		}
		e := t.entry(t.resolver.ResolveName(record.AssigneeName))
		e.projects[m.Name] = struct{}{}
		e.member.Workload.OpenIssues++
		if record.IsOverdue {
			e.member.Workload.OverdueIssues++
		}
	}
}

// finalize sorts project lists and trims each activity log newest first.
func (t *teamAccumulator) finalize() map[string]*schema.TeamMember {
	out := make(map[string]*schema.TeamMember, len(t.members))
	for key, e := range t.members {
		projects := make([]string, 0, len(e.projects))
		for name := range e.projects {
			projects = append(projects, name)
		}
		sort.Strings(projects)
		e.member.Projects = projects

		sort.SliceStable(e.member.RecentActivity, func(i, j int) bool {
			return e.member.RecentActivity[i].Date.After(e.member.RecentActivity[j].Date)
		})
		if len(e.member.RecentActivity) > schema.RecentActivityLimit {
			e.member.RecentActivity = e.member.RecentActivity[:schema.RecentActivityLimit]
		}
		out[key] = e.member
	}
	return out
}

// enrichedIssues enriches a bundle's raw issues against the window end so
// every engine classifies them identically.
func enrichedIssues(m *schema.ProjectMetrics, resolver *Resolver) []schema.IssueRecord {
	records := make([]schema.IssueRecord, 0, len(m.RawIssues))
	for _, raw := range m.RawIssues {
		records = append(records, enrichIssue(raw, resolver, m.WindowEnd))
	}
	return records
}
