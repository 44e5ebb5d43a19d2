package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// PrintTeam outputs team analytics, dispatching based on the output format configured.
func PrintTeam(team map[string]*schema.TeamMember, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, team)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamCSV(w, team)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTeamTable(w, team, cfg, duration)
		}, "Wrote table")
	}
}

// sortedMembers orders members by commit count, busiest first.
func sortedMembers(team map[string]*schema.TeamMember) []*schema.TeamMember {
	members := make([]*schema.TeamMember, 0, len(team))
	for _, m := range team {
		members = append(members, m)
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Commits != members[j].Commits {
			return members[i].Commits > members[j].Commits
		}
		return members[i].Name < members[j].Name
	})
	return members
}

// writeTeamTable renders the human-readable team view.
func writeTeamTable(w io.Writer, team map[string]*schema.TeamMember, cfg *contract.Config, duration time.Duration) error {
	fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "👥", "TEAM ACTIVITY"))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Member", "Commits", "Projects", "Assigned", "Resolved", "MRs", "Open", "Overdue"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	limit := min(cfg.ResultLimit, len(team))

	var data [][]string
	for _, m := range sortedMembers(team)[:limit] {
		name := m.Name
		if len([]rune(name)) > nameWidth {
			name = schema.AbbreviateName(name)
		}
		if m.Unmapped {
			name += " *"
		}
		data = append(data, []string{
			contract.TruncateText(name, nameWidth),
			strconv.Itoa(m.Commits),
			strconv.Itoa(len(m.Projects)),
			strconv.Itoa(m.IssuesAssigned),
			strconv.Itoa(m.IssuesResolved),
			strconv.Itoa(m.MergeRequests),
			strconv.Itoa(m.Workload.OpenIssues),
			strconv.Itoa(m.Workload.OverdueIssues),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w, "* identity not matched to a known member")
	fmt.Fprintf(w, "\nTeam analytics generated in %v\n", duration)
	return nil
}

// writeTeamCSV writes one CSV row per member.
func writeTeamCSV(w io.Writer, team map[string]*schema.TeamMember) error {
	header := []string{
		"member", "unmapped", "commits", "projects", "issues_assigned",
		"issues_resolved", "merge_requests", "open_issues", "open_mrs", "overdue_issues",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range sortedMembers(team) {
			row := []string{
				m.Name,
				strconv.FormatBool(m.Unmapped),
				strconv.Itoa(m.Commits),
				strings.Join(m.Projects, "|"),
				strconv.Itoa(m.IssuesAssigned),
				strconv.Itoa(m.IssuesResolved),
				strconv.Itoa(m.MergeRequests),
				strconv.Itoa(m.Workload.OpenIssues),
				strconv.Itoa(m.Workload.OpenMRs),
				strconv.Itoa(m.Workload.OverdueIssues),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
