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
	"github.com/yungngaew/gitlab-dashboard/internal/parquet"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// PrintReport outputs the full report, dispatching based on the output format configured.
func PrintReport(report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, report)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportCSV(w, report)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return parquet.ExportReport(report, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportTables(w, report, cfg, duration)
		}, "Wrote table")
	}
}

// writeReportTables renders the human-readable dashboard view.
func writeReportTables(w io.Writer, report *schema.Report, cfg *contract.Config, duration time.Duration) error {
	if err := writeSummarySection(w, report, cfg); err != nil {
		return err
	}
	if err := writeGroupsTable(w, report, cfg); err != nil {
		return err
	}
	if err := writeProjectsTable(w, report, cfg); err != nil {
		return err
	}
	if len(report.Failed) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "❌", "FAILED PROJECTS"))
		for _, f := range report.Failed {
			fmt.Fprintf(w, "  %s (%d): %s\n", f.Name, f.ID, f.Err)
		}
	}

	fmt.Fprintf(w, "\nReport generated in %v with %d workers. Store backend: %s\n",
		duration, cfg.Workers, cfg.StoreBackend)
	return nil
}

// writeSummarySection prints the cross-group totals and the grade distribution.
func writeSummarySection(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "📊", "SUMMARY"))
	fmt.Fprintf(w, "  Window: %s to %s (%d days)\n",
		report.WindowStart.Format("2006-01-02"), report.WindowEnd.Format("2006-01-02"), report.PeriodDays)
	fmt.Fprintf(w, "  Projects: %d (%d active)  Commits: %d  MRs: %d  Open issues: %d  Contributors: %d\n",
		report.Summary.TotalProjects, report.Summary.ActiveProjects,
		report.Summary.TotalCommits, report.Summary.TotalMRs,
		report.Summary.TotalIssues, report.Summary.UniqueContributors)

	var parts []string
	for _, grade := range schema.HealthGrades {
		if count := report.Summary.HealthDistribution[grade]; count > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", gradeLabel(cfg, grade), count))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  Health: %s\n", strings.Join(parts, "  "))
	}
	return nil
}

// writeGroupsTable prints the per-group rollups.
func writeGroupsTable(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	if len(report.Groups) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "🗂️", "GROUPS"))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Group", "Projects", "Active", "Commits", "MRs", "Issues", "Grade"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	ids := make([]int, 0, len(report.Groups))
	for id := range report.Groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var data [][]string
	for _, id := range ids {
		g := report.Groups[id]
		data = append(data, []string{
			g.Name,
			strconv.Itoa(g.ProjectsCount),
			strconv.Itoa(g.ActiveProjects),
			strconv.Itoa(g.TotalCommits),
			strconv.Itoa(g.TotalMRs),
			strconv.Itoa(g.TotalIssues),
			gradeLabel(cfg, g.HealthGrade),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeProjectsTable prints the health-ranked project list.
func writeProjectsTable(w io.Writer, report *schema.Report, cfg *contract.Config) error {
	fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "🏥", "PROJECT HEALTH"))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Rank", "Project", "Score", "Grade", "Status", "Commits", "Contrib", "Issues", "MRs", "Activity"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	limit := min(cfg.ResultLimit, len(report.Projects))
	nameWidth := getMaxTableNameWidth(cfg)

	var data [][]string
	for i, m := range report.Projects[:limit] {
		status := string(m.Status)
		if cfg.UseColors {
			status = contract.GetColorStatus(m.Status)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateText(m.Name, nameWidth),
			strconv.Itoa(m.HealthScore),
			gradeLabel(cfg, m.HealthGrade),
			status,
			strconv.Itoa(m.Commits),
			strconv.Itoa(m.ContributorCount),
			strconv.Itoa(m.OpenIssues),
			strconv.Itoa(m.OpenMRs),
			m.Sparkline,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Showing top %d of %d projects\n", limit, len(report.Projects))
	return nil
}

// writeReportCSV writes one CSV row per project.
func writeReportCSV(w io.Writer, report *schema.Report) error {
	header := []string{
		"rank", "project_id", "project", "health_score", "health_grade", "status",
		"commits", "contributors", "open_issues", "open_mrs",
		"mrs_created", "mrs_merged", "issues_created", "issues_closed",
		"days_since_last_commit", "groups",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, m := range report.Projects {
			groupIDs := make([]string, len(m.Groups))
			for j, id := range m.Groups {
				groupIDs[j] = strconv.Itoa(id)
			}
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.Itoa(m.ID),
				m.Name,
				strconv.Itoa(m.HealthScore),
				m.HealthGrade,
				string(m.Status),
				strconv.Itoa(m.Commits),
				strconv.Itoa(m.ContributorCount),
				strconv.Itoa(m.OpenIssues),
				strconv.Itoa(m.OpenMRs),
				strconv.Itoa(m.MRsCreated),
				strconv.Itoa(m.MRsMerged),
				strconv.Itoa(m.IssuesCreated),
				strconv.Itoa(m.IssuesClosed),
				strconv.Itoa(m.DaysSinceLastCommit),
				strings.Join(groupIDs, "|"),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
