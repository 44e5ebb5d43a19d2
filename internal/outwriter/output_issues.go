package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// PrintIssues outputs issue analytics, dispatching based on the output format configured.
func PrintIssues(analytics *schema.IssueAnalytics, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, analytics)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssuesCSV(w, analytics)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssuesTables(w, analytics, cfg, duration)
		}, "Wrote table")
	}
}

// writeIssuesTables renders the human-readable issue analytics view.
func writeIssuesTables(w io.Writer, analytics *schema.IssueAnalytics, cfg *contract.Config, duration time.Duration) error {
	fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "🐛", "ISSUE ANALYTICS"))
	fmt.Fprintf(w, "  Open: %d  Overdue: %d  Unassigned: %d  Stale: %d\n",
		analytics.TotalOpen, analytics.Overdue, analytics.Unassigned, analytics.Stale)

	// Priority and type breakdowns on one line each, enumerated order.
	fmt.Fprint(w, "  Priority:")
	for _, p := range schema.AllPriorities {
		label := string(p)
		if cfg.UseColors {
			label = contract.GetColorPriority(p)
		}
		fmt.Fprintf(w, "  %s=%d", label, analytics.ByPriority[p])
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, "  Type:")
	for _, t := range schema.AllIssueTypes {
		fmt.Fprintf(w, "  %s=%d", t, analytics.ByType[t])
	}
	fmt.Fprintln(w)

	if err := writeWorkloadTable(w, analytics, cfg); err != nil {
		return err
	}

	if len(analytics.Recommendations) > 0 {
		fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "💡", "RECOMMENDATIONS"))
		for _, rec := range analytics.Recommendations {
			severity := string(rec.Severity)
			if cfg.UseColors {
				severity = contract.GetColorSeverity(rec.Severity)
			}
			fmt.Fprintf(w, "  [%s] %s: %s\n      %s\n", severity, rec.Title, rec.Message, rec.Action)
		}
	}

	fmt.Fprintf(w, "\nIssue analytics generated in %v\n", duration)
	return nil
}

// writeWorkloadTable prints open issue counts per assignee, heaviest first.
func writeWorkloadTable(w io.Writer, analytics *schema.IssueAnalytics, cfg *contract.Config) error {
	if len(analytics.AssigneeWorkload) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "⚖️", "ASSIGNEE WORKLOAD"))

	type load struct {
		name  string
		count int
	}
	loads := make([]load, 0, len(analytics.AssigneeWorkload))
	for name, count := range analytics.AssigneeWorkload {
		loads = append(loads, load{name, count})
	}
	sort.Slice(loads, func(i, j int) bool {
		if loads[i].count != loads[j].count {
			return loads[i].count > loads[j].count
		}
		return loads[i].name < loads[j].name
	})

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Assignee", "Open Issues"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, l := range loads {
		name := l.name
		if len([]rune(name)) > nameWidth {
			name = schema.AbbreviateName(name)
		}
		data = append(data, []string{
			contract.TruncateText(name, nameWidth),
			strconv.Itoa(l.count),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeIssuesCSV writes one CSV row per enriched issue.
func writeIssuesCSV(w io.Writer, analytics *schema.IssueAnalytics) error {
	header := []string{
		"issue_id", "project", "title", "state", "priority", "type",
		"workflow_state", "assignee", "age_days", "overdue", "due_date",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, rec := range analytics.AllIssues {
			row := []string{
				strconv.Itoa(rec.ID),
				rec.ProjectName,
				rec.Title,
				rec.State,
				string(rec.Priority),
				string(rec.Type),
				string(rec.WorkflowState),
				rec.AssigneeName,
				strconv.Itoa(rec.AgeDays),
				strconv.FormatBool(rec.IsOverdue),
				rec.DueDate,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}
