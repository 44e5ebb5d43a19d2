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

// PrintTrends outputs the multi-period comparison, dispatching based on the
// output format configured.
func PrintTrends(comparison *schema.TrendComparison, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, comparison)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsCSV(w, comparison)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendsTables(w, comparison, cfg, duration)
		}, "Wrote table")
	}
}

// sortedTrendProjects orders projects by name for stable output.
func sortedTrendProjects(comparison *schema.TrendComparison) []*schema.ProjectTrends {
	projects := make([]*schema.ProjectTrends, 0, len(comparison.Projects))
	for _, pt := range comparison.Projects {
		projects = append(projects, pt)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].ProjectName < projects[j].ProjectName
	})
	return projects
}

// writeTrendsTables renders the human-readable trend view.
func writeTrendsTables(w io.Writer, comparison *schema.TrendComparison, cfg *contract.Config, duration time.Duration) error {
	fmt.Fprintf(w, "%s\n", sectionHeader(cfg, "📈", "TREND ANALYSIS"))
	fmt.Fprintf(w, "  Periods:")
	for _, days := range comparison.Periods {
		fmt.Fprintf(w, " %s", schema.PeriodKey(days))
	}
	fmt.Fprintln(w)

	if err := writeTrendScoreTable(w, comparison, cfg); err != nil {
		return err
	}
	writeTrendDeltas(w, comparison, cfg)
	writeTrendRankings(w, comparison, cfg)

	fmt.Fprintf(w, "\nTrend analysis generated in %v\n", duration)
	return nil
}

// writeTrendScoreTable prints one row per project with a "score (commits)"
// cell per period.
func writeTrendScoreTable(w io.Writer, comparison *schema.TrendComparison, cfg *contract.Config) error {
	header := []string{"Project"}
	for _, days := range comparison.Periods {
		header = append(header, schema.PeriodKey(days))
	}

	table := tablewriter.NewWriter(w)
	table.Header(header)
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	nameWidth := getMaxTableNameWidth(cfg)
	var data [][]string
	for _, pt := range sortedTrendProjects(comparison) {
		row := []string{contract.TruncateText(pt.ProjectName, nameWidth)}
		for _, days := range comparison.Periods {
			bundle := pt.Periods[schema.PeriodKey(days)]
			if bundle == nil {
				row = append(row, "-")
				continue
			}
			row = append(row, fmt.Sprintf("%d (%dc)", bundle.HealthScore, bundle.Commits))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeTrendDeltas prints the period-over-period changes per project.
// Transitions with no baseline are omitted.
func writeTrendDeltas(w io.Writer, comparison *schema.TrendComparison, cfg *contract.Config) {
	fmtFloat, _ := createFormatters(cfg.Precision)
	fmtSigned := func(v float64) string {
		return fmt.Sprintf("%+.*f", cfg.Precision, v)
	}

	fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "🔀", "PERIOD TRANSITIONS"))
	for _, pt := range sortedTrendProjects(comparison) {
		fmt.Fprintf(w, "  %s\n", pt.ProjectName)
		for i := 1; i < len(comparison.Periods); i++ {
			key := schema.TransitionKey(comparison.Periods[i-1], comparison.Periods[i])
			printed := false
			if d, ok := pt.Trends.HealthScore[key]; ok {
				fmt.Fprintf(w, "    %s  health %s (%s%%)", key, fmtSigned(d.Change), fmtFloat(d.Percent))
				printed = true
			}
			if d, ok := pt.Trends.Commits[key]; ok {
				if !printed {
					fmt.Fprintf(w, "    %s ", key)
				}
				fmt.Fprintf(w, "  commits %s (%s%%)", fmtSigned(d.Change), fmtFloat(d.Percent))
				printed = true
			}
			if d, ok := pt.Trends.Additions[key]; ok {
				if !printed {
					fmt.Fprintf(w, "    %s ", key)
				}
				fmt.Fprintf(w, "  changes %s (%s%%)", fmtSigned(d.Change), fmtFloat(d.Percent))
				printed = true
			}
			if printed {
				fmt.Fprintln(w)
			}
		}
	}
}

// writeTrendRankings prints the top projects per dimension for the longest
// period.
func writeTrendRankings(w io.Writer, comparison *schema.TrendComparison, cfg *contract.Config) {
	if len(comparison.Periods) == 0 {
		return
	}
	longest := comparison.Periods[len(comparison.Periods)-1]
	fmtFloat, _ := createFormatters(cfg.Precision)

	fmt.Fprintf(w, "\n%s\n", sectionHeader(cfg, "🏆", "RANKINGS"))
	for _, dim := range []string{"health_score", "commits", "code_changes"} {
		key := fmt.Sprintf("%s_%s", dim, schema.PeriodKey(longest))
		entries := comparison.Rankings[key]
		if len(entries) == 0 {
			continue
		}
		limit := min(cfg.ResultLimit, len(entries))
		fmt.Fprintf(w, "  %s:\n", key)
		for i, e := range entries[:limit] {
			fmt.Fprintf(w, "    %d. %s (%s)\n", i+1, e.ProjectName, fmtFloat(e.Value))
		}
	}
}

// writeTrendsCSV writes one CSV row per project per period.
func writeTrendsCSV(w io.Writer, comparison *schema.TrendComparison) error {
	header := []string{
		"project_id", "project", "period_days",
		"health_score", "commits", "code_changes", "contributors",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, pt := range sortedTrendProjects(comparison) {
			for _, days := range comparison.Periods {
				bundle := pt.Periods[schema.PeriodKey(days)]
				if bundle == nil {
					continue
				}
				row := []string{
					strconv.Itoa(pt.ProjectID),
					pt.ProjectName,
					strconv.Itoa(days),
					strconv.Itoa(bundle.HealthScore),
					strconv.Itoa(bundle.Commits),
					strconv.Itoa(bundle.TotalAdditions()),
					strconv.Itoa(bundle.ContributorCount),
				}
				if err := cw.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
