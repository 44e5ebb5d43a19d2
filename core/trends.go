package core

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Ranking dimension names, combined with a period key ("health_score_30d").
const (
	rankHealthScore = "health_score"
	rankCommits     = "commits"
	rankCodeChanges = "code_changes"
)

// buildTrendComparison analyzes every project over each configured period
// and derives deltas between adjacent periods. Periods share one window end
// so "30d" always contains "7d".
func buildTrendComparison(ctx context.Context, fetcher contract.Fetcher, cfg *contract.Config) (*schema.TrendComparison, error) {
	_, projects, membership, err := discoverProjects(ctx, fetcher, cfg.GroupIDs)
	if err != nil {
		return nil, err
	}
	resolver := buildResolver(ctx, fetcher, cfg, projects)

	comparison := &schema.TrendComparison{
		Periods:  cfg.TrendPeriods,
		Projects: make(map[int]*schema.ProjectTrends, len(projects)),
		Rankings: make(map[string][]schema.RankEntry),
	}
	for _, p := range projects {
		comparison.Projects[p.ID] = &schema.ProjectTrends{
			ProjectID:   p.ID,
			ProjectName: p.Name,
			Periods:     make(map[string]*schema.ProjectMetrics, len(cfg.TrendPeriods)),
			Trends:      schema.NewTrendSet(),
		}
	}

	end := cfg.EndTime
	for _, days := range cfg.TrendPeriods {
		window := cfg.CloneWithTimeWindow(end.Add(-time.Duration(days)*24*time.Hour), end, days)
		bundles := analyzeProjects(ctx, fetcher, resolver, window, projects, membership)

		key := schema.PeriodKey(days)
		for _, m := range bundles {
			if m.Failed() {
				contract.LogWarn("trend analysis for "+m.Name, errors.New(m.Err))
				continue
			}
			comparison.Projects[m.ID].Periods[key] = m
		}
		rankPeriod(comparison, key, bundles)
	}

	for _, pt := range comparison.Projects {
		computeTrendDeltas(pt, cfg.TrendPeriods)
	}
	return comparison, nil
}

// computeTrendDeltas fills the delta maps for adjacent period transitions.
// A transition is skipped entirely when the earlier value is zero; there is
// no baseline to compare against.
func computeTrendDeltas(pt *schema.ProjectTrends, periods []int) {
	for i := 1; i < len(periods); i++ {
		prev := pt.Periods[schema.PeriodKey(periods[i-1])]
		curr := pt.Periods[schema.PeriodKey(periods[i])]
		if prev == nil || curr == nil {
			continue
		}
		key := schema.TransitionKey(periods[i-1], periods[i])

		addDelta(pt.Trends.Commits, key, float64(prev.Commits), float64(curr.Commits))
		addDelta(pt.Trends.Additions, key, float64(prev.TotalAdditions()), float64(curr.TotalAdditions()))
		addDelta(pt.Trends.Contributors, key, float64(prev.ContributorCount), float64(curr.ContributorCount))
		addDelta(pt.Trends.HealthScore, key, float64(prev.HealthScore), float64(curr.HealthScore))
	}
}

func addDelta(dst map[string]schema.TrendDelta, key string, prev, curr float64) {
	if prev == 0 {
		return
	}
	dst[key] = schema.TrendDelta{
		Change:  curr - prev,
		Percent: (curr - prev) / prev * 100,
	}
}

// rankPeriod records per-period project rankings for each dimension.
func rankPeriod(comparison *schema.TrendComparison, periodKey string, bundles []*schema.ProjectMetrics) {
	dims := []struct {
		name  string
		value func(*schema.ProjectMetrics) float64
	}{
		{rankHealthScore, func(m *schema.ProjectMetrics) float64 { return float64(m.HealthScore) }},
		{rankCommits, func(m *schema.ProjectMetrics) float64 { return float64(m.Commits) }},
		{rankCodeChanges, func(m *schema.ProjectMetrics) float64 { return float64(m.TotalAdditions()) }},
	}

	for _, dim := range dims {
		var entries []schema.RankEntry
		for _, m := range bundles {
			if m.Failed() {
				continue
			}
			entries = append(entries, schema.RankEntry{
				ProjectID:   m.ID,
				ProjectName: m.Name,
				Value:       dim.value(m),
			})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			if entries[i].Value != entries[j].Value {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].ProjectName < entries[j].ProjectName
		})
		comparison.Rankings[dim.name+"_"+periodKey] = entries
	}
}
