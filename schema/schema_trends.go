package schema

import "fmt"

// DefaultTrendPeriods are the rolling window lengths, in days, used for
// multi-period analysis. Trends are computed between adjacent entries only.
var DefaultTrendPeriods = []int{7, 15, 30, 60, 90}

// TrendDelta is a period-over-period change for one tracked value.
// A missing delta means the earlier period had no baseline, not "no change".
type TrendDelta struct {
	Change  float64 `json:"change"`
	Percent float64 `json:"percentage"`
}

// TrendSet holds deltas per transition key ("7d_to_15d", ...), one map per
// tracked dimension.
type TrendSet struct {
	Commits      map[string]TrendDelta `json:"commits_trend"`
	Additions    map[string]TrendDelta `json:"code_changes_trend"`
	Contributors map[string]TrendDelta `json:"contributors_trend"`
	HealthScore  map[string]TrendDelta `json:"health_score_trend"`
}

// NewTrendSet returns a trend set with all dimension maps initialized.
func NewTrendSet() TrendSet {
	return TrendSet{
		Commits:      make(map[string]TrendDelta),
		Additions:    make(map[string]TrendDelta),
		Contributors: make(map[string]TrendDelta),
		HealthScore:  make(map[string]TrendDelta),
	}
}

// ProjectTrends holds one project's per-period bundles and the deltas
// between adjacent periods.
type ProjectTrends struct {
	ProjectID   int                        `json:"project_id"`
	ProjectName string                     `json:"project_name"`
	Periods     map[string]*ProjectMetrics `json:"periods"` // "7d" -> bundle
	Trends      TrendSet                   `json:"trends"`
}

// RankEntry is one row of a per-period project ranking.
type RankEntry struct {
	ProjectID   int     `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Value       float64 `json:"value"`
}

// TrendComparison compares multiple projects across all trend periods.
type TrendComparison struct {
	Periods  []int                  `json:"periods"`
	Projects map[int]*ProjectTrends `json:"projects"`

	// Rankings is keyed "health_score_30d", "commits_7d", "code_changes_90d", ...
	Rankings map[string][]RankEntry `json:"rankings"`
}

// PeriodKey formats a window length as a period map key.
func PeriodKey(days int) string {
	return fmt.Sprintf("%dd", days)
}

// TransitionKey formats the key for a delta between two adjacent periods.
func TransitionKey(prevDays, currDays int) string {
	return fmt.Sprintf("%s_to_%s", PeriodKey(prevDays), PeriodKey(currDays))
}
