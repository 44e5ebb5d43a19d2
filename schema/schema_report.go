package schema

import "time"

// HealthGrades lists every per-project grade from best to worst.
var HealthGrades = []string{"A+", "A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D"}

// GroupRollup summarizes one group, computed by filtering the deduplicated
// project list by membership.
type GroupRollup struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Path           string `json:"path"`
	Description    string `json:"description"`
	ProjectsCount  int    `json:"projects_count"`
	TotalCommits   int    `json:"total_commits"`
	TotalMRs       int    `json:"total_mrs"`
	TotalIssues    int    `json:"total_issues"`
	ActiveProjects int    `json:"active_projects"`
	HealthGrade    string `json:"health_grade"`
}

// Summary holds cross-group report totals.
type Summary struct {
	TotalProjects      int            `json:"total_projects"`
	ActiveProjects     int            `json:"active_projects"`
	TotalCommits       int            `json:"total_commits"`
	TotalMRs           int            `json:"total_mrs"`
	TotalIssues        int            `json:"total_issues"`
	UniqueContributors int            `json:"unique_contributors"`
	HealthDistribution map[string]int `json:"health_distribution"`
}

// NewSummary returns a summary with every health grade bucket present.
func NewSummary() Summary {
	dist := make(map[string]int, len(HealthGrades))
	for _, g := range HealthGrades {
		dist[g] = 0
	}
	return Summary{HealthDistribution: dist}
}

// ProjectChurn is one project's share of a contributor's code churn.
type ProjectChurn struct {
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	Additions   int    `json:"additions"`
	Deletions   int    `json:"deletions"`
	Changes     int    `json:"changes"`
}

// ContributorChurn aggregates a contributor's code churn across projects.
type ContributorChurn struct {
	Name           string         `json:"name"`
	TotalAdditions int            `json:"total_additions"`
	TotalDeletions int            `json:"total_deletions"`
	TotalChanges   int            `json:"total_changes"`
	Projects       []ProjectChurn `json:"projects"`
}

// FailedProject records a project whose analysis failed, so callers can
// report partial results.
type FailedProject struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Err  string `json:"error"`
}

// Report is the single finished report object handed to the sink.
// All times are UTC.
type Report struct {
	GeneratedAt    time.Time `json:"generated_at"`
	PeriodDays     int       `json:"period_days"`
	WindowStart    time.Time `json:"window_start"`
	WindowEnd      time.Time `json:"window_end"`
	GroupsAnalyzed int       `json:"groups_analyzed"`

	Summary Summary              `json:"summary"`
	Groups  map[int]*GroupRollup `json:"groups"`

	// Projects is the deduplicated project list, sorted by health score.
	Projects []*ProjectMetrics `json:"projects"`
	Failed   []FailedProject   `json:"failed_projects,omitempty"`

	Contributors    map[string]int `json:"contributors"`     // canonical identity -> commits
	DailyActivity   map[string]int `json:"daily_activity"`   // ISO date -> commits
	TechnologyStack map[string]int `json:"technology_stack"` // language -> project count

	IssueAnalytics *IssueAnalytics        `json:"issue_analytics"`
	Team           map[string]*TeamMember `json:"team_analytics"`

	Activity []ActivityCell     `json:"user_project_activity"`
	Churn    []ContributorChurn `json:"contributors_detail"`

	// Trends is populated only when multi-period analysis is requested.
	Trends *TrendComparison `json:"cross_period_comparison,omitempty"`
}
