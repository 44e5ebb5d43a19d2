package schema

import "time"

// NoCommitSentinel is the days-since-last-commit value used when a project
// has no commits in the analysis window.
const NoCommitSentinel = 999

// CodeChange aggregates line changes for one contributor within one project.
type CodeChange struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
	Commits   int `json:"commits"`
}

// ProjectMetrics is the per-project, per-window metrics bundle. It is created
// fresh for each (project, window) invocation and never mutated after scoring.
type ProjectMetrics struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	Description   string `json:"description"`
	Visibility    string `json:"visibility"`
	DefaultBranch string `json:"default_branch"`

	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`

	WindowDays  int       `json:"window_days"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`

	Commits          int                   `json:"commits"`
	CommitsByDay     map[string]int        `json:"commits_by_day"` // ISO date -> count
	Contributors     map[string]int        `json:"contributors"`   // canonical identity -> commit count
	ContributorCount int                   `json:"contributor_count"`
	CodeChanges      map[string]CodeChange `json:"code_changes"` // canonical identity -> line changes

	MRsCreated int `json:"mrs_created"`
	MRsMerged  int `json:"mrs_merged"`
	MRsClosed  int `json:"mrs_closed"`
	OpenMRs    int `json:"open_mrs"`

	IssuesCreated int `json:"issues_created"`
	IssuesClosed  int `json:"issues_closed"`
	OpenIssues    int `json:"open_issues"`
	TotalIssues   int `json:"total_issues"`

	Languages map[string]float64 `json:"languages"`

	DaysSinceLastCommit int           `json:"days_since_last_commit"`
	Sparkline           string        `json:"activity_sparkline"`
	HealthScore         int           `json:"health_score"`
	HealthGrade         string        `json:"health_grade"`
	Status              ProjectStatus `json:"status"`

	// Groups lists every group ID this project is reachable through.
	Groups []int `json:"groups"`

	// Err is non-empty when the project analysis failed; failed bundles are
	// excluded from rollups but still recorded in the report.
	Err string `json:"error,omitempty"`

	// Raw in-window records plus the current open sets, retained for
	// downstream reconciliation.
	RawCommits       []Commit       `json:"-"`
	RawMergeRequests []MergeRequest `json:"-"`
	RawOpenMRs       []MergeRequest `json:"-"`
	RawIssues        []Issue        `json:"-"`
	RawOpenIssues    []Issue        `json:"-"`
}

// NewProjectMetrics returns a metrics bundle with maps initialized and
// no-commit defaults applied.
func NewProjectMetrics(p Project, start, end time.Time, days int) *ProjectMetrics {
	return &ProjectMetrics{
		ID:                  p.ID,
		Name:                p.Name,
		Path:                p.PathWithNamespace,
		Description:         p.Description,
		Visibility:          p.Visibility,
		DefaultBranch:       p.DefaultBranch,
		CreatedAt:           p.CreatedAt,
		LastActivity:        p.LastActivityAt,
		WindowDays:          days,
		WindowStart:         start,
		WindowEnd:           end,
		CommitsByDay:        make(map[string]int),
		Contributors:        make(map[string]int),
		CodeChanges:         make(map[string]CodeChange),
		Languages:           make(map[string]float64),
		DaysSinceLastCommit: NoCommitSentinel,
		HealthGrade:         "D",
		Status:              StatusInactive,
	}
}

// Failed reports whether the bundle represents a failed project analysis.
func (m *ProjectMetrics) Failed() bool {
	return m.Err != ""
}

// TotalAdditions sums additions across all contributors' code changes.
func (m *ProjectMetrics) TotalAdditions() int {
	var total int
	for _, cc := range m.CodeChanges {
		total += cc.Additions
	}
	return total
}
