package schema

import "time"

// RecentActivityLimit bounds the per-member activity log after finalization.
const RecentActivityLimit = 10

// Workload tracks a member's current (window-independent) open work.
type Workload struct {
	OpenIssues    int `json:"open_issues"`
	OpenMRs       int `json:"open_mrs"`
	OverdueIssues int `json:"overdue_issues"`
}

// ActivityEvent is one entry in a member's recent activity log.
type ActivityEvent struct {
	Type    string    `json:"type"` // only "commit" events are logged
	Project string    `json:"project"`
	Message string    `json:"message"`
	Date    time.Time `json:"date"`
}

// TeamMember is the finalized per-identity aggregate across all projects.
// Projects is sorted and RecentActivity is newest-first, truncated to
// RecentActivityLimit.
type TeamMember struct {
	Name           string          `json:"name"` // canonical identity
	Unmapped       bool            `json:"unmapped,omitempty"`
	Commits        int             `json:"commits"`
	Projects       []string        `json:"projects"`
	IssuesAssigned int             `json:"issues_assigned"`
	IssuesResolved int             `json:"issues_resolved"`
	MergeRequests  int             `json:"merge_requests"`
	RecentActivity []ActivityEvent `json:"recent_activity"`
	Workload       Workload        `json:"current_workload"`
}
