package schema

import "time"

// IssueRecord is the enriched, normalized form of a raw issue. It is created
// once per fetched issue and reused by every downstream consumer so that
// classification never drifts between engines.
type IssueRecord struct {
	ID          int    `json:"id"`
	IID         int    `json:"iid"`
	ProjectID   int    `json:"project_id"`
	ProjectName string `json:"project_name"`
	Title       string `json:"title"`

	Labels        []string      `json:"labels"` // lower-cased
	Priority      Priority      `json:"priority"`
	Type          IssueType     `json:"type"`
	WorkflowState WorkflowState `json:"workflow_state"`

	// State is the effective state: platform state, except that labels
	// containing complete/done/finished force "closed".
	State string `json:"state"`

	AssigneeName string     `json:"assignee_name,omitempty"`
	AuthorName   string     `json:"author_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	DueDate      string     `json:"due_date,omitempty"`
	WebURL       string     `json:"web_url"`

	AgeDays   int  `json:"age_days"`
	IsOverdue bool `json:"is_overdue"`
}

// IssueAnalytics aggregates enriched issues across the full project set.
// Counters cover non-closed issues only; AllIssues retains everything.
type IssueAnalytics struct {
	TotalOpen int `json:"total_open"`

	ByPriority map[Priority]int      `json:"by_priority"`
	ByType     map[IssueType]int     `json:"by_type"`
	ByState    map[WorkflowState]int `json:"by_state"`

	Overdue    int `json:"overdue"`
	Unassigned int `json:"unassigned"`
	Stale      int `json:"stale_issues"`

	ProjectIssues    map[string]int `json:"project_issues"`    // project name -> open issue count
	AssigneeWorkload map[string]int `json:"assignee_workload"` // assignee name -> open issue count

	AllIssues       []IssueRecord    `json:"all_issues"`
	Recommendations []Recommendation `json:"recommendations"`
}

// NewIssueAnalytics returns an analytics accumulator with every enumerated
// bucket present, so consumers never hit a missing key.
func NewIssueAnalytics() *IssueAnalytics {
	a := &IssueAnalytics{
		ByPriority:       make(map[Priority]int),
		ByType:           make(map[IssueType]int),
		ByState:          make(map[WorkflowState]int),
		ProjectIssues:    make(map[string]int),
		AssigneeWorkload: make(map[string]int),
	}
	for _, p := range AllPriorities {
		a.ByPriority[p] = 0
	}
	for _, t := range AllIssueTypes {
		a.ByType[t] = 0
	}
	for _, s := range AllWorkflowStates {
		a.ByState[s] = 0
	}
	return a
}

// Recommendation is a derived, actionable signal from issue analytics.
type Recommendation struct {
	Severity   Severity `json:"severity"`
	Title      string   `json:"title"`
	Message    string   `json:"message"`
	Action     string   `json:"action"`
	Projects   []string `json:"projects,omitempty"`
	Project    string   `json:"project,omitempty"`
	TeamMember string   `json:"team_member,omitempty"`
}
