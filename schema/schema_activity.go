package schema

// ActivityKey identifies one cell of the activity reconciliation matrix.
// UserID is the canonical identity, or empty when no identity match was
// found; unmapped cells are retained for audit.
type ActivityKey struct {
	ProjectID int
	UserID    string
	Date      string // ISO date (UTC)
}

// ActivityCell is one row of the user x project x day activity matrix.
type ActivityCell struct {
	ProjectID     int    `json:"project_id"`
	UserID        string `json:"user_id,omitempty"` // empty when unmapped
	Date          string `json:"date"`
	Commits       int    `json:"commits"`
	IssuesCreated int    `json:"issues_created"`
	IssuesClosed  int    `json:"issues_closed"`
	MRsCreated    int    `json:"mrs_created"`
	MRsMerged     int    `json:"mrs_merged"`
}

// Unmapped reports whether the cell records activity that could not be
// attributed to a known identity.
func (c ActivityCell) Unmapped() bool {
	return c.UserID == ""
}
