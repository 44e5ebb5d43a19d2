// Package schema has configs, models and constants for all parts of the dashboard.
package schema

import "time"

// Group represents a GitLab group as returned by the fetch collaborator.
type Group struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	Description   string `json:"description"`
	ProjectsCount int    `json:"projects_count"`
}

// Project represents a GitLab project descriptor.
type Project struct {
	ID                int       `json:"id"`
	Name              string    `json:"name"`
	PathWithNamespace string    `json:"path_with_namespace"`
	Description       string    `json:"description"`
	Visibility        string    `json:"visibility"`
	DefaultBranch     string    `json:"default_branch"`
	CreatedAt         time.Time `json:"created_at"`
	LastActivityAt    time.Time `json:"last_activity_at"`
}

// Branch represents a repository branch.
type Branch struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// Commit represents a single commit record from one branch listing.
// The same SHA may appear under multiple branches; deduplication happens
// in the metrics engine, not here.
type Commit struct {
	ID          string    `json:"id"`
	ShortID     string    `json:"short_id"`
	Title       string    `json:"title"`
	AuthorName  string    `json:"author_name"`
	AuthorEmail string    `json:"author_email"`
	CreatedAt   time.Time `json:"created_at"`

	// ProjectID is stamped by the metrics engine for downstream reconciliation.
	ProjectID int `json:"project_id,omitempty"`
}

// CommitStats holds per-commit line change counts.
type CommitStats struct {
	Additions int `json:"additions"`
	Deletions int `json:"deletions"`
}

// User represents a platform user reference embedded in MRs and issues.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Member represents a project member used to build the identity index.
type Member struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MergeRequest represents a merge request record.
type MergeRequest struct {
	ID        int        `json:"id"`
	IID       int        `json:"iid"`
	Title     string     `json:"title"`
	State     string     `json:"state"` // opened, merged, closed
	Author    User       `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
	MergedAt  *time.Time `json:"merged_at"`
	ClosedAt  *time.Time `json:"closed_at"`

	ProjectID int `json:"project_id,omitempty"`
}

// Issue represents a raw issue record from the fetch collaborator.
// DueDate stays a string because date-only and datetime forms carry
// different overdue semantics; the core parses it.
type Issue struct {
	ID          int        `json:"id"`
	IID         int        `json:"iid"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	State       string     `json:"state"` // opened, closed
	Labels      []string   `json:"labels"`
	Assignee    *User      `json:"assignee"`
	Author      User       `json:"author"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ClosedAt    *time.Time `json:"closed_at"`
	DueDate     string     `json:"due_date"`
	WebURL      string     `json:"web_url"`

	ProjectID   int    `json:"project_id,omitempty"`
	ProjectName string `json:"project_name,omitempty"`
}
