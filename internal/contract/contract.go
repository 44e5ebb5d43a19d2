// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// ListOptions narrows listing calls. Zero values mean "no filter". Server-side
// filters are advisory only; the core re-filters by timestamp client-side.
type ListOptions struct {
	State         string // opened, closed, merged
	CreatedAfter  time.Time
	CreatedBefore time.Time
	Scope         string // e.g. "all"
}

// Fetcher defines the data-fetch collaborator for group/project analysis.
// Implementations return fully materialized record lists with pagination
// already resolved. Retries are the implementation's concern, not the core's.
type Fetcher interface {
	// --- Groups / projects ---

	// GetGroup returns metadata for a single group.
	GetGroup(ctx context.Context, groupID int) (schema.Group, error)

	// ListGroupProjects returns all non-archived projects reachable through
	// the group, including subgroups.
	ListGroupProjects(ctx context.Context, groupID int) ([]schema.Project, error)

	// --- Repository ---

	// ListBranches returns all branches of a project.
	ListBranches(ctx context.Context, projectID int) ([]schema.Branch, error)

	// ListCommits returns commits reachable from ref within [since, until].
	// An empty ref lists commits from the default branch.
	ListCommits(ctx context.Context, projectID int, ref string, since, until time.Time) ([]schema.Commit, error)

	// GetCommitStats returns line change counts for a single commit.
	GetCommitStats(ctx context.Context, projectID int, sha string) (schema.CommitStats, error)

	// --- Merge requests / issues ---

	// ListMergeRequests returns merge requests matching opts.
	ListMergeRequests(ctx context.Context, projectID int, opts ListOptions) ([]schema.MergeRequest, error)

	// ListIssues returns issues matching opts.
	ListIssues(ctx context.Context, projectID int, opts ListOptions) ([]schema.Issue, error)

	// --- Identity / misc ---

	// ListProjectMembers returns the project's member records, used to build
	// the identity resolution index.
	ListProjectMembers(ctx context.Context, projectID int) ([]schema.Member, error)

	// GetProjectLanguages returns the language breakdown as percentages.
	GetProjectLanguages(ctx context.Context, projectID int) (map[string]float64, error)
}

// ReportSink defines the persistence collaborator consuming finished reports.
// The sink owns all storage-format concerns; the core hands it UTC values only.
type ReportSink interface {
	// SaveReport persists one finished report.
	SaveReport(ctx context.Context, report *schema.Report) error

	// GetStatus returns status information about the underlying store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}
