package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

func testProject() schema.Project {
	return schema.Project{
		ID:                42,
		Name:              "auth-service",
		PathWithNamespace: "platform/auth-service",
		DefaultBranch:     "main",
	}
}

func TestAnalyzeProjectDedupAcrossBranches(t *testing.T) {
	cfg := testConfig(30)
	shared := schema.Commit{
		ID: "aaa", ShortID: "aaa", Title: "Fix login",
		AuthorName: "Ada Lovelace", AuthorEmail: "ada@corp.example.com",
		CreatedAt: cfg.EndTime.AddDate(0, 0, -1),
	}
	featureOnly := schema.Commit{
		ID: "bbb", ShortID: "bbb", Title: "Add SSO",
		AuthorName: "Ada Lovelace", AuthorEmail: "ada@corp.example.com",
		CreatedAt: cfg.EndTime.AddDate(0, 0, -2),
	}

	fetcher := &stubFetcher{
		listBranches: func(int) ([]schema.Branch, error) {
			return []schema.Branch{{Name: "main", Default: true}, {Name: "feature/sso"}}, nil
		},
		listCommits: func(_ int, ref string, _, _ time.Time) ([]schema.Commit, error) {
			if ref == "main" {
				return []schema.Commit{shared}, nil
			}
			return []schema.Commit{shared, featureOnly}, nil
		},
		getCommitStats: func(_ int, sha string) (schema.CommitStats, error) {
			return schema.CommitStats{Additions: 10, Deletions: 2}, nil
		},
	}

	resolver := NewResolver(nil, nil)
	m := analyzeProject(context.Background(), fetcher, resolver, testProject(), cfg)

	require.False(t, m.Failed())
	assert.Equal(t, 2, m.Commits)
	assert.Equal(t, 1, m.ContributorCount)
	assert.Equal(t, 2, m.Contributors["Ada Lovelace"])
	assert.Equal(t, schema.CodeChange{Additions: 20, Deletions: 4, Commits: 2}, m.CodeChanges["Ada Lovelace"])
	assert.Equal(t, 1, m.DaysSinceLastCommit)
	assert.Equal(t, schema.StatusActive, m.Status)
}

func TestAnalyzeProjectWindowFilterIsAuthoritative(t *testing.T) {
	cfg := testConfig(7)
	fetcher := &stubFetcher{
		listCommits: func(_ int, _ string, _, _ time.Time) ([]schema.Commit, error) {
			// Server ignored the since parameter and returned an old commit.
			return []schema.Commit{
				{ID: "old", CreatedAt: cfg.StartTime.AddDate(0, 0, -5)},
				{ID: "new", AuthorName: "Ada", CreatedAt: cfg.EndTime.AddDate(0, 0, -1)},
			}, nil
		},
	}

	m := analyzeProject(context.Background(), fetcher, NewResolver(nil, nil), testProject(), cfg)
	require.False(t, m.Failed())
	assert.Equal(t, 1, m.Commits)
}

func TestAnalyzeProjectStatsFailureDegradesToZero(t *testing.T) {
	cfg := testConfig(30)
	fetcher := &stubFetcher{
		listCommits: func(_ int, _ string, _, _ time.Time) ([]schema.Commit, error) {
			return []schema.Commit{{ID: "aaa", AuthorName: "Ada", CreatedAt: cfg.EndTime.AddDate(0, 0, -1)}}, nil
		},
		getCommitStats: func(int, string) (schema.CommitStats, error) {
			return schema.CommitStats{}, errors.New("500 internal")
		},
	}

	m := analyzeProject(context.Background(), fetcher, NewResolver(nil, nil), testProject(), cfg)
	require.False(t, m.Failed())
	assert.Equal(t, 1, m.Commits)
	assert.Equal(t, schema.CodeChange{Commits: 1}, m.CodeChanges["Ada"])
}

func TestAnalyzeProjectListingFailureFailsProject(t *testing.T) {
	cfg := testConfig(30)
	fetcher := &stubFetcher{
		listBranches: func(int) ([]schema.Branch, error) {
			return nil, errors.New("403 forbidden")
		},
	}

	m := analyzeProject(context.Background(), fetcher, NewResolver(nil, nil), testProject(), cfg)
	assert.True(t, m.Failed())
	assert.Contains(t, m.Err, "branches")
}

func TestAnalyzeProjectNoCommits(t *testing.T) {
	cfg := testConfig(30)
	m := analyzeProject(context.Background(), &stubFetcher{}, NewResolver(nil, nil), testProject(), cfg)

	require.False(t, m.Failed())
	assert.Equal(t, 0, m.Commits)
	assert.Equal(t, schema.NoCommitSentinel, m.DaysSinceLastCommit)
	assert.Equal(t, schema.StatusInactive, m.Status)
	// 100 - 30 (no commits) + 5 (no open issues) - 20 (stale)
	assert.Equal(t, 55, m.HealthScore)
	assert.Equal(t, "C-", m.HealthGrade)
}

func TestAnalyzeProjectIssueAndMRCounts(t *testing.T) {
	cfg := testConfig(30)
	merged := cfg.EndTime.AddDate(0, 0, -3)
	closed := cfg.EndTime.AddDate(0, 0, -2)

	fetcher := &stubFetcher{
		listMergeRequests: func(_ int, opts contract.ListOptions) ([]schema.MergeRequest, error) {
			if opts.State == "opened" {
				return []schema.MergeRequest{{ID: 9, State: "opened"}}, nil
			}
			return []schema.MergeRequest{
				{ID: 1, State: "merged", CreatedAt: cfg.EndTime.AddDate(0, 0, -5), MergedAt: &merged},
				{ID: 2, State: "closed", CreatedAt: cfg.EndTime.AddDate(0, 0, -6)},
			}, nil
		},
		listIssues: func(_ int, opts contract.ListOptions) ([]schema.Issue, error) {
			if opts.State == "opened" {
				return []schema.Issue{
					{ID: 1, State: "opened"},
					{ID: 2, State: "opened", Labels: []string{"Done"}}, // forced closed
				}, nil
			}
			return []schema.Issue{
				{ID: 3, State: "closed", CreatedAt: cfg.EndTime.AddDate(0, 0, -4), ClosedAt: &closed},
			}, nil
		},
	}

	m := analyzeProject(context.Background(), fetcher, NewResolver(nil, nil), testProject(), cfg)
	require.False(t, m.Failed())

	assert.Equal(t, 2, m.MRsCreated)
	assert.Equal(t, 1, m.MRsMerged)
	assert.Equal(t, 1, m.MRsClosed)
	assert.Equal(t, 1, m.OpenMRs)
	assert.Len(t, m.RawOpenMRs, 1)

	assert.Equal(t, 1, m.IssuesCreated)
	assert.Equal(t, 1, m.IssuesClosed)
	assert.Equal(t, 1, m.OpenIssues) // forced-closed label excluded
	assert.Equal(t, 2, m.TotalIssues)
	assert.Len(t, m.RawIssues, 3)
	assert.Len(t, m.RawOpenIssues, 2)
}
