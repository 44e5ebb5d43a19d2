package core

import (
	"context"
	"time"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// stubFetcher implements contract.Fetcher with overridable hooks. Hooks left
// nil return empty results, so tests only wire what they assert on.
type stubFetcher struct {
	getGroup          func(int) (schema.Group, error)
	listGroupProjects func(int) ([]schema.Project, error)
	listBranches      func(int) ([]schema.Branch, error)
	listCommits       func(int, string, time.Time, time.Time) ([]schema.Commit, error)
	getCommitStats    func(int, string) (schema.CommitStats, error)
	listMergeRequests func(int, contract.ListOptions) ([]schema.MergeRequest, error)
	listIssues        func(int, contract.ListOptions) ([]schema.Issue, error)
	listMembers       func(int) ([]schema.Member, error)
	getLanguages      func(int) (map[string]float64, error)
}

var _ contract.Fetcher = (*stubFetcher)(nil)

func (s *stubFetcher) GetGroup(_ context.Context, groupID int) (schema.Group, error) {
	if s.getGroup != nil {
		return s.getGroup(groupID)
	}
	return schema.Group{ID: groupID}, nil
}

func (s *stubFetcher) ListGroupProjects(_ context.Context, groupID int) ([]schema.Project, error) {
	if s.listGroupProjects != nil {
		return s.listGroupProjects(groupID)
	}
	return nil, nil
}

func (s *stubFetcher) ListBranches(_ context.Context, projectID int) ([]schema.Branch, error) {
	if s.listBranches != nil {
		return s.listBranches(projectID)
	}
	return []schema.Branch{{Name: "main", Default: true}}, nil
}

func (s *stubFetcher) ListCommits(_ context.Context, projectID int, ref string, since, until time.Time) ([]schema.Commit, error) {
	if s.listCommits != nil {
		return s.listCommits(projectID, ref, since, until)
	}
	return nil, nil
}

func (s *stubFetcher) GetCommitStats(_ context.Context, projectID int, sha string) (schema.CommitStats, error) {
	if s.getCommitStats != nil {
		return s.getCommitStats(projectID, sha)
	}
	return schema.CommitStats{}, nil
}

func (s *stubFetcher) ListMergeRequests(_ context.Context, projectID int, opts contract.ListOptions) ([]schema.MergeRequest, error) {
	if s.listMergeRequests != nil {
		return s.listMergeRequests(projectID, opts)
	}
	return nil, nil
}

func (s *stubFetcher) ListIssues(_ context.Context, projectID int, opts contract.ListOptions) ([]schema.Issue, error) {
	if s.listIssues != nil {
		return s.listIssues(projectID, opts)
	}
	return nil, nil
}

func (s *stubFetcher) ListProjectMembers(_ context.Context, projectID int) ([]schema.Member, error) {
	if s.listMembers != nil {
		return s.listMembers(projectID)
	}
	return nil, nil
}

func (s *stubFetcher) GetProjectLanguages(_ context.Context, projectID int) (map[string]float64, error) {
	if s.getLanguages != nil {
		return s.getLanguages(projectID)
	}
	return map[string]float64{}, nil
}

// testConfig returns a validated-looking config for a fixed window.
func testConfig(days int) *contract.Config {
	end := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return &contract.Config{
		BaseURL:      "https://gitlab.example.com",
		Token:        "glpat-test",
		GroupIDs:     []int{1721},
		Days:         days,
		StartTime:    end.Add(-time.Duration(days) * 24 * time.Hour),
		EndTime:      end,
		Workers:      2,
		ResultLimit:  25,
		Precision:    1,
		Output:       schema.TextOut,
		TrendPeriods: []int{7, 15, 30},
		StoreBackend: schema.NoneBackend,
	}
}
