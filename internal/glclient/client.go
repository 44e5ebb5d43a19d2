// Package glclient talks to the GitLab v4 REST API.
package glclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

const (
	perPage        = 100
	maxPages       = 200 // hard stop against runaway pagination
	requestTimeout = 30 * time.Second
)

// Client fetches analytics inputs from a GitLab instance.
// It implements contract.Fetcher.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Compile-time check against the fetch contract.
var _ contract.Fetcher = (*Client)(nil)

// New returns a client for the given GitLab instance.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// NewWithHTTPClient returns a client using a caller-provided HTTP client.
// Used by tests to point at a stub server.
func NewWithHTTPClient(baseURL, token string, hc *http.Client) *Client {
	return &Client{baseURL: baseURL, token: token, http: hc}
}

// GetGroup returns metadata for a single group.
func (c *Client) GetGroup(ctx context.Context, groupID int) (schema.Group, error) {
	var group schema.Group
	path := fmt.Sprintf("/api/v4/groups/%d", groupID)
	if err := c.getOne(ctx, path, url.Values{"with_projects": {"false"}}, &group); err != nil {
		return schema.Group{}, fmt.Errorf("get group %d: %w", groupID, err)
	}
	return group, nil
}

// ListGroupProjects returns all non-archived projects in the group,
// including projects in subgroups.
func (c *Client) ListGroupProjects(ctx context.Context, groupID int) ([]schema.Project, error) {
	path := fmt.Sprintf("/api/v4/groups/%d/projects", groupID)
	params := url.Values{
		"include_subgroups": {"true"},
		"archived":          {"false"},
		"order_by":          {"last_activity_at"},
	}
	var projects []schema.Project
	if err := c.getPaginated(ctx, path, params, &projects); err != nil {
		return nil, fmt.Errorf("list projects for group %d: %w", groupID, err)
	}
	return projects, nil
}

// ListBranches returns all branches of a project.
func (c *Client) ListBranches(ctx context.Context, projectID int) ([]schema.Branch, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/repository/branches", projectID)
	var branches []schema.Branch
	if err := c.getPaginated(ctx, path, nil, &branches); err != nil {
		return nil, fmt.Errorf("list branches for project %d: %w", projectID, err)
	}
	return branches, nil
}

// ListCommits returns commits reachable from ref within [since, until].
func (c *Client) ListCommits(ctx context.Context, projectID int, ref string, since, until time.Time) ([]schema.Commit, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/repository/commits", projectID)
	params := url.Values{}
	if ref != "" {
		params.Set("ref_name", ref)
	}
	if !since.IsZero() {
		params.Set("since", since.UTC().Format(time.RFC3339))
	}
	if !until.IsZero() {
		params.Set("until", until.UTC().Format(time.RFC3339))
	}
	var commits []schema.Commit
	if err := c.getPaginated(ctx, path, params, &commits); err != nil {
		return nil, fmt.Errorf("list commits for project %d ref %q: %w", projectID, ref, err)
	}
	return commits, nil
}

// GetCommitStats returns line change counts for a single commit.
func (c *Client) GetCommitStats(ctx context.Context, projectID int, sha string) (schema.CommitStats, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/repository/commits/%s", projectID, url.PathEscape(sha))
	var detail struct {
		Stats schema.CommitStats `json:"stats"`
	}
	if err := c.getOne(ctx, path, nil, &detail); err != nil {
		return schema.CommitStats{}, fmt.Errorf("get commit stats %s: %w", sha, err)
	}
	return detail.Stats, nil
}

// ListMergeRequests returns merge requests matching opts.
func (c *Client) ListMergeRequests(ctx context.Context, projectID int, opts contract.ListOptions) ([]schema.MergeRequest, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/merge_requests", projectID)
	var mrs []schema.MergeRequest
	if err := c.getPaginated(ctx, path, listParams(opts), &mrs); err != nil {
		return nil, fmt.Errorf("list merge requests for project %d: %w", projectID, err)
	}
	return mrs, nil
}

// ListIssues returns issues matching opts.
func (c *Client) ListIssues(ctx context.Context, projectID int, opts contract.ListOptions) ([]schema.Issue, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/issues", projectID)
	var issues []schema.Issue
	if err := c.getPaginated(ctx, path, listParams(opts), &issues); err != nil {
		return nil, fmt.Errorf("list issues for project %d: %w", projectID, err)
	}
	return issues, nil
}

// ListProjectMembers returns the project's member records, direct and inherited.
func (c *Client) ListProjectMembers(ctx context.Context, projectID int) ([]schema.Member, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/members/all", projectID)
	var members []schema.Member
	if err := c.getPaginated(ctx, path, nil, &members); err != nil {
		return nil, fmt.Errorf("list members for project %d: %w", projectID, err)
	}
	return members, nil
}

// GetProjectLanguages returns the language breakdown as percentages.
func (c *Client) GetProjectLanguages(ctx context.Context, projectID int) (map[string]float64, error) {
	path := fmt.Sprintf("/api/v4/projects/%d/languages", projectID)
	languages := make(map[string]float64)
	if err := c.getOne(ctx, path, nil, &languages); err != nil {
		return nil, fmt.Errorf("get languages for project %d: %w", projectID, err)
	}
	return languages, nil
}

// listParams converts ListOptions into query parameters.
func listParams(opts contract.ListOptions) url.Values {
	params := url.Values{}
	if opts.State != "" {
		params.Set("state", opts.State)
	}
	if opts.Scope != "" {
		params.Set("scope", opts.Scope)
	}
	if !opts.CreatedAfter.IsZero() {
		params.Set("created_after", opts.CreatedAfter.UTC().Format(time.RFC3339))
	}
	if !opts.CreatedBefore.IsZero() {
		params.Set("created_before", opts.CreatedBefore.UTC().Format(time.RFC3339))
	}
	return params
}

// getOne fetches a single resource into out.
func (c *Client) getOne(ctx context.Context, path string, params url.Values, out any) error {
	body, _, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

// getPaginated follows the X-Next-Page header until the listing is exhausted.
// The out argument must be a pointer to a slice.
func (c *Client) getPaginated(ctx context.Context, path string, params url.Values, out any) error {
	merged := url.Values{}
	for key, vals := range params {
		merged[key] = vals
	}
	merged.Set("per_page", strconv.Itoa(perPage))

	var pages []json.RawMessage
	page := 1
	for range maxPages {
		merged.Set("page", strconv.Itoa(page))
		body, next, err := c.get(ctx, path, merged)
		if err != nil {
			return err
		}

		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return fmt.Errorf("decode page %d: %w", page, err)
		}
		pages = append(pages, items...)

		if next == 0 {
			break
		}
		page = next
	}

	combined, err := json.Marshal(pages)
	if err != nil {
		return err
	}
	return json.Unmarshal(combined, out)
}

// get performs one GET request and returns the body plus the next page number
// (0 when there is none).
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, int, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("PRIVATE-TOKEN", c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, 0, &APIError{StatusCode: resp.StatusCode, Path: path, Body: truncateBody(body)}
	}

	next := 0
	if header := resp.Header.Get("X-Next-Page"); header != "" {
		if n, convErr := strconv.Atoi(header); convErr == nil {
			next = n
		}
	}
	return body, next, nil
}

// APIError is a non-200 response from the GitLab API.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gitlab api %s returned %d: %s", e.Path, e.StatusCode, e.Body)
}

func truncateBody(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
