package core

import (
	"sort"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// activityMatrix accumulates the user x project x day reconciliation matrix.
// Events with no resolvable identity land in cells with an empty user ID, so
// totals still reconcile against the per-project counters.
type activityMatrix struct {
	resolver *Resolver
	cells    map[schema.ActivityKey]*schema.ActivityCell
}

func newActivityMatrix(resolver *Resolver) *activityMatrix {
	return &activityMatrix{
		resolver: resolver,
		cells:    make(map[schema.ActivityKey]*schema.ActivityCell),
	}
}

func (a *activityMatrix) cell(projectID int, identity Identity, date time.Time) *schema.ActivityCell {
	userID := ""
	if identity.Mapped {
		userID = identity.Key
	}
	key := schema.ActivityKey{
		ProjectID: projectID,
		UserID:    userID,
		Date:      date.UTC().Format("2006-01-02"),
	}
	c, ok := a.cells[key]
	if !ok {
		c = &schema.ActivityCell{ProjectID: key.ProjectID, UserID: key.UserID, Date: key.Date}
		a.cells[key] = c
	}
	return c
}

// addProject folds one finished project bundle into the matrix.
func (a *activityMatrix) addProject(m *schema.ProjectMetrics) {
	for _, c := range m.RawCommits {
		identity := a.resolver.Resolve(c.AuthorName, c.AuthorEmail)
		a.cell(m.ID, identity, c.CreatedAt).Commits++
	}

	for _, mr := range m.RawMergeRequests {
		identity := a.resolver.ResolveName(mr.Author.Name)
		a.cell(m.ID, identity, mr.CreatedAt).MRsCreated++
		if mr.MergedAt != nil {
			a.cell(m.ID, identity, *mr.MergedAt).MRsMerged++
		}
	}

	for _, record := range enrichedIssues(m, a.resolver) {
		identity := a.resolver.ResolveName(record.AssigneeName)
		if record.AssigneeName == "" {
			identity = Identity{}
		}
		a.cell(m.ID, identity, record.CreatedAt).IssuesCreated++
		if record.ClosedAt != nil {
			a.cell(m.ID, identity, *record.ClosedAt).IssuesClosed++
		}
	}
}

// finalize returns the matrix as a deterministic, sorted slice.
func (a *activityMatrix) finalize() []schema.ActivityCell {
	out := make([]schema.ActivityCell, 0, len(a.cells))
	for _, c := range a.cells {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].ProjectID != out[j].ProjectID {
			return out[i].ProjectID < out[j].ProjectID
		}
		return out[i].UserID < out[j].UserID
	})
	return out
}
