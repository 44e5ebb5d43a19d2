// Package persist stores finished reports in a relational database.
package persist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Table names for report storage.
const (
	reportsTable  = "gldash_reports"
	groupsTable   = "gldash_group_cache"
	projectsTable = "gldash_project_cache"
	teamTable     = "gldash_team_member_cache"
	issuesTable   = "gldash_issue_cache"
	kpiTable      = "gldash_kpi_cache"
	dailyTable    = "gldash_activity_cache"
	activityTable = "gldash_user_project_activity"
	churnTable    = "gldash_contributor_code_churn"
)

// allTables lists every store table for status reporting.
var allTables = []string{
	reportsTable, groupsTable, projectsTable, teamTable,
	issuesTable, kpiTable, dailyTable, activityTable, churnTable,
}

// Store implements contract.ReportSink over SQLite, MySQL or PostgreSQL.
type Store struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.ReportSink = (*Store)(nil)

// NewStore creates a report store for the configured backend and applies
// pending migrations. The none backend returns a no-op store.
func NewStore(cfg *contract.Config) (contract.ReportSink, error) {
	if cfg.StoreBackend == schema.NoneBackend {
		return &Store{backend: schema.NoneBackend}, nil
	}

	if err := Migrate(cfg.StoreBackend, cfg.StoreDBConnect, -1); err != nil {
		return nil, fmt.Errorf("migrate report store: %w", err)
	}

	db, err := openDB(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.StoreBackend, err)
	}
	return &Store{db: db, backend: cfg.StoreBackend}, nil
}

// SaveReport persists the report and its per-entity cache rows in one
// transaction. The report ID is derived from the generation timestamp.
func (s *Store) SaveReport(ctx context.Context, report *schema.Report) error {
	if s.db == nil {
		return nil
	}

	reportID := report.GeneratedAt.UTC().Format("20060102T150405.000000000")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.insertReport(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertGroups(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertProjects(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertTeam(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertIssues(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertKPIs(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertDailyActivity(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertActivity(ctx, tx, reportID, report); err != nil {
		return err
	}
	if err := s.insertChurn(ctx, tx, reportID, report); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) insertReport(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report payload: %w", err)
	}
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, generated_at, period_days, window_start, window_end, groups_analyzed, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, reportsTable))
	_, err = tx.ExecContext(ctx, query,
		reportID,
		report.GeneratedAt.UTC().Format(time.RFC3339Nano),
		report.PeriodDays,
		report.WindowStart.UTC().Format(time.RFC3339Nano),
		report.WindowEnd.UTC().Format(time.RFC3339Nano),
		report.GroupsAnalyzed,
		string(payload))
	if err != nil {
		return fmt.Errorf("insert report row: %w", err)
	}
	return nil
}

func (s *Store) insertGroups(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, group_id, name, projects_count, total_commits, total_mrs, total_issues, active_projects, health_grade)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, groupsTable))
	for _, g := range report.Groups {
		if _, err := tx.ExecContext(ctx, query, reportID, g.ID, g.Name, g.ProjectsCount,
			g.TotalCommits, g.TotalMRs, g.TotalIssues, g.ActiveProjects, g.HealthGrade); err != nil {
			return fmt.Errorf("insert group %d: %w", g.ID, err)
		}
	}
	return nil
}

func (s *Store) insertProjects(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, project_id, name, commits, contributor_count, open_issues, open_mrs,
		 days_since_last_commit, health_score, health_grade, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, projectsTable))
	for _, m := range report.Projects {
		if _, err := tx.ExecContext(ctx, query, reportID, m.ID, m.Name, m.Commits,
			m.ContributorCount, m.OpenIssues, m.OpenMRs, m.DaysSinceLastCommit,
			m.HealthScore, m.HealthGrade, string(m.Status)); err != nil {
			return fmt.Errorf("insert project %d: %w", m.ID, err)
		}
	}
	return nil
}

func (s *Store) insertTeam(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, member_name, unmapped, commits, issues_assigned, issues_resolved,
		 merge_requests, open_issues, open_mrs, overdue_issues)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, teamTable))
	for _, member := range report.Team {
		if _, err := tx.ExecContext(ctx, query, reportID, member.Name, boolToInt(member.Unmapped),
			member.Commits, member.IssuesAssigned, member.IssuesResolved, member.MergeRequests,
			member.Workload.OpenIssues, member.Workload.OpenMRs, member.Workload.OverdueIssues); err != nil {
			return fmt.Errorf("insert team member %s: %w", member.Name, err)
		}
	}
	return nil
}

func (s *Store) insertIssues(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	if report.IssueAnalytics == nil {
		return nil
	}
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, issue_id, project_id, title, state, priority, issue_type, workflow_state,
		 assignee, is_overdue, age_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, issuesTable))
	for _, rec := range report.IssueAnalytics.AllIssues {
		if _, err := tx.ExecContext(ctx, query, reportID, rec.ID, rec.ProjectID, rec.Title,
			rec.State, string(rec.Priority), string(rec.Type), string(rec.WorkflowState),
			rec.AssigneeName, boolToInt(rec.IsOverdue), rec.AgeDays); err != nil {
			return fmt.Errorf("insert issue %d: %w", rec.ID, err)
		}
	}
	return nil
}

func (s *Store) insertKPIs(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	kpis := map[string]float64{
		"total_projects":      float64(report.Summary.TotalProjects),
		"active_projects":     float64(report.Summary.ActiveProjects),
		"total_commits":       float64(report.Summary.TotalCommits),
		"total_mrs":           float64(report.Summary.TotalMRs),
		"total_issues":        float64(report.Summary.TotalIssues),
		"unique_contributors": float64(report.Summary.UniqueContributors),
	}
	if report.IssueAnalytics != nil {
		kpis["open_issues"] = float64(report.IssueAnalytics.TotalOpen)
		kpis["overdue_issues"] = float64(report.IssueAnalytics.Overdue)
	}

	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, kpi_name, kpi_value) VALUES (?, ?, ?)`, kpiTable))
	for name, value := range kpis {
		if _, err := tx.ExecContext(ctx, query, reportID, name, value); err != nil {
			return fmt.Errorf("insert kpi %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) insertDailyActivity(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, activity_date, commits) VALUES (?, ?, ?)`, dailyTable))
	for date, commits := range report.DailyActivity {
		if _, err := tx.ExecContext(ctx, query, reportID, date, commits); err != nil {
			return fmt.Errorf("insert daily activity %s: %w", date, err)
		}
	}
	return nil
}

func (s *Store) insertActivity(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, project_id, user_id, activity_date, commits, issues_created, issues_closed, mrs_created, mrs_merged)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, activityTable))
	for _, cell := range report.Activity {
		if _, err := tx.ExecContext(ctx, query, reportID, cell.ProjectID, cell.UserID, cell.Date,
			cell.Commits, cell.IssuesCreated, cell.IssuesClosed, cell.MRsCreated, cell.MRsMerged); err != nil {
			return fmt.Errorf("insert activity cell: %w", err)
		}
	}
	return nil
}

func (s *Store) insertChurn(ctx context.Context, tx *sql.Tx, reportID string, report *schema.Report) error {
	query := s.rebind(fmt.Sprintf(`INSERT INTO %s
		(report_id, contributor, project_id, additions, deletions, changes)
		VALUES (?, ?, ?, ?, ?, ?)`, churnTable))
	for _, contributor := range report.Churn {
		for _, project := range contributor.Projects {
			if _, err := tx.ExecContext(ctx, query, reportID, contributor.Name, project.ProjectID,
				project.Additions, project.Deletions, project.Changes); err != nil {
				return fmt.Errorf("insert churn for %s: %w", contributor.Name, err)
			}
		}
	}
	return nil
}

// GetStatus returns connection state, report counts and table sizes.
func (s *Store) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:    string(s.backend),
		TableSizes: make(map[string]int64),
	}
	if s.db == nil {
		return status, nil
	}
	if err := s.db.Ping(); err != nil {
		return status, nil
	}
	status.Connected = true

	row := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*), COALESCE(MAX(generated_at), '') FROM %s", reportsTable))
	var lastGenerated string
	if err := row.Scan(&status.TotalReports, &lastGenerated); err != nil {
		return status, fmt.Errorf("query report count: %w", err)
	}
	if lastGenerated != "" {
		if ts, err := time.Parse(time.RFC3339Nano, lastGenerated); err == nil {
			status.LastReportTime = ts
		}
	}

	for _, table := range allTables {
		var count int64
		if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			return status, fmt.Errorf("query size of %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rebind converts ? placeholders to $n for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.backend != schema.PostgreSQLBackend {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteString("$" + strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
