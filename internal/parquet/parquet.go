// Package parquet exports report data to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// ProjectRow is one project metrics record in the Parquet export.
// It maps to the gldash_project_cache database table.
type ProjectRow struct {
	GeneratedAt time.Time `parquet:"generated_at,snappy"`
	PeriodDays  int32     `parquet:"period_days,snappy"`

	ProjectID   int64  `parquet:"project_id,snappy"`
	ProjectName string `parquet:"project_name,snappy"`

	Commits          int32 `parquet:"commits,snappy"`
	ContributorCount int32 `parquet:"contributor_count,snappy"`
	MRsCreated       int32 `parquet:"mrs_created,snappy"`
	MRsMerged        int32 `parquet:"mrs_merged,snappy"`
	OpenMRs          int32 `parquet:"open_mrs,snappy"`
	IssuesCreated    int32 `parquet:"issues_created,snappy"`
	IssuesClosed     int32 `parquet:"issues_closed,snappy"`
	OpenIssues       int32 `parquet:"open_issues,snappy"`

	DaysSinceLastCommit int32  `parquet:"days_since_last_commit,snappy"`
	HealthScore         int32  `parquet:"health_score,snappy"`
	HealthGrade         string `parquet:"health_grade,snappy"`
	Status              string `parquet:"status,snappy"`
}

// ActivityRow is one activity matrix cell in the Parquet export.
// It maps to the gldash_user_project_activity database table.
type ActivityRow struct {
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	ProjectID int64   `parquet:"project_id,snappy"`
	UserID    *string `parquet:"user_id,optional,snappy"` // nil when unmapped
	Date      string  `parquet:"activity_date,snappy"`

	Commits       int32 `parquet:"commits,snappy"`
	IssuesCreated int32 `parquet:"issues_created,snappy"`
	IssuesClosed  int32 `parquet:"issues_closed,snappy"`
	MRsCreated    int32 `parquet:"mrs_created,snappy"`
	MRsMerged     int32 `parquet:"mrs_merged,snappy"`
}

// ConvertProjectRows flattens report projects into Parquet records.
func ConvertProjectRows(report *schema.Report) []ProjectRow {
	rows := make([]ProjectRow, 0, len(report.Projects))
	for _, m := range report.Projects {
		rows = append(rows, ProjectRow{
			GeneratedAt:         report.GeneratedAt,
			PeriodDays:          int32(report.PeriodDays),
			ProjectID:           int64(m.ID),
			ProjectName:         m.Name,
			Commits:             int32(m.Commits),
			ContributorCount:    int32(m.ContributorCount),
			MRsCreated:          int32(m.MRsCreated),
			MRsMerged:           int32(m.MRsMerged),
			OpenMRs:             int32(m.OpenMRs),
			IssuesCreated:       int32(m.IssuesCreated),
			IssuesClosed:        int32(m.IssuesClosed),
			OpenIssues:          int32(m.OpenIssues),
			DaysSinceLastCommit: int32(m.DaysSinceLastCommit),
			HealthScore:         int32(m.HealthScore),
			HealthGrade:         m.HealthGrade,
			Status:              string(m.Status),
		})
	}
	return rows
}

// ConvertActivityRows flattens the activity matrix into Parquet records.
func ConvertActivityRows(report *schema.Report) []ActivityRow {
	rows := make([]ActivityRow, 0, len(report.Activity))
	for _, cell := range report.Activity {
		row := ActivityRow{
			GeneratedAt:   report.GeneratedAt,
			ProjectID:     int64(cell.ProjectID),
			Date:          cell.Date,
			Commits:       int32(cell.Commits),
			IssuesCreated: int32(cell.IssuesCreated),
			IssuesClosed:  int32(cell.IssuesClosed),
			MRsCreated:    int32(cell.MRsCreated),
			MRsMerged:     int32(cell.MRsMerged),
		}
		if !cell.Unmapped() {
			userID := cell.UserID
			row.UserID = &userID
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteProjectsParquet writes project records to a Parquet file.
func WriteProjectsParquet(data []ProjectRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteActivityParquet writes activity records to a Parquet file.
func WriteActivityParquet(data []ActivityRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes records using struct schema inference; the schema is
// derived from the struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}

// ExportReport writes the report's project metrics and activity matrix to a
// pair of Parquet files derived from outputFile.
func ExportReport(report *schema.Report, outputFile string) error {
	if outputFile == "" {
		return fmt.Errorf("--output-file is required for parquet output")
	}

	projectsFile := outputFile + ".projects.parquet"
	if err := WriteProjectsParquet(ConvertProjectRows(report), projectsFile); err != nil {
		return fmt.Errorf("failed to write projects: %w", err)
	}

	activityFile := outputFile + ".activity.parquet"
	if err := WriteActivityParquet(ConvertActivityRows(report), activityFile); err != nil {
		return fmt.Errorf("failed to write activity: %w", err)
	}
	return nil
}
