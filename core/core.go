package core

import (
	"context"
	"time"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
	"github.com/yungngaew/gitlab-dashboard/internal/glclient"
	"github.com/yungngaew/gitlab-dashboard/internal/outwriter"
	"github.com/yungngaew/gitlab-dashboard/internal/persist"
	"github.com/yungngaew/gitlab-dashboard/schema"
)

// ExecutorFunc defines the function signature for executing different report modes.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteReport generates the full dashboard report and prints it.
// It serves as the main entry point for the 'report' mode.
func ExecuteReport(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)

	report, err := buildReport(ctx, fetcher, cfg)
	if err != nil {
		return err
	}

	if cfg.WithTrends {
		trends, err := buildTrendComparison(ctx, fetcher, cfg)
		if err != nil {
			contract.LogWarn("trend comparison", err)
		} else {
			report.Trends = trends
		}
	}

	if err := saveReport(ctx, cfg, report); err != nil {
		contract.LogWarn("save report", err)
	}

	duration := time.Since(start)
	return outwriter.PrintReport(report, cfg, duration)
}

// ExecuteTrends runs the multi-period comparison and prints it.
// It serves as the main entry point for the 'trends' mode.
func ExecuteTrends(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)

	trends, err := buildTrendComparison(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintTrends(trends, cfg, duration)
}

// ExecuteIssues generates the report and prints the issue analytics view.
func ExecuteIssues(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)

	report, err := buildReport(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintIssues(report.IssueAnalytics, cfg, duration)
}

// ExecuteTeam generates the report and prints the team analytics view.
func ExecuteTeam(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)

	report, err := buildReport(ctx, fetcher, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.PrintTeam(report.Team, cfg, duration)
}

// ExecuteStoreStatus prints status information about the report store.
func ExecuteStoreStatus(_ context.Context, cfg *contract.Config) error {
	sink, err := persist.NewStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()

	status, err := sink.GetStatus()
	if err != nil {
		return err
	}
	return outwriter.PrintStoreStatus(status, cfg)
}

// GetReportResults builds the full report without printing or persisting it.
// This is exposed for programmatic consumers like the MCP server.
func GetReportResults(ctx context.Context, cfg *contract.Config) (*schema.Report, error) {
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)
	return buildReport(ctx, fetcher, cfg)
}

// GetTrendResults runs the multi-period comparison without printing it.
func GetTrendResults(ctx context.Context, cfg *contract.Config) (*schema.TrendComparison, error) {
	fetcher := glclient.New(cfg.BaseURL, cfg.Token)
	return buildTrendComparison(ctx, fetcher, cfg)
}

// saveReport persists the report when a store backend is configured.
func saveReport(ctx context.Context, cfg *contract.Config, report *schema.Report) error {
	if cfg.StoreBackend == schema.NoneBackend {
		return nil
	}
	sink, err := persist.NewStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = sink.Close() }()
	return sink.SaveReport(ctx, report)
}
