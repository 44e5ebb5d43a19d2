package schema

import "time"

// StoreStatus represents the status of the report store.
type StoreStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalReports   int              `json:"total_reports"`
	LastReportTime time.Time        `json:"last_report_time"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
