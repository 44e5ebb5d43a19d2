package schema

// Custom string types for type safety.
type (
	// Priority represents issue priority derived from labels.
	Priority string

	// IssueType represents the issue category derived from labels.
	IssueType string

	// WorkflowState represents a simplified issue workflow state.
	WorkflowState string

	// ProjectStatus represents project activity status.
	ProjectStatus string

	// Severity represents recommendation severity.
	Severity string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string
)

// All issue priorities supported.
const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium" // default
	PriorityLow      Priority = "low"
)

// All issue types supported.
const (
	TypeBug         IssueType = "bug"
	TypeFeature     IssueType = "feature"
	TypeEnhancement IssueType = "enhancement"
	TypeOther       IssueType = "other" // default
)

// All workflow states supported.
const (
	StateToDo       WorkflowState = "to_do"
	StateInProgress WorkflowState = "in_progress"
	StateBlocked    WorkflowState = "blocked"
)

// All project statuses supported.
const (
	StatusActive      ProjectStatus = "active"      // committed to within the last week
	StatusMaintenance ProjectStatus = "maintenance" // committed to within the last month
	StatusInactive    ProjectStatus = "inactive"
)

// All recommendation severities supported, from most to least urgent.
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// AllPriorities lists priorities in ranking order (most urgent first).
var AllPriorities = []Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}

// AllIssueTypes lists all issue types.
var AllIssueTypes = []IssueType{TypeBug, TypeFeature, TypeEnhancement, TypeOther}

// AllWorkflowStates lists all workflow states.
var AllWorkflowStates = []WorkflowState{StateToDo, StateInProgress, StateBlocked}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid store backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// PriorityRank returns the sort rank of a priority (lower is more urgent).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// SeverityRank returns the sort rank of a recommendation severity.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	case SeverityInfo:
		return 4
	default:
		return 5
	}
}
