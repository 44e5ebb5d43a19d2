package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Color variables for console output.
var (
	GoodColor     = color.New(color.FgGreen, color.Bold)   // A-range grades, positive signals.
	OkayColor     = color.New(color.FgCyan)                // B-range grades.
	WarnColor     = color.New(color.FgYellow)              // C-range grades, cautions.
	BadColor      = color.New(color.FgRed, color.Bold)     // D grades, critical signals.
	UrgentColor   = color.New(color.FgMagenta, color.Bold) // high priority.
	NeutralColor  = color.New(color.FgWhite)               // low priority, informational.
	InactiveColor = color.New(color.Faint)                 // inactive projects.
)

// GetColorGrade returns a colored health grade for console output (table).
func GetColorGrade(grade string) string {
	switch {
	case strings.HasPrefix(grade, "A"):
		return GoodColor.Sprint(grade)
	case strings.HasPrefix(grade, "B"):
		return OkayColor.Sprint(grade)
	case strings.HasPrefix(grade, "C"):
		return WarnColor.Sprint(grade)
	default: // "D"
		return BadColor.Sprint(grade)
	}
}

// GetColorPriority returns a colored priority label for console output.
func GetColorPriority(p schema.Priority) string {
	switch p {
	case schema.PriorityCritical:
		return BadColor.Sprint(string(p))
	case schema.PriorityHigh:
		return UrgentColor.Sprint(string(p))
	case schema.PriorityMedium:
		return WarnColor.Sprint(string(p))
	default: // "low"
		return NeutralColor.Sprint(string(p))
	}
}

// GetColorSeverity returns a colored recommendation severity label.
func GetColorSeverity(s schema.Severity) string {
	switch s {
	case schema.SeverityCritical:
		return BadColor.Sprint(string(s))
	case schema.SeverityHigh:
		return UrgentColor.Sprint(string(s))
	case schema.SeverityMedium:
		return WarnColor.Sprint(string(s))
	case schema.SeverityLow:
		return NeutralColor.Sprint(string(s))
	default: // "info"
		return OkayColor.Sprint(string(s))
	}
}

// GetColorStatus returns a colored project status label.
func GetColorStatus(s schema.ProjectStatus) string {
	switch s {
	case schema.StatusActive:
		return GoodColor.Sprint(string(s))
	case schema.StatusMaintenance:
		return WarnColor.Sprint(string(s))
	default: // "inactive"
		return InactiveColor.Sprint(string(s))
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetDBFilePath returns the path to the SQLite DB file for report storage.
func GetDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gldash_reports.db"
	}
	return filepath.Join(homeDir, ".gldash_reports.db")
}

// TruncateText truncates a string to a maximum width with ellipsis suffix.
// Requires maxWidth > 3 so there is room for the ellipsis and content.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
