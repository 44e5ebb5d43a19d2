package contract

import (
	"fmt"
	"maps"
	"net/url"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

// Default values for configuration.
const (
	DefaultLookbackDays = 30
	DefaultResultLimit  = 25
	MaxResultLimit      = 1000
	DefaultPrecision    = 1
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for report generation.
// This struct remains the "final, validated" config.
type Config struct {
	BaseURL string
	Token   string // Please use env var as this is plaintext

	GroupIDs []int

	Days      int
	StartTime time.Time
	EndTime   time.Time

	Workers     int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string

	WithTrends   bool
	TrendPeriods []int

	// Aliases maps a lowercased email or display name to a canonical
	// contributor name.
	Aliases map[string]string

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	BaseURL        string `mapstructure:"gitlab-url"`
	Token          string `mapstructure:"gitlab-token"`
	Groups         string `mapstructure:"groups"`
	Days           int    `mapstructure:"days"`
	Workers        int    `mapstructure:"workers"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`

	// --- Fields from trendsCmd.Flags() ---
	Trends       bool   `mapstructure:"trends"`
	TrendPeriods string `mapstructure:"trend-periods"`

	// --- Identity aliases from config file ---
	Aliases map[string]string `mapstructure:"aliases"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.GroupIDs != nil {
		clone.GroupIDs = make([]int, len(c.GroupIDs))
		copy(clone.GroupIDs, c.GroupIDs)
	}
	if c.TrendPeriods != nil {
		clone.TrendPeriods = make([]int, len(c.TrendPeriods))
		copy(clone.TrendPeriods, c.TrendPeriods)
	}
	if c.Aliases != nil {
		clone.Aliases = make(map[string]string, len(c.Aliases))
		maps.Copy(clone.Aliases, c.Aliases)
	}
	return &clone
}

// CloneWithTimeWindow creates a copy of the Config and sets a new window.
func (c *Config) CloneWithTimeWindow(start, end time.Time, days int) *Config {
	clone := c.Clone()
	clone.StartTime = start
	clone.EndTime = end
	clone.Days = days
	return clone
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processConnection(cfg, input); err != nil {
		return err
	}
	if err := processGroups(cfg, input); err != nil {
		return err
	}
	if err := processTimeWindow(cfg, input); err != nil {
		return err
	}
	if err := processTrendPeriods(cfg, input); err != nil {
		return err
	}
	processAliases(cfg, input)
	return nil
}

// RevalidateGroups re-parses a group ID override on an already validated config.
func RevalidateGroups(cfg *Config, groupsStr string) error {
	return processGroups(cfg, &ConfigRawInput{Groups: groupsStr})
}

// RevalidateWindow re-derives the analysis window from a lookback override.
func RevalidateWindow(cfg *Config, days int) error {
	return processTimeWindow(cfg, &ConfigRawInput{Days: days})
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-window related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.WithTrends = input.Trends

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}

	// --- 4. Store Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	return nil
}

// processConnection validates the GitLab endpoint and token.
func processConnection(cfg *Config, input *ConfigRawInput) error {
	base := strings.TrimRight(strings.TrimSpace(input.BaseURL), "/")
	if base == "" {
		return fmt.Errorf("gitlab-url is required (flag --gitlab-url or GLDASH_GITLAB_URL)")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid gitlab-url '%s'. expected e.g. https://gitlab.example.com", input.BaseURL)
	}
	cfg.BaseURL = base

	cfg.Token = strings.TrimSpace(input.Token)
	if cfg.Token == "" {
		return fmt.Errorf("gitlab-token is required (flag --gitlab-token or GLDASH_GITLAB_TOKEN)")
	}
	return nil
}

// processGroups parses the comma-separated group ID list.
func processGroups(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.Groups)
	if raw == "" {
		return fmt.Errorf("groups is required, e.g. --groups 1721,1722,1723")
	}

	seen := make(map[int]struct{})
	var ids []int
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid group ID '%s'. must be a positive integer", part)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return fmt.Errorf("groups is required, e.g. --groups 1721,1722,1723")
	}
	cfg.GroupIDs = ids
	return nil
}

// processTimeWindow derives the inclusive analysis window from the lookback days.
func processTimeWindow(cfg *Config, input *ConfigRawInput) error {
	if input.Days <= 0 {
		return fmt.Errorf("days must be greater than 0 (received %d)", input.Days)
	}
	cfg.Days = input.Days
	cfg.EndTime = time.Now().UTC()
	cfg.StartTime = cfg.EndTime.Add(-time.Duration(cfg.Days) * 24 * time.Hour)
	return nil
}

// processTrendPeriods parses the comma-separated trend period list and keeps
// it strictly ascending so transitions stay well defined.
func processTrendPeriods(cfg *Config, input *ConfigRawInput) error {
	raw := strings.TrimSpace(input.TrendPeriods)
	if raw == "" {
		cfg.TrendPeriods = make([]int, len(schema.DefaultTrendPeriods))
		copy(cfg.TrendPeriods, schema.DefaultTrendPeriods)
		return nil
	}

	seen := make(map[int]struct{})
	var periods []int
	for part := range strings.SplitSeq(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		days, err := strconv.Atoi(part)
		if err != nil || days <= 0 {
			return fmt.Errorf("invalid trend period '%s'. must be a positive integer of days", part)
		}
		if _, dup := seen[days]; dup {
			continue
		}
		seen[days] = struct{}{}
		periods = append(periods, days)
	}
	if len(periods) < 2 {
		return fmt.Errorf("trend-periods needs at least two distinct periods (received '%s')", raw)
	}
	sort.Ints(periods)
	cfg.TrendPeriods = periods
	return nil
}

// processAliases lowercases alias keys so lookups are case-insensitive.
func processAliases(cfg *Config, input *ConfigRawInput) {
	if len(input.Aliases) == 0 {
		return
	}
	cfg.Aliases = make(map[string]string, len(input.Aliases))
	for key, canonical := range input.Aliases {
		key = strings.ToLower(strings.TrimSpace(key))
		canonical = strings.TrimSpace(canonical)
		if key == "" || canonical == "" {
			continue
		}
		cfg.Aliases[key] = canonical
	}
}
