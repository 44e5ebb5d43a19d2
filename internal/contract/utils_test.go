package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input     string
		expected  bool
		expectErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 20))
	assert.Equal(t, "very lon...", TruncateText("very long project name", 11))
	assert.Equal(t, "abc", TruncateText("abc", 3))
}

func TestGetColorGrade(t *testing.T) {
	// Color codes are disabled in tests, so output equals input text.
	for _, grade := range schema.HealthGrades {
		assert.Contains(t, GetColorGrade(grade), grade)
	}
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name      string
		backend   schema.DatabaseBackend
		connStr   string
		expectErr bool
	}{
		{"sqlite empty ok", schema.SQLiteBackend, "", false},
		{"none empty ok", schema.NoneBackend, "", false},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass/db", true},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/db", false},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost dbname=gldash", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
