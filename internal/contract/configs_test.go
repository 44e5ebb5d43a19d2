package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

func validRawInput() *ConfigRawInput {
	return &ConfigRawInput{
		BaseURL:      "https://gitlab.example.com",
		Token:        "glpat-test",
		Groups:       "1721,1722,1723",
		Days:         30,
		Workers:      4,
		Limit:        25,
		Precision:    1,
		Output:       "text",
		StoreBackend: "none",
		Emoji:        "yes",
		Color:        "yes",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:        "valid minimal config",
			mutate:      func(*ConfigRawInput) {},
			expectError: false,
		},
		{
			name:        "missing base url",
			mutate:      func(in *ConfigRawInput) { in.BaseURL = "" },
			expectError: true,
		},
		{
			name:        "malformed base url",
			mutate:      func(in *ConfigRawInput) { in.BaseURL = "not a url" },
			expectError: true,
		},
		{
			name:        "missing token",
			mutate:      func(in *ConfigRawInput) { in.Token = "" },
			expectError: true,
		},
		{
			name:        "missing groups",
			mutate:      func(in *ConfigRawInput) { in.Groups = "" },
			expectError: true,
		},
		{
			name:        "non-numeric group",
			mutate:      func(in *ConfigRawInput) { in.Groups = "1721,abc" },
			expectError: true,
		},
		{
			name:        "invalid limit (zero)",
			mutate:      func(in *ConfigRawInput) { in.Limit = 0 },
			expectError: true,
		},
		{
			name:        "invalid limit (too high)",
			mutate:      func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 },
			expectError: true,
		},
		{
			name:        "invalid workers",
			mutate:      func(in *ConfigRawInput) { in.Workers = 0 },
			expectError: true,
		},
		{
			name:        "invalid days",
			mutate:      func(in *ConfigRawInput) { in.Days = -1 },
			expectError: true,
		},
		{
			name:        "invalid precision",
			mutate:      func(in *ConfigRawInput) { in.Precision = 3 },
			expectError: true,
		},
		{
			name:        "invalid output mode",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "invalid store backend",
			mutate:      func(in *ConfigRawInput) { in.StoreBackend = "mongo" },
			expectError: true,
		},
		{
			name: "mysql backend requires connect string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
				in.StoreDBConnect = ""
			},
			expectError: true,
		},
		{
			name: "mysql backend with connect string",
			mutate: func(in *ConfigRawInput) {
				in.StoreBackend = "mysql"
				in.StoreDBConnect = "user:pass@tcp(localhost:3306)/gldash"
			},
			expectError: false,
		},
		{
			name:        "invalid emoji flag",
			mutate:      func(in *ConfigRawInput) { in.Emoji = "maybe" },
			expectError: true,
		},
		{
			name:        "single trend period rejected",
			mutate:      func(in *ConfigRawInput) { in.TrendPeriods = "30" },
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRawInput()
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateDefaults(t *testing.T) {
	cfg := &Config{}
	err := ProcessAndValidate(cfg, validRawInput())
	require.NoError(t, err)

	assert.Equal(t, []int{1721, 1722, 1723}, cfg.GroupIDs)
	assert.Equal(t, 30, cfg.Days)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.StoreBackend)
	assert.Equal(t, schema.DefaultTrendPeriods, cfg.TrendPeriods)
	assert.True(t, cfg.UseEmojis)
	assert.True(t, cfg.UseColors)

	// Window is derived from the lookback, inclusive on both ends.
	assert.Equal(t, cfg.EndTime.Add(-30*24*3600e9), cfg.StartTime)
	assert.False(t, cfg.EndTime.IsZero())
}

func TestProcessGroupsDedup(t *testing.T) {
	input := validRawInput()
	input.Groups = " 1721, 1722 ,1721,"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []int{1721, 1722}, cfg.GroupIDs)
}

func TestProcessTrendPeriodsSorted(t *testing.T) {
	input := validRawInput()
	input.TrendPeriods = "30,7,15,7"

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []int{7, 15, 30}, cfg.TrendPeriods)
}

func TestProcessAliasesLowercased(t *testing.T) {
	input := validRawInput()
	input.Aliases = map[string]string{
		"JDoe@Example.com": "John Doe",
		" jdoe ":           "John Doe",
		"":                 "ignored",
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, map[string]string{
		"jdoe@example.com": "John Doe",
		"jdoe":             "John Doe",
	}, cfg.Aliases)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		GroupIDs:     []int{1, 2},
		TrendPeriods: []int{7, 15},
		Aliases:      map[string]string{"a": "b"},
	}
	clone := cfg.Clone()
	clone.GroupIDs[0] = 99
	clone.Aliases["a"] = "c"

	assert.Equal(t, 1, cfg.GroupIDs[0])
	assert.Equal(t, "b", cfg.Aliases["a"])
}
