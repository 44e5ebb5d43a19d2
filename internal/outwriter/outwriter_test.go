package outwriter

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/internal/contract"
)

func TestGetMaxTableNameWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"wide terminal capped", 200, 50},
		{"default terminal", 80, 25},
		{"narrow terminal floored", 40, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &contract.Config{Width: tt.width}
			assert.Equal(t, tt.want, getMaxTableNameWidth(cfg))
		})
	}
}

func TestSectionHeader(t *testing.T) {
	withEmoji := &contract.Config{UseEmojis: true}
	without := &contract.Config{UseEmojis: false}

	assert.Equal(t, "📊 SUMMARY", sectionHeader(withEmoji, "📊", "SUMMARY"))
	assert.Equal(t, "SUMMARY", sectionHeader(without, "📊", "SUMMARY"))
}

func TestGradeLabelPlain(t *testing.T) {
	cfg := &contract.Config{UseColors: false}
	assert.Equal(t, "A+", gradeLabel(cfg, "A+"))
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(cw *csv.Writer) error {
		return cw.Write([]string{"1", "2"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", buf.String())
}

func TestWriteJSONIndents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"x": 1}))
	assert.Equal(t, "{\n  \"x\": 1\n}\n", buf.String())
}

func TestCreateFormatters(t *testing.T) {
	fmtFloat, intFmt := createFormatters(2)
	assert.Equal(t, "3.14", fmtFloat(3.14159))
	assert.Equal(t, "%d", intFmt)
}
