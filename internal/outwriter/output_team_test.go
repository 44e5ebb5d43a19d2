package outwriter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungngaew/gitlab-dashboard/schema"
)

func sampleTeam() map[string]*schema.TeamMember {
	return map[string]*schema.TeamMember{
		"ada@example.com": {
			Name: "ada@example.com", Commits: 20,
			Projects:       []string{"auth-service", "billing"},
			IssuesAssigned: 4, IssuesResolved: 2, MergeRequests: 3,
			Workload: schema.Workload{OpenIssues: 3, OpenMRs: 1, OverdueIssues: 1},
		},
		"renovate-bot": {
			Name: "renovate-bot", Unmapped: true, Commits: 5,
			Projects: []string{"billing"},
		},
	}
}

func TestWriteTeamTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeTeamTable(&buf, sampleTeam(), textConfig(), time.Second)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "TEAM ACTIVITY")
	assert.Contains(t, output, "ada@example.com")
	assert.Contains(t, output, "renovate-bot *")
	assert.Contains(t, output, "identity not matched")
	// Busiest member first.
	assert.Less(t, strings.Index(output, "ada@example.com"), strings.Index(output, "renovate-bot"))
}

func TestWriteTeamCSV(t *testing.T) {
	var buf bytes.Buffer
	err := writeTeamCSV(&buf, sampleTeam())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3) // header + 2 members

	assert.Contains(t, lines[0], "merge_requests")
	assert.Contains(t, lines[1], "auth-service|billing")
	assert.Contains(t, lines[2], "true")
}

func TestSortedMembersTieBreak(t *testing.T) {
	team := map[string]*schema.TeamMember{
		"b": {Name: "b", Commits: 5},
		"a": {Name: "a", Commits: 5},
	}
	members := sortedMembers(team)
	require.Len(t, members, 2)
	assert.Equal(t, "a", members[0].Name)
}
