package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRun(t *testing.T) {
	out := commandEnv(t)
	seedProgress(t, displayDoc)

	reportSummary = false
	require.NoError(t, reportRun(testCommand(t)))

	text := out.String()
	assert.Contains(t, text, "# Progress Report")
	assert.Contains(t, text, "- Repository: owner/TopicTracker")
	assert.Contains(t, text, "- Current phase: 2 (Testing Infrastructure)")
	assert.Contains(t, text, "- Health: yellow")
	assert.Contains(t, text, "- Last updated: 2026-08-20T10:00:00Z")
	assert.Contains(t, text, "## Metrics")
	assert.Contains(t, text, "| 7 | 4 | 2 | 1 | 0.57/day |")
	assert.Contains(t, text, "## Phases")
	assert.Contains(t, text, "| 1 | Core Foundation | completed | 4/4 |")
	assert.Contains(t, text, "| 2 | Testing Infrastructure | in_progress | 0/3 |")
}

func TestReportRun_SummaryWithoutKey(t *testing.T) {
	commandEnv(t)
	seedProgress(t, displayDoc)
	t.Setenv("ANTHROPIC_API_KEY", "")

	reportSummary = true
	defer func() { reportSummary = false }()

	err := reportRun(testCommand(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic API key not configured")
}
