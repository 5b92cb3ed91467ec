package update

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/topictracker/pace/internal/github"
	"github.com/topictracker/pace/internal/models"
)

// mockClient implements github.Client for testing.
type mockClient struct {
	issues  []models.Issue
	listErr error
}

func (m *mockClient) ListIssues(_ context.Context) ([]models.Issue, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.issues, nil
}

func (m *mockClient) Repository() string { return "owner/TopicTracker" }

var _ github.Client = (*mockClient)(nil)

const progressFixture = `project: TopicTracker
current_status:
  last_updated: "2026-08-01T00:00:00Z"
  phase: 1
  phase_name: Core Foundation
  health: green
metrics:
  total_tasks: 0
  completed_tasks: 0
  in_progress_tasks: 0
  blocked_tasks: 0
  velocity:
    current: 0.00
phases: []
`

var testNow = time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "progress.yaml")
	require.NoError(t, os.WriteFile(path, []byte(progressFixture), 0o644))
	return path
}

func trackerIssues() []models.Issue {
	return []models.Issue{
		{Number: 1, Title: "Core Data Models", State: models.IssueStateClosed,
			ClosedAt: testNow.Add(-24 * time.Hour).Format(time.RFC3339)},
		{Number: 2, Title: "Thread-Safe Message Store", State: models.IssueStateClosed,
			ClosedAt: testNow.Add(-30 * 24 * time.Hour).Format(time.RFC3339)},
		{Number: 3, Title: "Mock SNS Endpoint", State: models.IssueStateOpen,
			Labels: []models.Label{{Name: "in-progress"}}},
		{Number: 4, Title: "Result Pattern Integration", State: models.IssueStateOpen,
			Labels: []models.Label{{Name: "blocked"}}},
		{Number: 5, Title: "Wire up message store", State: models.IssueStateClosed,
			ClosedAt:    testNow.Add(-2 * time.Hour).Format(time.RFC3339),
			PullRequest: &models.PullRequestRef{}},
	}
}

func TestCompute(t *testing.T) {
	gh := &mockClient{issues: trackerIssues()}

	res, err := Compute(context.Background(), gh, testNow)
	require.NoError(t, err)

	assert.Equal(t, "owner/TopicTracker", res.Repository)
	assert.Equal(t, 5, res.IssueCount)
	assert.Equal(t, models.Metrics{TotalTasks: 4, CompletedTasks: 2, InProgressTasks: 1, BlockedTasks: 1}, res.Metrics)
	assert.InDelta(t, 1.0/7.0, res.Velocity, 1e-9)
	assert.Equal(t, models.HealthYellow, res.Health)

	require.Len(t, res.Phases, 6)
	assert.Equal(t, models.PhaseInProgress, res.Phases[0].Status)
	assert.Equal(t, 4, res.Phases[0].TasksTotal)
	assert.Equal(t, 2, res.Phases[0].TasksCompleted)
}

func TestCompute_BlockedIssueTurnsHealthYellow(t *testing.T) {
	gh := &mockClient{issues: []models.Issue{
		{Number: 1, Title: "Core Data Models", State: models.IssueStateClosed,
			ClosedAt: testNow.Add(-24 * time.Hour).Format(time.RFC3339)},
		{Number: 2, Title: "Mock SNS Endpoint", State: models.IssueStateOpen,
			Labels: []models.Label{{Name: "blocked"}}},
	}}

	res, err := Compute(context.Background(), gh, testNow)
	require.NoError(t, err)

	assert.Equal(t, models.Metrics{TotalTasks: 2, CompletedTasks: 1, BlockedTasks: 1}, res.Metrics)
	assert.Equal(t, models.HealthYellow, res.Health)
	assert.InDelta(t, 1.0/7.0, res.Velocity, 1e-9)

	p1 := res.Phases[0]
	assert.Equal(t, models.PhaseInProgress, p1.Status)
	assert.Equal(t, 2, p1.TasksTotal)
	assert.Equal(t, 1, p1.TasksCompleted)
}

func TestCompute_FetchError(t *testing.T) {
	gh := &mockClient{listErr: fmt.Errorf("connection refused")}

	_, err := Compute(context.Background(), gh, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch issues")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCompute_VelocityError(t *testing.T) {
	gh := &mockClient{issues: []models.Issue{
		{Number: 9, Title: "Documentation", State: models.IssueStateClosed, ClosedAt: "not-a-time"},
	}}

	_, err := Compute(context.Background(), gh, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calculate velocity")
}

func TestRun(t *testing.T) {
	path := writeFixture(t)
	gh := &mockClient{issues: trackerIssues()}

	res, err := Run(context.Background(), gh, path, testNow)
	require.NoError(t, err)
	require.NotNil(t, res)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "total_tasks: 4")
	assert.Contains(t, content, "completed_tasks: 2")
	assert.Contains(t, content, "in_progress_tasks: 1")
	assert.Contains(t, content, "blocked_tasks: 1")
	assert.Contains(t, content, "current: 0.14")
	assert.Contains(t, content, "health: yellow")
	assert.Contains(t, content, `last_updated: "2026-08-22T12:00:00Z"`)
	assert.Contains(t, content, "name: Core Foundation")
	assert.Contains(t, content, "name: Production Readiness")
	assert.Contains(t, content, "project: TopicTracker", "untouched keys must survive")
}

func TestRun_FetchErrorLeavesFileAlone(t *testing.T) {
	path := writeFixture(t)
	gh := &mockClient{listErr: fmt.Errorf("boom")}

	_, err := Run(context.Background(), gh, path, testNow)
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, progressFixture, string(data), "a failed run must not touch the document")
}

func TestRun_MissingProgressFile(t *testing.T) {
	gh := &mockClient{issues: trackerIssues()}

	_, err := Run(context.Background(), gh, filepath.Join(t.TempDir(), "no-such.yaml"), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read progress file")
}

func TestRun_MalformedDocumentLeavesFileAlone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	broken := "current_status: fine\nmetrics: 3\nphases: []\n"
	require.NoError(t, os.WriteFile(path, []byte(broken), 0o644))

	gh := &mockClient{issues: trackerIssues()}
	_, err := Run(context.Background(), gh, path, testNow)
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, broken, string(data))
}
