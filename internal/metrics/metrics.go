// Package metrics aggregates task metrics from a tracker issue listing.
package metrics

import (
	"github.com/topictracker/pace/internal/models"
)

// Compute aggregates the metrics snapshot for one issue listing.
//
// Pull requests do not count toward total or completed tasks. The
// in-progress and blocked counts look only at state and labels, so an open
// pull request carrying one of those labels is counted there.
func Compute(issues []models.Issue) models.Metrics {
	var m models.Metrics
	for _, issue := range issues {
		if !issue.IsPullRequest() {
			m.TotalTasks++
			if issue.IsClosed() {
				m.CompletedTasks++
			}
		}
		if issue.State == models.IssueStateOpen {
			if issue.HasLabel(models.LabelInProgress) {
				m.InProgressTasks++
			}
			if issue.HasLabel(models.LabelBlocked) {
				m.BlockedTasks++
			}
		}
	}
	return m
}

// Health classifies project risk from the blocked-task count: more than two
// blocked tasks is red, one or two is yellow, none is green.
func Health(blockedTasks int) models.HealthStatus {
	switch {
	case blockedTasks > 2:
		return models.HealthRed
	case blockedTasks > 0:
		return models.HealthYellow
	default:
		return models.HealthGreen
	}
}
