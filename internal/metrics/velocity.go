package metrics

import (
	"fmt"
	"time"

	"github.com/topictracker/pace/internal/models"
)

// velocityWindowDays is the length of the trailing throughput window.
const velocityWindowDays = 7

// Velocity returns the closed-task throughput in tasks per day over the
// trailing seven days ending at now. Pull requests are excluded. An issue
// closed exactly at the window boundary does not count; only strictly later
// close times do.
//
// With no closed tasks the velocity is 0. A closed task whose closed_at
// does not parse as RFC 3339 is an error.
func Velocity(issues []models.Issue, now time.Time) (float64, error) {
	cutoff := now.Add(-velocityWindowDays * 24 * time.Hour)

	recent := 0
	for _, issue := range issues {
		if issue.IsPullRequest() || !issue.IsClosed() {
			continue
		}
		closedAt, err := time.Parse(time.RFC3339, issue.ClosedAt)
		if err != nil {
			return 0, fmt.Errorf("issue #%d: parse closed_at %q: %w", issue.Number, issue.ClosedAt, err)
		}
		if closedAt.After(cutoff) {
			recent++
		}
	}
	return float64(recent) / velocityWindowDays, nil
}
