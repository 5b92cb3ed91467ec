// Package phases resolves per-phase delivery status from tracker issues.
//
// The roadmap is a fixed six-phase table. Issues are assigned to phases by
// case-sensitive substring matching of their titles against each phase's
// task titles; an issue whose title matches several phases counts in each.
package phases

import (
	"strings"

	"github.com/topictracker/pace/internal/models"
)

// Definition describes one roadmap phase and the task titles that map
// tracker issues onto it.
type Definition struct {
	Number     int
	Name       string
	TaskTitles []string
}

var definitions = []Definition{
	{1, "Core Foundation", []string{
		"Core Data Models",
		"Thread-Safe Message Store",
		"Mock SNS Endpoint",
		"Result Pattern Integration",
	}},
	{2, "Testing Infrastructure", []string{
		"Basic Test Client",
		"Verification Methods",
		"TUnit Test Helpers",
	}},
	{3, "API & Integration", []string{
		"Query Endpoints",
		"Advanced Queries",
		"ASP.NET Core Integration",
	}},
	{4, "Developer Experience", []string{
		"Basic Web UI",
		"Advanced UI Features",
		"Developer Tools",
	}},
	{5, "Platform Integration", []string{
		"Aspire Resource",
		"Aspire Dashboard",
	}},
	{6, "Production Readiness", []string{
		"Performance Optimization",
		"NuGet Package",
		"Documentation",
	}},
}

// Definitions returns the roadmap table in phase order.
func Definitions() []Definition {
	return definitions
}

// MatchesAny reports whether title contains any of the given substrings.
// Matching is case-sensitive.
func MatchesAny(title string, substrings []string) bool {
	for _, s := range substrings {
		if strings.Contains(title, s) {
			return true
		}
	}
	return false
}

// Resolve computes the status of every roadmap phase from one issue
// listing. The result is always all six phases in roadmap order.
//
// A phase with at least one matched issue and all of them closed is
// completed. Otherwise it is in progress when any matched issue is closed
// or any open matched issue carries the in-progress label, and not started
// when neither holds.
func Resolve(issues []models.Issue) []models.Phase {
	result := make([]models.Phase, 0, len(definitions))
	for _, def := range definitions {
		var matched []models.Issue
		for _, issue := range issues {
			if MatchesAny(issue.Title, def.TaskTitles) {
				matched = append(matched, issue)
			}
		}

		total := len(matched)
		completed := 0
		for _, issue := range matched {
			if issue.IsClosed() {
				completed++
			}
		}

		status := models.PhaseNotStarted
		switch {
		case total > 0 && completed == total:
			status = models.PhaseCompleted
		case completed > 0 || anyInProgress(matched):
			status = models.PhaseInProgress
		}

		result = append(result, models.Phase{
			Number:         def.Number,
			Name:           def.Name,
			Status:         status,
			TasksTotal:     total,
			TasksCompleted: completed,
		})
	}
	return result
}

func anyInProgress(issues []models.Issue) bool {
	for _, issue := range issues {
		if issue.State == models.IssueStateOpen && issue.HasLabel(models.LabelInProgress) {
			return true
		}
	}
	return false
}
