package models

// HealthStatus classifies project risk from the blocked-task count.
type HealthStatus string

const (
	HealthGreen  HealthStatus = "green"
	HealthYellow HealthStatus = "yellow"
	HealthRed    HealthStatus = "red"
)

// Metrics is the aggregate task snapshot computed from one issue listing.
// Pull requests are excluded from the totals but not from the label counts.
type Metrics struct {
	TotalTasks      int `yaml:"total_tasks" json:"total_tasks"`
	CompletedTasks  int `yaml:"completed_tasks" json:"completed_tasks"`
	InProgressTasks int `yaml:"in_progress_tasks" json:"in_progress_tasks"`
	BlockedTasks    int `yaml:"blocked_tasks" json:"blocked_tasks"`
}
