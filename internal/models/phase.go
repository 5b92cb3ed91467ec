package models

// PhaseStatus represents the delivery state of a project phase.
type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "not_started"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// Phase is the per-phase completion record recomputed on every update.
// Field order matches the serialized key order in the progress document.
type Phase struct {
	Number         int         `yaml:"phase" json:"phase"`
	Name           string      `yaml:"name" json:"name"`
	Status         PhaseStatus `yaml:"status" json:"status"`
	TasksTotal     int         `yaml:"tasks_total" json:"tasks_total"`
	TasksCompleted int         `yaml:"tasks_completed" json:"tasks_completed"`
}
