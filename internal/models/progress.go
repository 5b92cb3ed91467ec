package models

// CurrentStatus mirrors the current_status mapping of the progress document.
type CurrentStatus struct {
	LastUpdated string       `yaml:"last_updated" json:"last_updated"`
	Phase       int          `yaml:"phase" json:"phase"`
	PhaseName   string       `yaml:"phase_name" json:"phase_name"`
	Health      HealthStatus `yaml:"health" json:"health"`
}

// VelocityMetrics holds the trailing throughput figures.
type VelocityMetrics struct {
	Current float64 `yaml:"current" json:"current"`
}

// ProgressMetrics is the metrics mapping as read back for display. Keys
// beyond these are ignored on read; the updater preserves them on write.
type ProgressMetrics struct {
	Metrics  `yaml:",inline"`
	Velocity VelocityMetrics `yaml:"velocity" json:"velocity"`
}

// Progress is a read-only view of the progress document, decoded for the
// display surfaces. Updates never round-trip through this type.
type Progress struct {
	CurrentStatus CurrentStatus   `yaml:"current_status" json:"current_status"`
	Metrics       ProgressMetrics `yaml:"metrics" json:"metrics"`
	Phases        []Phase         `yaml:"phases" json:"phases"`
}
