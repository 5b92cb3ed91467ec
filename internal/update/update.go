// Package update orchestrates one progress synchronization run.
package update

import (
	"context"
	"fmt"
	"time"

	"github.com/topictracker/pace/internal/github"
	"github.com/topictracker/pace/internal/metrics"
	"github.com/topictracker/pace/internal/models"
	"github.com/topictracker/pace/internal/phases"
	"github.com/topictracker/pace/internal/progress"
)

// Result holds the outcome of one run for console and tool reporting.
type Result struct {
	Repository string              `json:"repository"`
	IssueCount int                 `json:"issue_count"`
	Metrics    models.Metrics      `json:"metrics"`
	Velocity   float64             `json:"velocity"`
	Phases     []models.Phase      `json:"phases"`
	Health     models.HealthStatus `json:"health"`
}

// Compute runs the read-only stages of the pipeline: fetch the issue
// listing, aggregate metrics, compute velocity, resolve phases.
func Compute(ctx context.Context, gh github.Client, now time.Time) (*Result, error) {
	issues, err := gh.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch issues: %w", err)
	}

	m := metrics.Compute(issues)
	velocity, err := metrics.Velocity(issues, now)
	if err != nil {
		return nil, fmt.Errorf("calculate velocity: %w", err)
	}

	return &Result{
		Repository: gh.Repository(),
		IssueCount: len(issues),
		Metrics:    m,
		Velocity:   velocity,
		Phases:     phases.Resolve(issues),
		Health:     metrics.Health(m.BlockedTasks),
	}, nil
}

// Run executes the pipeline once and rewrites the progress document at
// path. Every stage must succeed before the file is touched; an error from
// any of them leaves the document exactly as it was.
func Run(ctx context.Context, gh github.Client, path string, now time.Time) (*Result, error) {
	res, err := Compute(ctx, gh, now)
	if err != nil {
		return nil, err
	}

	doc, err := progress.Load(path)
	if err != nil {
		return nil, err
	}
	if err := doc.Apply(res.Metrics, res.Velocity, res.Phases, now); err != nil {
		return nil, err
	}
	if err := doc.Save(path); err != nil {
		return nil, err
	}

	return res, nil
}
