package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/topictracker/pace/internal/output"
	"github.com/topictracker/pace/internal/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the recorded progress snapshot",
	Long: `Show the metrics, health, and phase table recorded in the progress
document. Reads the local file only; run 'pace update' first to pull
fresh data from the tracker.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun() error {
	doc, err := progress.Load(progressFilePath())
	if err != nil {
		return err
	}

	view, err := doc.View()
	if err != nil {
		return err
	}

	// Header
	fmt.Fprintf(ui.Out, "%s\n", output.Cyan(viper.GetString("github.repository")))
	if view.CurrentStatus.PhaseName != "" {
		fmt.Fprintf(ui.Out, "  Phase:      %d (%s)\n", view.CurrentStatus.Phase, view.CurrentStatus.PhaseName)
	}
	fmt.Fprintf(ui.Out, "  Health:     %s\n", output.HealthColor(string(view.CurrentStatus.Health)))
	if view.CurrentStatus.LastUpdated != "" {
		updated := view.CurrentStatus.LastUpdated
		if ts, err := time.Parse(time.RFC3339, updated); err == nil {
			updated = timeAgo(ts)
		}
		fmt.Fprintf(ui.Out, "  Updated:    %s\n", updated)
	}
	fmt.Fprintln(ui.Out)

	// Metrics
	metricsTable := ui.Table([]string{"Total", "Completed", "In Progress", "Blocked", "Velocity"})
	_ = metricsTable.Append([]string{
		fmt.Sprintf("%d", view.Metrics.TotalTasks),
		fmt.Sprintf("%d", view.Metrics.CompletedTasks),
		fmt.Sprintf("%d", view.Metrics.InProgressTasks),
		fmt.Sprintf("%d", view.Metrics.BlockedTasks),
		fmt.Sprintf("%.2f/day", view.Metrics.Velocity.Current),
	})
	_ = metricsTable.Render()
	fmt.Fprintln(ui.Out)

	// Phases
	if len(view.Phases) == 0 {
		ui.Info("No phases recorded. Run 'pace update' to populate them.")
		return nil
	}

	phaseTable := ui.Table([]string{"Phase", "Name", "Status", "Tasks"})
	for _, p := range view.Phases {
		_ = phaseTable.Append([]string{
			fmt.Sprintf("%d", p.Number),
			p.Name,
			output.StatusColor(string(p.Status)),
			fmt.Sprintf("%d/%d", p.TasksCompleted, p.TasksTotal),
		})
	}
	_ = phaseTable.Render()
	return nil
}

// timeAgo returns a human-readable duration from a time.
func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	}
}
