package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/topictracker/pace/internal/progress"
)

var reportSummary bool

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the progress document as Markdown",
	Long: `Render the recorded progress as a Markdown report, suitable for pasting
into an issue or a status email. With --summary, an Anthropic model
drafts a short narrative paragraph from the same numbers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportRun(cmd)
	},
}

func init() {
	reportCmd.Flags().BoolVar(&reportSummary, "summary", false, "Include an AI-drafted narrative summary")
	rootCmd.AddCommand(reportCmd)
}

func reportRun(cmd *cobra.Command) error {
	doc, err := progress.Load(progressFilePath())
	if err != nil {
		return err
	}

	view, err := doc.View()
	if err != nil {
		return err
	}

	fmt.Fprintln(ui.Out, "# Progress Report")
	fmt.Fprintln(ui.Out)
	fmt.Fprintf(ui.Out, "- Repository: %s\n", viper.GetString("github.repository"))
	if view.CurrentStatus.PhaseName != "" {
		fmt.Fprintf(ui.Out, "- Current phase: %d (%s)\n", view.CurrentStatus.Phase, view.CurrentStatus.PhaseName)
	}
	fmt.Fprintf(ui.Out, "- Health: %s\n", view.CurrentStatus.Health)
	if view.CurrentStatus.LastUpdated != "" {
		fmt.Fprintf(ui.Out, "- Last updated: %s\n", view.CurrentStatus.LastUpdated)
	}
	fmt.Fprintln(ui.Out)

	if reportSummary {
		client := newLLMClient()
		if client == nil {
			return fmt.Errorf("anthropic API key not configured (set ANTHROPIC_API_KEY or anthropic.api_key)")
		}

		summary, err := client.SummarizeProgress(cmd.Context(), view)
		if err != nil {
			return fmt.Errorf("generate summary: %w", err)
		}

		fmt.Fprintln(ui.Out, "## Summary")
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, summary)
		fmt.Fprintln(ui.Out)
	}

	fmt.Fprintln(ui.Out, "## Metrics")
	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, "| Total | Completed | In Progress | Blocked | Velocity |")
	fmt.Fprintln(ui.Out, "|-------|-----------|-------------|---------|----------|")
	fmt.Fprintf(ui.Out, "| %d | %d | %d | %d | %.2f/day |\n",
		view.Metrics.TotalTasks, view.Metrics.CompletedTasks,
		view.Metrics.InProgressTasks, view.Metrics.BlockedTasks,
		view.Metrics.Velocity.Current)
	fmt.Fprintln(ui.Out)

	fmt.Fprintln(ui.Out, "## Phases")
	fmt.Fprintln(ui.Out)
	fmt.Fprintln(ui.Out, "| Phase | Name | Status | Tasks |")
	fmt.Fprintln(ui.Out, "|-------|------|--------|-------|")
	for _, p := range view.Phases {
		fmt.Fprintf(ui.Out, "| %d | %s | %s | %d/%d |\n", p.Number, p.Name, p.Status, p.TasksCompleted, p.TasksTotal)
	}

	return nil
}
