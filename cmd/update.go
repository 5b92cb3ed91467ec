package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/topictracker/pace/internal/update"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch issues and rewrite the progress file",
	Long: `Fetch the issue listing from GitHub, recompute metrics, velocity, and
phase statuses, and write them back into the progress document.
Keys the tracker does not own are left exactly as they were.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updateRun(cmd)
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}

func updateRun(cmd *cobra.Command) error {
	ctx := cmd.Context()
	gh := newGitHubClient()
	path := progressFilePath()
	now := time.Now().UTC()

	ui.VerboseLog("Fetching issues for %s", gh.Repository())

	if dryRun {
		res, err := update.Compute(ctx, gh, now)
		if err != nil {
			return err
		}
		ui.DryRunMsg("Would rewrite %s", path)
		printUpdateSummary(res)
		return nil
	}

	res, err := update.Run(ctx, gh, path, now)
	if err != nil {
		return err
	}

	printUpdateSummary(res)
	return nil
}

func printUpdateSummary(res *update.Result) {
	fmt.Fprintf(ui.Out, "Progress updated: %d/%d tasks completed\n", res.Metrics.CompletedTasks, res.Metrics.TotalTasks)
	fmt.Fprintf(ui.Out, "Current velocity: %.2f tasks/day\n", res.Velocity)
}
