package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/topictracker/pace/internal/models"
	"github.com/topictracker/pace/internal/output"
)

var issuesState string

var issuesCmd = &cobra.Command{
	Use:     "issues",
	Aliases: []string{"ls"},
	Short:   "List issues straight from the tracker",
	Long:    "List issues and pull requests from GitHub without touching the progress file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return issuesRun(cmd)
	},
}

func init() {
	issuesCmd.Flags().StringVar(&issuesState, "state", "all", "Filter by state: all, open, closed")
	rootCmd.AddCommand(issuesCmd)
}

func issuesRun(cmd *cobra.Command) error {
	switch issuesState {
	case "all", models.IssueStateOpen, models.IssueStateClosed:
	default:
		return fmt.Errorf("invalid state filter: %s (use: all, open, closed)", issuesState)
	}

	gh := newGitHubClient()
	ui.VerboseLog("Fetching issues for %s", gh.Repository())

	issues, err := gh.ListIssues(cmd.Context())
	if err != nil {
		return err
	}

	var filtered []models.Issue
	for _, issue := range issues {
		if issuesState == "all" || issue.State == issuesState {
			filtered = append(filtered, issue)
		}
	}

	if len(filtered) == 0 {
		ui.Info("No issues found.")
		return nil
	}

	table := ui.Table([]string{"#", "Title", "State", "Labels", "Kind"})
	for _, issue := range filtered {
		kind := "issue"
		if issue.IsPullRequest() {
			kind = "pull"
		}

		_ = table.Append([]string{
			fmt.Sprintf("#%d", issue.Number),
			issue.Title,
			output.StatusColor(issue.State),
			strings.Join(issue.LabelNames(), ", "),
			kind,
		})
	}
	_ = table.Render()
	return nil
}
