package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/topictracker/pace/internal/output"
	"github.com/topictracker/pace/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the progress file structure",
	Long: `Check that the progress document carries the mappings an update run
mutates. A failing check means 'pace update' would refuse to touch
the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkRun()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func checkRun() error {
	path := progressFilePath()

	doc, err := progress.Load(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(ui.Out, "%s\n", output.Cyan(path))

	checks := progress.Validate(doc)
	passed := 0
	for _, c := range checks {
		icon := output.Red("✗")
		if c.Passed {
			icon = output.Green("✓")
			passed++
		}
		fmt.Fprintf(ui.Out, "  %s %-20s %s\n", icon, c.Name, c.Detail)
	}
	fmt.Fprintf(ui.Out, "  Score: %d/%d\n", passed, len(checks))

	if failed := len(checks) - passed; failed > 0 {
		return fmt.Errorf("%d schema check(s) failed", failed)
	}
	return nil
}
