package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/topictracker/pace/internal/github"
	"github.com/topictracker/pace/internal/output"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui *output.UI

	verbose bool
	dryRun  bool
)

// Build metadata, set via Execute from main.
var (
	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "pace",
	Short: "Keep the progress file in step with the issue tracker",
	Long: `pace maintains a YAML progress document for a project tracked on GitHub.
It fetches the issue listing, recomputes task metrics, velocity, and
phase statuses, and rewrites the managed keys in place while leaving
the rest of the document untouched.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", buildVersion, buildCommit, buildDate)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	// Bare `pace` runs a full update, same as `pace update`.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return updateRun(cmd)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&dryRun, "dry-run", "n", false, "Show what would happen without making changes")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/pace/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "pace")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PACE")
	viper.AutomaticEnv()

	// Well-known variables that carry no PACE prefix, plus nested keys
	// AutomaticEnv cannot reach on its own.
	_ = viper.BindEnv("github.token", "GITHUB_TOKEN")
	_ = viper.BindEnv("github.repository", "GITHUB_REPOSITORY")
	_ = viper.BindEnv("github.api_url", "PACE_GITHUB_API_URL")
	_ = viper.BindEnv("anthropic.api_key", "ANTHROPIC_API_KEY")
	_ = viper.BindEnv("anthropic.model", "PACE_ANTHROPIC_MODEL")

	// Defaults via viper.SetDefault()
	viper.SetDefault("github.token", "")
	viper.SetDefault("github.repository", "owner/TopicTracker")
	viper.SetDefault("github.api_url", github.DefaultAPIURL)
	viper.SetDefault("progress_file", filepath.Join("context", "TopicTracker", "progress.yaml"))
	viper.SetDefault("anthropic.api_key", "")
	viper.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose
	ui.DryRun = dryRun
}

// newGitHubClient builds the issue tracker client from resolved config.
func newGitHubClient() github.Client {
	return github.NewClient(github.Config{
		APIURL:     viper.GetString("github.api_url"),
		Token:      viper.GetString("github.token"),
		Repository: viper.GetString("github.repository"),
	})
}

// progressFilePath returns the configured location of the progress document.
func progressFilePath() string {
	return viper.GetString("progress_file")
}
