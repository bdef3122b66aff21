package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/cmd/prdiff/commands"
	"github.com/teranos/prdiff/config"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/logger"
)

var rootCmd = &cobra.Command{
	Use:   "prdiff",
	Short: "prdiff - MCP server that fetches GitHub pull request diffs",
	Long: `prdiff - MCP server that fetches GitHub pull request diffs.

Run without a subcommand, prdiff speaks the Model Context Protocol over
stdin/stdout and exposes a single tool, get_pr_diff, which returns the
unified diff of a pull request.

A GitHub token is required: set GITHUB_TOKEN (or PRDIFF_GITHUB_TOKEN, or
github.token in prdiff.toml).

Available commands:
  serve   - Serve MCP over stdio (default)
  diff    - Fetch one diff from the command line
  tools   - List the tools this server exposes
  config  - Show and validate configuration
  version - Show build information

Examples:
  prdiff                              # Serve MCP over stdio
  prdiff -vv                          # Serve with debug logs on stderr
  prdiff diff octocat/hello-world 42  # Print a diff
  prdiff tools --format json          # Dump tool descriptors`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("log-json")
		if !jsonLogs {
			jsonLogs = commands.ConfiguredJSONLogs(cmd)
		}
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		logger.Debugw("Logger initialized", "verbosity", logger.LevelName(verbosity))
		// Reload so file warnings reach the configured logger
		config.Reset()
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
	RunE: commands.RunServe,
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity on stderr (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	rootCmd.PersistentFlags().String("config", "", "Read configuration from this file instead of the search path")

	// Add commands
	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.DiffCmd)
	rootCmd.AddCommand(commands.ToolsCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "Hint:", hint)
		}
		os.Exit(1)
	}
}
