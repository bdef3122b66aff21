package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/router"
)

// DiffCmd fetches one pull request diff through the same path as a tool call
var DiffCmd = &cobra.Command{
	Use:   "diff <owner>/<repo> <number>",
	Short: "Print the diff of a pull request",
	Long: `Fetch a pull request diff the way an MCP client would, through the
get_pr_diff tool, and print it to stdout. Useful for checking a token or a
GitHub Enterprise base URL without an MCP client.

Examples:
  prdiff diff octocat/hello-world 42
  prdiff diff octocat/hello-world 42 > pr42.diff`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	arguments, err := diffArguments(args[0], args[1])
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	r, err := newRouter(cmd, cfg)
	if err != nil {
		return err
	}

	result, err := r.Invoke(commandContext(cmd), router.DiffToolName, arguments)
	if err != nil {
		return err
	}

	for _, content := range result.Content {
		if text, ok := mcp.AsTextContent(content); ok {
			fmt.Fprint(cmd.OutOrStdout(), text.Text)
		}
	}
	return nil
}

// diffArguments turns "owner/repo" and "42" into get_pr_diff arguments.
// Range checks are left to the router.
func diffArguments(slug, number string) (map[string]any, error) {
	owner, repo, ok := strings.Cut(slug, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, errors.WithHint(
			errors.NewInvalidParamsError("invalid repository %q", slug),
			"use owner/repo, e.g. octocat/hello-world")
	}

	n, err := strconv.ParseFloat(strings.TrimPrefix(number, "#"), 64)
	if err != nil {
		return nil, errors.NewInvalidParamsError("invalid pull request number %q", number)
	}

	return map[string]any{
		router.ArgOwner:      owner,
		router.ArgRepo:       repo,
		router.ArgPullNumber: n,
	}, nil
}
