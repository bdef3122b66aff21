package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/github"
	"github.com/teranos/prdiff/logger"
	"github.com/teranos/prdiff/router"
)

// ToolsCmd lists the tools the server exposes
var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the MCP tools this server exposes",
	Long: `List the tool descriptors returned by tools/list. No token is needed.

Examples:
  prdiff tools
  prdiff tools --format json`,
	Args: cobra.NoArgs,
	RunE: runTools,
}

var toolsFormat string

func init() {
	ToolsCmd.Flags().StringVar(&toolsFormat, "format", "table", "Output format: table, json")
}

// unconfiguredFetcher backs a router used only for listing tools
type unconfiguredFetcher struct{}

func (unconfiguredFetcher) FetchDiff(ctx context.Context, req github.DiffRequest) (string, error) {
	return "", errors.WithStack(errors.ErrMissingToken)
}

func runTools(cmd *cobra.Command, args []string) error {
	r := router.New(unconfiguredFetcher{}, router.WithLogger(logger.ComponentLogger("router")))
	tools := r.Tools()

	switch toolsFormat {
	case "json":
		data, err := json.MarshalIndent(tools, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal tools to JSON")
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))

	case "table":
		rows := pterm.TableData{{"Tool", "Description", "Arguments"}}
		for _, tool := range tools {
			rows = append(rows, []string{tool.Name, tool.Description, describeArguments(tool.InputSchema.Properties, tool.InputSchema.Required)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return errors.Wrap(err, "failed to render tools table")
		}
		fmt.Fprintln(cmd.OutOrStdout(), table)

	default:
		return errors.Newf("unsupported format: %s (supported: table, json)", toolsFormat)
	}
	return nil
}

// describeArguments renders "name:type" pairs, required ones marked with *
func describeArguments(properties map[string]any, required []string) string {
	isRequired := make(map[string]bool, len(required))
	for _, name := range required {
		isRequired[name] = true
	}

	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		typ := "any"
		if prop, ok := properties[name].(map[string]any); ok {
			if t, ok := prop["type"].(string); ok {
				typ = t
			}
		}
		part := name + ":" + typ
		if isRequired[name] {
			part += "*"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, " ")
}
