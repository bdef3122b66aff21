package router

import "github.com/mark3labs/mcp-go/mcp"

// DiffToolName is the MCP tool name clients call
const DiffToolName = "get_pr_diff"

// Argument names in the get_pr_diff input schema
const (
	ArgOwner      = "owner"
	ArgRepo       = "repo"
	ArgPullNumber = "pullNumber"
)

// DiffTool returns the descriptor for get_pr_diff.
func DiffTool() mcp.Tool {
	return mcp.NewTool(DiffToolName,
		mcp.WithDescription("Get the unified diff of a GitHub pull request"),
		mcp.WithTitleAnnotation("Get pull request diff"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(true),
		mcp.WithString(ArgOwner,
			mcp.Required(),
			mcp.Description("Repository owner (user or organization)"),
		),
		mcp.WithString(ArgRepo,
			mcp.Required(),
			mcp.Description("Repository name"),
		),
		mcp.WithNumber(ArgPullNumber,
			mcp.Required(),
			mcp.Description("Pull request number"),
			mcp.Min(1),
		),
	)
}
