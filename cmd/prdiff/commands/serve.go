package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/teranos/prdiff/logger"
)

// ServeCmd serves MCP over stdio
var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the get_pr_diff tool over MCP stdio",
	Long: `Serve the Model Context Protocol over stdin/stdout.

Requests are read one JSON-RPC message per line from stdin and responses are
written to stdout. Logs go to stderr. The server stops on SIGINT, SIGTERM or
when stdin is closed, after in-flight calls have completed.`,
	Args: cobra.NoArgs,
	RunE: RunServe,
}

// RunServe loads configuration, requires a token and serves until interrupted
func RunServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Token and config problems are fatal before stdin is touched
	r, err := newRouter(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infow("prdiff ready", "tools", len(r.Tools()))

	return r.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
}
