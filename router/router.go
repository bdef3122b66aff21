// Package router exposes the get_pr_diff tool over MCP.
//
// The Router owns the tool registry and turns tool calls into Diff Fetcher
// requests. Non-tool traffic (initialize, tools/list, ping, notifications) is
// served by an embedded mcp-go MCPServer; tools/call is handled here so each
// failure kind reaches the client with its own JSON-RPC error code:
//
//	unknown tool        -> METHOD_NOT_FOUND (-32601)
//	invalid arguments   -> INVALID_PARAMS   (-32602)
//	upstream failure    -> INTERNAL_ERROR   (-32603)
package router

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/teranos/prdiff/errors"
	"github.com/teranos/prdiff/github"
	"github.com/teranos/prdiff/logger"
	"go.uber.org/zap"
)

// ServerName is reported to clients during initialize
const ServerName = "prdiff"

// Fetcher retrieves a pull request diff
type Fetcher interface {
	FetchDiff(ctx context.Context, req github.DiffRequest) (string, error)
}

// Option configures a Router
type Option func(*Router)

// WithLogger sets the router's logger
func WithLogger(l *zap.SugaredLogger) Option {
	return func(r *Router) {
		r.logger = l
	}
}

// WithVersion sets the server version reported during initialize
func WithVersion(v string) Option {
	return func(r *Router) {
		r.version = v
	}
}

// WithFrameTrace logs every raw protocol frame at debug level
func WithFrameTrace(enabled bool) Option {
	return func(r *Router) {
		r.traceFrames = enabled
	}
}

// Router dispatches MCP tool calls to the Diff Fetcher
type Router struct {
	fetcher     Fetcher
	server      *server.MCPServer
	logger      *zap.SugaredLogger
	version     string
	traceFrames bool
}

// New creates a Router with get_pr_diff registered
func New(fetcher Fetcher, opts ...Option) *Router {
	r := &Router{
		fetcher: fetcher,
		version: "dev",
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.ComponentLogger("router")
	}

	r.server = server.NewMCPServer(ServerName, r.version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	r.server.AddTool(DiffTool(), r.handleDiffTool)

	return r
}

// Tools returns the registered tool descriptors, sorted by name
func (r *Router) Tools() []mcp.Tool {
	registered := r.server.ListTools()
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)

	tools := make([]mcp.Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, registered[name].Tool)
	}
	return tools
}

// Invoke runs a tool call. Failures are returned as *Error with the JSON-RPC
// code the client should see; no content envelope is produced for them.
func (r *Router) Invoke(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	if logger.RequestIDFromContext(ctx) == "" {
		ctx = logger.WithRequestID(ctx, uuid.NewString())
	}
	log := logger.LoggerFromContext(ctx, r.logger).With(logger.FieldTool, name)
	start := time.Now()

	result, err := r.invoke(ctx, name, arguments)

	elapsed := time.Since(start).Milliseconds()
	if err != nil {
		routed := classify(err)
		switch {
		case errors.IsUpstreamError(err):
			log.Errorw("GitHub request failed",
				logger.FieldErrorCode, routed.Code,
				logger.FieldDurationMS, elapsed,
				logger.FieldError, err)
		case routed.Code == mcp.INTERNAL_ERROR:
			log.Errorw("Tool call failed",
				logger.FieldErrorCode, routed.Code,
				logger.FieldError, err)
		default:
			log.Infow("Tool call rejected",
				logger.FieldErrorCode, routed.Code,
				logger.FieldError, err)
		}
		return nil, routed
	}

	log.Infow("Tool call completed", logger.FieldDurationMS, elapsed)
	return result, nil
}

func (r *Router) invoke(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	if name != DiffToolName {
		return nil, errors.NewToolNotFoundError(name)
	}

	params, err := ParseDiffParams(arguments)
	if err != nil {
		return nil, err
	}

	diff, err := r.fetcher.FetchDiff(ctx, params.Request())
	if err != nil {
		return nil, err
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(diff)},
	}, nil
}

// handleDiffTool registers get_pr_diff with the MCPServer so tools/list and
// initialize describe it. HandleMessage answers tools/call itself; this path
// only runs for callers that hand frames to the MCPServer directly.
func (r *Router) handleDiffTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return r.Invoke(ctx, req.Params.Name, req.GetArguments())
}

// toolCallMessage is a tools/call request frame
type toolCallMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// HandleMessage answers one JSON-RPC frame. It returns nil for notifications.
func (r *Router) HandleMessage(ctx context.Context, raw json.RawMessage) mcp.JSONRPCMessage {
	msg, ok := parseToolCall(raw)
	if !ok {
		r.logger.Debugw("Delegating to MCP server", logger.FieldMethod, msg.Method)
		return r.server.HandleMessage(ctx, raw)
	}

	var id mcp.RequestId
	if err := json.Unmarshal(msg.ID, &id); err != nil {
		return r.server.HandleMessage(ctx, raw)
	}

	var params mcp.CallToolParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return mcp.NewJSONRPCError(id, mcp.INVALID_PARAMS, "invalid tools/call params: "+err.Error(), nil)
		}
	}

	arguments, err := argumentsMap(params.Arguments)
	if err != nil {
		return mcp.NewJSONRPCError(id, mcp.INVALID_PARAMS, err.Error(), nil)
	}

	ctx = logger.WithRequestID(ctx, uuid.NewString())
	logger.LoggerFromContext(ctx, r.logger).Debugw("Tool call received",
		logger.FieldRPCID, id.String(),
		logger.FieldTool, params.Name)

	result, err := r.Invoke(ctx, params.Name, arguments)
	if err != nil {
		routed := classify(err)
		return mcp.NewJSONRPCError(id, routed.Code, routed.Error(), nil)
	}
	return mcp.NewJSONRPCResultResponse(id, result)
}

// parseToolCall reports whether raw is a tools/call request with an id.
// Anything else, malformed frames included, belongs to the MCPServer.
func parseToolCall(raw json.RawMessage) (toolCallMessage, bool) {
	var msg toolCallMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return msg, false
	}
	if msg.JSONRPC != mcp.JSONRPC_VERSION || msg.Method != string(mcp.MethodToolsCall) {
		return msg, false
	}
	if len(msg.ID) == 0 || string(msg.ID) == "null" {
		return msg, false
	}
	return msg, true
}

func argumentsMap(arguments any) (map[string]any, error) {
	switch args := arguments.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return args, nil
	default:
		return nil, errors.NewInvalidParamsError("arguments must be an object, got %T", arguments)
	}
}
