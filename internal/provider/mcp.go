package provider

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/version"
	"github.com/agentfoundry/toolbench/internal/workspace"
)

// NewMCPServer exposes a workspace's tools over the Model Context
// Protocol. Schemas go out loose; MCP clients do their own validation
// and strict-mode null-widening would only confuse them. Failures are
// reported as tool results with IsError set, so the session survives a
// bad call.
func NewMCPServer(ws *workspace.Workspace) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "toolbench",
		Version: version.Version,
	}, nil)

	for _, d := range ws.Registry().Descriptors() {
		tool := &mcp.Tool{
			Name:        d.Name,
			Description: d.Description,
			InputSchema: schema.Loose(d.InputSchema).JSON(),
		}
		name := d.Name
		server.AddTool(tool, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			args, err := argumentsMap(req.Params.Arguments)
			if err != nil {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
					IsError: true,
				}, nil
			}
			result := ws.Dispatch(ctx, name, args)
			if !result.Ok() {
				return &mcp.CallToolResult{
					Content: []mcp.Content{&mcp.TextContent{
						Text: fmt.Sprintf("%s: %s", result.Failure.Kind, result.Failure.Message),
					}},
					IsError: true,
				}, nil
			}
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: result.Output}},
			}, nil
		})
	}
	return server
}

// ServeMCPStdio runs the server over stdio until the client disconnects
// or ctx is canceled.
func ServeMCPStdio(ctx context.Context, ws *workspace.Workspace) error {
	return NewMCPServer(ws).Run(ctx, &mcp.StdioTransport{})
}

// argumentsMap coerces the SDK's untyped arguments into the map shape
// Dispatch expects. Depending on transport they arrive decoded or raw.
func argumentsMap(raw any) (map[string]any, error) {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	case json.RawMessage:
		args := map[string]any{}
		if len(v) > 0 {
			if err := json.Unmarshal(v, &args); err != nil {
				return nil, fmt.Errorf("invalid arguments: %w", err)
			}
		}
		return args, nil
	default:
		return nil, fmt.Errorf("unsupported arguments type %T", raw)
	}
}
