// Package mcpserver exposes registered conversation tools to Model Context
// Protocol clients. Each tool keeps its persistent environment for the
// lifetime of the server process, so one server is one session.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/water-vapor/gpt-oss/internal/harmony"
	"github.com/water-vapor/gpt-oss/internal/tools"
)

// codeArgs is the input for every code execution tool.
type codeArgs struct {
	Code string `json:"code" jsonschema:"source code to execute in the persistent environment"`
}

// New builds an MCP server exposing every tool in the registry. The tool
// description carries the full instruction text so calling agents see the
// persistence and auto-display behavior.
func New(reg *tools.Registry, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "gpt-oss",
		Title:   "Stateful code execution tools",
		Version: version,
	}, nil)

	for _, name := range reg.Names() {
		tool, ok := reg.Get(name)
		if !ok {
			continue
		}
		mcp.AddTool(server, &mcp.Tool{
			Name:        tool.Name(),
			Description: tool.Instruction(),
		}, handler(tool))
	}
	return server
}

// Run serves the registry over stdio until the context ends or the client
// disconnects.
func Run(ctx context.Context, reg *tools.Registry, version string) error {
	return New(reg, version).Run(ctx, &mcp.StdioTransport{})
}

// handler adapts one conversation tool into an MCP tool handler. The code
// argument is wrapped in a request envelope, and the tool's report comes
// back as a single text content part. Execution faults live inside the
// report text; an error return here means the adapter itself broke.
func handler(tool tools.Tool) func(context.Context, *mcp.CallToolRequest, codeArgs) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args codeArgs) (*mcp.CallToolResult, any, error) {
		request := harmony.NewMessage(harmony.Author{Role: harmony.RoleUser}, args.Code)
		replies, err := tool.Process(ctx, request)
		if err != nil {
			return nil, nil, fmt.Errorf("process %s request: %w", tool.Name(), err)
		}
		if len(replies) == 0 {
			return nil, nil, fmt.Errorf("tool %q produced no response", tool.Name())
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: replies[0].Text()}},
		}, nil, nil
	}
}
