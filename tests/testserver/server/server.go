// Package server implements the MCP server used by the gateway's integration
// tests. Its tools cover the failure modes a real downstream can produce:
// structured faults, free-form faults, and calls that outrun their deadline.
package server

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MCPServer struct {
	server *mcp.Server

	mu      sync.Mutex
	widgets map[string]string
}

func NewMCPServer() *MCPServer {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: "toolfault-testserver", Version: "1.0.0"},
		nil,
	)
	return &MCPServer{
		server: mcpServer,
		widgets: map[string]string{
			"w-1": "anvil",
		},
	}
}

func (s *MCPServer) Setup() {
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "echo",
			Title:       "Echo",
			Description: "Echo the message back",
		},
		s.echoHandler,
	)
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "lookup-widget",
			Title:       "Widget Lookup",
			Description: "Look up a widget by ID",
		},
		s.lookupWidgetHandler,
	)
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "create-widget",
			Title:       "Widget Creator",
			Description: "Create a widget with a unique ID",
		},
		s.createWidgetHandler,
	)
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "misbehave",
			Title:       "Misbehaving Tool",
			Description: "Fail without a structured payload",
		},
		s.misbehaveHandler,
	)
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "fail-internal",
			Title:       "Failing Tool",
			Description: "Fail with a converted internal error",
		},
		s.failInternalHandler,
	)
	mcp.AddTool(
		s.server,
		&mcp.Tool{
			Name:        "sleep",
			Title:       "Sleeper",
			Description: "Sleep for the given duration",
		},
		s.sleepHandler,
	)
}

func (s *MCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
