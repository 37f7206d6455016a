package http

import (
	"context"

	"github.com/khirotaka/toolfault/internal/mcp"
	mcpSDK "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ClientManagerInterface defines the interface for MCP client management.
// This interface is used for dependency injection in tests.
type ClientManagerInterface interface {
	CallTool(ctx context.Context, server, toolName string, input map[string]any) (*mcpSDK.CallToolResult, error)
	GetToolInfo(server, toolName string) (mcp.ToolInfo, bool)
	GetTools() []mcp.ToolInfo
	Close() error
}

// ProcessManagerInterface defines the interface for process status management.
// This interface is used for dependency injection in tests.
type ProcessManagerInterface interface {
	GetStatus(serverName string) mcp.ServerStatus
	SetStatus(serverName string, status mcp.ServerStatus)
	GetAllStatuses() map[string]mcp.ServerStatus
}
