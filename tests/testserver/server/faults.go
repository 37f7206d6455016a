package server

import (
	"context"
	"errors"

	"github.com/khirotaka/toolfault/pkg/toolerr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type MisbehaveInput struct{}

type MisbehaveOutput struct{}

// misbehaveHandler fails without the shared payload shape, the way a tool
// outside our control might.
func (s *MCPServer) misbehaveHandler(ctx context.Context, _ *mcp.CallToolRequest, _ *MisbehaveInput) (*mcp.CallToolResult, MisbehaveOutput, error) {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: "kaboom: something broke",
			},
		},
	}, MisbehaveOutput{}, nil
}

type FailInternalInput struct{}

type FailInternalOutput struct{}

// failInternalHandler converts a plain Go error at the tool boundary, the
// way well-behaved tools report unexpected failures.
func (s *MCPServer) failInternalHandler(ctx context.Context, _ *mcp.CallToolRequest, _ *FailInternalInput) (*mcp.CallToolResult, FailInternalOutput, error) {
	err := errors.New("backend exploded")
	return toolerr.FromError(err).ToolResult(), FailInternalOutput{}, nil
}
