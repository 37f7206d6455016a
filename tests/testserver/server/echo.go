package server

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type EchoInput struct {
	Message string `json:"message"`
}

type EchoOutput struct {
	Message string `json:"message"`
}

func (s *MCPServer) echoHandler(ctx context.Context, _ *mcp.CallToolRequest, input *EchoInput) (*mcp.CallToolResult, EchoOutput, error) {
	return nil, EchoOutput{Message: input.Message}, nil
}
