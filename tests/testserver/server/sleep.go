package server

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type SleepInput struct {
	DurationMs int `json:"durationMs"`
}

type SleepOutput struct {
	SleptMs int `json:"sleptMs"`
}

func (s *MCPServer) sleepHandler(ctx context.Context, _ *mcp.CallToolRequest, input *SleepInput) (*mcp.CallToolResult, SleepOutput, error) {
	select {
	case <-time.After(time.Duration(input.DurationMs) * time.Millisecond):
		return nil, SleepOutput{SleptMs: input.DurationMs}, nil
	case <-ctx.Done():
		return nil, SleepOutput{}, ctx.Err()
	}
}
