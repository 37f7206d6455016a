package server

import (
	"context"

	"github.com/khirotaka/toolfault/pkg/toolerr"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LookupWidgetInput struct {
	ID string `json:"id"`
}

type LookupWidgetOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (s *MCPServer) lookupWidgetHandler(ctx context.Context, _ *mcp.CallToolRequest, input *LookupWidgetInput) (*mcp.CallToolResult, LookupWidgetOutput, error) {
	s.mu.Lock()
	name, ok := s.widgets[input.ID]
	s.mu.Unlock()

	if !ok {
		fault := toolerr.Newf(toolerr.ErrCodeNotFound, "widget %q does not exist", input.ID).WithDetails(map[string]any{
			"widgetId": input.ID,
		})
		return fault.ToolResult(), LookupWidgetOutput{}, nil
	}

	return nil, LookupWidgetOutput{ID: input.ID, Name: name}, nil
}

type CreateWidgetInput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateWidgetOutput struct {
	ID string `json:"id"`
}

func (s *MCPServer) createWidgetHandler(ctx context.Context, _ *mcp.CallToolRequest, input *CreateWidgetInput) (*mcp.CallToolResult, CreateWidgetOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.widgets[input.ID]; exists {
		fault := toolerr.New(toolerr.ErrCodeConflict, "widget already exists").WithDetails(map[string]any{
			"widgetId": input.ID,
		})
		return fault.ToolResult(), CreateWidgetOutput{}, nil
	}

	s.widgets[input.ID] = input.Name
	return nil, CreateWidgetOutput{ID: input.ID}, nil
}
