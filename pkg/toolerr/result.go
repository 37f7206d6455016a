package toolerr

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolResult renders the failure as an MCP tool result: a single text
// content item and IsError set. The text follows the format contract other
// components parse and display:
//
//	Error [<code>]: <message>
//	Details: <details as 2-space-indented JSON>
//
// The Details block appears only when the error carries details. Rendering
// is pure and idempotent: the same error always produces byte-identical
// output, with map keys serialized in sorted order. Details must hold only
// JSON-serializable values; if serialization fails anyway, the details are
// rendered with fmt's %v verb rather than failing the render.
func (e *Error) ToolResult() *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: e.renderText()},
		},
	}
}

func (e *Error) renderText() string {
	text := fmt.Sprintf("Error [%s]: %s", e.code, e.message)
	if len(e.details) == 0 {
		return text
	}
	pretty, err := json.MarshalIndent(e.details, "", "  ")
	if err != nil {
		return fmt.Sprintf("%s\nDetails: %v", text, e.details)
	}
	return fmt.Sprintf("%s\nDetails: %s", text, pretty)
}
