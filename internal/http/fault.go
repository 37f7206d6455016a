package http

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/khirotaka/toolfault/pkg/toolerr"
	mcpSDK "github.com/modelcontextprotocol/go-sdk/mcp"
)

// extractErrorText extracts the failure text from a CallToolResult.
// Returns the text and true if the result is an error, empty string and
// false otherwise.
func extractErrorText(result *mcpSDK.CallToolResult) (string, bool) {
	if result == nil || !result.IsError {
		return "", false
	}

	// TODO: handle AudioContent and ImageContent error payloads. For now only
	// text content is extracted and other types are treated as unexpected.
	for _, content := range result.Content {
		if textContent, ok := content.(*mcpSDK.TextContent); ok && textContent.Text != "" {
			return textContent.Text, true
		}
	}

	if len(result.Content) == 0 {
		return "Tool execution failed: no error details provided", true
	}

	return fmt.Sprintf("Tool execution failed: unexpected content type: %T", result.Content[0]), true
}

// decodeToolFault recovers a structured failure payload from the text content
// of a failed tool call. Downstream tools emit either the JSON payload itself
// or its rendered form "Error [<code>]: <message>" with an optional details
// block. Returns false when the text matches neither shape, in which case the
// caller reports the raw text under UNKNOWN_ERROR.
func decodeToolFault(text string) (*toolerr.Payload, bool) {
	var v any
	if err := json.Unmarshal([]byte(text), &v); err == nil {
		payload, err := toolerr.ParsePayload(v)
		if err != nil {
			return nil, false
		}
		return payload, true
	}
	return parseRenderedFault(text)
}

// parseRenderedFault parses the rendered form back into a payload. The
// rendered text is exactly "Error [<code>]: <message>" followed by an
// optional "\nDetails: <json>" block.
func parseRenderedFault(text string) (*toolerr.Payload, bool) {
	rest, found := strings.CutPrefix(text, "Error [")
	if !found {
		return nil, false
	}
	code, rest, found := strings.Cut(rest, "]: ")
	if !found {
		return nil, false
	}
	message, detailsJSON, hasDetails := strings.Cut(rest, "\nDetails: ")

	fault := map[string]any{
		"code":    code,
		"message": message,
	}
	if hasDetails {
		var details any
		if err := json.Unmarshal([]byte(detailsJSON), &details); err != nil {
			return nil, false
		}
		fault["details"] = details
	}

	payload, err := toolerr.ParsePayload(fault)
	if err != nil {
		return nil, false
	}
	return payload, true
}
