package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/khirotaka/toolfault/internal/mcp"
	"github.com/khirotaka/toolfault/internal/validator"
	"github.com/khirotaka/toolfault/pkg/toolerr"
)

// isUnknownToolError checks if the error is from an unknown tool call.
// The MCP SDK returns an error with the message pattern:
// "calling "tools/call": unknown tool "toolName""
func isUnknownToolError(err error) bool {
	return strings.Contains(err.Error(), "unknown tool")
}

type Handler struct {
	clientManager  ClientManagerInterface
	processManager ProcessManagerInterface
	startTime      time.Time
}

func NewHandler(cm ClientManagerInterface, pm ProcessManagerInterface) *Handler {
	return &Handler{
		clientManager:  cm,
		processManager: pm,
		startTime:      time.Now(),
	}
}

type CallToolRequest struct {
	Server   string `json:"server"`
	ToolName string `json:"toolName"`
	Input    any    `json:"input"`
}

func (h *Handler) CallTool(c *gin.Context) {
	var req CallToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, toolerr.Wrap(toolerr.ErrCodeValidation, "request body is not valid JSON", err))
		return
	}

	// Validate request
	if err := validator.ValidateRequest(req.Server, req.ToolName, req.Input); err != nil {
		e := toolerr.New(toolerr.ErrCodeValidation, err.Error())
		var fieldErr *validator.FieldError
		if errors.As(err, &fieldErr) {
			e = e.WithDetails(map[string]any{"field": fieldErr.Field})
		}
		respondError(c, e)
		return
	}

	// 許可リスト付きのキーは対象ツールのみ呼び出せる
	if key, ok := apiKeyFromContext(c); ok && !key.AllowsTool(req.ToolName) {
		respondError(c, toolerr.New(toolerr.ErrCodeForbidden, "API key is not allowed to call this tool").WithDetails(map[string]any{
			"toolName": req.ToolName,
			"keyName":  key.Name,
		}))
		return
	}

	// Call tool
	// tool info からタイムアウト時間を取得 (デフォルト: 30s)
	var timeout time.Duration

	if toolInfo, found := h.clientManager.GetToolInfo(req.Server, req.ToolName); found {
		timeout = time.Duration(toolInfo.Timeout) * time.Millisecond
	} else {
		slog.Warn("Tool not found in cache, using default timeout", "toolName", req.ToolName, "server", req.Server)
	}
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	// ValidateRequest ensures input is an object
	input, _ := req.Input.(map[string]any)

	result, err := h.clientManager.CallTool(ctx, req.Server, req.ToolName, input)
	if err != nil {
		respondError(c, h.classifyCallError(err, req, timeout))
		return
	}

	// Check if the tool itself reported a failure (MCP-level tool error)
	if text, isToolError := extractErrorText(result); isToolError {
		if payload, ok := decodeToolFault(text); ok {
			// 下流の構造化エラーはコードを変えずに中継する
			respondError(c, toolerr.New(payload.Code, payload.Message).WithDetails(payload.Details))
			return
		}
		respondError(c, toolerr.New(toolerr.ErrCodeUnknown, text).WithDetails(map[string]any{
			"toolName":   req.ToolName,
			"serverName": req.Server,
		}))
		return
	}

	// Success case
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

// classifyCallError maps transport failures onto the shared failure
// vocabulary. Tool-reported failures never reach here; they arrive as
// results, not errors.
func (h *Handler) classifyCallError(err error, req CallToolRequest, timeout time.Duration) *toolerr.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return toolerr.Wrap(toolerr.ErrCodeTimeout, fmt.Sprintf("tool execution timed out after %dms", timeout.Milliseconds()), err).WithDetails(map[string]any{
			"toolName":   req.ToolName,
			"serverName": req.Server,
			"timeoutMs":  timeout.Milliseconds(),
		})
	case errors.Is(err, mcp.ErrServerNotFound):
		return toolerr.Wrap(toolerr.ErrCodeNotFound, "server not found", err).WithDetails(map[string]any{
			"serverName": req.Server,
		})
	case errors.Is(err, mcp.ErrServerNotRunning):
		return toolerr.Wrap(toolerr.ErrCodeServiceUnavailable, "server cannot take requests", err).WithDetails(map[string]any{
			"serverName": req.Server,
			"status":     string(h.processManager.GetStatus(req.Server)),
		})
	case errors.Is(err, mcp.ErrToolNotFound), isUnknownToolError(err):
		return toolerr.Wrap(toolerr.ErrCodeNotFound, "tool not found", err).WithDetails(map[string]any{
			"toolName":   req.ToolName,
			"serverName": req.Server,
		})
	default:
		return toolerr.Wrap(toolerr.ErrCodeInternal, "tool call failed", err)
	}
}

func (h *Handler) GetTools(c *gin.Context) {
	tools := h.clientManager.GetTools()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tools":   tools,
	})
}

func (h *Handler) Health(c *gin.Context) {
	statuses := h.processManager.GetAllStatuses()
	status := "ok"
	for _, s := range statuses {
		if s != mcp.StatusAvailable {
			status = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"uptime":  time.Since(h.startTime).Seconds(),
		"servers": statuses,
	})
}
