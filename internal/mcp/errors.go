package mcp

import "errors"

// Sentinel errors for tool-call routing. The HTTP layer maps these onto the
// shared failure vocabulary at the response boundary.
var (
	ErrServerNotFound   = errors.New("server not found")
	ErrServerNotRunning = errors.New("server not running")
	ErrToolNotFound     = errors.New("tool not found")
)
