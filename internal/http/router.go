package http

import (
	"github.com/gin-gonic/gin"
	"github.com/khirotaka/toolfault/internal/config"
)

// SetupRouter configures the Gin engine and routes
func SetupRouter(handler *Handler, cfg *config.Config) *gin.Engine {
	// Create Gin instance
	r := gin.New()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(BodyLimit())

	// Health stays open so orchestrators can probe without credentials
	r.GET("/health", handler.Health)

	// 認証とレート制限は /mcp 配下のみ
	mcpRoutes := r.Group("/mcp")
	mcpRoutes.Use(APIKeyAuth(cfg.Auth))
	mcpRoutes.Use(RateLimit(cfg.RateLimit))
	mcpRoutes.POST("/call", handler.CallTool)
	mcpRoutes.GET("/tools", handler.GetTools)

	return r
}
