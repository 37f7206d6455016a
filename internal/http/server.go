package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// ServerManager owns the HTTP server lifecycle.
type ServerManager struct {
	srv *http.Server
}

// NewServerManager wraps the router in a server listening on the given port.
func NewServerManager(router *gin.Engine, port string) *ServerManager {
	return &ServerManager{
		srv: &http.Server{
			Addr:    ":" + port,
			Handler: router,
		},
	}
}

// Start blocks serving requests until Shutdown is called or the listener
// fails. A clean shutdown returns nil.
func (s *ServerManager) Start() error {
	slog.Info("Starting HTTP server", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests before stopping the server.
func (s *ServerManager) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
