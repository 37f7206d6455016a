package main

import (
	"context"
	"log/slog"

	"github.com/khirotaka/toolfault/tests/testserver/server"
)

func main() {
	srv := server.NewMCPServer()
	srv.Setup()
	if err := srv.Run(context.Background()); err != nil {
		slog.Error("failed to run server", slog.Any("error", err))
	}
}
