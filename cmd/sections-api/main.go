// Command sections-api runs the in-memory development API the portal
// talks to when no real backend is around. All data is lost on exit.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusbook/sections-ui/internal/bootstrap"
	"github.com/campusbook/sections-ui/internal/devapi"
)

func main() {
	logger := bootstrap.InitLogger()

	addr := os.Getenv("DEVAPI_ADDR")
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting sections development API", "addr", addr)
	if err := bootstrap.RunServer(ctx, logger, devapi.New().Handler(), addr); err != nil {
		logger.Error("fatal error", "error", err)
		os.Exit(1)
	}
}
