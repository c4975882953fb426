package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/campusbook/sections-ui/internal/bootstrap"
	"github.com/campusbook/sections-ui/internal/session"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "starting sections-ui",
		"addr", cfg.HTTP.Addr,
		"api_base_url", cfg.API.BaseURL,
		"dev", cfg.IsDev)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slot, closeSlot := bootstrap.NewIdentitySlot(ctx, cfg.Redis, logger)
	defer closeSlot()

	store := session.NewStore(slot, logger)
	// Restore runs concurrently with the server: navigations arriving
	// before it completes see the loading placeholder, never a redirect.
	go store.Restore(ctx)

	handler, err := bootstrap.BuildHandler(bootstrap.HandlerConfig{
		Config:   &cfg,
		Sessions: store,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunServer(ctx, logger, handler, cfg.HTTP.Addr)
}
