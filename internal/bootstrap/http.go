package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	sectionsui "github.com/campusbook/sections-ui"
	"github.com/campusbook/sections-ui/config"
	"github.com/campusbook/sections-ui/internal/api"
	httpx "github.com/campusbook/sections-ui/internal/http"
	"github.com/campusbook/sections-ui/internal/session"
)

// templatePathFromRoot is where templates live on disk for dev mode.
const templatePathFromRoot = "frontend/templates"

// HandlerConfig groups the dependencies of the UI handler chain.
type HandlerConfig struct {
	Config   *config.AppConfig
	Sessions session.Sessions
	Logger   *slog.Logger
}

// BuildHandler assembles renderer, router, and middleware into the
// http.Handler the server runs.
func BuildHandler(cfg HandlerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templateFS(cfg.Config.IsDev, logger),
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}

	client := api.NewClient(api.Options{
		BaseURL:    cfg.Config.API.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Config.API.Timeout},
		Logger:     logger,
	})

	router := httpx.NewRouter(httpx.RouterOptions{
		Sessions:              cfg.Sessions,
		API:                   client,
		Renderer:              renderer,
		LoadingRefreshSeconds: cfg.Config.HTTP.LoadingRefreshSeconds,
		Logger:                logger,
	})

	var h http.Handler = router
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)
	return h, nil
}

// templateFS picks the template source: disk in dev mode for hot
// reloading, the embedded FS otherwise.
func templateFS(isDev bool, logger *slog.Logger) fs.FS {
	if isDev {
		return os.DirFS(templatePathFromRoot)
	}
	sub, err := fs.Sub(sectionsui.TemplateFS, templatePathFromRoot)
	if err != nil {
		logger.Warn("embedded templates unavailable, falling back to disk", "error", err)
		return os.DirFS(templatePathFromRoot)
	}
	return sub
}

// RunServer serves until ctx is canceled, then shuts down gracefully.
func RunServer(ctx context.Context, logger *slog.Logger, handler http.Handler, addr string) error {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down HTTP server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
