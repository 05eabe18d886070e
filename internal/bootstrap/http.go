package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	staffdesk "github.com/staffdesk/ui-gateway"
	"github.com/staffdesk/ui-gateway/config"
	httpx "github.com/staffdesk/ui-gateway/internal/http"
)

// HTTPServerConfig contains configuration for the HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *Services
	Logger   *slog.Logger
}

// BuildHandler constructs the full HTTP handler: router plus the recover and
// logging middleware.
func BuildHandler(cfg *HTTPServerConfig) (http.Handler, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templates, err := fs.Sub(staffdesk.TemplateFS, "web/templates")
	if err != nil {
		return nil, fmt.Errorf("template sub fs: %w", err)
	}
	renderer, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: templates,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build renderer: %w", err)
	}

	router := httpx.NewRouter(httpx.RouterServices{
		Sessions:     cfg.Services.Sessions,
		Queries:      cfg.Services.Queries,
		Renderer:     renderer,
		CookieName:   cfg.Config.HTTP.CookieName,
		CookieDomain: cfg.Config.HTTP.CookieDomain,
		IsDev:        cfg.Config.IsDev,
		Logger:       logger,
	})

	h := httpx.Logging(logger)(router)
	h = httpx.Recover(logger)(h)
	return h, nil
}

// RunServer starts the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully within the configured timeout.
func RunServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	handler, err := BuildHandler(cfg)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Config.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Config.HTTP.ReadTimeout,
		WriteTimeout: cfg.Config.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if serveErr := server.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case serveErr := <-errCh:
		return fmt.Errorf("http server: %w", serveErr)
	case sig := <-stop:
		logger.Info("shutting down HTTP server", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("shutting down HTTP server", "reason", "context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Config.HTTP.ShutdownTimeout)
	defer cancel()
	if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		return fmt.Errorf("shutdown http server: %w", shutdownErr)
	}
	return nil
}
