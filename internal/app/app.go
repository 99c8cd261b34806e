package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/config"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/service/dictionary"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/transport/middleware"
	"github.com/ForeverProglamer/infrastructure-of-web-apps/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, opens the
// configured store and serves the HTTP API until ctx is cancelled, then
// shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("backend", cfg.Storage.Backend),
		slog.String("log_level", cfg.Log.Level),
	)

	store, closeStore, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	defer closeStore()

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	handler := NewHandler(logger, store, cfg.Storage.Backend)
	return Serve(ctx, ln, handler, cfg.Server, logger)
}

// NewHandler wires the dictionary service and health probes over store
// behind the default middleware stack.
func NewHandler(logger *slog.Logger, store dictionary.Store, backend string) http.Handler {
	svc := dictionary.NewService(logger, store, backend)

	router := rest.NewRouter(
		rest.NewDictionaryHandler(svc, logger),
		rest.NewHealthHandler(store, backend, BuildVersion()),
	)

	return middleware.Default(logger)(router)
}

// Serve runs an HTTP server on ln until ctx is cancelled or the server
// fails. On cancellation in-flight requests get cfg.ShutdownTimeout to
// finish.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler, cfg config.ServerConfig, logger *slog.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down http server", slog.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
